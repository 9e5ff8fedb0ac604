package apicatalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	catalog "github.com/goliatone/go-catalog/components/catalog"
)

const (
	containersPath       = "/containers"
	staticAPIRefreshPath = "/static-api/refresh"
)

// HTTPConfig configures the API catalog client.
type HTTPConfig struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// HTTPClient talks to the API catalog service.
type HTTPClient struct {
	baseURL string
	token   string
	client  *http.Client
}

var (
	_ catalog.TileSource         = (*HTTPClient)(nil)
	_ catalog.StaticAPIRefresher = (*HTTPClient)(nil)
)

// NewHTTPClient builds a catalog client.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("apicatalog: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		token:   cfg.Token,
		client:  httpClient,
	}, nil
}

// FetchTiles implements catalog.TileSource via GET /containers.
func (c *HTTPClient) FetchTiles(ctx context.Context) ([]catalog.Tile, error) {
	var tiles []catalog.Tile
	if err := c.do(ctx, http.MethodGet, containersPath, &tiles); err != nil {
		return nil, err
	}
	if tiles == nil {
		tiles = []catalog.Tile{}
	}
	return tiles, nil
}

// RefreshStaticAPIs implements catalog.StaticAPIRefresher via POST /static-api/refresh.
func (c *HTTPClient) RefreshStaticAPIs(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, staticAPIRefreshPath, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, target any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("apicatalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return &catalog.FetchDisplayError{Err: fmt.Errorf("apicatalog: http request: %w", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if target == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("apicatalog: decode response: %w", err)
	}
	return nil
}

type errorPayload struct {
	Messages []catalog.APIMessage `json:"messages"`
}

// decodeError keeps the catalog message list when the body carries one.
func decodeError(resp *http.Response) error {
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	display := &catalog.FetchDisplayError{Status: resp.StatusCode}
	var payload errorPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err == nil && len(payload.Messages) > 0 {
		display.Messages = payload.Messages
		return display
	}
	if text := strings.TrimSpace(buf.String()); text != "" {
		display.Err = fmt.Errorf("apicatalog: remote error: %s", text)
	}
	return display
}
