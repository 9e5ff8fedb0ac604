package catalog

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	customLogoPath     = "/custom-logo"
	defaultLogoType    = "application/octet-stream"
	defaultLogoTimeout = 10 * time.Second
)

// LogoConfig configures the HTTP logo fetcher.
type LogoConfig struct {
	BaseURL    string
	HTTPClient *http.Client
	Cache      RenderCache
	// FailureTTL replays the last failure for this long instead of asking
	// the server again. Zero retries on every call.
	FailureTTL time.Duration
}

// HTTPLogoFetcher downloads the operator logo and inlines it as a data URL.
type HTTPLogoFetcher struct {
	baseURL string
	client  *http.Client
	cache   RenderCache

	failureTTL time.Duration
	now        func() time.Time

	mu          sync.Mutex
	lastErr     error
	failedUntil time.Time
}

// NewHTTPLogoFetcher builds a fetcher for <BaseURL>/custom-logo.
func NewHTTPLogoFetcher(cfg LogoConfig) (*HTTPLogoFetcher, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, errors.New("catalog: logo base url is required")
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultLogoTimeout}
	}
	return &HTTPLogoFetcher{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client:  client,
		cache:   cfg.Cache,

		failureTTL: cfg.FailureTTL,
		now:        time.Now,
	}, nil
}

// URL returns the logo endpoint.
func (f *HTTPLogoFetcher) URL() string {
	return f.baseURL + customLogoPath
}

// FetchLogo implements LogoSource.
func (f *HTTPLogoFetcher) FetchLogo(ctx context.Context) (string, error) {
	if err := f.recentFailure(); err != nil {
		return "", err
	}
	var (
		src string
		err error
	)
	if f.cache == nil {
		src, err = f.fetch(ctx)
	} else {
		src, err = f.cache.GetOrRender("logo:"+f.URL(), func() (string, error) {
			return f.fetch(ctx)
		})
	}
	f.recordResult(err)
	return src, err
}

func (f *HTTPLogoFetcher) recentFailure() error {
	if f.failureTTL <= 0 {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lastErr != nil && f.now().Before(f.failedUntil) {
		return f.lastErr
	}
	return nil
}

func (f *HTTPLogoFetcher) recordResult(err error) {
	if f.failureTTL <= 0 {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	// A cancelled request says nothing about the logo endpoint.
	if err == nil || errors.Is(err, context.Canceled) {
		f.lastErr = nil
		return
	}
	f.lastErr = err
	f.failedUntil = f.now().Add(f.failureTTL)
}

func (f *HTTPLogoFetcher) fetch(ctx context.Context) (string, error) {
	target := f.URL()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &LogoFetchError{URL: target, Err: fmt.Errorf("build request: %w", err)}
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", &LogoFetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &LogoFetchError{URL: target, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &LogoFetchError{URL: target, Err: fmt.Errorf("read body: %w", err)}
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultLogoType
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(body), nil
}
