package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

const defaultAPIKey = "default"

//go:embed data/*.json
var embeddedContents embed.FS

// ContentLink is a labelled link to extra educational content.
type ContentLink struct {
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

// Product is a catalog entry keyed by the service id.
type Product struct {
	Name          string        `json:"name"`
	UseCases      []ContentLink `json:"useCases"`
	Tutorials     []ContentLink `json:"tutorials"`
	Videos        []string      `json:"videos"`
	Documentation *ContentLink  `json:"documentation,omitempty"`
}

// ContentCatalog indexes the static educational contents by product name.
type ContentCatalog struct {
	Products []Product `json:"products"`
}

// ServiceContentSummary is derived on demand for a service.
type ServiceContentSummary struct {
	UseCasesCounter   int           `json:"useCasesCounter"`
	TutorialsCounter  int           `json:"tutorialsCounter"`
	VideosCounter     int           `json:"videosCounter"`
	HasSwagger        bool          `json:"hasSwagger"`
	FilteredUseCases  []ContentLink `json:"filteredUseCases"`
	FilteredTutorials []ContentLink `json:"filteredTutorials"`
	Videos            []string      `json:"videos"`
	Documentation     *ContentLink  `json:"documentation"`
}

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *ContentCatalog
	defaultCatalogErr  error
)

// DefaultContentCatalog returns the catalog embedded in the binary.
func DefaultContentCatalog() (*ContentCatalog, error) {
	defaultCatalogOnce.Do(func() {
		data, err := embeddedContents.ReadFile("data/educational_contents.json")
		if err != nil {
			defaultCatalogErr = fmt.Errorf("catalog: read embedded contents: %w", err)
			return
		}
		defaultCatalog, defaultCatalogErr = LoadContentCatalog(bytes.NewReader(data))
	})
	return defaultCatalog, defaultCatalogErr
}

// LoadContentCatalog decodes and validates a contents document.
func LoadContentCatalog(r io.Reader) (*ContentCatalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: read contents: %w", err)
	}
	if err := ValidateContents(data); err != nil {
		return nil, err
	}
	var doc ContentCatalog
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("catalog: decode contents: %w", err)
	}
	return &doc, nil
}

// Product finds the catalog entry for a service id.
func (c *ContentCatalog) Product(serviceID string) (Product, bool) {
	if c == nil || serviceID == "" {
		return Product{}, false
	}
	for _, product := range c.Products {
		if product.Name == serviceID {
			return product, true
		}
	}
	return Product{}, false
}

// CountAdditionalContents counts the valid use cases, tutorials and videos
// registered for the service and checks whether it exposes swagger docs.
// Unknown services and malformed entries degrade to zero values.
func (c *ContentCatalog) CountAdditionalContents(service Service) ServiceContentSummary {
	product, _ := c.Product(service.ServiceID)

	useCases := filterLinks(product.UseCases)
	tutorials := filterLinks(product.Tutorials)
	videos := product.Videos
	if videos == nil {
		videos = []string{}
	}

	return ServiceContentSummary{
		UseCasesCounter:   len(useCases),
		TutorialsCounter:  len(tutorials),
		VideosCounter:     countValid(videos),
		HasSwagger:        hasSwagger(service),
		FilteredUseCases:  useCases,
		FilteredTutorials: tutorials,
		Videos:            videos,
		Documentation:     product.Documentation,
	}
}

// CountAdditionalContents uses the embedded catalog. If it cannot be loaded
// the summary is empty except for the swagger flag.
func CountAdditionalContents(service Service) ServiceContentSummary {
	contents, err := DefaultContentCatalog()
	if err != nil {
		contents = nil
	}
	return contents.CountAdditionalContents(service)
}

var specialSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ws":    true,
	"wss":   true,
	"ftp":   true,
	"file":  true,
}

// IsValidURL reports whether raw parses as an absolute URL the way browsers
// parse them: any well-formed scheme is enough, except that http, https, ws,
// wss and ftp need a host. For those schemes the slashes after the colon are
// optional, so "http:example.com" is valid and "http://" is not.
func IsValidURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	scheme, rest, ok := strings.Cut(raw, ":")
	if !ok || !validScheme(scheme) {
		return false
	}
	scheme = strings.ToLower(scheme)
	if !specialSchemes[scheme] || scheme == "file" {
		return true
	}
	authority := strings.TrimLeft(rest, `/\`)
	if i := strings.IndexAny(authority, `/\?#`); i >= 0 {
		authority = authority[:i]
	}
	parsed, err := url.Parse(scheme + "://" + authority)
	if err != nil || parsed.Hostname() == "" {
		return false
	}
	if port := parsed.Port(); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n > 65535 {
			return false
		}
	}
	return true
}

func validScheme(scheme string) bool {
	if scheme == "" {
		return false
	}
	for i, r := range scheme {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

func filterLinks(links []ContentLink) []ContentLink {
	out := make([]ContentLink, 0, len(links))
	for _, link := range links {
		if IsValidURL(link.URL) {
			out = append(out, link)
		}
	}
	return out
}

func countValid(urls []string) int {
	count := 0
	for _, raw := range urls {
		if IsValidURL(raw) {
			count++
		}
	}
	return count
}

// The "default" entry of statically defined services carries a swagger url
// the details page cannot use, so it never counts.
func hasSwagger(service Service) bool {
	for key, api := range service.APIs {
		if key == defaultAPIKey {
			continue
		}
		if api.SwaggerURL != "" {
			return true
		}
	}
	return false
}
