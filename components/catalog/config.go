package catalog

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultListenAddr = ":8080"

// Config is the on-disk configuration of a catalog deployment.
type Config struct {
	Listen         string        `json:"listen" yaml:"listen"`
	PortalMode     bool          `json:"portal_mode" yaml:"portal_mode"`
	PortalTitle    string        `json:"portal_title,omitempty" yaml:"portal_title,omitempty"`
	CatalogURL     string        `json:"catalog_url" yaml:"catalog_url"`
	LogoBaseURL    string        `json:"logo_base_url,omitempty" yaml:"logo_base_url,omitempty"`
	PollInterval   time.Duration `json:"poll_interval,omitempty" yaml:"poll_interval,omitempty"`
	ContentsPath   string        `json:"contents_path,omitempty" yaml:"contents_path,omitempty"`
	PinnedServices []string      `json:"pinned_services,omitempty" yaml:"pinned_services,omitempty"`
	ChartTheme     string        `json:"chart_theme,omitempty" yaml:"chart_theme,omitempty"`
	Source         string        `json:"-" yaml:"-"`
}

// ReadConfig loads a config file from disk.
func ReadConfig(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("catalog: open config %s: %w", path, err)
	}
	defer f.Close()
	cfg, err := DecodeConfig(f)
	if err != nil {
		return nil, fmt.Errorf("catalog: decode config %s: %w", path, err)
	}
	cfg.Source = path
	return cfg, nil
}

// DecodeConfig reads a config from any reader. Unknown keys are rejected.
func DecodeConfig(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var cfg Config
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("catalog: config is empty")
		}
		return nil, fmt.Errorf("catalog: parse config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Listen == "" {
		c.Listen = defaultListenAddr
	}
	if c.PollInterval == 0 {
		c.PollInterval = defaultPollInterval
	}
	if c.LogoBaseURL == "" {
		c.LogoBaseURL = c.CatalogURL
	}
}

// Validate ensures the config is usable.
func (c *Config) Validate() error {
	if c.CatalogURL == "" {
		return fmt.Errorf("catalog: config is missing catalog_url")
	}
	if _, err := url.ParseRequestURI(c.CatalogURL); err != nil {
		return fmt.Errorf("catalog: invalid catalog_url %q: %w", c.CatalogURL, err)
	}
	if c.LogoBaseURL != "" {
		if _, err := url.ParseRequestURI(c.LogoBaseURL); err != nil {
			return fmt.Errorf("catalog: invalid logo_base_url %q: %w", c.LogoBaseURL, err)
		}
	}
	seen := make(map[string]struct{}, len(c.PinnedServices))
	for _, id := range c.PinnedServices {
		if id == "" {
			return fmt.Errorf("catalog: pinned_services contains an empty id")
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("catalog: pinned_services duplicates %s", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Sorter returns the service sorter implied by the pinned services.
func (c *Config) Sorter() ServiceSorter {
	if c == nil || len(c.PinnedServices) == 0 {
		return SortServices
	}
	return PinnedServiceSorter(SortServices, c.PinnedServices)
}

// Encode writes the config as YAML.
func (c *Config) Encode(w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("catalog: encode config: %w", err)
	}
	return encoder.Close()
}
