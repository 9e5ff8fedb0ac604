package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	catalog "github.com/goliatone/go-catalog/components/catalog"
)

type countsCmd struct {
	Services []string `arg:"" optional:"" help:"Service ids to count; all catalog products when omitted."`
	Contents string   `type:"existingfile" help:"Educational contents JSON overriding the embedded catalog."`
	Format   string   `default:"yaml" enum:"yaml,json" help:"Output format."`

	out io.Writer
}

// countRow is the printable form of a content summary.
type countRow struct {
	Service    string `json:"service" yaml:"service"`
	UseCases   int    `json:"use_cases" yaml:"use_cases"`
	Tutorials  int    `json:"tutorials" yaml:"tutorials"`
	Videos     int    `json:"videos" yaml:"videos"`
	HasSwagger bool   `json:"has_swagger" yaml:"has_swagger"`
	DocsURL    string `json:"docs_url,omitempty" yaml:"docs_url,omitempty"`
}

func (cmd *countsCmd) Run() error {
	contents, err := loadContents(cmd.Contents)
	if err != nil {
		return err
	}
	ids := cmd.Services
	if len(ids) == 0 {
		for _, product := range contents.Products {
			ids = append(ids, product.Name)
		}
		sort.Strings(ids)
	}
	rows := make([]countRow, 0, len(ids))
	for _, id := range ids {
		summary := contents.CountAdditionalContents(catalog.Service{ServiceID: id})
		row := countRow{
			Service:    id,
			UseCases:   summary.UseCasesCounter,
			Tutorials:  summary.TutorialsCounter,
			Videos:     summary.VideosCounter,
			HasSwagger: summary.HasSwagger,
		}
		if summary.Documentation != nil {
			row.DocsURL = summary.Documentation.URL
		}
		rows = append(rows, row)
	}
	return encode(cmd.writer(), cmd.Format, rows)
}

func (cmd *countsCmd) writer() io.Writer {
	if cmd.out != nil {
		return cmd.out
	}
	return os.Stdout
}

type validateCmd struct {
	Contents string `type:"existingfile" help:"Educational contents JSON to validate."`
	Theme    string `type:"existingfile" help:"Custom style config JSON to validate."`
	Config   string `type:"existingfile" help:"Deployment config YAML to validate."`

	out io.Writer
}

func (cmd *validateCmd) Run() error {
	if cmd.Contents == "" && cmd.Theme == "" && cmd.Config == "" {
		return fmt.Errorf("catalogctl: nothing to validate (use %s, %s or %s)",
			flagName("Contents"), flagName("Theme"), flagName("Config"))
	}
	out := cmd.out
	if out == nil {
		out = os.Stdout
	}
	if cmd.Contents != "" {
		if _, err := loadContents(cmd.Contents); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ %s is a valid contents catalog\n", cmd.Contents)
	}
	if cmd.Theme != "" {
		data, err := os.ReadFile(cmd.Theme)
		if err != nil {
			return fmt.Errorf("catalogctl: read theme %s: %w", cmd.Theme, err)
		}
		theme, err := catalog.DecodeThemeConfig(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ %s is a valid theme (%s)\n", cmd.Theme, describeTheme(theme))
	}
	if cmd.Config != "" {
		if _, err := catalog.ReadConfig(cmd.Config); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ %s is a valid deployment config\n", cmd.Config)
	}
	return nil
}

// describeTheme lists the CSS variables a theme would set.
func describeTheme(theme catalog.ThemeConfig) string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return "no overrides"
	}
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("%d overrides: %v", len(names), names)
}

type initConfigCmd struct {
	Path       string `arg:"" type:"path" help:"Where to write the config."`
	CatalogURL string `name:"catalog-url" default:"https://localhost:10010/apicatalog/api/v1" help:"Catalog service base URL."`
	Portal     bool   `help:"Enable portal mode."`
	Title      string `help:"Portal dashboard title."`
	Overwrite  bool   `help:"Replace an existing file."`
}

func (cmd *initConfigCmd) Run() error {
	if _, err := os.Stat(cmd.Path); err == nil && !cmd.Overwrite {
		return fmt.Errorf("catalogctl: %s already exists (use --overwrite)", cmd.Path)
	}
	cfg := catalog.Config{
		CatalogURL:  cmd.CatalogURL,
		PortalMode:  cmd.Portal,
		PortalTitle: cmd.Title,
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}
	file, err := os.Create(cmd.Path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("catalogctl: create %s: %w", cmd.Path, err)
	}
	defer file.Close()
	return cfg.Encode(file)
}

func encode(w io.Writer, format string, v any) error {
	if format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()
	return encoder.Encode(v)
}

// flagName mirrors kong's flag naming for error messages.
func flagName(field string) string {
	return "--" + strcase.ToKebab(field)
}
