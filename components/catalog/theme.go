package catalog

import (
	"context"
	"strings"

	"github.com/ettle/strcase"
)

const (
	whiteHeaderFallback = "black"
	mobileMenuOpenClass = "mobile-menu-open"
)

// ThemeConfig is the operator supplied customization attached to a tile.
type ThemeConfig struct {
	HeaderColor     string `json:"headerColor,omitempty" yaml:"headerColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty" yaml:"textColor,omitempty"`
	FontFamily      string `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	Logo            string `json:"logo,omitempty" yaml:"logo,omitempty"`
	DocLink         string `json:"docLink,omitempty" yaml:"docLink,omitempty"`
}

// IsZero reports whether no field is set.
func (cfg ThemeConfig) IsZero() bool {
	return cfg == ThemeConfig{}
}

// WhiteHeader reports whether the header color forces dark foreground text.
func (cfg ThemeConfig) WhiteHeader() bool {
	return strings.EqualFold(cfg.HeaderColor, "white") || strings.EqualFold(cfg.HeaderColor, "#FFFFFF")
}

// CSSVariables exposes the color and font fields as CSS custom properties.
func (cfg ThemeConfig) CSSVariables() map[string]string {
	fields := map[string]string{
		"headerColor":     cfg.HeaderColor,
		"backgroundColor": cfg.BackgroundColor,
		"textColor":       cfg.TextColor,
		"fontFamily":      cfg.FontFamily,
	}
	vars := map[string]string{}
	for key, value := range fields {
		if value == "" {
			continue
		}
		vars["--"+strcase.ToKebab(key)] = value
	}
	if len(vars) == 0 {
		return nil
	}
	return vars
}

// LogoSource resolves the custom logo into a URL the page can reference.
type LogoSource interface {
	FetchLogo(ctx context.Context) (string, error)
}

// ThemeApplier applies a ThemeConfig to a Document.
type ThemeApplier struct {
	logos LogoSource
}

// NewThemeApplier builds an applier; logos may be nil when no logo endpoint exists.
func NewThemeApplier(logos LogoSource) *ThemeApplier {
	return &ThemeApplier{logos: logos}
}

// Apply mutates the document for every field present in cfg. Missing
// elements are skipped. The logo is applied last; if its fetch fails the
// other mutations stay in place and a *LogoFetchError is returned.
func (a *ThemeApplier) Apply(ctx context.Context, doc *Document, cfg ThemeConfig) error {
	if doc == nil || cfg.IsZero() {
		return nil
	}
	applyCSSVariables(doc, cfg)
	applyBackground(doc, cfg)
	applyHeaderColor(doc, cfg)
	applyFontFamily(doc, cfg)
	if cfg.TextColor != "" {
		setStyle(doc, SelectorDescription, "color", cfg.TextColor)
	}
	applyWhiteHeader(doc, cfg)
	return a.applyLogo(ctx, doc, cfg)
}

func applyCSSVariables(doc *Document, cfg ThemeConfig) {
	for name, value := range cfg.CSSVariables() {
		setStyle(doc, SelectorRoot, name, value)
	}
}

func applyBackground(doc *Document, cfg ThemeConfig) {
	if cfg.BackgroundColor == "" {
		return
	}
	if homepage, ok := doc.Lookup(SelectorAPIs); ok {
		homepage.SetStyle("background-color", cfg.BackgroundColor)
		homepage.SetStyle("background-image", "none")
	}
	setStyle(doc, SelectorRoot, "background-color", cfg.BackgroundColor)
	setStyle(doc, SelectorContent, "background-color", cfg.BackgroundColor)
}

func applyHeaderColor(doc *Document, cfg ThemeConfig) {
	if cfg.HeaderColor == "" {
		return
	}
	setStyle(doc, SelectorHeader, "background-color", cfg.HeaderColor)
	setStyle(doc, SelectorTitle, "color", cfg.HeaderColor)
	setStyle(doc, SelectorSwaggerLabel, "color", cfg.HeaderColor)
	setStyle(doc, SelectorGoBackButton, "color", cfg.HeaderColor)

	buttonColor := cfg.HeaderColor
	if cfg.WhiteHeader() {
		buttonColor = whiteHeaderFallback
	}
	setStyle(doc, SelectorWizardButtonLabel, "color", buttonColor)
	setStyle(doc, SelectorRefreshButtonLabel, "color", buttonColor)
}

func applyFontFamily(doc *Document, cfg ThemeConfig) {
	if cfg.FontFamily == "" {
		return
	}
	for _, el := range doc.All() {
		el.RemoveStyle("font-family")
		el.SetStyle("font-family", cfg.FontFamily)
	}
}

func applyWhiteHeader(doc *Document, cfg ThemeConfig) {
	if !cfg.WhiteHeader() {
		return
	}
	if cfg.DocLink != "" {
		setStyle(doc, SelectorInternalLink, "color", whiteHeaderFallback)
	}
	setStyle(doc, SelectorGoBackButton, "color", whiteHeaderFallback)
	setStyle(doc, SelectorSwaggerLabel, "color", whiteHeaderFallback)
	setStyle(doc, SelectorTitle, "color", whiteHeaderFallback)
	setStyle(doc, SelectorProductTitle, "color", whiteHeaderFallback)
}

func (a *ThemeApplier) applyLogo(ctx context.Context, doc *Document, cfg ThemeConfig) error {
	if cfg.Logo == "" {
		return nil
	}
	logo, ok := doc.Lookup(SelectorLogo)
	if !ok {
		return nil
	}
	if a == nil || a.logos == nil {
		return &LogoFetchError{Err: errMissingLogoSource}
	}
	src, err := a.logos.FetchLogo(ctx)
	if err != nil {
		return asLogoFetchError(err)
	}
	logo.SetAttr("src", src)
	logo.SetStyle("height", "auto")
	logo.SetStyle("width", "auto")
	return nil
}

func setStyle(doc *Document, selector, property, value string) {
	if el, ok := doc.Lookup(selector); ok {
		el.SetStyle(property, value)
	}
}

// OpenMobileMenu toggles the mobile menu class on the body.
func OpenMobileMenu(doc *Document) {
	if body, ok := doc.Lookup(SelectorBody); ok {
		body.ToggleClass(mobileMenuOpenClass)
	}
}

// CloseMobileMenu removes the mobile menu class from the body.
func CloseMobileMenu(doc *Document) {
	if body, ok := doc.Lookup(SelectorBody); ok {
		body.RemoveClass(mobileMenuOpenClass)
	}
}
