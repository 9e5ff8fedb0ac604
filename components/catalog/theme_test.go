package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLogoSource struct {
	src   string
	err   error
	calls int
}

func (s *stubLogoSource) FetchLogo(context.Context) (string, error) {
	s.calls++
	return s.src, s.err
}

func styleOf(t *testing.T, doc *Document, selector, property string) string {
	t.Helper()
	el, ok := doc.Lookup(selector)
	require.True(t, ok, "missing element %s", selector)
	value, _ := el.Style(property)
	return value
}

func TestThemeApplierBackgroundOnly(t *testing.T) {
	doc := NewDocument()
	err := NewThemeApplier(nil).Apply(context.Background(), doc, ThemeConfig{BackgroundColor: "#102030"})
	require.NoError(t, err)

	assert.Equal(t, "#102030", styleOf(t, doc, SelectorRoot, "--background-color"))
	assert.Equal(t, "#102030", styleOf(t, doc, SelectorRoot, "background-color"))
	assert.Equal(t, "#102030", styleOf(t, doc, SelectorContent, "background-color"))
	assert.Equal(t, "#102030", styleOf(t, doc, SelectorAPIs, "background-color"))
	assert.Equal(t, "none", styleOf(t, doc, SelectorAPIs, "background-image"))

	styles := doc.Styles()
	assert.Len(t, styles, 3, "only background related elements change: %v", styles)
	assert.Empty(t, styleOf(t, doc, SelectorHeader, "background-color"))
	assert.Empty(t, styleOf(t, doc, SelectorTitle, "color"))
	_, hasSrc := mustLookup(t, doc, SelectorLogo).Attr("src")
	assert.False(t, hasSrc)
}

func TestThemeApplierHeaderColor(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, NewThemeApplier(nil).Apply(context.Background(), doc, ThemeConfig{HeaderColor: "navy"}))

	assert.Equal(t, "navy", styleOf(t, doc, SelectorHeader, "background-color"))
	assert.Equal(t, "navy", styleOf(t, doc, SelectorTitle, "color"))
	assert.Equal(t, "navy", styleOf(t, doc, SelectorSwaggerLabel, "color"))
	assert.Equal(t, "navy", styleOf(t, doc, SelectorGoBackButton, "color"))
	assert.Equal(t, "navy", styleOf(t, doc, SelectorWizardButtonLabel, "color"))
	assert.Equal(t, "navy", styleOf(t, doc, SelectorRefreshButtonLabel, "color"))
	assert.Equal(t, "navy", styleOf(t, doc, SelectorRoot, "--header-color"))
	assert.Empty(t, styleOf(t, doc, SelectorProductTitle, "color"))
}

func TestThemeApplierWhiteHeaderForcesBlackText(t *testing.T) {
	for _, color := range []string{"white", "#FFFFFF", "#ffffff"} {
		doc := NewDocument()
		cfg := ThemeConfig{HeaderColor: color, DocLink: "https://docs.example.com"}
		require.NoError(t, NewThemeApplier(nil).Apply(context.Background(), doc, cfg))

		assert.Equal(t, color, styleOf(t, doc, SelectorHeader, "background-color"), color)
		for _, selector := range []string{
			SelectorTitle,
			SelectorProductTitle,
			SelectorSwaggerLabel,
			SelectorGoBackButton,
			SelectorInternalLink,
			SelectorWizardButtonLabel,
			SelectorRefreshButtonLabel,
		} {
			assert.Equal(t, "black", styleOf(t, doc, selector, "color"), "%s with %s", selector, color)
		}
	}
}

func TestThemeApplierWhiteHeaderWithoutDocLink(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, NewThemeApplier(nil).Apply(context.Background(), doc, ThemeConfig{HeaderColor: "white"}))
	assert.Empty(t, styleOf(t, doc, SelectorInternalLink, "color"))
}

func TestThemeApplierFontFamilyAndTextColor(t *testing.T) {
	doc := NewDocument()
	cfg := ThemeConfig{FontFamily: "IBM Plex Sans", TextColor: "#333"}
	require.NoError(t, NewThemeApplier(nil).Apply(context.Background(), doc, cfg))

	for _, el := range doc.All() {
		value, ok := el.Style("font-family")
		assert.True(t, ok, el.Selector())
		assert.Equal(t, "IBM Plex Sans", value, el.Selector())
	}
	assert.Equal(t, "#333", styleOf(t, doc, SelectorDescription, "color"))
	assert.Equal(t, "#333", styleOf(t, doc, SelectorRoot, "--text-color"))
}

func TestThemeApplierSkipsMissingElements(t *testing.T) {
	doc := NewDocument(SelectorRoot)
	cfg := ThemeConfig{HeaderColor: "white", BackgroundColor: "red", Logo: "custom"}
	require.NoError(t, NewThemeApplier(&stubLogoSource{src: "data:x"}).Apply(context.Background(), doc, cfg))

	assert.Equal(t, "red", styleOf(t, doc, SelectorRoot, "background-color"))
	assert.Len(t, doc.All(), 1)
}

func TestThemeApplierZeroConfigIsNoop(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, NewThemeApplier(nil).Apply(context.Background(), doc, ThemeConfig{}))
	assert.Empty(t, doc.Styles())
	assert.NoError(t, NewThemeApplier(nil).Apply(context.Background(), nil, ThemeConfig{HeaderColor: "red"}))
}

func TestThemeApplierSetsLogoLast(t *testing.T) {
	doc := NewDocument()
	logos := &stubLogoSource{src: "data:image/png;base64,AAAA"}
	require.NoError(t, NewThemeApplier(logos).Apply(context.Background(), doc, ThemeConfig{Logo: "custom"}))

	logo := mustLookup(t, doc, SelectorLogo)
	src, ok := logo.Attr("src")
	require.True(t, ok)
	assert.Equal(t, "data:image/png;base64,AAAA", src)
	assert.Equal(t, "auto", styleOf(t, doc, SelectorLogo, "height"))
	assert.Equal(t, "auto", styleOf(t, doc, SelectorLogo, "width"))
	assert.Equal(t, 1, logos.calls)
	assert.Equal(t, "data:image/png;base64,AAAA", doc.Attrs("src")["logo"])
}

func TestThemeApplierLogoNotFoundKeepsOtherStyles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/custom-logo", r.URL.Path)
		http.NotFound(w, r)
	}))
	defer srv.Close()

	fetcher, err := NewHTTPLogoFetcher(LogoConfig{BaseURL: srv.URL})
	require.NoError(t, err)

	doc := NewDocument()
	cfg := ThemeConfig{HeaderColor: "navy", BackgroundColor: "beige", FontFamily: "serif", Logo: "custom"}
	err = NewThemeApplier(fetcher).Apply(context.Background(), doc, cfg)

	var logoErr *LogoFetchError
	require.True(t, errors.As(err, &logoErr), "got %v", err)
	assert.Equal(t, http.StatusNotFound, logoErr.Status)
	assert.Equal(t, srv.URL+"/custom-logo", logoErr.URL)

	assert.Equal(t, "navy", styleOf(t, doc, SelectorHeader, "background-color"))
	assert.Equal(t, "beige", styleOf(t, doc, SelectorContent, "background-color"))
	assert.Equal(t, "serif", styleOf(t, doc, SelectorBody, "font-family"))
	_, hasSrc := mustLookup(t, doc, SelectorLogo).Attr("src")
	assert.False(t, hasSrc)
}

func TestThemeApplierWithoutLogoSource(t *testing.T) {
	doc := NewDocument()
	err := NewThemeApplier(nil).Apply(context.Background(), doc, ThemeConfig{Logo: "custom", TextColor: "red"})

	var logoErr *LogoFetchError
	require.True(t, errors.As(err, &logoErr))
	assert.ErrorIs(t, err, errMissingLogoSource)
	assert.Equal(t, "red", styleOf(t, doc, SelectorDescription, "color"))
}

func TestThemeApplierWrapsPlainLogoErrors(t *testing.T) {
	doc := NewDocument()
	boom := errors.New("boom")
	err := NewThemeApplier(&stubLogoSource{err: boom}).Apply(context.Background(), doc, ThemeConfig{Logo: "custom"})

	var logoErr *LogoFetchError
	require.True(t, errors.As(err, &logoErr))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "error fetching image path: boom", err.Error())
}

func TestThemeConfigCSSVariables(t *testing.T) {
	assert.Nil(t, ThemeConfig{Logo: "x"}.CSSVariables())
	vars := ThemeConfig{HeaderColor: "a", FontFamily: "b"}.CSSVariables()
	assert.Equal(t, map[string]string{"--header-color": "a", "--font-family": "b"}, vars)
}

func TestMobileMenu(t *testing.T) {
	doc := NewDocument()
	body := mustLookup(t, doc, SelectorBody)

	OpenMobileMenu(doc)
	assert.True(t, body.HasClass("mobile-menu-open"))
	OpenMobileMenu(doc)
	assert.False(t, body.HasClass("mobile-menu-open"))

	OpenMobileMenu(doc)
	CloseMobileMenu(doc)
	assert.False(t, body.HasClass("mobile-menu-open"))

	CloseMobileMenu(NewDocument(SelectorRoot))
}

func mustLookup(t *testing.T, doc *Document, selector string) *Element {
	t.Helper()
	el, ok := doc.Lookup(selector)
	require.True(t, ok, "missing element %s", selector)
	return el
}
