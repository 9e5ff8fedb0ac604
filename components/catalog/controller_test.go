package catalog

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRenderer struct {
	name string
	data map[string]any
	err  error
}

func (r *stubRenderer) Render(name string, data any, out ...io.Writer) (string, error) {
	r.name = name
	r.data, _ = data.(map[string]any)
	if r.err != nil {
		return "", r.err
	}
	html := fmt.Sprintf("<h1>%v</h1>", r.data["title"])
	for _, w := range out {
		_, _ = io.WriteString(w, html)
	}
	return html, nil
}

func TestControllerRenderTemplate(t *testing.T) {
	store := &fakeViewStore{state: State{Tiles: sampleTiles(), SearchCriteria: "zosmf"}}
	renderer := &stubRenderer{}
	controller := NewController(ControllerOptions{
		View:     NewDashboardView(store, ViewConfig{}),
		Renderer: renderer,
	})

	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), &buf))
	assert.Equal(t, "<h1>API Catalog</h1>", buf.String())
	assert.Equal(t, "dashboard", renderer.name)

	assert.Equal(t, true, renderer.data["show_tiles"])
	assert.Equal(t, "zosmf", renderer.data["search_criteria"])
	entries, ok := renderer.data["entries"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, entries, 1)
	assert.Equal(t, "zosmf/zosmf", entries[0]["key"])
	assert.IsType(t, ServiceContentSummary{}, entries[0]["content"])
}

func TestControllerRenderErrors(t *testing.T) {
	err := NewController(ControllerOptions{View: NewDashboardView(&fakeViewStore{}, ViewConfig{})}).
		RenderTemplate(context.Background(), io.Discard)
	assert.ErrorIs(t, err, errMissingRenderer)

	err = NewController(ControllerOptions{Renderer: &stubRenderer{}}).RenderTemplate(context.Background(), io.Discard)
	assert.ErrorIs(t, err, errMissingView)

	boom := errors.New("template missing")
	err = NewController(ControllerOptions{
		View:     NewDashboardView(&fakeViewStore{}, ViewConfig{}),
		Renderer: &stubRenderer{err: boom},
		Template: "custom",
	}).RenderTemplate(context.Background(), io.Discard)
	assert.ErrorIs(t, err, boom)
	assert.EqualError(t, err, "catalog: render custom: template missing")
}

func TestControllerViewPayload(t *testing.T) {
	controller := NewController(ControllerOptions{View: NewDashboardView(&fakeViewStore{}, ViewConfig{PortalMode: true})})
	vm, err := controller.ViewPayload(context.Background())
	require.NoError(t, err)
	assert.True(t, vm.PortalMode)

	_, err = NewController(ControllerOptions{}).ViewPayload(context.Background())
	assert.ErrorIs(t, err, errMissingView)
}

func TestControllerRendersIntentForms(t *testing.T) {
	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	store := &fakeViewStore{state: State{Tiles: sampleTiles(), SelectedService: "apicatalog"}}
	view := NewDashboardView(store, ViewConfig{Contents: &ContentCatalog{}})
	view.ToggleMobileMenu(context.Background())
	controller := NewController(ControllerOptions{View: view, Renderer: renderer})

	var buf bytes.Buffer
	require.NoError(t, controller.RenderTemplate(context.Background(), &buf))
	html := buf.String()
	assert.Contains(t, html, `action="dashboard/menu/toggle"`)
	assert.Contains(t, html, `action="dashboard/menu/close"`)
	assert.Contains(t, html, `action="dashboard/services/select"`)
	assert.Contains(t, html, `name="serviceId" value="apicatalog"`)
	assert.Contains(t, html, `grid-item selected`)
	assert.Contains(t, html, "mobile-menu-open")
}
