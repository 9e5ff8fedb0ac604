package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/goliatone/go-catalog/pkg/activity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeViewStore struct {
	mu       sync.Mutex
	state    State
	commands []Command
}

func (s *fakeViewStore) Dispatch(_ context.Context, cmd Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, cmd)
}

func (s *fakeViewStore) Snapshot() State { return s.state }

func (s *fakeViewStore) actions() []Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Action, 0, len(s.commands))
	for _, cmd := range s.commands {
		out = append(out, cmd.Action)
	}
	return out
}

type recordedEvents struct {
	events []activity.Event
	err    error
}

func (r *recordedEvents) Emit(_ context.Context, evt activity.Event) error {
	r.events = append(r.events, evt)
	return r.err
}

type recordedTelemetry struct {
	events []string
}

func (r *recordedTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	r.events = append(r.events, event)
}

func sampleTiles() []Tile {
	return []Tile{
		{
			ID:    "apimediationlayer",
			Title: "API Mediation Layer",
			Services: []Service{
				{ServiceID: "gateway", Title: "Gateway"},
				{ServiceID: "apicatalog", Title: "API Catalog"},
			},
		},
		{
			ID:       "zosmf",
			Title:    "z/OSMF",
			Services: []Service{{ServiceID: "zosmf", Title: "z/OSMF"}},
		},
	}
}

func TestDashboardViewMountDispatchesStartSequence(t *testing.T) {
	store := &fakeViewStore{}
	view := NewDashboardView(store, ViewConfig{})
	require.NoError(t, view.Mount(context.Background()))
	assert.Equal(t, []Action{ActionClearService, ActionFetchTilesStart}, store.actions())

	require.NoError(t, view.Unmount(context.Background()))
	assert.Equal(t, []Action{
		ActionClearService, ActionFetchTilesStart,
		ActionClear, ActionFetchTilesStop,
	}, store.actions())
}

func TestDashboardViewMountPortal(t *testing.T) {
	store := &fakeViewStore{}
	view := NewDashboardView(store, ViewConfig{PortalMode: true, PortalTitle: "Dev Portal"})
	require.NoError(t, view.Mount(context.Background()))

	assert.Equal(t, "Dev Portal", view.Document().Title())
	assert.Equal(t, "none", styleOf(t, view.Document(), SelectorGoBackButtonPortal, "display"))
}

func TestDashboardViewWithoutStore(t *testing.T) {
	view := NewDashboardView(nil, ViewConfig{})
	assert.ErrorIs(t, view.Mount(context.Background()), errMissingStore)
	assert.ErrorIs(t, view.Unmount(context.Background()), errMissingStore)
	view.HandleSearch(context.Background(), "x")

	vm := view.Build(context.Background())
	assert.Equal(t, "API Catalog", vm.Title)
	assert.True(t, vm.ShowAPIs)
	assert.False(t, vm.ShowTiles)
}

func TestDashboardViewBuildFetchError(t *testing.T) {
	store := &fakeViewStore{state: State{
		Tiles:      sampleTiles(),
		FetchError: &FetchDisplayError{Messages: []APIMessage{{MessageNumber: "ZWEAC104E", MessageContent: "Gateway not up"}}},
	}}
	view := NewDashboardView(store, ViewConfig{})
	vm := view.Build(context.Background())

	assert.True(t, vm.HasError)
	assert.Equal(t, fetchErrorIntroMessage, vm.ErrorIntro)
	assert.Equal(t, "ZWEAC104E Gateway not up", vm.Error)
	assert.False(t, vm.ShowAPIs)
	assert.False(t, vm.ShowTiles)
	assert.Empty(t, vm.Entries)
	assert.False(t, vm.ShowFooter)
	assert.Equal(t, []Action{ActionFetchTilesStop}, store.actions())
}

func TestDashboardViewBuildTiles(t *testing.T) {
	store := &fakeViewStore{state: State{Tiles: sampleTiles(), Loading: true}}
	view := NewDashboardView(store, ViewConfig{})
	vm := view.Build(context.Background())

	assert.True(t, vm.Loading)
	assert.True(t, vm.ShowAPIs)
	assert.True(t, vm.ShowTiles)
	assert.True(t, vm.ShowFooter)
	assert.False(t, vm.NoResults)
	assert.True(t, vm.ShowOnboarding)
	assert.False(t, vm.ShowFeedback)

	keys := make([]string, 0, len(vm.Entries))
	for _, entry := range vm.Entries {
		keys = append(keys, entry.Key)
	}
	assert.Equal(t, []string{
		"apimediationlayer/apicatalog",
		"apimediationlayer/gateway",
		"zosmf/zosmf",
	}, keys)
	assert.Equal(t, 1, vm.Entries[2].Content.UseCasesCounter)
	assert.Empty(t, store.actions())
}

func TestDashboardViewBuildNoResults(t *testing.T) {
	store := &fakeViewStore{state: State{Tiles: sampleTiles(), SearchCriteria: "nothing-matches"}}
	vm := NewDashboardView(store, ViewConfig{}).Build(context.Background())

	assert.True(t, vm.ShowAPIs)
	assert.False(t, vm.ShowTiles)
	assert.True(t, vm.NoResults)
	assert.Equal(t, noResultsMessage, vm.NoResultsMessage)
	assert.Empty(t, vm.Entries)
	assert.False(t, vm.ShowFooter)
	assert.Equal(t, "nothing-matches", vm.SearchCriteria)
}

func TestDashboardViewBuildEmptyWithoutSearch(t *testing.T) {
	vm := NewDashboardView(&fakeViewStore{}, ViewConfig{}).Build(context.Background())
	assert.False(t, vm.ShowTiles)
	assert.False(t, vm.NoResults)
	assert.False(t, vm.HasError)
}

func TestDashboardViewBuildSearchFilters(t *testing.T) {
	store := &fakeViewStore{state: State{Tiles: sampleTiles(), SearchCriteria: "OSMF"}}
	vm := NewDashboardView(store, ViewConfig{}).Build(context.Background())
	require.Len(t, vm.Entries, 1)
	assert.Equal(t, "zosmf/zosmf", vm.Entries[0].Key)
}

func TestDashboardViewBuildAlertsAndRefreshError(t *testing.T) {
	store := &fakeViewStore{state: State{
		ShowUpdatePassSuccess:  true,
		WizardVisible:          true,
		RefreshStaticAPIsError: errors.New("refresh failed"),
	}}
	vm := NewDashboardView(store, ViewConfig{}).Build(context.Background())

	assert.True(t, vm.ShowUpdatePassSuccess)
	assert.Equal(t, passwordUpdatedMessage, vm.AlertMessage)
	assert.True(t, vm.WizardVisible)
	assert.Equal(t, "refresh failed", vm.RefreshError)
}

func TestDashboardViewBuildPortalMode(t *testing.T) {
	store := &fakeViewStore{state: State{Tiles: sampleTiles()}}
	chart := NewContentChart(WithChartCache(NewAssetCache(0)))
	vm := NewDashboardView(store, ViewConfig{PortalMode: true, PortalTitle: "Dev Portal", Chart: chart}).Build(context.Background())

	assert.Equal(t, "Dev Portal", vm.Title)
	assert.True(t, vm.ShowFeedback)
	assert.False(t, vm.ShowOnboarding)
	assert.NotEmpty(t, vm.ContentChart)
}

func TestDashboardViewBuildAppliesThemeOfFirstVisibleTile(t *testing.T) {
	tiles := sampleTiles()
	tiles[0].CustomStyleConfig = &ThemeConfig{HeaderColor: "navy"}
	tiles[1].CustomStyleConfig = &ThemeConfig{HeaderColor: "teal"}
	store := &fakeViewStore{state: State{Tiles: tiles, SearchCriteria: "zosmf"}}

	vm := NewDashboardView(store, ViewConfig{}).Build(context.Background())
	assert.Contains(t, vm.Styles["header"], "background-color: teal;")
	assert.Empty(t, vm.ThemeError)
}

func TestDashboardViewBuildSurfacesThemeError(t *testing.T) {
	tiles := sampleTiles()
	tiles[0].CustomStyleConfig = &ThemeConfig{BackgroundColor: "beige", Logo: "custom"}
	store := &fakeViewStore{state: State{Tiles: tiles}}
	telemetry := &recordedTelemetry{}
	theme := NewThemeApplier(&stubLogoSource{err: &LogoFetchError{Status: 404}})

	vm := NewDashboardView(store, ViewConfig{Theme: theme, Telemetry: telemetry}).Build(context.Background())

	assert.Equal(t, "error fetching image path: network response was not ok (status 404)", vm.ThemeError)
	assert.Contains(t, vm.Styles["content"], "background-color: beige;")
	assert.True(t, vm.ShowTiles)
	assert.Contains(t, telemetry.events, "catalog.theme.error")
}

func TestDashboardViewIntentsDispatchAndRecordActivity(t *testing.T) {
	store := &fakeViewStore{}
	recorder := &recordedEvents{}
	view := NewDashboardView(store, ViewConfig{Activity: recorder})
	ctx := ContextWithActivity(context.Background(), ActivityContext{ActorID: "a-1", UserID: "u-1", TenantID: "t-1"})

	view.HandleSearch(ctx, "gateway")
	view.RefreshStaticAPIs(ctx)
	view.ToggleWizard(ctx)
	view.HandleClose(ctx)
	view.ClearError(ctx)

	assert.Equal(t, []Action{
		ActionFilterText,
		ActionRefreshStaticAPIs,
		ActionWizardToggle,
		ActionCloseAlert,
		ActionClearError,
	}, store.actions())
	assert.Equal(t, "gateway", store.commands[0].Text)

	require.Len(t, recorder.events, 5)
	verbs := []string{}
	for _, evt := range recorder.events {
		verbs = append(verbs, evt.Verb)
		assert.Equal(t, "catalog.dashboard", evt.ObjectType)
		assert.Equal(t, "a-1", evt.ActorID)
		assert.Equal(t, "u-1", evt.UserID)
		assert.Equal(t, "t-1", evt.TenantID)
	}
	assert.Equal(t, []string{"search", "refresh_static_apis", "toggle_wizard", "close_alert", "clear_error"}, verbs)
	assert.Equal(t, "gateway", recorder.events[0].Metadata["text"])
}

func TestDashboardViewActivityFailureDoesNotBlockDispatch(t *testing.T) {
	store := &fakeViewStore{}
	view := NewDashboardView(store, ViewConfig{Activity: &recordedEvents{err: errors.New("sink down")}})
	view.ToggleWizard(context.Background())
	assert.Equal(t, []Action{ActionWizardToggle}, store.actions())
}

func TestDashboardViewSelectService(t *testing.T) {
	store := &fakeViewStore{}
	recorder := &recordedEvents{}
	view := NewDashboardView(store, ViewConfig{Activity: recorder})

	view.SelectService(context.Background(), "apicatalog")
	require.Len(t, store.commands, 1)
	assert.Equal(t, Command{Action: ActionSelectService, Text: "apicatalog"}, store.commands[0])
	require.Len(t, recorder.events, 1)
	assert.Equal(t, "select_service", recorder.events[0].Verb)

	store.state = State{SelectedService: "apicatalog"}
	assert.Equal(t, "apicatalog", view.Build(context.Background()).SelectedService)
}

func TestDashboardViewMobileMenu(t *testing.T) {
	store := &fakeViewStore{}
	telemetry := &recordedTelemetry{}
	view := NewDashboardView(store, ViewConfig{Telemetry: telemetry, Contents: &ContentCatalog{}})
	ctx := context.Background()

	view.ToggleMobileMenu(ctx)
	vm := view.Build(ctx)
	assert.True(t, vm.MobileMenuOpen)
	assert.Contains(t, vm.Classes[StyleKey(SelectorBody)], "mobile-menu-open")

	view.ToggleMobileMenu(ctx)
	assert.False(t, view.Build(ctx).MobileMenuOpen)

	view.ToggleMobileMenu(ctx)
	view.CloseMobileMenu(ctx)
	view.CloseMobileMenu(ctx)
	assert.False(t, view.Build(ctx).MobileMenuOpen)

	assert.Contains(t, telemetry.events, "catalog.view.mobile_menu")
	assert.Empty(t, store.actions())
}

func TestDashboardViewScrollOnlyInPortal(t *testing.T) {
	metrics := ScrollMetrics{ScrollTop: 120, FilterHeight: 80, HeaderHeight: 40, HeaderMarginTop: 4, HeaderMarginBottom: 6}

	standalone := NewDashboardView(&fakeViewStore{}, ViewConfig{})
	assert.Equal(t, ScrollLayout{}, standalone.HandleScroll(context.Background(), metrics))
	assert.Empty(t, standalone.Document().Classes())

	store := &fakeViewStore{}
	portal := NewDashboardView(store, ViewConfig{PortalMode: true})
	layout := portal.HandleScroll(context.Background(), metrics)
	assert.Equal(t, ScrollLayout{FixedHeader: true, PaddingTop: 50}, layout)
	assert.Equal(t, "fixed-header", portal.Document().Classes()["grid_container"])
	assert.Equal(t, "50px", styleOf(t, portal.Document(), SelectorGridContainer, "padding-top"))
	assert.Empty(t, store.actions())

	portal.HandleScroll(context.Background(), ScrollMetrics{ScrollTop: 10, FilterHeight: 80, HeaderHeight: 40})
	assert.Empty(t, portal.Document().Classes()["grid_container"])
	assert.Equal(t, "0", styleOf(t, portal.Document(), SelectorGridContainer, "padding-top"))
}
