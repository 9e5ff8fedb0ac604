package catalog

import (
	"context"
	"log/slog"
)

const (
	defaultTitle           = "API Catalog"
	noResultsMessage       = "No services found matching search criteria"
	fetchErrorIntroMessage = "Tile details could not be retrieved, the following error was returned:"
	passwordUpdatedMessage = "Your mainframe password was successfully changed."
)

// ViewConfig carries everything the view used to read from the environment.
type ViewConfig struct {
	PortalMode  bool
	PortalTitle string
	Sorter      ServiceSorter
	Contents    *ContentCatalog
	Theme       *ThemeApplier
	Document    *Document
	Chart       *ContentChart
	Formatter   ErrorFormatter
	Activity    ActivityRecorder
	Telemetry   Telemetry
	Logger      *slog.Logger
}

// DashboardView turns store state into a ViewModel and forwards user intents
// to the store. It holds no business logic of its own.
type DashboardView struct {
	store ViewStore
	cfg   ViewConfig
}

// NewDashboardView wires a view to its store.
func NewDashboardView(store ViewStore, cfg ViewConfig) *DashboardView {
	if cfg.Sorter == nil {
		cfg.Sorter = SortServices
	}
	if cfg.Formatter == nil {
		cfg.Formatter = FormatError
	}
	if cfg.Document == nil {
		cfg.Document = NewDocument()
	}
	if cfg.Theme == nil {
		cfg.Theme = NewThemeApplier(nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Contents == nil {
		if contents, err := DefaultContentCatalog(); err == nil {
			cfg.Contents = contents
		} else {
			cfg.Logger.Warn("catalog: embedded content catalog unavailable", "error", err)
		}
	}
	cfg.Telemetry = normalizeTelemetry(cfg.Telemetry)
	return &DashboardView{store: store, cfg: cfg}
}

// Document exposes the view's presentation model.
func (v *DashboardView) Document() *Document { return v.cfg.Document }

// PortalMode reports the configured layout variant.
func (v *DashboardView) PortalMode() bool { return v.cfg.PortalMode }

// Mount clears the selected service and starts fetching tiles.
func (v *DashboardView) Mount(ctx context.Context) error {
	if v.store == nil {
		return errMissingStore
	}
	if v.cfg.PortalMode {
		if v.cfg.PortalTitle != "" {
			v.cfg.Document.SetTitle(v.cfg.PortalTitle)
		}
		if button, ok := v.cfg.Document.Lookup(SelectorGoBackButtonPortal); ok {
			button.SetStyle("display", "none")
		}
	}
	v.store.Dispatch(ctx, Command{Action: ActionClearService})
	v.store.Dispatch(ctx, Command{Action: ActionFetchTilesStart})
	v.cfg.Telemetry.Record(ctx, "catalog.view.mount", map[string]any{"portal": v.cfg.PortalMode})
	return nil
}

// Unmount clears the state and asks the store to stop fetching.
func (v *DashboardView) Unmount(ctx context.Context) error {
	if v.store == nil {
		return errMissingStore
	}
	v.store.Dispatch(ctx, Command{Action: ActionClear})
	v.store.Dispatch(ctx, Command{Action: ActionFetchTilesStop})
	v.cfg.Telemetry.Record(ctx, "catalog.view.unmount", nil)
	return nil
}

// HandleSearch forwards the search text.
func (v *DashboardView) HandleSearch(ctx context.Context, text string) {
	v.forward(ctx, Command{Action: ActionFilterText, Text: text}, "search", map[string]any{"text": text})
}

// RefreshStaticAPIs forwards a static API refresh request.
func (v *DashboardView) RefreshStaticAPIs(ctx context.Context) {
	v.forward(ctx, Command{Action: ActionRefreshStaticAPIs}, "refresh_static_apis", nil)
}

// ToggleWizard forwards the onboarding wizard visibility toggle.
func (v *DashboardView) ToggleWizard(ctx context.Context) {
	v.forward(ctx, Command{Action: ActionWizardToggle}, "toggle_wizard", nil)
}

// HandleClose dismisses the password-updated alert.
func (v *DashboardView) HandleClose(ctx context.Context) {
	v.forward(ctx, Command{Action: ActionCloseAlert}, "close_alert", nil)
}

// ClearError dismisses the static refresh error dialog.
func (v *DashboardView) ClearError(ctx context.Context) {
	v.forward(ctx, Command{Action: ActionClearError}, "clear_error", nil)
}

// SelectService records the service the user opened from a tile.
func (v *DashboardView) SelectService(ctx context.Context, serviceID string) {
	v.forward(ctx, Command{Action: ActionSelectService, Text: serviceID}, "select_service", map[string]any{"service": serviceID})
}

// ToggleMobileMenu opens the mobile navigation, or closes it when open.
func (v *DashboardView) ToggleMobileMenu(ctx context.Context) {
	OpenMobileMenu(v.cfg.Document)
	v.cfg.Telemetry.Record(ctx, "catalog.view.mobile_menu", map[string]any{"open": v.mobileMenuOpen()})
}

// CloseMobileMenu closes the mobile navigation.
func (v *DashboardView) CloseMobileMenu(ctx context.Context) {
	CloseMobileMenu(v.cfg.Document)
	v.cfg.Telemetry.Record(ctx, "catalog.view.mobile_menu", map[string]any{"open": false})
}

func (v *DashboardView) mobileMenuOpen() bool {
	body, ok := v.cfg.Document.Lookup(SelectorBody)
	return ok && body.HasClass(mobileMenuOpenClass)
}

// HandleScroll pins the grid header in portal mode. It only touches the document.
func (v *DashboardView) HandleScroll(_ context.Context, metrics ScrollMetrics) ScrollLayout {
	if !v.cfg.PortalMode {
		return ScrollLayout{}
	}
	layout := ComputeScrollLayout(metrics)
	applyScrollLayout(v.cfg.Document, layout)
	return layout
}

func (v *DashboardView) forward(ctx context.Context, cmd Command, verb string, meta map[string]any) {
	if v.store == nil {
		v.cfg.Logger.Error("catalog: dropping command without store", "action", cmd.Action)
		return
	}
	v.store.Dispatch(ctx, cmd)
	if v.cfg.Activity == nil {
		return
	}
	if err := v.cfg.Activity.Emit(ctx, activityEvent(ctx, verb, meta)); err != nil {
		v.cfg.Logger.Warn("catalog: activity emit failed", "verb", verb, "error", err)
	}
}

// ViewModel is everything the dashboard template needs.
type ViewModel struct {
	Title                 string            `json:"title"`
	PortalMode            bool              `json:"portalMode"`
	ShowFeedback          bool              `json:"showFeedback"`
	ShowOnboarding        bool              `json:"showOnboarding"`
	Loading               bool              `json:"loading"`
	HasError              bool              `json:"hasError"`
	ErrorIntro            string            `json:"errorIntro,omitempty"`
	Error                 string            `json:"error,omitempty"`
	ShowAPIs              bool              `json:"showApis"`
	ShowTiles             bool              `json:"showTiles"`
	Entries               []GridEntry       `json:"entries"`
	NoResults             bool              `json:"noResults"`
	NoResultsMessage      string            `json:"noResultsMessage,omitempty"`
	ShowFooter            bool              `json:"showFooter"`
	SearchCriteria        string            `json:"searchCriteria"`
	SelectedService       string            `json:"selectedService,omitempty"`
	MobileMenuOpen        bool              `json:"mobileMenuOpen"`
	WizardVisible         bool              `json:"wizardVisible"`
	ShowUpdatePassSuccess bool              `json:"showUpdatePassSuccess"`
	AlertMessage          string            `json:"alertMessage,omitempty"`
	RefreshError          string            `json:"refreshError,omitempty"`
	ThemeError            string            `json:"themeError,omitempty"`
	ContentChart          string            `json:"-"`
	Styles                map[string]string `json:"styles"`
	Classes               map[string]string `json:"classes"`
	Sources               map[string]string `json:"sources"`
}

// Build evaluates the rendering rules against the current store state.
func (v *DashboardView) Build(ctx context.Context) ViewModel {
	var state State
	if v.store != nil {
		state = v.store.Snapshot()
	}

	vm := ViewModel{
		Title:                 v.title(),
		PortalMode:            v.cfg.PortalMode,
		ShowFeedback:          v.cfg.PortalMode,
		ShowOnboarding:        !v.cfg.PortalMode,
		Loading:               state.Loading,
		SearchCriteria:        state.SearchCriteria,
		SelectedService:       state.SelectedService,
		WizardVisible:         state.WizardVisible,
		ShowUpdatePassSuccess: state.ShowUpdatePassSuccess,
	}
	if state.ShowUpdatePassSuccess {
		vm.AlertMessage = passwordUpdatedMessage
	}
	if state.RefreshStaticAPIsError != nil {
		vm.RefreshError = v.cfg.Formatter(state.RefreshStaticAPIsError)
	}

	if state.FetchError != nil {
		if v.store != nil {
			v.store.Dispatch(ctx, Command{Action: ActionFetchTilesStop})
		}
		vm.HasError = true
		vm.ErrorIntro = fetchErrorIntroMessage
		vm.Error = v.cfg.Formatter(state.FetchError)
		v.finish(&vm)
		return vm
	}

	vm.ShowAPIs = true
	visible := FilterTiles(state.Tiles, state.SearchCriteria)
	hasTiles := len(visible) > 0

	if hasTiles {
		vm.ShowTiles = true
		v.applyTheme(ctx, visible[0], &vm)
		vm.Entries = GroupTiles(visible, v.cfg.Sorter, v.cfg.Contents)
		vm.ShowFooter = true
		if v.cfg.PortalMode && v.cfg.Chart != nil {
			chart, err := v.cfg.Chart.Render(vm.Entries)
			if err != nil {
				v.cfg.Logger.Warn("catalog: content chart render failed", "error", err)
			}
			vm.ContentChart = chart
		}
	} else if state.SearchCriteria != "" {
		vm.NoResults = true
		vm.NoResultsMessage = noResultsMessage
	}

	v.finish(&vm)
	return vm
}

func (v *DashboardView) applyTheme(ctx context.Context, tile Tile, vm *ViewModel) {
	if tile.CustomStyleConfig == nil {
		return
	}
	err := v.cfg.Theme.Apply(ctx, v.cfg.Document, *tile.CustomStyleConfig)
	if err == nil {
		return
	}
	vm.ThemeError = err.Error()
	v.cfg.Logger.Error("catalog: custom style could not be fully applied", "tile", tile.ID, "error", err)
	v.cfg.Telemetry.Record(ctx, "catalog.theme.error", map[string]any{
		"tile":  tile.ID,
		"error": err.Error(),
	})
}

func (v *DashboardView) finish(vm *ViewModel) {
	vm.Styles = v.cfg.Document.Styles()
	vm.Classes = v.cfg.Document.Classes()
	vm.Sources = v.cfg.Document.Attrs("src")
	vm.MobileMenuOpen = v.mobileMenuOpen()
	if title := v.cfg.Document.Title(); title != "" {
		vm.Title = title
	}
}

func (v *DashboardView) title() string {
	if v.cfg.PortalMode && v.cfg.PortalTitle != "" {
		return v.cfg.PortalTitle
	}
	return defaultTitle
}
