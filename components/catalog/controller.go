package catalog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

const defaultTemplate = "dashboard"

// ViewBuilder produces the dashboard view model.
type ViewBuilder interface {
	Build(ctx context.Context) ViewModel
}

// ControllerOptions configures the Controller.
type ControllerOptions struct {
	View     ViewBuilder
	Renderer Renderer
	Template string
	Logger   *slog.Logger
}

// Controller renders the dashboard for HTTP transports.
type Controller struct {
	view     ViewBuilder
	renderer Renderer
	template string
	logger   *slog.Logger
}

// NewController wires a view builder into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = defaultTemplate
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Controller{
		view:     opts.View,
		renderer: opts.Renderer,
		template: opts.Template,
		logger:   opts.Logger,
	}
}

// ViewPayload returns the current view model.
func (c *Controller) ViewPayload(ctx context.Context) (ViewModel, error) {
	if c.view == nil {
		return ViewModel{}, errMissingView
	}
	return c.view.Build(ctx), nil
}

// RenderTemplate builds the view model and renders the dashboard template into w.
func (c *Controller) RenderTemplate(ctx context.Context, w io.Writer) error {
	if c.renderer == nil {
		return errMissingRenderer
	}
	vm, err := c.ViewPayload(ctx)
	if err != nil {
		return err
	}
	if _, err := c.renderer.Render(c.template, templatePayload(vm), w); err != nil {
		c.logger.Error("catalog: render dashboard failed", "template", c.template, "error", err)
		return fmt.Errorf("catalog: render %s: %w", c.template, err)
	}
	return nil
}

// templatePayload flattens the view model into the snake_case keys the templates use.
func templatePayload(vm ViewModel) map[string]any {
	entries := make([]map[string]any, 0, len(vm.Entries))
	for _, entry := range vm.Entries {
		entries = append(entries, map[string]any{
			"key":     entry.Key,
			"tile":    entry.Tile,
			"service": entry.Service,
			"content": entry.Content,
		})
	}
	return map[string]any{
		"title":                    vm.Title,
		"portal_mode":              vm.PortalMode,
		"show_feedback":            vm.ShowFeedback,
		"show_onboarding":          vm.ShowOnboarding,
		"loading":                  vm.Loading,
		"has_error":                vm.HasError,
		"error_intro":              vm.ErrorIntro,
		"error":                    vm.Error,
		"show_apis":                vm.ShowAPIs,
		"show_tiles":               vm.ShowTiles,
		"entries":                  entries,
		"no_results":               vm.NoResults,
		"no_results_message":       vm.NoResultsMessage,
		"show_footer":              vm.ShowFooter,
		"search_criteria":          vm.SearchCriteria,
		"selected_service":         vm.SelectedService,
		"mobile_menu_open":         vm.MobileMenuOpen,
		"wizard_visible":           vm.WizardVisible,
		"show_update_pass_success": vm.ShowUpdatePassSuccess,
		"alert_message":            vm.AlertMessage,
		"refresh_error":            vm.RefreshError,
		"theme_error":              vm.ThemeError,
		"chart":                    vm.ContentChart,
		"styles":                   vm.Styles,
		"classes":                  vm.Classes,
		"sources":                  vm.Sources,
	}
}
