package goadmin

import (
	"context"
	"errors"

	activitypkg "github.com/goliatone/go-catalog/pkg/activity"
	catalogpkg "github.com/goliatone/go-catalog/pkg/catalog"
)

// MenuBuilder ensures catalog entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures catalog link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the catalog controller and feature flags into an admin shell.
type Config struct {
	EnableCatalog   bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Controller      *catalogpkg.Controller
	DefaultMenuItem MenuItem
	ActivityHooks   activitypkg.Hooks
	ActivityConfig  activitypkg.Config
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg      Config
	activity *activitypkg.Emitter
}

// New creates an Admin helper that can seed catalog menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableCatalog && cfg.Controller == nil {
		return nil, errors.New("goadmin: catalog controller is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.DefaultMenuItem.Label == "" {
		cfg.DefaultMenuItem.Label = "API Catalog"
	}
	if cfg.DefaultMenuItem.Route == "" {
		cfg.DefaultMenuItem.Route = "apicatalog.dashboard"
	}
	if cfg.DefaultMenuItem.Icon == "" {
		cfg.DefaultMenuItem.Icon = "grid"
	}
	if len(cfg.ActivityHooks) > 0 && !cfg.ActivityConfig.Enabled {
		cfg.ActivityConfig.Enabled = true
	}
	return &Admin{
		cfg:      cfg,
		activity: activitypkg.NewEmitter(cfg.ActivityHooks, cfg.ActivityConfig),
	}, nil
}

// Catalog exposes the configured controller when enabled.
func (a *Admin) Catalog() *catalogpkg.Controller {
	if !a.cfg.EnableCatalog {
		return nil
	}
	return a.cfg.Controller
}

// Activity returns the emitter built from the configured hooks, suitable as
// the view's activity recorder.
func (a *Admin) Activity() *activitypkg.Emitter {
	return a.activity
}

// Bootstrap seeds menu entries when catalog support is enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableCatalog || a.cfg.MenuBuilder == nil {
		return nil
	}
	return a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, a.cfg.DefaultMenuItem)
}
