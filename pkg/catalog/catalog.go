package catalog

import (
	core "github.com/goliatone/go-catalog/components/catalog"
)

// Store exposes the underlying components/catalog.Store type.
type Store = core.Store

// StoreOptions re-export for convenience.
type StoreOptions = core.StoreOptions

// DashboardView exposes the dashboard view.
type DashboardView = core.DashboardView

// ViewConfig re-export for convenience.
type ViewConfig = core.ViewConfig

// Controller exposes the HTTP rendering controller.
type Controller = core.Controller

// ControllerOptions re-export for convenience.
type ControllerOptions = core.ControllerOptions

// NewStore proxies to the internal constructor.
func NewStore(opts StoreOptions) *Store {
	return core.NewStore(opts)
}

// NewDashboardView proxies to the internal constructor.
func NewDashboardView(store core.ViewStore, cfg ViewConfig) *DashboardView {
	return core.NewDashboardView(store, cfg)
}

// NewController proxies to the internal constructor.
func NewController(opts ControllerOptions) *Controller {
	return core.NewController(opts)
}

// CountAdditionalContents counts a service's educational content against the embedded catalog.
func CountAdditionalContents(service core.Service) core.ServiceContentSummary {
	return core.CountAdditionalContents(service)
}
