package catalog

import (
	"context"
	"time"
)

// TileSource loads the registered service tiles from the API catalog backend.
type TileSource interface {
	FetchTiles(ctx context.Context) ([]Tile, error)
}

// StaticAPIRefresher asks the backend to reload statically defined APIs.
type StaticAPIRefresher interface {
	RefreshStaticAPIs(ctx context.Context) error
}

// Dispatcher accepts commands for the external state store. Dispatch is
// fire-and-forget: outcomes are reported through the store's own hooks.
type Dispatcher interface {
	Dispatch(ctx context.Context, cmd Command)
}

// StateReader exposes a consistent copy of the store state.
type StateReader interface {
	Snapshot() State
}

// ViewStore is what the dashboard view needs from the store.
type ViewStore interface {
	Dispatcher
	StateReader
}

// StateHook notifies transports (WebSocket, notifications) about store changes.
type StateHook interface {
	StateChanged(ctx context.Context, event StoreEvent) error
}

// Tile groups one or more services under a single catalog entry.
type Tile struct {
	ID                string       `json:"id"`
	Title             string       `json:"title"`
	Status            string       `json:"status,omitempty"`
	Description       string       `json:"description,omitempty"`
	Version           string       `json:"version,omitempty"`
	Services          []Service    `json:"services"`
	CustomStyleConfig *ThemeConfig `json:"customStyleConfig,omitempty"`
}

// HasService reports whether the tile owns the given service id.
func (t Tile) HasService(serviceID string) bool {
	for _, svc := range t.Services {
		if svc.ServiceID == serviceID {
			return true
		}
	}
	return false
}

// Service describes a registered service and its APIs.
type Service struct {
	ServiceID   string         `json:"serviceId"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	Status      string         `json:"status,omitempty"`
	HomePageURL string         `json:"homePageUrl,omitempty"`
	APIs        map[string]API `json:"apis,omitempty"`
}

// API is a single versioned API exposed by a service.
type API struct {
	APIID            string `json:"apiId,omitempty"`
	Version          string `json:"version,omitempty"`
	GatewayURL       string `json:"gatewayUrl,omitempty"`
	SwaggerURL       string `json:"swaggerUrl,omitempty"`
	DocumentationURL string `json:"documentationUrl,omitempty"`
}

// Action names a store command.
type Action string

const (
	ActionFetchTilesStart   Action = "fetch_tiles_start"
	ActionFetchTilesStop    Action = "fetch_tiles_stop"
	ActionClearService      Action = "clear_service"
	ActionClear             Action = "clear"
	ActionClearError        Action = "clear_error"
	ActionFilterText        Action = "filter_text"
	ActionRefreshStaticAPIs Action = "refresh_static_apis"
	ActionWizardToggle      Action = "wizard_toggle"
	ActionCloseAlert        Action = "close_alert"
	ActionPasswordUpdated   Action = "password_updated"
	ActionSelectService     Action = "select_service"

	// Emitted by the store itself when a fetch settles.
	ActionFetchTilesSuccess Action = "fetch_tiles_success"
	ActionFetchTilesFailed  Action = "fetch_tiles_failed"
)

// Command is a single store action plus its optional payload.
type Command struct {
	Action Action `json:"action"`
	Text   string `json:"text,omitempty"`
}

// State is the dashboard state owned by the store.
type State struct {
	Tiles                  []Tile
	Loading                bool
	FetchError             error
	SearchCriteria         string
	SelectedService        string
	WizardVisible          bool
	ShowUpdatePassSuccess  bool
	RefreshStaticAPIsError error
	Polling                bool
	Revision               uint64
}

// StoreEvent describes a state transition (or failure) produced by a command.
type StoreEvent struct {
	ID         string    `json:"id"`
	Action     Action    `json:"action"`
	Revision   uint64    `json:"revision"`
	Error      string    `json:"error,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
