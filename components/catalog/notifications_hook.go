package catalog

import "context"

// NotificationsClient is the minimal publisher needed from go-notifications (or similar).
type NotificationsClient interface {
	PublishCatalogEvent(ctx context.Context, channel string, event StoreEvent) error
}

// NotificationsHook forwards store events to an external notifications client.
type NotificationsHook struct {
	Client  NotificationsClient
	Channel string
	// Actions limits forwarding to these actions. Empty forwards failures only.
	Actions []Action
}

// StateChanged publishes matching events to the configured client.
func (h *NotificationsHook) StateChanged(ctx context.Context, event StoreEvent) error {
	if h == nil || h.Client == nil || !h.matches(event) {
		return nil
	}
	channel := h.Channel
	if channel == "" {
		channel = "catalog"
	}
	return h.Client.PublishCatalogEvent(ctx, channel, event)
}

func (h *NotificationsHook) matches(event StoreEvent) bool {
	if len(h.Actions) == 0 {
		return event.Error != ""
	}
	for _, action := range h.Actions {
		if action == event.Action {
			return true
		}
	}
	return false
}
