package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type capturePublisher struct {
	channels []string
	events   []StoreEvent
	err      error
}

func (c *capturePublisher) PublishCatalogEvent(_ context.Context, channel string, event StoreEvent) error {
	c.channels = append(c.channels, channel)
	c.events = append(c.events, event)
	return c.err
}

func TestNotificationsHookForwardsFailuresByDefault(t *testing.T) {
	client := &capturePublisher{}
	hook := &NotificationsHook{Client: client}

	assert.NoError(t, hook.StateChanged(context.Background(), StoreEvent{Action: ActionFetchTilesSuccess}))
	assert.NoError(t, hook.StateChanged(context.Background(), StoreEvent{Action: ActionFetchTilesFailed, Error: "down"}))

	assert.Equal(t, []string{"catalog"}, client.channels)
	assert.Equal(t, ActionFetchTilesFailed, client.events[0].Action)
}

func TestNotificationsHookFiltersActions(t *testing.T) {
	client := &capturePublisher{err: errors.New("publish failed")}
	hook := &NotificationsHook{Client: client, Channel: "ops", Actions: []Action{ActionRefreshStaticAPIs}}

	assert.NoError(t, hook.StateChanged(context.Background(), StoreEvent{Action: ActionFetchTilesFailed, Error: "x"}))
	err := hook.StateChanged(context.Background(), StoreEvent{Action: ActionRefreshStaticAPIs})
	assert.EqualError(t, err, "publish failed")
	assert.Equal(t, []string{"ops"}, client.channels)
}

func TestNotificationsHookWithoutClient(t *testing.T) {
	var hook *NotificationsHook
	assert.NoError(t, hook.StateChanged(context.Background(), StoreEvent{Error: "x"}))
	assert.NoError(t, (&NotificationsHook{}).StateChanged(context.Background(), StoreEvent{Error: "x"}))
}
