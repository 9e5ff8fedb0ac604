package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	catalog "github.com/goliatone/go-catalog/components/catalog"
)

// DispatchCommand sends a raw store command, e.g. PasswordUpdated from the
// password change flow.
type DispatchCommand struct {
	store     catalog.Dispatcher
	telemetry Telemetry
}

// NewDispatchCommand creates the command.
func NewDispatchCommand(store catalog.Dispatcher, telemetry Telemetry) *DispatchCommand {
	return &DispatchCommand{store: store, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[catalog.Command] = (*DispatchCommand)(nil)

// Execute dispatches msg to the store.
func (c *DispatchCommand) Execute(ctx context.Context, msg catalog.Command) error {
	if c.store == nil {
		return errors.New("dispatch command requires store")
	}
	if msg.Action == "" {
		return errors.New("dispatch command requires action")
	}
	c.store.Dispatch(ctx, msg)
	c.telemetry.Record(ctx, "catalog.dispatch", map[string]any{"action": string(msg.Action)})
	return nil
}
