package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// SelectServiceInput names the service opened from a tile.
type SelectServiceInput struct {
	ServiceID string `json:"serviceId"`
	Actor
}

type serviceSelector interface {
	SelectService(ctx context.Context, serviceID string)
}

// SelectServiceCommand records the selected service on the store.
type SelectServiceCommand struct {
	view      serviceSelector
	telemetry Telemetry
}

// NewSelectServiceCommand creates the command.
func NewSelectServiceCommand(view serviceSelector, telemetry Telemetry) *SelectServiceCommand {
	return &SelectServiceCommand{view: view, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SelectServiceInput] = (*SelectServiceCommand)(nil)

// Execute rejects an empty service id.
func (c *SelectServiceCommand) Execute(ctx context.Context, msg SelectServiceInput) error {
	if c.view == nil {
		return errors.New("select service command requires view")
	}
	if msg.ServiceID == "" {
		return errors.New("service id is required")
	}
	c.view.SelectService(msg.Actor.bind(ctx), msg.ServiceID)
	c.telemetry.Record(ctx, "catalog.select_service", map[string]any{"service": msg.ServiceID})
	return nil
}
