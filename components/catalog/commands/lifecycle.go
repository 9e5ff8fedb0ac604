package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// LifecycleInput mounts or unmounts the dashboard view.
type LifecycleInput struct {
	Mounted bool `json:"mounted"`
}

type lifecycleView interface {
	Mount(ctx context.Context) error
	Unmount(ctx context.Context) error
}

// LifecycleCommand starts or stops tile fetching by mounting the view.
type LifecycleCommand struct {
	view      lifecycleView
	telemetry Telemetry
}

// NewLifecycleCommand creates the command.
func NewLifecycleCommand(view lifecycleView, telemetry Telemetry) *LifecycleCommand {
	return &LifecycleCommand{view: view, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[LifecycleInput] = (*LifecycleCommand)(nil)

// Execute mounts or unmounts the view.
func (c *LifecycleCommand) Execute(ctx context.Context, msg LifecycleInput) error {
	if c.view == nil {
		return errors.New("lifecycle command requires view")
	}
	var err error
	if msg.Mounted {
		err = c.view.Mount(ctx)
	} else {
		err = c.view.Unmount(ctx)
	}
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "catalog.lifecycle", map[string]any{"mounted": msg.Mounted})
	return nil
}
