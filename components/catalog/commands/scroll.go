package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	catalog "github.com/goliatone/go-catalog/components/catalog"
)

// ScrollInput carries the page measurements taken on grid scroll.
type ScrollInput struct {
	Metrics catalog.ScrollMetrics `json:"metrics"`
	// Result receives the computed layout when set.
	Result *catalog.ScrollLayout `json:"-"`
}

type scrollHandler interface {
	HandleScroll(ctx context.Context, metrics catalog.ScrollMetrics) catalog.ScrollLayout
}

// ScrollCommand pins the grid header in portal mode.
type ScrollCommand struct {
	view scrollHandler
}

// NewScrollCommand creates the command.
func NewScrollCommand(view scrollHandler) *ScrollCommand {
	return &ScrollCommand{view: view}
}

var _ gocommand.Commander[ScrollInput] = (*ScrollCommand)(nil)

// Execute applies the scroll layout.
func (c *ScrollCommand) Execute(ctx context.Context, msg ScrollInput) error {
	if c.view == nil {
		return errors.New("scroll command requires view")
	}
	layout := c.view.HandleScroll(ctx, msg.Metrics)
	if msg.Result != nil {
		*msg.Result = layout
	}
	return nil
}
