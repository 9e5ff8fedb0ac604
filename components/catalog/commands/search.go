package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// SearchInput carries the search bar text.
type SearchInput struct {
	Text string `json:"text"`
	Actor
}

type searchHandler interface {
	HandleSearch(ctx context.Context, text string)
}

// SearchCommand forwards search text to the dashboard view.
type SearchCommand struct {
	view      searchHandler
	telemetry Telemetry
}

// NewSearchCommand creates the command.
func NewSearchCommand(view searchHandler, telemetry Telemetry) *SearchCommand {
	return &SearchCommand{view: view, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SearchInput] = (*SearchCommand)(nil)

// Execute forwards the text unchanged; filtering belongs to the store.
func (c *SearchCommand) Execute(ctx context.Context, msg SearchInput) error {
	if c.view == nil {
		return errors.New("search command requires view")
	}
	c.view.HandleSearch(msg.Actor.bind(ctx), msg.Text)
	c.telemetry.Record(ctx, "catalog.search", map[string]any{"text": msg.Text})
	return nil
}
