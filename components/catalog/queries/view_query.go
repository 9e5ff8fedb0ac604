package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	catalog "github.com/goliatone/go-catalog/components/catalog"
)

// ViewInput is the (empty) request for the current dashboard view.
type ViewInput struct{}

type viewPayloader interface {
	ViewPayload(ctx context.Context) (catalog.ViewModel, error)
}

// ViewQuery resolves the dashboard view model.
type ViewQuery struct {
	controller viewPayloader
}

// NewViewQuery builds the query.
func NewViewQuery(controller viewPayloader) *ViewQuery {
	return &ViewQuery{controller: controller}
}

var _ gocommand.Querier[ViewInput, catalog.ViewModel] = (*ViewQuery)(nil)

// Query builds the current view model.
func (q *ViewQuery) Query(ctx context.Context, _ ViewInput) (catalog.ViewModel, error) {
	return q.controller.ViewPayload(ctx)
}
