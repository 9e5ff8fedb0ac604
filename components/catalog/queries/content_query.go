package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	catalog "github.com/goliatone/go-catalog/components/catalog"
)

// ContentCountsInput identifies the service whose educational content is counted.
type ContentCountsInput struct {
	Service catalog.Service
}

type contentCounter interface {
	CountAdditionalContents(service catalog.Service) catalog.ServiceContentSummary
}

// ContentCountsQuery counts tutorials, use cases and videos for a service.
type ContentCountsQuery struct {
	contents contentCounter
}

// NewContentCountsQuery builds the query. A nil counter uses the embedded catalog.
func NewContentCountsQuery(contents contentCounter) *ContentCountsQuery {
	return &ContentCountsQuery{contents: contents}
}

var _ gocommand.Querier[ContentCountsInput, catalog.ServiceContentSummary] = (*ContentCountsQuery)(nil)

// Query returns the content summary for the service.
func (q *ContentCountsQuery) Query(_ context.Context, input ContentCountsInput) (catalog.ServiceContentSummary, error) {
	if input.Service.ServiceID == "" {
		return catalog.ServiceContentSummary{}, errors.New("content counts query requires service id")
	}
	if q.contents == nil {
		return catalog.CountAdditionalContents(input.Service), nil
	}
	return q.contents.CountAdditionalContents(input.Service), nil
}
