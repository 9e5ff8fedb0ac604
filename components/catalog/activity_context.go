package catalog

import (
	"context"

	"github.com/goliatone/go-catalog/pkg/activity"
)

// ActivityRecorder receives audit events for user intents.
type ActivityRecorder interface {
	Emit(ctx context.Context, evt activity.Event) error
}

// ActivityContext captures actor/user/tenant identifiers for activity events.
type ActivityContext struct {
	ActorID  string
	UserID   string
	TenantID string
}

type activityContextKey struct{}

// ContextWithActivity stores activity context on the provided context.
func ContextWithActivity(ctx context.Context, meta ActivityContext) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, activityContextKey{}, meta)
}

func activityContextFrom(ctx context.Context) ActivityContext {
	if ctx == nil {
		return ActivityContext{}
	}
	if meta, ok := ctx.Value(activityContextKey{}).(ActivityContext); ok {
		return meta
	}
	return ActivityContext{}
}

func activityEvent(ctx context.Context, verb string, metadata map[string]any) activity.Event {
	meta := activityContextFrom(ctx)
	return activity.Event{
		Verb:       verb,
		ActorID:    meta.ActorID,
		UserID:     meta.UserID,
		TenantID:   meta.TenantID,
		ObjectType: "catalog.dashboard",
		Metadata:   metadata,
	}
}
