package commands

import (
	"context"

	catalog "github.com/goliatone/go-catalog/components/catalog"
)

// Actor identifies who issued an intent. It feeds the activity trail.
type Actor struct {
	ActorID  string `json:"actor_id"`
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
}

func (a Actor) bind(ctx context.Context) context.Context {
	if a == (Actor{}) {
		return ctx
	}
	return catalog.ContextWithActivity(ctx, catalog.ActivityContext{
		ActorID:  a.ActorID,
		UserID:   a.UserID,
		TenantID: a.TenantID,
	})
}
