package goadmin_test

import (
	"context"
	"testing"

	"github.com/goliatone/go-catalog/pkg/activity"
	catalogpkg "github.com/goliatone/go-catalog/pkg/catalog"
	"github.com/goliatone/go-catalog/pkg/goadmin"
)

type stubMenuBuilder struct {
	calls int
	item  goadmin.MenuItem
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, _ string, item goadmin.MenuItem) error {
	s.calls++
	s.item = item
	return nil
}

func TestAdminBootstrapSeedsMenu(t *testing.T) {
	builder := &stubMenuBuilder{}
	controller := catalogpkg.NewController(catalogpkg.ControllerOptions{})
	admin, err := goadmin.New(goadmin.Config{
		EnableCatalog: true,
		Controller:    controller,
		MenuBuilder:   builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if builder.calls != 1 {
		t.Fatalf("expected 1 call, got %d", builder.calls)
	}
	if builder.item.Label != "API Catalog" || builder.item.Route != "apicatalog.dashboard" {
		t.Fatalf("unexpected default menu item %+v", builder.item)
	}
	if admin.Catalog() == nil {
		t.Fatalf("expected catalog controller")
	}
}

func TestAdminRequiresControllerWhenEnabled(t *testing.T) {
	if _, err := goadmin.New(goadmin.Config{EnableCatalog: true}); err == nil {
		t.Fatalf("expected error without controller")
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableCatalog: false,
		MenuBuilder:   builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if builder.calls != 0 {
		t.Fatalf("expected 0 calls, got %d", builder.calls)
	}
	if admin.Catalog() != nil {
		t.Fatalf("expected nil catalog when disabled")
	}
}

func TestAdminActivityEnabledByHooks(t *testing.T) {
	var got []activity.Event
	hook := activity.HookFunc(func(_ context.Context, evt activity.Event) error {
		got = append(got, evt)
		return nil
	})
	admin, err := goadmin.New(goadmin.Config{ActivityHooks: activity.Hooks{hook}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if !admin.Activity().Enabled() {
		t.Fatalf("expected activity emitter to be enabled")
	}
	err = admin.Activity().Emit(context.Background(), activity.Event{Verb: "search", ObjectType: "catalog.dashboard"})
	if err != nil {
		t.Fatalf("Emit returned error: %v", err)
	}
	if len(got) != 1 || got[0].Channel != "catalog" {
		t.Fatalf("expected one event on the catalog channel, got %+v", got)
	}
}
