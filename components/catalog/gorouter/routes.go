package gorouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	gocommand "github.com/goliatone/go-command"
	router "github.com/goliatone/go-router"

	catalog "github.com/goliatone/go-catalog/components/catalog"
	"github.com/goliatone/go-catalog/components/catalog/commands"
)

// PageController renders the dashboard page and its JSON view.
type PageController interface {
	RenderTemplate(ctx context.Context, w io.Writer) error
	ViewPayload(ctx context.Context) (catalog.ViewModel, error)
}

// ActorResolver extracts the acting user from a router.Context.
type ActorResolver func(router.Context) commands.Actor

// Intents groups the commanders behind the dashboard's POST endpoints.
// Nil commanders leave their route unregistered.
type Intents struct {
	Search     gocommand.Commander[commands.SearchInput]
	Refresh    gocommand.Commander[commands.IntentInput]
	Wizard     gocommand.Commander[commands.IntentInput]
	CloseAlert gocommand.Commander[commands.IntentInput]
	ClearError gocommand.Commander[commands.IntentInput]
	Scroll     gocommand.Commander[commands.ScrollInput]
	MobileMenu gocommand.Commander[commands.IntentInput]
	CloseMenu  gocommand.Commander[commands.IntentInput]
	Select     gocommand.Commander[commands.SelectServiceInput]
}

// Config wires go-router with the catalog controller, intents and hooks.
type Config[T any] struct {
	Router        router.Router[T]
	Controller    PageController
	Intents       Intents
	Broadcast     *catalog.BroadcastHook
	ActorResolver ActorResolver
	BasePath      string
	Routes        RouteConfig
}

// RouteConfig customizes the relative paths used for catalog endpoints.
type RouteConfig struct {
	HTML       string
	View       string
	Search     string
	Refresh    string
	Wizard     string
	CloseAlert string
	ClearError string
	Scroll     string
	MobileMenu string
	CloseMenu  string
	Select     string
	WebSocket  string
}

// Register mounts catalog routes (HTML, JSON, intents, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/apicatalog"
	}
	resolver := cfg.ActorResolver
	if resolver == nil {
		resolver = defaultActorResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.View, router.WrapHandler(func(ctx router.Context) error {
		payload, err := cfg.Controller.ViewPayload(ctx.Context())
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	registerIntents(group, cfg.Intents, resolver, routes, base+routes.HTML)

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}
	return nil
}

// Intent routes answer JSON clients with 202 and send browser form posts
// back to the page with 303.
func registerIntents[T any](r router.Router[T], intents Intents, resolver ActorResolver, routes RouteConfig, page string) {
	accepted := func(ctx router.Context, status string) error {
		if fromForm(ctx) {
			return ctx.Redirect(page, http.StatusSeeOther)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": status})
	}

	if intents.Search != nil {
		r.Post(routes.Search, router.WrapHandler(func(ctx router.Context) error {
			payload, err := decodeSearch(ctx.Body())
			if err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			payload.Actor = resolver(ctx)
			if err := intents.Search.Execute(ctx.Context(), payload); err != nil {
				return respondError(ctx, http.StatusInternalServerError, err)
			}
			return accepted(ctx, "filtered")
		}))
	}

	if intents.Select != nil {
		r.Post(routes.Select, router.WrapHandler(func(ctx router.Context) error {
			payload, err := decodeSelect(ctx.Body())
			if err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			payload.Actor = resolver(ctx)
			if err := intents.Select.Execute(ctx.Context(), payload); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			return accepted(ctx, "selected")
		}))
	}

	intentRoutes := []struct {
		path   string
		cmd    gocommand.Commander[commands.IntentInput]
		status string
	}{
		{routes.Refresh, intents.Refresh, "refreshing"},
		{routes.Wizard, intents.Wizard, "toggled"},
		{routes.CloseAlert, intents.CloseAlert, "closed"},
		{routes.ClearError, intents.ClearError, "cleared"},
		{routes.MobileMenu, intents.MobileMenu, "toggled"},
		{routes.CloseMenu, intents.CloseMenu, "closed"},
	}
	for _, route := range intentRoutes {
		if route.cmd == nil {
			continue
		}
		cmd, status := route.cmd, route.status
		r.Post(route.path, router.WrapHandler(func(ctx router.Context) error {
			if err := cmd.Execute(ctx.Context(), commands.IntentInput{Actor: resolver(ctx)}); err != nil {
				return respondError(ctx, http.StatusInternalServerError, err)
			}
			return accepted(ctx, status)
		}))
	}

	if intents.Scroll != nil {
		r.Post(routes.Scroll, router.WrapHandler(func(ctx router.Context) error {
			var metrics catalog.ScrollMetrics
			if err := decodeBody(ctx.Body(), &metrics); err != nil {
				return respondError(ctx, http.StatusBadRequest, err)
			}
			var layout catalog.ScrollLayout
			if err := intents.Scroll.Execute(ctx.Context(), commands.ScrollInput{Metrics: metrics, Result: &layout}); err != nil {
				return respondError(ctx, http.StatusInternalServerError, err)
			}
			return ctx.JSON(http.StatusOK, layout)
		}))
	}
}

func registerWebSocket[T any](r router.Router[T], hook *catalog.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

func decodeBody(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, v)
}

// decodeSearch accepts a JSON payload or the urlencoded search form.
func decodeSearch(body []byte) (commands.SearchInput, error) {
	var payload commands.SearchInput
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] != '{' {
		values, err := url.ParseQuery(string(trimmed))
		if err != nil {
			return payload, err
		}
		payload.Text = values.Get("text")
		return payload, nil
	}
	return payload, decodeBody(trimmed, &payload)
}

func decodeSelect(body []byte) (commands.SelectServiceInput, error) {
	var payload commands.SelectServiceInput
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] != '{' {
		values, err := url.ParseQuery(string(trimmed))
		if err != nil {
			return payload, err
		}
		payload.ServiceID = values.Get("serviceId")
		return payload, nil
	}
	return payload, decodeBody(trimmed, &payload)
}

// fromForm reports whether the request came from a plain HTML form rather
// than a JSON client.
func fromForm(ctx router.Context) bool {
	contentType := strings.ToLower(ctx.Header("Content-Type"))
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data") {
		return true
	}
	if strings.Contains(contentType, "json") {
		return false
	}
	accept := strings.ToLower(ctx.Header("Accept"))
	return strings.Contains(accept, "text/html")
}

func defaultActorResolver(ctx router.Context) commands.Actor {
	var actor commands.Actor
	if v, ok := ctx.Locals("user_id").(string); ok {
		actor.UserID = v
		actor.ActorID = v
	}
	if v, ok := ctx.Locals("actor_id").(string); ok && v != "" {
		actor.ActorID = v
	}
	if v, ok := ctx.Locals("tenant_id").(string); ok {
		actor.TenantID = v
	}
	return actor
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/dashboard"
	}
	if routes.View == "" {
		routes.View = "/dashboard/_view"
	}
	if routes.Search == "" {
		routes.Search = "/dashboard/search"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/dashboard/static-apis/refresh"
	}
	if routes.Wizard == "" {
		routes.Wizard = "/dashboard/wizard/toggle"
	}
	if routes.CloseAlert == "" {
		routes.CloseAlert = "/dashboard/alert/close"
	}
	if routes.ClearError == "" {
		routes.ClearError = "/dashboard/error/clear"
	}
	if routes.Scroll == "" {
		routes.Scroll = "/dashboard/scroll"
	}
	if routes.MobileMenu == "" {
		routes.MobileMenu = "/dashboard/menu/toggle"
	}
	if routes.CloseMenu == "" {
		routes.CloseMenu = "/dashboard/menu/close"
	}
	if routes.Select == "" {
		routes.Select = "/dashboard/services/select"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboard/ws"
	}
	return routes
}
