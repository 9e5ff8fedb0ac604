package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	gocommand "github.com/goliatone/go-command"

	catalog "github.com/goliatone/go-catalog/components/catalog"
	"github.com/goliatone/go-catalog/components/catalog/commands"
	"github.com/goliatone/go-catalog/components/catalog/queries"
)

// PageRenderer renders the dashboard HTML.
type PageRenderer interface {
	RenderTemplate(ctx context.Context, w io.Writer) error
}

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	Page       PageRenderer
	View       gocommand.Querier[queries.ViewInput, catalog.ViewModel]
	Search     gocommand.Commander[commands.SearchInput]
	Refresh    gocommand.Commander[commands.IntentInput]
	Wizard     gocommand.Commander[commands.IntentInput]
	CloseAlert gocommand.Commander[commands.IntentInput]
	ClearError gocommand.Commander[commands.IntentInput]
	Scroll     gocommand.Commander[commands.ScrollInput]
	Lifecycle  gocommand.Commander[commands.LifecycleInput]
	Select     gocommand.Commander[commands.SelectServiceInput]
	MobileMenu gocommand.Commander[commands.IntentInput]
	CloseMenu  gocommand.Commander[commands.IntentInput]
	Contents   gocommand.Querier[queries.ContentCountsInput, catalog.ServiceContentSummary]
	Events     *catalog.BroadcastHook
}

// Mount registers every configured handler on mux under base. Nil
// collaborators leave their endpoint unregistered.
func (h *Handlers) Mount(mux *http.ServeMux, base string) {
	base = strings.TrimSuffix(base, "/")
	handle := func(pattern string, ok bool, fn http.HandlerFunc) {
		if ok {
			method, path, _ := strings.Cut(pattern, " ")
			mux.HandleFunc(method+" "+base+path, fn)
		}
	}
	handle("GET /dashboard", h.Page != nil, h.HandleDashboard)
	handle("GET /dashboard/_view", h.View != nil, h.HandleView)
	handle("POST /dashboard/search", h.Search != nil, h.HandleSearch)
	handle("POST /dashboard/static-apis/refresh", h.Refresh != nil, h.HandleRefreshStaticAPIs)
	handle("POST /dashboard/wizard/toggle", h.Wizard != nil, h.HandleToggleWizard)
	handle("POST /dashboard/alert/close", h.CloseAlert != nil, h.HandleCloseAlert)
	handle("POST /dashboard/error/clear", h.ClearError != nil, h.HandleClearError)
	handle("POST /dashboard/scroll", h.Scroll != nil, h.HandleScroll)
	handle("POST /dashboard/lifecycle", h.Lifecycle != nil, h.HandleLifecycle)
	handle("POST /dashboard/services/select", h.Select != nil, h.HandleSelectService)
	handle("POST /dashboard/menu/toggle", h.MobileMenu != nil, h.HandleToggleMobileMenu)
	handle("POST /dashboard/menu/close", h.CloseMenu != nil, h.HandleCloseMobileMenu)
	handle("POST /dashboard/contents", h.Contents != nil, h.HandleContentCounts)
	if h.Events != nil {
		handle("GET /dashboard/ws", true, h.Events.ServeWebSocket)
		handle("GET /dashboard/events", true, h.Events.ServeSSE)
	}
}

func (h *Handlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Page.RenderTemplate(r.Context(), &buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (h *Handlers) HandleView(w http.ResponseWriter, r *http.Request) {
	vm, err := h.View.Query(r.Context(), queries.ViewInput{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, vm)
}

func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var payload commands.SearchInput
	if err := decode(r, &payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Search.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) HandleRefreshStaticAPIs(w http.ResponseWriter, r *http.Request) {
	h.intent(w, r, h.Refresh)
}

func (h *Handlers) HandleToggleWizard(w http.ResponseWriter, r *http.Request) {
	h.intent(w, r, h.Wizard)
}

func (h *Handlers) HandleCloseAlert(w http.ResponseWriter, r *http.Request) {
	h.intent(w, r, h.CloseAlert)
}

func (h *Handlers) HandleClearError(w http.ResponseWriter, r *http.Request) {
	h.intent(w, r, h.ClearError)
}

func (h *Handlers) HandleScroll(w http.ResponseWriter, r *http.Request) {
	var metrics catalog.ScrollMetrics
	if err := decode(r, &metrics); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var layout catalog.ScrollLayout
	if err := h.Scroll.Execute(r.Context(), commands.ScrollInput{Metrics: metrics, Result: &layout}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, layout)
}

func (h *Handlers) HandleLifecycle(w http.ResponseWriter, r *http.Request) {
	var payload commands.LifecycleInput
	if err := decode(r, &payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Lifecycle.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) HandleSelectService(w http.ResponseWriter, r *http.Request) {
	var payload commands.SelectServiceInput
	if err := decode(r, &payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Select.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handlers) HandleToggleMobileMenu(w http.ResponseWriter, r *http.Request) {
	h.intent(w, r, h.MobileMenu)
}

func (h *Handlers) HandleCloseMobileMenu(w http.ResponseWriter, r *http.Request) {
	h.intent(w, r, h.CloseMenu)
}

// HandleContentCounts counts the educational content for the posted service.
func (h *Handlers) HandleContentCounts(w http.ResponseWriter, r *http.Request) {
	var service catalog.Service
	if err := decode(r, &service); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	summary, err := h.Contents.Query(r.Context(), queries.ContentCountsInput{Service: service})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handlers) intent(w http.ResponseWriter, r *http.Request, cmd gocommand.Commander[commands.IntentInput]) {
	var payload commands.IntentInput
	if err := decode(r, &payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := cmd.Execute(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// decode tolerates an empty body; intents without an actor send none.
func decode(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if err == io.EOF {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
