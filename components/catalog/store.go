package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultPollInterval = 30 * time.Second

// StoreOptions configures the Store. Collaborators are interfaces so
// applications can plug in their own backend client.
type StoreOptions struct {
	Source    TileSource
	Refresher StaticAPIRefresher
	Hooks     []StateHook
	Telemetry Telemetry
	Logger    *slog.Logger
	// PollInterval between tile fetches while polling. Negative fetches once.
	PollInterval time.Duration
}

// Store owns the dashboard state and executes commands dispatched by the view.
type Store struct {
	opts StoreOptions

	mu      sync.RWMutex
	state   State
	pollGen uint64
	stop    chan struct{}
}

// NewStore builds a Store with safe defaults.
func NewStore(opts StoreOptions) *Store {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.PollInterval == 0 {
		opts.PollInterval = defaultPollInterval
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Store{opts: opts}
}

// AddHook registers an additional state hook.
func (s *Store) AddHook(hook StateHook) {
	if hook == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.Hooks = append(s.opts.Hooks, hook)
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := s.state
	snapshot.Tiles = append([]Tile(nil), s.state.Tiles...)
	return snapshot
}

// Dispatch executes a command. Failures are not returned; they are logged
// and published to the hooks as StoreEvents.
func (s *Store) Dispatch(ctx context.Context, cmd Command) {
	err := s.apply(ctx, cmd)
	s.notify(ctx, cmd.Action, err)
}

func (s *Store) apply(ctx context.Context, cmd Command) error {
	switch cmd.Action {
	case ActionFetchTilesStart:
		return s.startPolling(ctx)
	case ActionFetchTilesStop:
		s.stopPolling()
		return nil
	case ActionClearService:
		s.update(func(st *State) { st.SelectedService = "" })
	case ActionSelectService:
		s.update(func(st *State) { st.SelectedService = cmd.Text })
	case ActionClear:
		s.update(func(st *State) {
			st.Tiles = nil
			st.FetchError = nil
			st.Loading = false
		})
	case ActionClearError:
		s.update(func(st *State) { st.RefreshStaticAPIsError = nil })
	case ActionFilterText:
		s.update(func(st *State) { st.SearchCriteria = cmd.Text })
	case ActionRefreshStaticAPIs:
		return s.refreshStaticAPIs(ctx)
	case ActionWizardToggle:
		s.update(func(st *State) { st.WizardVisible = !st.WizardVisible })
	case ActionCloseAlert:
		s.update(func(st *State) { st.ShowUpdatePassSuccess = false })
	case ActionPasswordUpdated:
		s.update(func(st *State) { st.ShowUpdatePassSuccess = true })
	default:
		return fmt.Errorf("catalog: unknown store action %q", cmd.Action)
	}
	return nil
}

func (s *Store) update(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	s.state.Revision++
}

func (s *Store) startPolling(ctx context.Context) error {
	return s.beginPolling(ctx, true)
}

// beginPolling starts the loop unless it is already running. With fetchNow
// unset the first fetch waits for the next tick.
func (s *Store) beginPolling(ctx context.Context, fetchNow bool) error {
	if s.opts.Source == nil {
		return errMissingTileSource
	}
	s.mu.Lock()
	if s.state.Polling {
		s.mu.Unlock()
		return nil
	}
	s.pollGen++
	gen := s.pollGen
	stop := make(chan struct{})
	s.stop = stop
	s.state.Polling = true
	s.state.Loading = fetchNow
	s.state.Revision++
	s.mu.Unlock()

	// The loop outlives the request that started it; only FetchTilesStop ends it.
	base := context.WithoutCancel(ctx)
	go s.poll(base, gen, stop, fetchNow)
	return nil
}

func (s *Store) poll(ctx context.Context, gen uint64, stop <-chan struct{}, fetchNow bool) {
	if fetchNow {
		s.fetchOnce(ctx, gen)
	}
	if s.opts.PollInterval < 0 {
		return
	}
	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.fetchOnce(ctx, gen)
		}
	}
}

// stopPolling ends the loop. An in-flight request is left to finish and its
// result is discarded.
func (s *Store) stopPolling() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.Polling {
		return
	}
	close(s.stop)
	s.stop = nil
	s.pollGen++
	s.state.Polling = false
	s.state.Loading = false
	s.state.Revision++
}

func (s *Store) fetchOnce(ctx context.Context, gen uint64) {
	tiles, err := s.opts.Source.FetchTiles(ctx)

	s.mu.Lock()
	if gen != s.pollGen {
		s.mu.Unlock()
		return
	}
	s.state.Loading = false
	if err != nil {
		s.state.FetchError = err
	} else {
		s.state.Tiles = tiles
		s.state.FetchError = nil
	}
	s.state.Revision++
	s.mu.Unlock()

	action := ActionFetchTilesSuccess
	if err != nil {
		action = ActionFetchTilesFailed
	}
	s.notify(ctx, action, err)
}

func (s *Store) refreshStaticAPIs(ctx context.Context) error {
	if s.opts.Refresher == nil {
		return errMissingRefresher
	}
	if err := s.opts.Refresher.RefreshStaticAPIs(ctx); err != nil {
		s.update(func(st *State) { st.RefreshStaticAPIsError = err })
		return err
	}
	s.update(func(st *State) { st.RefreshStaticAPIsError = nil })
	if s.opts.Source == nil {
		return nil
	}
	s.mu.RLock()
	gen := s.pollGen
	halted := s.state.FetchError != nil && !s.state.Polling
	s.mu.RUnlock()
	s.fetchOnce(ctx, gen)

	// A fetch error stops polling; a refresh that brings the tiles back resumes it.
	s.mu.RLock()
	recovered := halted && s.state.FetchError == nil
	s.mu.RUnlock()
	if recovered && s.opts.PollInterval >= 0 {
		return s.beginPolling(ctx, false)
	}
	return nil
}

func (s *Store) notify(ctx context.Context, action Action, err error) {
	s.mu.RLock()
	revision := s.state.Revision
	hooks := append([]StateHook(nil), s.opts.Hooks...)
	s.mu.RUnlock()

	event := StoreEvent{
		ID:         uuid.NewString(),
		Action:     action,
		Revision:   revision,
		OccurredAt: time.Now().UTC(),
	}
	payload := map[string]any{
		"action":   string(action),
		"revision": revision,
	}
	if err != nil {
		event.Error = err.Error()
		payload["error"] = err.Error()
		s.opts.Logger.Warn("catalog store action failed", "action", action, "error", err)
	} else {
		s.opts.Logger.Debug("catalog store action applied", "action", action, "revision", revision)
	}
	for _, hook := range hooks {
		if hookErr := hook.StateChanged(ctx, event); hookErr != nil {
			s.opts.Logger.Warn("catalog state hook failed", "action", action, "error", hookErr)
		}
	}
	s.opts.Telemetry.Record(ctx, "catalog.store."+string(action), payload)
}
