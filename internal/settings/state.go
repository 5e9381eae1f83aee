package settings

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/goliatone/go-fluent/internal/logging"
	"github.com/goliatone/go-fluent/pkg/interfaces"
)

// State is a concurrency-safe view of the current settings. Reads are lock
// free; writers replace the whole value.
type State struct {
	current  atomic.Pointer[Settings]
	defaults Settings

	mu        sync.Mutex
	listeners []func(Settings)
}

// NewState seeds a state with defaults. Defaults are restored when the
// persisted settings are deleted.
func NewState(defaults Settings) *State {
	st := &State{defaults: defaults}
	st.Apply(defaults)
	return st
}

// Snapshot returns the current settings.
func (s *State) Snapshot() Settings {
	if s == nil {
		return Settings{}
	}
	if current := s.current.Load(); current != nil {
		return *current
	}
	return s.defaults
}

// Apply replaces the current settings.
func (s *State) Apply(settings Settings) {
	if s == nil {
		return
	}
	copied := settings
	s.current.Store(&copied)

	s.mu.Lock()
	listeners := append([]func(Settings){}, s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn(copied)
	}
}

// OnChange registers fn to run after every Apply or Reset.
func (s *State) OnChange(fn func(Settings)) {
	if s == nil || fn == nil {
		return
	}
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Reset restores the defaults.
func (s *State) Reset() {
	if s == nil {
		return
	}
	s.Apply(s.defaults)
}

// Load pulls persisted settings from repo, keeping the defaults when none
// were stored.
func (s *State) Load(ctx context.Context, repo Repository) error {
	if s == nil || repo == nil {
		return nil
	}
	stored, err := repo.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	s.Apply(stored)
	return nil
}

// Watch applies change events from repo until ctx is cancelled. It returns
// once the subscription is established.
func (s *State) Watch(ctx context.Context, repo Repository, logger interfaces.Logger) error {
	if s == nil || repo == nil {
		return nil
	}
	if logger == nil {
		logger = logging.NoOp()
	}
	events, err := repo.Subscribe(ctx)
	if err != nil {
		return err
	}
	go func() {
		for evt := range events {
			switch evt.Type {
			case ChangeDeleted:
				s.Reset()
			default:
				s.Apply(evt.Settings)
			}
			logger.Debug("settings: applied change event", "type", string(evt.Type))
		}
	}()
	return nil
}
