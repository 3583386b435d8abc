// Package dashboard runs the filter → render pipeline once per interaction.
//
// An App owns the dataset loaded at startup. Every call to Recompute filters
// the full dataset again and rebuilds every panel; nothing computed for one
// event is reused by the next.
package dashboard

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KaramelBytes/cardash/internal/dataset"
	"github.com/KaramelBytes/cardash/internal/filter"
	"github.com/KaramelBytes/cardash/internal/view"
)

// ErrInvalidInput wraps every filter or selection validation failure.
var ErrInvalidInput = errors.New("invalid input")

// Snapshot is the outcome of one recompute.
type Snapshot struct {
	State      filter.State
	Selections view.Selections
	View       *dataset.View
	Dashboard  *view.Dashboard
	Took       time.Duration
	At         time.Time
}

// App is the dashboard process state.
type App struct {
	ds  *dataset.Dataset
	now func() time.Time

	mu        sync.RWMutex
	observers []func(*Snapshot)
}

// New returns an App over ds. ds must not be nil.
func New(ds *dataset.Dataset) *App {
	return &App{ds: ds, now: time.Now}
}

// Dataset returns the loaded dataset.
func (a *App) Dataset() *dataset.Dataset { return a.ds }

// Defaults returns the initial filter state and selections.
func (a *App) Defaults() (filter.State, view.Selections) {
	return filter.Default(a.ds), view.DefaultSelections()
}

// Options lists the sidebar widget values.
func (a *App) Options() filter.Widgets { return filter.Options(a.ds) }

// Subscribe registers fn to be called after every successful recompute.
// Observers run synchronously in registration order.
func (a *App) Subscribe(fn func(*Snapshot)) {
	a.mu.Lock()
	a.observers = append(a.observers, fn)
	a.mu.Unlock()
}

// Recompute applies state to the dataset and builds every panel with sel.
func (a *App) Recompute(state filter.State, sel view.Selections) (*Snapshot, error) {
	start := a.now()
	v, err := filter.Apply(a.ds, state)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	d, err := view.Build(v, sel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	snap := &Snapshot{
		State:      state,
		Selections: sel,
		View:       v,
		Dashboard:  d,
		At:         start,
	}
	snap.Took = a.now().Sub(start)

	a.mu.RLock()
	obs := append([]func(*Snapshot){}, a.observers...)
	a.mu.RUnlock()
	for _, fn := range obs {
		fn(snap)
	}
	return snap, nil
}
