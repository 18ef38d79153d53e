// Package command holds the table of invokable commands exposed to the
// front-end. The table is populated at build time and frozen before the
// event loop starts.
package command

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/agnivade/levenshtein"
)

var (
	ErrDuplicate = errors.New("duplicate command")
	ErrFrozen    = errors.New("command table frozen")
	ErrInvalid   = errors.New("invalid command")
	ErrUnknown   = errors.New("unknown command")
	ErrBadArgs   = errors.New("bad command arguments")
)

// maxSuggestDistance bounds how far a typo may be from a registered name
// before no suggestion is offered.
const maxSuggestDistance = 2

// Handler serves one command. args is the raw JSON payload sent by the caller.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Entry binds a handler to its name.
type Entry struct {
	Name    string
	Handler Handler
}

type Table struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	order    []string
	frozen   bool
}

func NewTable() *Table {
	return &Table{handlers: make(map[string]Handler)}
}

// Register adds a handler. It never replaces an existing one.
func (t *Table) Register(name string, h Handler) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalid)
	}
	if h == nil {
		return fmt.Errorf("%w: %q has no handler", ErrInvalid, name)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frozen {
		return fmt.Errorf("%w: cannot register %q", ErrFrozen, name)
	}
	if _, ok := t.handlers[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicate, name)
	}

	t.handlers[name] = h
	t.order = append(t.order, name)
	return nil
}

// RegisterAll registers entries in order and stops at the first failure.
func (t *Table) RegisterAll(entries ...Entry) error {
	for _, e := range entries {
		if err := t.Register(e.Name, e.Handler); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) Freeze() {
	t.mu.Lock()
	t.frozen = true
	t.mu.Unlock()
}

func (t *Table) Frozen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.frozen
}

// Names returns command names in registration order.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return append([]string(nil), t.order...)
}

func (t *Table) Has(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.handlers[name]
	return ok
}

func (t *Table) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	t.mu.RLock()
	h, ok := t.handlers[name]
	t.mu.RUnlock()

	if !ok {
		if s := t.suggest(name); s != "" {
			return nil, fmt.Errorf("%w %q (did you mean %q?)", ErrUnknown, name, s)
		}
		return nil, fmt.Errorf("%w %q", ErrUnknown, name)
	}
	return h(ctx, args)
}

func (t *Table) suggest(name string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	best, bestDist := "", maxSuggestDistance+1
	for _, candidate := range t.order {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
