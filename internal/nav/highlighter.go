// Package nav keeps exactly one navigation item marked active, either from
// a click or from the path of the page being loaded.
package nav

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrUnknownItem is returned when a click names an item the collection
// does not hold.
var ErrUnknownItem = errors.New("nav: unknown item")

// Highlighter owns the marker state of a Collection.
type Highlighter struct {
	mu     sync.Mutex
	items  *Collection
	routes *RouteTable
	store  Store
	key    string
	log    logrus.FieldLogger
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithStorageKey overrides DefaultStorageKey.
func WithStorageKey(key string) Option {
	return func(h *Highlighter) {
		if key != "" {
			h.key = key
		}
	}
}

// WithLogger sets the logger used for swallowed persistence failures.
func WithLogger(l logrus.FieldLogger) Option {
	return func(h *Highlighter) {
		if l != nil {
			h.log = l
		}
	}
}

// New creates a Highlighter over items. A nil routes uses DefaultRoutes
// with no fallback; a nil store disables persistence.
func New(items *Collection, routes *RouteTable, store Store, opts ...Option) *Highlighter {
	if items == nil {
		items = NewCollection()
	}
	if routes == nil {
		routes = MustRouteTable(DefaultRoutes(), "")
	}
	h := &Highlighter{
		items:  items,
		routes: routes,
		store:  store,
		key:    DefaultStorageKey,
		log:    logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// StorageKey returns the key selections are persisted under.
func (h *Highlighter) StorageKey() string { return h.key }

// ActivateOnClick marks the item with the given ID active, unmarks every
// other item, and persists the ID. The stopped marker is left alone.
// A failed persistence write is logged, not returned.
func (h *Highlighter) ActivateOnClick(ctx context.Context, id string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	target, ok := h.items.Find(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownItem, id)
	}

	h.items.clear(MarkerActive)
	target.set(MarkerActive, true)

	if h.store == nil {
		return nil
	}
	if err := h.store.Set(ctx, h.key, target.ID); err != nil {
		h.log.WithError(err).WithField("item", target.ID).Warn("nav: persisting selection failed")
	}
	return nil
}

// ActivateOnLoad clears both markers everywhere, then marks the item the
// path resolves to as active and stopped. It returns the marked item; when
// the path resolves to nothing every item is left unmarked.
func (h *Highlighter) ActivateOnLoad(path string) (Item, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.items.clear(MarkerActive, MarkerStopped)

	id, ok := h.routes.Resolve(path)
	if !ok {
		return Item{}, false
	}
	target, ok := h.items.Find(id)
	if !ok {
		h.log.WithFields(logrus.Fields{"path": path, "item": id}).Debug("nav: route names an item not on the page")
		return Item{}, false
	}

	target.set(MarkerActive, true)
	target.set(MarkerStopped, true)
	return *target, true
}

// Snapshot returns a copy of every item and its markers.
func (h *Highlighter) Snapshot() []Item {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.items.Items()
}

// Active returns the item currently marked active.
func (h *Highlighter) Active() (Item, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, it := range h.items.items {
		if it.Active {
			return *it, true
		}
	}
	return Item{}, false
}

// Selection reads back the persisted item ID.
func (h *Highlighter) Selection(ctx context.Context) (string, bool, error) {
	if h.store == nil {
		return "", false, nil
	}
	v, ok, err := h.store.Get(ctx, h.key)
	if err != nil {
		return "", false, fmt.Errorf("reading selection: %w", err)
	}
	return v, ok, nil
}
