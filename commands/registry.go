package commands

import (
	"log/slog"

	"github.com/sahilm/fuzzy"
)

// Registry maps command ids to callbacks for one editor session.
type Registry struct {
	log     *slog.Logger
	order   []string
	entries map[string]func()
}

// New returns an empty registry logging through slog's default logger.
func New() *Registry {
	return NewWithLogger(nil)
}

// NewWithLogger returns an empty registry using log for diagnostics. A nil
// log falls back to slog.Default.
func NewWithLogger(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}
	return &Registry{
		log:     log,
		entries: make(map[string]func()),
	}
}

// Register binds id to fn. Re-registering an id replaces its callback and
// keeps its original position; a nil fn deregisters instead.
func (r *Registry) Register(id string, fn func()) {
	if id == "" {
		return
	}
	if fn == nil {
		r.Deregister(id)
		return
	}
	if _, exists := r.entries[id]; !exists {
		r.order = append(r.order, id)
	}
	r.entries[id] = fn
}

// Deregister removes id. Removing an unknown id is a no-op.
func (r *Registry) Deregister(id string) {
	if _, exists := r.entries[id]; !exists {
		return
	}
	delete(r.entries, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Execute runs the callback bound to id and reports whether one ran. An
// unknown id logs a debug line and is otherwise a no-op.
func (r *Registry) Execute(id string) bool {
	fn, ok := r.entries[id]
	if !ok {
		r.log.Debug("command not registered", "command", id)
		return false
	}
	fn()
	return true
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.entries[id]
	return ok
}

// IDs returns every registered id in registration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Search returns the ids matching query, best match first. An empty query
// returns all ids in registration order.
func (r *Registry) Search(query string) []string {
	if query == "" {
		return r.IDs()
	}
	matches := fuzzy.Find(query, r.order)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}
