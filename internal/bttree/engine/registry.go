package engine

import (
	"log/slog"
	"sync"
)

// Constructor produces a fresh, independently-stateful Behavior instance.
// The loader calls a node type's Constructor once per node call site, so
// two calls to the same node type in a tree (or two independently loaded
// trees sharing a TreeSource) never share mutable state.
type Constructor func() Behavior

// Registry maps node type names to Constructors. The zero value is not
// ready to use; construct one with NewRegistry or NewDefaultRegistry.
type Registry struct {
	mu     sync.RWMutex
	ctors  map[string]Constructor
	logger *slog.Logger
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithLogger overrides the *slog.Logger a Registry uses for diagnostics,
// in place of the default of slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) { r.logger = logger }
}

// NewRegistry returns an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{ctors: make(map[string]Constructor), logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefaultRegistry returns a Registry seeded with every control node
// defined by the runtime (§4.3): Sequence, ReactiveSequence, Fallback,
// ReactiveFallbackStar, ForceSuccess, ForceFailure, Inverter, Repeat,
// Retry, SetBool, true, false, and the synthetic if node the parser's
// if-statement desugaring targets.
func NewDefaultRegistry(opts ...Option) *Registry {
	r := NewRegistry(opts...)
	for name, ctor := range map[string]Constructor{
		"Sequence":             NewSequence,
		"ReactiveSequence":     NewReactiveSequence,
		"Fallback":             NewFallback,
		"ReactiveFallbackStar": NewReactiveFallbackStar,
		"ForceSuccess":         NewForceSuccess,
		"ForceFailure":         NewForceFailure,
		"Inverter":             NewInverter,
		"Repeat":               NewRepeat,
		"Retry":                NewRetry,
		"SetBool":              NewSetBool,
		"true":                 NewTrue,
		"false":                NewFalse,
		"if":                   NewIf,
	} {
		r.ctors[name] = ctor
	}
	return r
}

// Register associates name with ctor, replacing any existing association
// (last call wins, §4.3 and §9).
func (r *Registry) Register(name string, ctor Constructor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.ctors[name]; exists {
		r.logger.Debug("bttree: registry: replacing node type", "name", name)
	}
	r.ctors[name] = ctor
}

// New constructs a fresh Behavior for name, if registered.
func (r *Registry) New(name string) (Behavior, bool) {
	r.mu.RLock()
	ctor, ok := r.ctors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ctors[name]
	return ok
}
