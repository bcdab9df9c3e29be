// Package hotkey manages global hotkey bindings.
//
// A Registry owns the process-wide binding table. Actual registration with
// the operating system goes through a Backend, so the registry itself stays
// testable without platform bindings.
package hotkey

import (
	"sync"

	"go.uber.org/zap"

	"github.com/kbaines/pounce/internal/input/key"
	"github.com/kbaines/pounce/internal/perr"
)

// ID identifies a registered hotkey binding.
type ID int

// Callback is invoked when a registered hotkey fires.
type Callback func()

// Binding is a registered global key combination.
type Binding struct {
	// ID is the registry-assigned identifier.
	ID ID

	// Combo is the parsed (keycode, modifier mask) pair. Bindings are
	// unique per combo.
	Combo key.Combo

	// Spec is the original textual specification, kept for diagnostics.
	Spec string
}

// Backend performs the platform-level registration. Implementations must
// invoke the dispatch function passed at construction when a registered
// hotkey fires.
type Backend interface {
	// Register installs the combination with the OS under the given ID.
	Register(id ID, combo key.Combo) error

	// Unregister removes a previously installed combination.
	Unregister(id ID)

	// UnregisterAll removes every installed combination.
	UnregisterAll()
}

// Registry owns the process-wide hotkey binding table.
type Registry struct {
	mu        sync.RWMutex
	backend   Backend
	logger    *zap.Logger
	byID      map[ID]*binding
	byCombo   map[key.Combo]ID
	nextID    ID
}

type binding struct {
	Binding
	callback Callback
}

// NewRegistry creates a registry on top of the given backend.
func NewRegistry(backend Backend, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		backend: backend,
		logger:  logger,
		byID:    make(map[ID]*binding),
		byCombo: make(map[key.Combo]ID),
		nextID:  1,
	}
}

// Register parses spec and installs it with the backend. It fails with
// perr.CodeParse for a malformed spec and perr.CodeHotkeyConflict if the
// (keycode, modifiers) pair is already owned. An existing binding is never
// silently overwritten.
func (r *Registry) Register(spec string, callback Callback) (ID, error) {
	combo, err := key.ParseSpec(spec)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if ownerID, taken := r.byCombo[combo]; taken {
		owner := r.byID[ownerID]
		return 0, perr.Newf(perr.CodeHotkeyConflict,
			"combination %s already registered as %q", combo, owner.Spec)
	}

	id := r.nextID
	r.nextID++

	if r.backend != nil {
		if err := r.backend.Register(id, combo); err != nil {
			return 0, perr.Wrap(perr.CodeHotkeyConflict, "backend registration failed", err)
		}
	}

	r.byID[id] = &binding{
		Binding:  Binding{ID: id, Combo: combo, Spec: spec},
		callback: callback,
	}
	r.byCombo[combo] = id

	r.logger.Debug("registered hotkey",
		zap.String("spec", spec),
		zap.Uint16("keycode", uint16(combo.Code)),
		zap.Int("id", int(id)))

	return id, nil
}

// Unregister removes a binding by ID. Unknown IDs are ignored.
func (r *Registry) Unregister(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return
	}

	if r.backend != nil {
		r.backend.Unregister(id)
	}
	delete(r.byID, id)
	delete(r.byCombo, b.Combo)
}

// UnregisterAll removes every binding. It is idempotent.
func (r *Registry) UnregisterAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.byID) == 0 {
		return
	}

	if r.backend != nil {
		r.backend.UnregisterAll()
	}
	r.byID = make(map[ID]*binding)
	r.byCombo = make(map[key.Combo]ID)
}

// Dispatch invokes the callback for a fired hotkey ID. Returns false if the
// ID is not registered (for example, fired after unregistration raced the
// OS notification).
func (r *Registry) Dispatch(id ID) bool {
	r.mu.RLock()
	b, ok := r.byID[id]
	r.mu.RUnlock()

	if !ok || b.callback == nil {
		return false
	}
	b.callback()
	return true
}

// Lookup returns the binding for a combo, if any.
func (r *Registry) Lookup(combo key.Combo) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byCombo[combo]
	if !ok {
		return Binding{}, false
	}
	return r.byID[id].Binding, true
}

// Bindings returns a snapshot of all registered bindings.
func (r *Registry) Bindings() []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Binding, 0, len(r.byID))
	for _, b := range r.byID {
		out = append(out, b.Binding)
	}
	return out
}

// Len returns the number of registered bindings.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// defaultRegistry is the process-wide registry used when no explicit
// registry is wired.
var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// Default returns the process-wide registry, creating a backend-less one on
// first use.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultRegistry == nil {
		defaultRegistry = NewRegistry(nil, nil)
	}
	return defaultRegistry
}

// SetDefault replaces the process-wide registry. Intended for application
// startup.
func SetDefault(r *Registry) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRegistry = r
}

// ResetDefault clears the process-wide registry. Intended for test
// isolation.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultRegistry != nil {
		defaultRegistry.UnregisterAll()
	}
	defaultRegistry = nil
}
