// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"errors"
	"sort"
	"sync"
)

// Factory creates a new, uninitialized engine.
type Factory func() (Engine, error)

// RegistryEntry represents a registered engine.
type RegistryEntry struct {
	// Name is the unique identifier for this engine.
	Name string

	// Priority determines selection order (higher = preferred).
	// Software engines use 10.
	Priority int

	// Factory creates engine instances.
	Factory Factory

	// Available reports if the engine can run on this system.
	Available func() bool
}

// globalRegistry is the default registry.
var globalRegistry = NewRegistry()

// Registry manages registered engines.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*RegistryEntry
}

// NewRegistry creates a new empty registry.
// Most code should use the global registry via Register and New.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds an engine to the global registry.
//
// If available is nil, the engine is assumed always available.
// Registering a name that already exists replaces the previous entry.
func Register(name string, priority int, factory Factory, available func() bool) {
	globalRegistry.Register(name, priority, factory, available)
}

// Unregister removes an engine from the global registry.
func Unregister(name string) {
	globalRegistry.Unregister(name)
}

// List returns all registered engine names sorted by priority (highest first).
func List() []string {
	return globalRegistry.List()
}

// Available returns names of all available engines sorted by priority.
func Available() []string {
	return globalRegistry.Available()
}

// Get returns information about a specific engine.
func Get(name string) (*RegistryEntry, bool) {
	return globalRegistry.Get(name)
}

// New creates the named engine from the global registry.
func New(name string) (Engine, error) {
	return globalRegistry.New(name)
}

// Default creates the best available engine from the global registry.
func Default() (Engine, error) {
	return globalRegistry.Default()
}

// Register adds an engine to this registry.
func (r *Registry) Register(name string, priority int, factory Factory, available func() bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if available == nil {
		available = func() bool { return true }
	}

	r.entries[name] = &RegistryEntry{
		Name:      name,
		Priority:  priority,
		Factory:   factory,
		Available: available,
	}
}

// Unregister removes an engine from this registry.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, name)
}

// List returns all registered engine names sorted by priority.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(false)
}

// Available returns names of all available engines sorted by priority.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedNames(true)
}

// Get returns information about a specific engine.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return nil, false
	}

	entryCopy := *entry
	return &entryCopy, true
}

// Default creates the highest-priority available engine. Engines whose
// factory fails are skipped.
func (r *Registry) Default() (Engine, error) {
	r.mu.RLock()
	available := r.sortedNames(true)
	r.mu.RUnlock()

	if len(available) == 0 {
		return nil, ErrNoEngineAvailable
	}

	var errs []error
	for _, name := range available {
		e, err := r.New(name)
		if err == nil {
			return e, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// New creates the named engine.
func (r *Registry) New(name string) (Engine, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	if !entry.Available() {
		return nil, &UnavailableError{Name: name}
	}

	return entry.Factory()
}

// sortedNames returns engine names sorted by priority (highest first), ties
// broken by name. Must be called with lock held.
func (r *Registry) sortedNames(onlyAvailable bool) []string {
	if len(r.entries) == 0 {
		return nil
	}

	entries := make([]*RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if onlyAvailable && !e.Available() {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Priority != entries[j].Priority {
			return entries[i].Priority > entries[j].Priority
		}
		return entries[i].Name < entries[j].Name
	})

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// ErrNoEngineAvailable is returned when no engines are registered or
// available on the current system.
var ErrNoEngineAvailable = errors.New("engine: no engine available")

// NotFoundError indicates a named engine is not registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "engine: not found: " + e.Name
}

// UnavailableError indicates an engine exists but cannot run here.
type UnavailableError struct {
	Name string
}

func (e *UnavailableError) Error() string {
	return "engine: unavailable: " + e.Name
}
