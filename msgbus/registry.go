// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package msgbus

import (
	"fmt"
	"sort"
)

// Handler receives the payload of a dispatched message.
type Handler func(data string) error

// Registry maps message names to handlers.
//
// Registry is not safe for concurrent use. Register, unregister and drain
// from the same goroutine, normally the host's update loop.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register sets the handler for name, replacing any previous one.
func (r *Registry) Register(name string, h Handler) error {
	if name == "" {
		return ErrEmptyName
	}
	if h == nil {
		return fmt.Errorf("%w: %q", ErrNilHandler, name)
	}
	r.handlers[name] = h
	return nil
}

// Unregister removes the handler for name and reports whether one existed.
func (r *Registry) Unregister(name string) bool {
	_, ok := r.handlers[name]
	delete(r.handlers, name)
	return ok
}

// Lookup returns the handler for name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Len returns the number of registered handlers.
func (r *Registry) Len() int {
	return len(r.handlers)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
