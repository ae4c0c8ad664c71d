// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package msgbus

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned when a message or handler name is empty.
	ErrEmptyName = errors.New("msgbus: empty message name")

	// ErrNilHandler is returned when registering a nil handler.
	ErrNilHandler = errors.New("msgbus: nil handler")

	// ErrNestedDrain is returned when DrainAndDispatch is called while a
	// drain is already running, for example from inside a handler.
	ErrNestedDrain = errors.New("msgbus: drain already in progress")

	// ErrHandlerPanic wraps a value recovered from a panicking handler.
	ErrHandlerPanic = errors.New("msgbus: handler panicked")
)

// DispatchError reports a handler failure for one message.
type DispatchError struct {
	Name string
	Err  error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("msgbus: handler %q: %v", e.Name, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}
