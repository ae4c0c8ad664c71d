// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

import "fmt"

// Event is a primitive input event. Coordinates are relative to the origin
// of the bounds passed to Translate.
type Event interface {
	fmt.Stringer
	isEvent()
}

// PointerMove reports a new pointer position. Exited is set on the frame the
// pointer leaves the bounds.
type PointerMove struct {
	X, Y   float64
	Exited bool
}

// ButtonDown reports a mouse button press inside the bounds.
type ButtonDown struct {
	Button Button
	X, Y   float64
}

// ButtonUp reports a mouse button release inside the bounds.
type ButtonUp struct {
	Button Button
	X, Y   float64
}

// Scroll reports a wheel delta at the pointer position.
type Scroll struct {
	X, Y           float64
	DeltaX, DeltaY float64
}

// KeyDown reports a key that went down this frame.
type KeyDown struct {
	Key       Key
	Modifiers Modifiers
}

// KeyUp reports a key that went up this frame.
type KeyUp struct {
	Key       Key
	Modifiers Modifiers
}

// CharInput reports one typed character.
type CharInput struct {
	Rune      rune
	Modifiers Modifiers
}

func (PointerMove) isEvent() {}
func (ButtonDown) isEvent()  {}
func (ButtonUp) isEvent()    {}
func (Scroll) isEvent()      {}
func (KeyDown) isEvent()     {}
func (KeyUp) isEvent()       {}
func (CharInput) isEvent()   {}

func (e PointerMove) String() string {
	if e.Exited {
		return fmt.Sprintf("PointerMove(%g,%g exited)", e.X, e.Y)
	}
	return fmt.Sprintf("PointerMove(%g,%g)", e.X, e.Y)
}

func (e ButtonDown) String() string {
	return fmt.Sprintf("ButtonDown(%d @%g,%g)", e.Button, e.X, e.Y)
}

func (e ButtonUp) String() string {
	return fmt.Sprintf("ButtonUp(%d @%g,%g)", e.Button, e.X, e.Y)
}

func (e Scroll) String() string {
	return fmt.Sprintf("Scroll(%g,%g @%g,%g)", e.DeltaX, e.DeltaY, e.X, e.Y)
}

func (e KeyDown) String() string {
	return fmt.Sprintf("KeyDown(%d %s)", e.Key, e.Modifiers)
}

func (e KeyUp) String() string {
	return fmt.Sprintf("KeyUp(%d %s)", e.Key, e.Modifiers)
}

func (e CharInput) String() string {
	return fmt.Sprintf("CharInput(%q %s)", e.Rune, e.Modifiers)
}

// IsKeyboard reports whether e is a keyboard-class event.
func IsKeyboard(e Event) bool {
	switch e.(type) {
	case KeyDown, KeyUp, CharInput:
		return true
	}
	return false
}
