// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

import (
	"strings"

	"github.com/gogpu/gpucontext"
)

// Modifiers is the set of held modifier keys with left/right provenance.
type Modifiers uint8

// Modifier bits.
const (
	LeftShift Modifiers = 1 << iota
	RightShift
	LeftControl
	RightControl
	LeftAlt
	RightAlt
	LeftSuper
	RightSuper
)

var modifierKeys = [...]struct {
	key Key
	mod Modifiers
	tag string
}{
	{gpucontext.KeyLeftShift, LeftShift, "LShift"},
	{gpucontext.KeyRightShift, RightShift, "RShift"},
	{gpucontext.KeyLeftControl, LeftControl, "LCtrl"},
	{gpucontext.KeyRightControl, RightControl, "RCtrl"},
	{gpucontext.KeyLeftAlt, LeftAlt, "LAlt"},
	{gpucontext.KeyRightAlt, RightAlt, "RAlt"},
	{gpucontext.KeyLeftSuper, LeftSuper, "LSuper"},
	{gpucontext.KeyRightSuper, RightSuper, "RSuper"},
}

// ModifiersFromKeys computes the modifier state from a set of held keys.
func ModifiersFromKeys(keys KeySet) Modifiers {
	var m Modifiers
	for _, mk := range modifierKeys {
		if keys.Has(mk.key) {
			m |= mk.mod
		}
	}
	return m
}

// IsModifierKey reports whether k is one of the left/right modifier keys.
func IsModifierKey(k Key) bool {
	return k >= gpucontext.KeyLeftShift && k <= gpucontext.KeyRightSuper
}

// Shift reports whether either Shift key is held.
func (m Modifiers) Shift() bool { return m&(LeftShift|RightShift) != 0 }

// Control reports whether either Control key is held.
func (m Modifiers) Control() bool { return m&(LeftControl|RightControl) != 0 }

// Alt reports whether either Alt key is held.
func (m Modifiers) Alt() bool { return m&(LeftAlt|RightAlt) != 0 }

// Super reports whether either Super key is held.
func (m Modifiers) Super() bool { return m&(LeftSuper|RightSuper) != 0 }

// IsLeft reports whether any left-hand modifier is held.
func (m Modifiers) IsLeft() bool {
	return m&(LeftShift|LeftControl|LeftAlt|LeftSuper) != 0
}

// IsRight reports whether any right-hand modifier is held.
func (m Modifiers) IsRight() bool {
	return m&(RightShift|RightControl|RightAlt|RightSuper) != 0
}

// ToGPUContext drops the left/right provenance.
func (m Modifiers) ToGPUContext() gpucontext.Modifiers {
	var g gpucontext.Modifiers
	if m.Shift() {
		g |= gpucontext.ModShift
	}
	if m.Control() {
		g |= gpucontext.ModControl
	}
	if m.Alt() {
		g |= gpucontext.ModAlt
	}
	if m.Super() {
		g |= gpucontext.ModSuper
	}
	return g
}

// LeftKeys returns the left-hand modifier keys for g. Hosts that only report
// a modifier mask use it to synthesize key state.
func LeftKeys(g gpucontext.Modifiers) []Key {
	var keys []Key
	if g.HasShift() {
		keys = append(keys, gpucontext.KeyLeftShift)
	}
	if g.HasControl() {
		keys = append(keys, gpucontext.KeyLeftControl)
	}
	if g.HasAlt() {
		keys = append(keys, gpucontext.KeyLeftAlt)
	}
	if g.HasSuper() {
		keys = append(keys, gpucontext.KeyLeftSuper)
	}
	return keys
}

// String lists the held modifiers, e.g. "LCtrl+RShift".
func (m Modifiers) String() string {
	if m == 0 {
		return "none"
	}
	var parts []string
	for _, mk := range modifierKeys {
		if m&mk.mod != 0 {
			parts = append(parts, mk.tag)
		}
	}
	return strings.Join(parts, "+")
}
