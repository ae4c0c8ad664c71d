// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// Key is a platform-independent key code.
type Key = gpucontext.Key

// Button is a mouse button.
type Button = gpucontext.MouseButton

// Buttons forwarded to the engine, in emission order.
var trackedButtons = [...]Button{
	gpucontext.MouseButtonLeft,
	gpucontext.MouseButtonMiddle,
	gpucontext.MouseButtonRight,
}

// Point is a position or delta in window coordinates.
type Point struct {
	X, Y float64
}

// IsZero reports whether both components are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle in window coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Min returns the top-left corner.
func (r Rect) Min() Point {
	return Point{X: r.X, Y: r.Y}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// String returns a compact representation of r.
func (r Rect) String() string {
	return fmt.Sprintf("(%g,%g %gx%g)", r.X, r.Y, r.Width, r.Height)
}

// ButtonSet is the set of pressed mouse buttons.
type ButtonSet uint8

// Has reports whether b is pressed.
func (s ButtonSet) Has(b Button) bool {
	return b < 8 && s&(1<<b) != 0
}

// Add marks b as pressed.
func (s *ButtonSet) Add(b Button) {
	if b < 8 {
		*s |= 1 << b
	}
}

// Remove marks b as released.
func (s *ButtonSet) Remove(b Button) {
	if b < 8 {
		*s &^= 1 << b
	}
}

// Snapshot is the input state sampled for one host frame.
type Snapshot struct {
	// Pointer is the pointer position in window coordinates.
	Pointer Point

	// Buttons holds the pressed mouse buttons.
	Buttons ButtonSet

	// Keys holds the keys currently down.
	Keys KeySet

	// Scroll is the wheel delta accumulated during the frame.
	Scroll Point

	// Text holds the characters typed during the frame, oldest first.
	// Control characters are filtered before they get here.
	Text []rune
}

// Modifiers derives the modifier state from the keys held in s.
func (s *Snapshot) Modifiers() Modifiers {
	return ModifiersFromKeys(s.Keys)
}
