// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

import (
	"sync"
	"unicode"

	"github.com/gogpu/gpucontext"
	"golang.org/x/text/unicode/norm"
)

// Recorder accumulates host input between frames and produces one Snapshot
// per frame. It is safe for concurrent use, so platform callbacks may run on
// a different goroutine from the frame loop.
//
// A press and release that both happen within one frame are not lost: the
// press is visible in the next snapshot and the release in the one after.
type Recorder struct {
	mu sync.Mutex

	pointer Point
	scroll  Point
	text    []rune

	buttons        ButtonSet
	freshButtons   ButtonSet
	releaseButtons ButtonSet

	keys        KeySet
	freshKeys   KeySet
	releaseKeys KeySet
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Attach registers the recorder's callbacks on src. Committed IME text is
// queued like ordinary text input. Losing focus releases every key and
// button.
func (r *Recorder) Attach(src gpucontext.EventSource) {
	src.OnKeyPress(func(k gpucontext.Key, _ gpucontext.Modifiers) { r.KeyDown(k) })
	src.OnKeyRelease(func(k gpucontext.Key, _ gpucontext.Modifiers) { r.KeyUp(k) })
	src.OnTextInput(r.QueueText)
	src.OnIMECompositionEnd(r.QueueText)
	src.OnMouseMove(r.MoveTo)
	src.OnMousePress(func(b gpucontext.MouseButton, x, y float64) {
		r.MoveTo(x, y)
		r.Press(b)
	})
	src.OnMouseRelease(func(b gpucontext.MouseButton, x, y float64) {
		r.MoveTo(x, y)
		r.Release(b)
	})
	src.OnScroll(r.ScrollBy)
	src.OnFocus(func(focused bool) {
		if !focused {
			r.ReleaseAll()
		}
	})
}

// MoveTo sets the pointer position.
func (r *Recorder) MoveTo(x, y float64) {
	r.mu.Lock()
	r.pointer = Point{X: x, Y: y}
	r.mu.Unlock()
}

// Press marks a mouse button as pressed.
func (r *Recorder) Press(b Button) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.buttons.Has(b) {
		r.freshButtons.Add(b)
	}
	r.buttons.Add(b)
	r.releaseButtons.Remove(b)
}

// Release marks a mouse button as released.
func (r *Recorder) Release(b Button) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.freshButtons.Has(b) {
		r.releaseButtons.Add(b)
		return
	}
	r.buttons.Remove(b)
}

// KeyDown marks k as held.
func (r *Recorder) KeyDown(k Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.keys.Has(k) {
		r.freshKeys.Add(k)
	}
	r.keys.Add(k)
	r.releaseKeys.Remove(k)
}

// KeyUp marks k as released.
func (r *Recorder) KeyUp(k Key) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.freshKeys.Has(k) {
		r.releaseKeys.Add(k)
		return
	}
	r.keys.Remove(k)
}

// Tap presses and releases k within the current frame, together with the
// left-hand keys for mods. Hosts without key-release events, such as
// terminals, report keys this way.
func (r *Recorder) Tap(k Key, mods gpucontext.Modifiers) {
	held := LeftKeys(mods)
	for _, m := range held {
		r.KeyDown(m)
	}
	r.KeyDown(k)
	r.KeyUp(k)
	for _, m := range held {
		r.KeyUp(m)
	}
}

// ScrollBy accumulates a wheel delta.
func (r *Recorder) ScrollBy(dx, dy float64) {
	r.mu.Lock()
	r.scroll.X += dx
	r.scroll.Y += dy
	r.mu.Unlock()
}

// QueueText appends typed text. The text is normalized to NFC and control
// characters are dropped.
func (r *Recorder) QueueText(s string) {
	if s == "" {
		return
	}
	s = norm.NFC.String(s)

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range s {
		if c == unicode.ReplacementChar || unicode.IsControl(c) {
			continue
		}
		r.text = append(r.text, c)
	}
}

// ReleaseAll releases every key and button immediately.
func (r *Recorder) ReleaseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buttons, r.freshButtons, r.releaseButtons = 0, 0, 0
	r.keys, r.freshKeys, r.releaseKeys = KeySet{}, KeySet{}, KeySet{}
}

// Snapshot returns the state for the frame that just ended and starts a new
// one: queued text and the scroll delta are cleared, and releases deferred
// from the frame are applied.
func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Snapshot{
		Pointer: r.pointer,
		Buttons: r.buttons,
		Keys:    r.keys,
		Scroll:  r.scroll,
		Text:    r.text,
	}

	r.text = nil
	r.scroll = Point{}
	r.buttons &^= r.releaseButtons
	r.freshButtons, r.releaseButtons = 0, 0
	r.keys = r.keys.Without(r.releaseKeys)
	r.freshKeys, r.releaseKeys = KeySet{}, KeySet{}

	return s
}
