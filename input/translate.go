// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

// Translate diffs two consecutive snapshots into primitive events.
//
// Translate is pure: identical arguments always produce the same sequence.
// It returns nil when nothing changed.
func Translate(prev, cur Snapshot, bounds Rect) []Event {
	var events []Event

	origin := bounds.Min()
	rel := cur.Pointer.Sub(origin)
	inside := bounds.Contains(cur.Pointer)

	if cur.Pointer != prev.Pointer {
		events = append(events, PointerMove{
			X:      rel.X,
			Y:      rel.Y,
			Exited: bounds.Contains(prev.Pointer) && !inside,
		})
	}

	if inside {
		for _, b := range trackedButtons {
			was, is := prev.Buttons.Has(b), cur.Buttons.Has(b)
			switch {
			case !was && is:
				events = append(events, ButtonDown{Button: b, X: rel.X, Y: rel.Y})
			case was && !is:
				events = append(events, ButtonUp{Button: b, X: rel.X, Y: rel.Y})
			}
		}

		if !cur.Scroll.IsZero() {
			events = append(events, Scroll{
				X:      rel.X,
				Y:      rel.Y,
				DeltaX: cur.Scroll.X,
				DeltaY: cur.Scroll.Y,
			})
		}
	}

	if prev.Keys == cur.Keys && len(cur.Text) == 0 {
		return events
	}

	mods := cur.Modifiers()
	prev.Keys.Without(cur.Keys).each(func(k Key) {
		events = append(events, KeyUp{Key: k, Modifiers: mods})
	})
	cur.Keys.Without(prev.Keys).each(func(k Key) {
		events = append(events, KeyDown{Key: k, Modifiers: mods})
	})
	for _, r := range cur.Text {
		events = append(events, CharInput{Rune: r, Modifiers: mods})
	}

	return events
}

// Translator keeps the previous snapshot and translates each new one
// against it. It is not safe for concurrent use; call it from the host's
// update goroutine.
type Translator struct {
	prev   Snapshot
	bounds Rect
}

// NewTranslator creates a translator for the given surface bounds.
func NewTranslator(bounds Rect) *Translator {
	return &Translator{bounds: bounds}
}

// Bounds returns the current surface bounds.
func (t *Translator) Bounds() Rect {
	return t.bounds
}

// SetBounds changes the surface bounds used for filtering and coordinate
// translation from the next call on.
func (t *Translator) SetBounds(r Rect) {
	t.bounds = r
}

// Next translates cur against the previous snapshot and stores cur as the
// new previous snapshot.
func (t *Translator) Next(cur Snapshot) []Event {
	events := Translate(t.prev, cur, t.bounds)
	t.prev = cur
	// Per-frame data must not leak into the next diff.
	t.prev.Text = nil
	t.prev.Scroll = Point{}
	return events
}

// Reset forgets the previous snapshot. Keys still held will produce KeyDown
// events again on the next call.
func (t *Translator) Reset() {
	t.prev = Snapshot{}
}
