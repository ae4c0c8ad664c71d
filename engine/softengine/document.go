// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package softengine

import (
	"errors"
	"fmt"
	"image"
	"math"
	"unicode/utf8"

	"github.com/gogpu/gg"
)

// Errors returned to scripts by the document API.
var (
	errEmptyID     = errors.New("softengine: element id is empty")
	errDuplicateID = errors.New("softengine: duplicate element id")
	errBadSize     = errors.New("softengine: element size must be positive")
)

type kind uint8

const (
	kindButton kind = iota
	kindLabel
	kindTextBox
)

func (k kind) String() string {
	switch k {
	case kindButton:
		return "button"
	case kindLabel:
		return "label"
	case kindTextBox:
		return "textbox"
	}
	return fmt.Sprintf("kind(%d)", k)
}

type element struct {
	id      string
	kind    kind
	x, y    float64
	w, h    float64
	text    string
	pressed bool
	hovered bool
}

func (e *element) contains(x, y float64) bool {
	return x >= e.x && x < e.x+e.w && y >= e.y && y < e.y+e.h
}

// bounds returns the pixel rectangle the element paints into, with a
// one-pixel margin for anti-aliased edges.
func (e *element) bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(e.x))-1, int(math.Floor(e.y))-1,
		int(math.Ceil(e.x+e.w))+1, int(math.Ceil(e.y+e.h))+1,
	)
}

// document is the page model. It is owned by the surface goroutine.
type document struct {
	background gg.RGBA
	elems      []*element
	focus      *element
	pressed    *element

	// measure returns the size of a text run; labels are sized with it.
	measure func(string) (w, h float64)

	// dirty accumulates the area changed since the last paint.
	dirty image.Rectangle
	full  bool
}

// fitLabel sizes a label to its text.
func (d *document) fitLabel(e *element) {
	w, h := float64(utf8.RuneCountInString(e.text))*8, 16.0
	if d.measure != nil {
		w, h = d.measure(e.text)
	}
	e.w, e.h = math.Max(w, 1), math.Max(h, 1)
}

var defaultBackground = gg.Hex("#ffffff")

func newDocument() *document {
	return &document{background: defaultBackground}
}

func (d *document) changed() bool { return d.full || !d.dirty.Empty() }

func (d *document) invalidate(r image.Rectangle) { d.dirty = d.dirty.Union(r) }

func (d *document) invalidateAll() { d.full = true }

// takeDirty returns the changed area clipped to bounds and resets it.
func (d *document) takeDirty(bounds image.Rectangle) image.Rectangle {
	r := d.dirty.Intersect(bounds)
	if d.full {
		r = bounds
	}
	d.dirty = image.Rectangle{}
	d.full = false
	return r
}

func (d *document) setBackground(c gg.RGBA) {
	d.background = c
	d.invalidateAll()
}

func (d *document) find(id string) *element {
	for _, e := range d.elems {
		if e.id == id {
			return e
		}
	}
	return nil
}

func (d *document) add(e *element) error {
	if e.id == "" {
		return errEmptyID
	}
	if e.kind == kindLabel {
		d.fitLabel(e)
	}
	if e.w <= 0 || e.h <= 0 {
		return fmt.Errorf("%w: %s %q", errBadSize, e.kind, e.id)
	}
	if d.find(e.id) != nil {
		return fmt.Errorf("%w: %q", errDuplicateID, e.id)
	}
	d.elems = append(d.elems, e)
	d.invalidate(e.bounds())
	return nil
}

func (d *document) setText(id, text string) bool {
	e := d.find(id)
	if e == nil {
		return false
	}
	if e.text != text {
		d.invalidate(e.bounds())
		e.text = text
		if e.kind == kindLabel {
			d.fitLabel(e)
		}
		d.invalidate(e.bounds())
	}
	return true
}

func (d *document) remove(id string) bool {
	for i, e := range d.elems {
		if e.id != id {
			continue
		}
		d.elems = append(d.elems[:i], d.elems[i+1:]...)
		if d.focus == e {
			d.focus = nil
		}
		if d.pressed == e {
			d.pressed = nil
		}
		d.invalidate(e.bounds())
		return true
	}
	return false
}

// hit returns the topmost element under (x, y).
func (d *document) hit(x, y float64) *element {
	for i := len(d.elems) - 1; i >= 0; i-- {
		if d.elems[i].contains(x, y) {
			return d.elems[i]
		}
	}
	return nil
}

// hover updates the hover flags of buttons.
func (d *document) hover(x, y float64, exited bool) {
	var top *element
	if !exited {
		top = d.hit(x, y)
	}
	for _, e := range d.elems {
		h := e == top && e.kind == kindButton
		if e.hovered != h {
			e.hovered = h
			d.invalidate(e.bounds())
		}
	}
}

func (d *document) press(e *element) {
	if d.pressed != nil {
		d.pressed.pressed = false
		d.invalidate(d.pressed.bounds())
	}
	d.pressed = e
	if e != nil && e.kind == kindButton {
		e.pressed = true
		d.invalidate(e.bounds())
	}
}

// release ends a press at (x, y) and returns the clicked element, if the
// press started and ended on the same element.
func (d *document) release(x, y float64) *element {
	e := d.pressed
	d.press(nil)
	if e != nil && e.contains(x, y) {
		return e
	}
	return nil
}

func (d *document) setFocus(e *element) {
	if e != nil && e.kind != kindTextBox {
		e = nil
	}
	if d.focus == e {
		return
	}
	if d.focus != nil {
		d.invalidate(d.focus.bounds())
	}
	d.focus = e
	if e != nil {
		d.invalidate(e.bounds())
	}
}

// typeRune appends r to the focused text box.
func (d *document) typeRune(r rune) bool {
	if d.focus == nil {
		return false
	}
	d.focus.text += string(r)
	d.invalidate(d.focus.bounds())
	return true
}

// backspace removes the last rune of the focused text box.
func (d *document) backspace() bool {
	if d.focus == nil || d.focus.text == "" {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(d.focus.text)
	d.focus.text = d.focus.text[:len(d.focus.text)-size]
	d.invalidate(d.focus.bounds())
	return true
}
