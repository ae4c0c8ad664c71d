// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package termhost

import (
	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/webui/input"
)

// PixelsPerRow is the number of view pixels shown by one terminal row.
const PixelsPerRow = 2

var mouseButtons = [...]struct {
	mask   tcell.ButtonMask
	button gpucontext.MouseButton
}{
	{tcell.Button1, gpucontext.MouseButtonLeft},
	{tcell.Button2, gpucontext.MouseButtonRight},
	{tcell.Button3, gpucontext.MouseButtonMiddle},
}

// Mapper feeds terminal events into an input.Recorder.
type Mapper struct {
	rec     *input.Recorder
	buttons tcell.ButtonMask
}

// NewMapper returns a mapper recording into rec.
func NewMapper(rec *input.Recorder) *Mapper {
	return &Mapper{rec: rec}
}

// CellToPixel returns the view pixel at the centre of the upper half of
// cell (col, row).
func CellToPixel(col, row int) (x, y float64) {
	return float64(col) + 0.5, float64(row*PixelsPerRow) + 0.5
}

// Key records a key event as a tap. Printable runes are queued as text
// too.
func (m *Mapper) Key(ev *tcell.EventKey) {
	k, mods, r := mapKey(ev)
	if k != gpucontext.KeyUnknown {
		m.rec.Tap(k, mods)
	}
	if r != 0 && mods&(gpucontext.ModControl|gpucontext.ModAlt|gpucontext.ModSuper) == 0 {
		m.rec.QueueText(string(r))
	}
}

// Mouse records pointer motion, button transitions and wheel steps.
func (m *Mapper) Mouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	m.rec.MoveTo(CellToPixel(col, row))

	mask := ev.Buttons()
	for _, b := range mouseButtons {
		was, is := m.buttons&b.mask != 0, mask&b.mask != 0
		switch {
		case is && !was:
			m.rec.Press(b.button)
		case was && !is:
			m.rec.Release(b.button)
		}
	}
	m.buttons = mask & (tcell.Button1 | tcell.Button2 | tcell.Button3)

	var dx, dy float64
	if mask&tcell.WheelUp != 0 {
		dy--
	}
	if mask&tcell.WheelDown != 0 {
		dy++
	}
	if mask&tcell.WheelLeft != 0 {
		dx--
	}
	if mask&tcell.WheelRight != 0 {
		dx++
	}
	if dx != 0 || dy != 0 {
		m.rec.ScrollBy(dx, dy)
	}
}

// Reset releases everything, as when the terminal loses focus.
func (m *Mapper) Reset() {
	m.buttons = 0
	m.rec.ReleaseAll()
}
