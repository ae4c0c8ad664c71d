// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package termhost

import (
	"image"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/gogpu/webui/framebuf"
)

const upperHalf = '▀'

// Canvas is the part of tcell.Screen the renderer draws to.
type Canvas interface {
	Size() (width, height int)
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// Renderer draws frames as half-block cells.
type Renderer struct {
	width, height int
}

// Invalidate forces the next Draw to repaint the whole frame.
func (r *Renderer) Invalidate() {
	r.width, r.height = 0, 0
}

// Draw paints the dirty part of f at the top-left of c, leaving the last
// row free. It returns the cell rectangle it painted.
func (r *Renderer) Draw(c Canvas, f *framebuf.Frame) image.Rectangle {
	cols, rows := c.Size()
	rows--
	area := f.Dirty
	if f.Width != r.width || f.Height != r.height || area.Empty() {
		area = f.Bounds()
		r.width, r.height = f.Width, f.Height
	}

	cells := image.Rect(
		area.Min.X, area.Min.Y/PixelsPerRow,
		area.Max.X, (area.Max.Y+PixelsPerRow-1)/PixelsPerRow,
	).Intersect(image.Rect(0, 0, cols, rows))

	for cy := cells.Min.Y; cy < cells.Max.Y; cy++ {
		top := cy * PixelsPerRow
		for cx := cells.Min.X; cx < cells.Max.X; cx++ {
			fg := pixelColor(f, cx, top)
			bg := pixelColor(f, cx, top+1)
			c.SetContent(cx, cy, upperHalf, nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}
	return cells
}

// pixelColor returns the colour of the BGRA pixel (x, y), or the default
// colour outside the frame.
func pixelColor(f *framebuf.Frame, x, y int) tcell.Color {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return tcell.ColorDefault
	}
	i := f.PixelOffset(x, y)
	return tcell.NewRGBColor(int32(f.Pix[i+2]), int32(f.Pix[i+1]), int32(f.Pix[i]))
}

// DrawStatus writes s on the last row of c, clipped to the width and
// padded with spaces.
func DrawStatus(c Canvas, s string, style tcell.Style) {
	cols, rows := c.Size()
	if rows <= 0 || cols <= 0 {
		return
	}
	y := rows - 1
	s = runewidth.Truncate(s, cols, "…")

	x := 0
	for _, ch := range s {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		c.SetContent(x, y, ch, nil, style)
		x += w
	}
	for ; x < cols; x++ {
		c.SetContent(x, y, ' ', nil, style)
	}
}
