// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package softengine

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	fontSize    = 14
	cornerRound = 4
	overlayW     = 220
	overlayLine  = 18
	overlayLines = 5
)

var (
	buttonColor      = gg.Hex("#4a90d9")
	buttonHoverColor = gg.Hex("#5fa3e6")
	buttonDownColor  = gg.Hex("#2f6fb0")
	buttonTextColor  = gg.Hex("#ffffff")
	labelColor       = gg.Hex("#202020")
	boxColor         = gg.Hex("#ffffff")
	boxBorderColor   = gg.Hex("#8a8a8a")
	boxFocusColor    = gg.Hex("#4a90d9")
	overlayColor     = gg.RGBA{R: 0, G: 0, B: 0, A: 0.75}
	overlayTextColor = gg.Hex("#9ef01a")
)

// renderer draws a document into a gg context and converts the result to
// the BGRA layout painted frames use.
type renderer struct {
	dc   *gg.Context
	src  *text.FontSource
	bgra []byte
}

func newRenderer(width, height int) (*renderer, error) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("softengine: load font: %w", err)
	}
	dc := gg.NewContext(width, height)
	dc.SetFont(src.Face(fontSize))
	return &renderer{dc: dc, src: src}, nil
}

func (r *renderer) size() (int, int) { return r.dc.Width(), r.dc.Height() }

func (r *renderer) bounds() image.Rectangle {
	return image.Rect(0, 0, r.dc.Width(), r.dc.Height())
}

func (r *renderer) resize(width, height int) error {
	return r.dc.Resize(width, height)
}

func (r *renderer) measure(s string) (w, h float64) {
	return r.dc.MeasureString(s)
}

// overlayRect is the area covered by the dev tools overlay.
func (r *renderer) overlayRect() image.Rectangle {
	w := r.dc.Width()
	return image.Rect(w-overlayW-8, 8, w-8, 8+12+overlayLines*overlayLine).Intersect(r.bounds())
}

// draw renders d, plus the overlay lines when non-empty, and returns the
// frame as tightly packed BGRA. The returned slice is reused by the next
// call.
func (r *renderer) draw(d *document, overlay []string) ([]byte, error) {
	dc := r.dc
	dc.ClearWithColor(d.background)

	for _, e := range d.elems {
		if err := r.drawElement(e, e == d.focus); err != nil {
			return nil, fmt.Errorf("softengine: draw %s %q: %w", e.kind, e.id, err)
		}
	}
	if len(overlay) > 0 {
		if err := r.drawOverlay(overlay); err != nil {
			return nil, fmt.Errorf("softengine: draw overlay: %w", err)
		}
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, err
	}
	return r.toBGRA(), nil
}

func (r *renderer) drawElement(e *element, focused bool) error {
	dc := r.dc
	switch e.kind {
	case kindButton:
		c := buttonColor
		switch {
		case e.pressed:
			c = buttonDownColor
		case e.hovered:
			c = buttonHoverColor
		}
		dc.SetColor(c.Color())
		dc.DrawRoundedRectangle(e.x, e.y, e.w, e.h, cornerRound)
		if err := dc.Fill(); err != nil {
			return err
		}
		dc.SetColor(buttonTextColor.Color())
		dc.DrawStringAnchored(e.text, e.x+e.w/2, e.y+e.h/2, 0.5, 0.35)

	case kindLabel:
		dc.SetColor(labelColor.Color())
		dc.DrawStringAnchored(e.text, e.x, e.y, 0, 0.75)

	case kindTextBox:
		dc.SetColor(boxColor.Color())
		dc.DrawRectangle(e.x, e.y, e.w, e.h)
		if err := dc.Fill(); err != nil {
			return err
		}
		border := boxBorderColor
		if focused {
			border = boxFocusColor
		}
		dc.SetColor(border.Color())
		dc.SetLineWidth(1)
		dc.DrawRectangle(e.x+0.5, e.y+0.5, e.w-1, e.h-1)
		if err := dc.Stroke(); err != nil {
			return err
		}
		dc.SetColor(labelColor.Color())
		dc.DrawStringAnchored(e.text, e.x+6, e.y+e.h/2, 0, 0.35)
		if focused {
			tw, _ := dc.MeasureString(e.text)
			cx := e.x + 7 + tw
			dc.DrawLine(cx, e.y+5, cx, e.y+e.h-5)
			if err := dc.Stroke(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *renderer) drawOverlay(lines []string) error {
	dc := r.dc
	box := r.overlayRect()
	dc.SetColor(overlayColor.Color())
	dc.DrawRectangle(float64(box.Min.X), float64(box.Min.Y), float64(box.Dx()), float64(box.Dy()))
	if err := dc.Fill(); err != nil {
		return err
	}
	dc.SetColor(overlayTextColor.Color())
	for i, line := range lines {
		dc.DrawString(line, float64(box.Min.X+8), float64(box.Min.Y+6+(i+1)*overlayLine-4))
	}
	return nil
}

// toBGRA swizzles the context's RGBA pixmap into r.bgra.
func (r *renderer) toBGRA() []byte {
	src := r.dc.ResizeTarget().Data()
	if cap(r.bgra) < len(src) {
		r.bgra = make([]byte, len(src))
	}
	dst := r.bgra[:len(src)]
	for i := 0; i+3 < len(src); i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
	r.bgra = dst
	return dst
}

func (r *renderer) close() error {
	_ = r.dc.Close()
	return r.src.Close()
}
