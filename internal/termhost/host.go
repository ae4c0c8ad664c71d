// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package termhost

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/webui"
	"github.com/gogpu/webui/framebuf"
	"github.com/gogpu/webui/input"
	"github.com/gogpu/webui/internal/logging"
)

// DefaultFrameRate is the host update rate used when none is configured.
const DefaultFrameRate = 30

// MaxFrameRate caps WithFrameRate.
const MaxFrameRate = 1000

// Screen is the part of tcell.Screen the host uses.
type Screen interface {
	Canvas
	Clear()
	Show()
	HideCursor()
	EnableMouse(...tcell.MouseFlags)
	EnableFocus()
	PollEvent() tcell.Event
}

// ViewSize returns the view size in pixels that fills a terminal of cols
// by rows cells above the status line.
func ViewSize(cols, rows int) (width, height int) {
	return max(cols, 1), max(rows-1, 1) * PixelsPerRow
}

// Option configures a Host.
type Option func(*Host)

// WithFrameRate sets how often the host samples input and redraws.
func WithFrameRate(fps int) Option {
	return func(h *Host) {
		if fps > 0 {
			h.fps = min(fps, MaxFrameRate)
		}
	}
}

// WithStatus sets the function producing the status line text.
func WithStatus(fn func() string) Option {
	return func(h *Host) {
		h.status = fn
	}
}

// WithStatusStyle sets the status line style.
func WithStatusStyle(style tcell.Style) Option {
	return func(h *Host) {
		h.statusStyle = style
	}
}

// Host drives a view from a terminal: it samples terminal input once per
// frame, runs View.Update and draws new frames.
type Host struct {
	screen   Screen
	view     *webui.View
	rec      *input.Recorder
	mapper   *Mapper
	renderer Renderer
	frame    framebuf.Frame

	fps         int
	status      func() string
	statusStyle tcell.Style

	stop     chan struct{}
	stopOnce sync.Once
}

// New returns a host for view on an initialized screen.
func New(screen Screen, view *webui.View, opts ...Option) *Host {
	rec := input.NewRecorder()
	h := &Host{
		screen:      screen,
		view:        view,
		rec:         rec,
		mapper:      NewMapper(rec),
		fps:         DefaultFrameRate,
		statusStyle: tcell.StyleDefault.Reverse(true),
		stop:        make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Stop makes Run return after the current frame. Safe for concurrent use.
func (h *Host) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

// Run pumps terminal events and frames until Ctrl+C, Stop or ctx is
// done. The caller owns the screen and finalizes it afterwards, which
// also ends the event pump.
func (h *Host) Run(ctx context.Context) error {
	h.screen.HideCursor()
	h.screen.EnableMouse()
	h.screen.EnableFocus()
	h.screen.Clear()
	if err := h.fit(); err != nil {
		return err
	}

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	tick := time.NewTicker(time.Second / time.Duration(h.fps))
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-h.stop:
			return nil
		case ev := <-events:
			quit, err := h.handle(ev)
			if quit || err != nil {
				return err
			}
		case <-tick.C:
			if err := h.update(); err != nil {
				return err
			}
		}
	}
}

// handle applies one terminal event. It reports whether the user asked to
// quit.
func (h *Host) handle(ev tcell.Event) (quit bool, err error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isInterrupt(ev) {
			return true, nil
		}
		h.mapper.Key(ev)
	case *tcell.EventMouse:
		h.mapper.Mouse(ev)
	case *tcell.EventFocus:
		if !ev.Focused {
			h.mapper.Reset()
		}
	case *tcell.EventResize:
		h.screen.Clear()
		return false, h.fit()
	}
	return false, nil
}

func isInterrupt(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyCtrlC {
		return true
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == 'c' && ev.Modifiers()&tcell.ModCtrl != 0
}

// fit resizes the view to the terminal.
func (h *Host) fit() error {
	w, hgt := ViewSize(h.screen.Size())
	if err := h.view.Resize(w, hgt); err != nil {
		return fmt.Errorf("termhost: resize view: %w", err)
	}
	h.renderer.Invalidate()
	logging.Logger().Debug("termhost: view resized", "width", w, "height", hgt)
	return nil
}

func (h *Host) update() error {
	if err := h.view.Update(h.rec.Snapshot()); err != nil {
		if errors.Is(err, webui.ErrClosed) {
			h.Stop()
			return nil
		}
		return err
	}
	if h.view.Frame(&h.frame) {
		h.renderer.Draw(h.screen, &h.frame)
	}
	if h.status != nil {
		DrawStatus(h.screen, h.status(), h.statusStyle)
	}
	h.screen.Show()
	return nil
}
