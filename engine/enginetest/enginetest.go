// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package enginetest provides an in-memory engine that records every call,
// for testing hosts without a real content engine.
package enginetest

import (
	"image"
	"sync"

	"github.com/google/uuid"

	"github.com/gogpu/webui/engine"
	"github.com/gogpu/webui/input"
)

// Name is the name reported by Engine.
const Name = "fake"

// Engine is a recording engine.Engine. The exported error fields make the
// matching call fail.
type Engine struct {
	mu sync.Mutex

	InitErr     error
	ShutdownErr error
	SurfaceErr  error

	contentRoot string
	inits       int
	shutdowns   int
	running     bool
	surfaces    []*Surface
}

var _ engine.Engine = (*Engine)(nil)

// New returns an uninitialized fake engine.
func New() *Engine {
	return &Engine{}
}

// Name implements engine.Engine.
func (e *Engine) Name() string { return Name }

// Initialize implements engine.Engine.
func (e *Engine) Initialize(contentRoot string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.inits++
	if e.InitErr != nil {
		return e.InitErr
	}
	e.contentRoot = contentRoot
	e.running = true
	return nil
}

// Shutdown implements engine.Engine. Open surfaces are closed.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	surfaces := e.surfaces
	e.shutdowns++
	e.running = false
	err := e.ShutdownErr
	e.mu.Unlock()

	for _, s := range surfaces {
		_ = s.Close()
	}
	return err
}

// CreateSurface implements engine.Engine.
func (e *Engine) CreateSurface(opts engine.SurfaceOptions) (engine.Surface, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return nil, engine.ErrNotInitialized
	}
	if e.SurfaceErr != nil {
		return nil, e.SurfaceErr
	}
	s := &Surface{
		id:       uuid.New(),
		opts:     opts,
		width:    opts.Width,
		height:   opts.Height,
		bindings: make(map[string]any),
	}
	e.surfaces = append(e.surfaces, s)
	return s, nil
}

// ContentRoot returns the root passed to Initialize.
func (e *Engine) ContentRoot() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.contentRoot
}

// Calls returns how often Initialize and Shutdown were called.
func (e *Engine) Calls() (inits, shutdowns int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.inits, e.shutdowns
}

// Surfaces returns every surface created so far.
func (e *Engine) Surfaces() []*Surface {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Surface(nil), e.surfaces...)
}

// Last returns the most recently created surface, or nil.
func (e *Engine) Last() *Surface {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.surfaces) == 0 {
		return nil
	}
	return e.surfaces[len(e.surfaces)-1]
}

// Surface is a recording engine.Surface. Input calls are stored as the
// equivalent input.Event values.
type Surface struct {
	mu sync.Mutex

	id            uuid.UUID
	opts          engine.SurfaceOptions
	width, height int
	bindings      map[string]any
	loaded        bool
	closed        bool
	events        []input.Event
	scripts       []string
	devTools      int

	// ScriptErr makes ExecuteScript fail.
	ScriptErr error
}

var (
	_ engine.Surface  = (*Surface)(nil)
	_ engine.DevTools = (*Surface)(nil)
)

// ID implements engine.Surface.
func (s *Surface) ID() uuid.UUID { return s.id }

func (s *Surface) record(e input.Event) {
	s.mu.Lock()
	s.events = append(s.events, e)
	s.mu.Unlock()
}

// SendPointerMove implements input.Sink.
func (s *Surface) SendPointerMove(x, y float64, exited bool) {
	s.record(input.PointerMove{X: x, Y: y, Exited: exited})
}

// SendButton implements input.Sink.
func (s *Surface) SendButton(b input.Button, x, y float64, down bool) {
	if down {
		s.record(input.ButtonDown{Button: b, X: x, Y: y})
		return
	}
	s.record(input.ButtonUp{Button: b, X: x, Y: y})
}

// SendScroll implements input.Sink.
func (s *Surface) SendScroll(x, y, dx, dy float64) {
	s.record(input.Scroll{X: x, Y: y, DeltaX: dx, DeltaY: dy})
}

// SendKey implements input.Sink.
func (s *Surface) SendKey(k input.Key, m input.Modifiers, down bool) {
	if down {
		s.record(input.KeyDown{Key: k, Modifiers: m})
		return
	}
	s.record(input.KeyUp{Key: k, Modifiers: m})
}

// SendChar implements input.Sink.
func (s *Surface) SendChar(r rune, m input.Modifiers) {
	s.record(input.CharInput{Rune: r, Modifiers: m})
}

// RegisterScriptBinding implements engine.Surface.
func (s *Surface) RegisterScriptBinding(name string, obj any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return engine.ErrSurfaceClosed
	}
	if s.loaded {
		return engine.ErrBindingAfterLoad
	}
	s.bindings[name] = obj
	return nil
}

// Load implements engine.Surface.
func (s *Surface) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return engine.ErrSurfaceClosed
	}
	if s.loaded {
		return engine.ErrAlreadyLoaded
	}
	s.loaded = true
	return nil
}

// ExecuteScript implements engine.Surface.
func (s *Surface) ExecuteScript(script string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return engine.ErrSurfaceClosed
	}
	if s.ScriptErr != nil {
		return s.ScriptErr
	}
	s.scripts = append(s.scripts, script)
	return nil
}

// Resize implements engine.Surface.
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return engine.ErrInvalidSize
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return engine.ErrSurfaceClosed
	}
	s.width, s.height = width, height
	return nil
}

// Close implements engine.Surface.
func (s *Surface) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// ShowDevTools implements engine.DevTools.
func (s *Surface) ShowDevTools() {
	s.mu.Lock()
	s.devTools++
	s.mu.Unlock()
}

// Options returns the options the surface was created with.
func (s *Surface) Options() engine.SurfaceOptions {
	return s.opts
}

// Size returns the current surface size.
func (s *Surface) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Binding returns the object registered under name.
func (s *Surface) Binding(name string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	obj, ok := s.bindings[name]
	return obj, ok
}

// Loaded reports whether Load was called.
func (s *Surface) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Closed reports whether Close was called.
func (s *Surface) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Events returns and clears the recorded input events.
func (s *Surface) Events() []input.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := s.events
	s.events = nil
	return ev
}

// Scripts returns and clears the executed scripts.
func (s *Surface) Scripts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc := s.scripts
	s.scripts = nil
	return sc
}

// DevToolsShown returns how often ShowDevTools was called.
func (s *Surface) DevToolsShown() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.devTools
}

// Paint delivers a frame of the current size through OnPaint, as the
// engine's paint goroutine would.
func (s *Surface) Paint(pix []byte, dirty image.Rectangle) {
	w, h := s.Size()
	s.opts.OnPaint(w, h, pix, dirty)
}

// PaintSolid paints the whole surface with one BGRA pixel value.
func (s *Surface) PaintSolid(b, g, r, a byte) {
	w, h := s.Size()
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = b, g, r, a
	}
	s.opts.OnPaint(w, h, pix, image.Rectangle{})
}
