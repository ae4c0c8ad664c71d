// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package softengine

import (
	"fmt"
	"io/fs"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dop251/goja"
	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"
	"github.com/google/uuid"

	"github.com/gogpu/webui/engine"
	"github.com/gogpu/webui/input"
)

// command is applied on the surface goroutine.
type command func(s *Surface)

// mailbox is an unbounded FIFO of commands. push never blocks.
type mailbox struct {
	mu     sync.Mutex
	items  []command
	signal chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{signal: make(chan struct{}, 1)}
}

func (m *mailbox) push(c command) {
	m.mu.Lock()
	m.items = append(m.items, c)
	m.mu.Unlock()
	select {
	case m.signal <- struct{}{}:
	default:
	}
}

func (m *mailbox) take() []command {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.items
	m.items = nil
	return items
}

// Stats holds surface counters.
type Stats struct {
	Commands     uint64
	Paints       uint64
	Scripts      uint64
	ScriptErrors uint64
}

// Surface is a software-rendered page. It implements engine.Surface and
// engine.DevTools.
type Surface struct {
	id   uuid.UUID
	eng  *Engine
	root fs.FS
	opts engine.SurfaceOptions
	box  *mailbox
	quit chan struct{}
	done chan struct{}

	closed atomic.Bool

	mu       sync.Mutex
	loaded   bool
	bindings map[string]any
	order    []string

	commands     atomic.Uint64
	paints       atomic.Uint64
	scripts      atomic.Uint64
	scriptErrors atomic.Uint64

	// Owned by the surface goroutine.
	rt       *goja.Runtime
	doc      *document
	r        *renderer
	pending  []string
	devtools bool
}

var (
	_ engine.Surface  = (*Surface)(nil)
	_ engine.DevTools = (*Surface)(nil)
)

func newSurface(e *Engine, root fs.FS, opts engine.SurfaceOptions) *Surface {
	return &Surface{
		id:       uuid.New(),
		eng:      e,
		root:     root,
		opts:     opts,
		box:      newMailbox(),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		bindings: make(map[string]any),
		doc:      newDocument(),
	}
}

// ID implements engine.Surface.
func (s *Surface) ID() uuid.UUID { return s.id }

func (s *Surface) log() *slog.Logger {
	return s.eng.log().With("surface", s.id)
}

// RegisterScriptBinding implements engine.Surface.
func (s *Surface) RegisterScriptBinding(name string, obj any) error {
	if name == "" {
		return fmt.Errorf("softengine: empty binding name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return engine.ErrSurfaceClosed
	}
	if s.loaded {
		return engine.ErrBindingAfterLoad
	}
	if _, ok := s.bindings[name]; !ok {
		s.order = append(s.order, name)
	}
	s.bindings[name] = obj
	return nil
}

// Load implements engine.Surface.
func (s *Surface) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed.Load() {
		return engine.ErrSurfaceClosed
	}
	if s.loaded {
		return engine.ErrAlreadyLoaded
	}
	s.loaded = true

	bindings := make([]binding, 0, len(s.order))
	for _, name := range s.order {
		bindings = append(bindings, binding{name, s.bindings[name]})
	}
	s.box.push(func(s *Surface) { s.load(bindings) })
	return nil
}

// ExecuteScript implements engine.Surface.
func (s *Surface) ExecuteScript(script string) error {
	if s.closed.Load() {
		return engine.ErrSurfaceClosed
	}
	s.box.push(func(s *Surface) { s.execute(script) })
	return nil
}

// Resize implements engine.Surface.
func (s *Surface) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", engine.ErrInvalidSize, width, height)
	}
	if s.closed.Load() {
		return engine.ErrSurfaceClosed
	}
	s.box.push(func(s *Surface) { s.resize(width, height) })
	return nil
}

// ShowDevTools implements engine.DevTools. It toggles a diagnostics
// overlay.
func (s *Surface) ShowDevTools() {
	s.send(func(s *Surface) {
		s.devtools = !s.devtools
		s.doc.invalidate(s.r.overlayRect())
	})
}

// SendPointerMove implements input.Sink.
func (s *Surface) SendPointerMove(x, y float64, exited bool) {
	s.send(func(s *Surface) {
		s.doc.hover(x, y, exited)
		s.call("onPointer", x, y, exited)
	})
}

// SendButton implements input.Sink. Only the left button clicks elements.
func (s *Surface) SendButton(b input.Button, x, y float64, down bool) {
	if b != gpucontext.MouseButtonLeft {
		return
	}
	s.send(func(s *Surface) {
		if down {
			hit := s.doc.hit(x, y)
			s.doc.press(hit)
			s.doc.setFocus(hit)
			return
		}
		if e := s.doc.release(x, y); e != nil {
			s.call("onClick", e.id)
		}
	})
}

// SendScroll implements input.Sink.
func (s *Surface) SendScroll(x, y, dx, dy float64) {
	s.send(func(s *Surface) { s.call("onScroll", dx, dy) })
}

// SendKey implements input.Sink.
func (s *Surface) SendKey(k input.Key, m input.Modifiers, down bool) {
	s.send(func(s *Surface) {
		if down && k == gpucontext.KeyBackspace {
			s.doc.backspace()
		}
		s.call("onKey", int(k), down, int(m))
	})
}

// SendChar implements input.Sink.
func (s *Surface) SendChar(r rune, m input.Modifiers) {
	s.send(func(s *Surface) {
		s.doc.typeRune(r)
		s.call("onChar", string(r))
	})
}

// send queues an input command. Input before the page loaded is dropped.
func (s *Surface) send(c command) {
	if s.closed.Load() {
		return
	}
	s.box.push(func(s *Surface) {
		if s.rt == nil {
			return
		}
		c(s)
	})
}

// Close implements engine.Surface. It waits for the surface goroutine to
// exit.
func (s *Surface) Close() error {
	s.mu.Lock()
	if s.closed.Swap(true) {
		s.mu.Unlock()
		return nil
	}
	close(s.quit)
	s.mu.Unlock()

	<-s.done
	s.eng.forget(s)
	return nil
}

// Stats returns the surface counters.
func (s *Surface) Stats() Stats {
	return Stats{
		Commands:     s.commands.Load(),
		Paints:       s.paints.Load(),
		Scripts:      s.scripts.Load(),
		ScriptErrors: s.scriptErrors.Load(),
	}
}

// run is the surface goroutine: it applies queued commands as they arrive
// and paints on every frame tick when the document changed.
func (s *Surface) run() {
	defer close(s.done)

	r, err := newRenderer(s.opts.Width, s.opts.Height)
	if err != nil {
		s.log().Error("softengine: surface not started", "err", err)
		<-s.quit
		return
	}
	s.r = r
	s.doc.measure = r.measure
	defer func() {
		if err := r.close(); err != nil {
			s.log().Warn("softengine: release renderer", "err", err)
		}
	}()

	tick := time.NewTicker(time.Second / time.Duration(s.opts.FrameRate))
	defer tick.Stop()

	for {
		select {
		case <-s.quit:
			return
		case <-s.box.signal:
			s.apply()
		case <-tick.C:
			s.apply()
			s.paint()
		}
	}
}

func (s *Surface) apply() {
	for _, c := range s.box.take() {
		s.commands.Add(1)
		c(s)
	}
}

func (s *Surface) paint() {
	if s.rt == nil || !s.doc.changed() {
		return
	}
	overlay := s.overlay()
	bounds := s.r.bounds()
	dirty := s.doc.takeDirty(bounds)
	if len(overlay) > 0 {
		dirty = dirty.Union(s.r.overlayRect())
	}

	pix, err := s.r.draw(s.doc, overlay)
	if err != nil {
		s.log().Error("softengine: paint failed", "err", err)
		return
	}
	s.paints.Add(1)
	w, h := s.r.size()
	s.opts.OnPaint(w, h, pix, dirty)
}

func (s *Surface) overlay() []string {
	if !s.devtools {
		return nil
	}
	st := s.Stats()
	w, h := s.r.size()
	return []string{
		fmt.Sprintf("surface %s", s.id.String()[:8]),
		fmt.Sprintf("size %dx%d @ %d fps", w, h, s.opts.FrameRate),
		fmt.Sprintf("paints %d  commands %d", st.Paints, st.Commands),
		fmt.Sprintf("scripts %d  errors %d", st.Scripts, st.ScriptErrors),
		fmt.Sprintf("elements %d", len(s.doc.elems)),
	}
}

func (s *Surface) resize(width, height int) {
	if err := s.r.resize(width, height); err != nil {
		s.log().Warn("softengine: resize failed", "err", err)
		return
	}
	s.doc.invalidateAll()
}

type binding struct {
	name string
	obj  any
}

// load creates the script runtime, installs the bindings and runs the
// start page.
func (s *Surface) load(bindings []binding) {
	rt := goja.New()
	rt.SetFieldNameMapper(goja.UncapFieldNameMapper())
	global := rt.GlobalObject()
	must(rt.Set("window", global))
	must(rt.Set("document", &documentAPI{s: s}))
	for _, b := range bindings {
		if err := rt.Set(b.name, b.obj); err != nil {
			s.log().Warn("softengine: binding not installed", "name", b.name, "err", err)
		}
	}
	s.rt = rt

	page, fallback, err := readPage(s.root, s.opts.StartPage)
	if err != nil {
		s.log().Error("softengine: load failed", "page", s.opts.StartPage, "err", err)
		page, fallback = defaultPage, true
	}
	if fallback {
		s.log().Warn("softengine: start page not found, using built-in page", "page", s.opts.StartPage)
	}
	s.doc.invalidateAll()
	for _, script := range pageScripts(page) {
		s.execute(script)
	}
	pending := s.pending
	s.pending = nil
	for _, script := range pending {
		s.execute(script)
	}
	s.log().Debug("softengine: page loaded", "page", s.opts.StartPage, "builtin", fallback)
}

// execute runs script in the page. Scripts sent before the page loaded run
// right after it.
func (s *Surface) execute(script string) {
	if s.rt == nil {
		s.pending = append(s.pending, script)
		return
	}
	s.scripts.Add(1)
	if _, err := s.rt.RunString(script); err != nil {
		s.scriptError("script", err)
	}
}

// call invokes window[name] with args when it is a function.
func (s *Surface) call(name string, args ...any) {
	fn, ok := goja.AssertFunction(s.rt.GlobalObject().Get(name))
	if !ok {
		return
	}
	vals := make([]goja.Value, len(args))
	for i, a := range args {
		vals[i] = s.rt.ToValue(a)
	}
	s.scripts.Add(1)
	if _, err := fn(goja.Undefined(), vals...); err != nil {
		s.scriptError(name, err)
	}
}

func (s *Surface) scriptError(where string, err error) {
	s.scriptErrors.Add(1)
	s.log().Warn("softengine: script error", "in", where, "err", err)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// documentAPI is the document object seen by scripts. Its methods run on
// the surface goroutine.
type documentAPI struct {
	s *Surface
}

func (d *documentAPI) SetBackground(hex string) {
	d.s.doc.setBackground(gg.Hex(hex))
}

func (d *documentAPI) AddButton(id string, x, y, w, h float64, label string) error {
	return d.s.doc.add(&element{id: id, kind: kindButton, x: x, y: y, w: w, h: h, text: label})
}

func (d *documentAPI) AddLabel(id string, x, y float64, text string) error {
	return d.s.doc.add(&element{id: id, kind: kindLabel, x: x, y: y, text: text})
}

func (d *documentAPI) AddTextBox(id string, x, y, w, h float64) error {
	return d.s.doc.add(&element{id: id, kind: kindTextBox, x: x, y: y, w: w, h: h})
}

func (d *documentAPI) SetText(id, text string) bool {
	return d.s.doc.setText(id, text)
}

func (d *documentAPI) GetText(id string) string {
	if e := d.s.doc.find(id); e != nil {
		return e.text
	}
	return ""
}

func (d *documentAPI) Remove(id string) bool {
	return d.s.doc.remove(id)
}

func (d *documentAPI) Log(msg string) {
	d.s.log().Info("softengine: page log", "msg", msg)
}
