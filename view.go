package webui

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
	"github.com/google/uuid"

	"github.com/gogpu/webui/engine"
	"github.com/gogpu/webui/framebuf"
	"github.com/gogpu/webui/input"
	"github.com/gogpu/webui/internal/logging"
	"github.com/gogpu/webui/lifecycle"
	"github.com/gogpu/webui/msgbus"
	"github.com/gogpu/webui/present"
)

// View is an engine surface embedded in a host window.
//
// Update, Draw and the handler methods belong to the host's update/draw
// goroutine and are not safe for concurrent use. Stats and Frame may be
// called from any goroutine.
type View struct {
	mgr     *lifecycle.Manager
	eng     engine.Engine
	surface engine.Surface
	opts    viewOptions

	bridge     *framebuf.Bridge
	bus        *msgbus.Bus
	registry   *msgbus.Registry
	outbound   *msgbus.Outbound
	translator *input.Translator
	presenter  *present.Presenter

	width, height int
	devToolsDown  bool
	closed        bool

	updates     atomic.Uint64
	paintErrors atomic.Uint64
}

// NewView creates a surface on mgr's engine and starts loading the start
// page. The engine must be Ready. The view is closed by mgr.Shutdown if
// the host has not closed it before.
func NewView(mgr *lifecycle.Manager, width, height int, opts ...Option) (*View, error) {
	if mgr == nil {
		return nil, ErrNilManager
	}
	if err := mgr.Require(); err != nil {
		return nil, err
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	v := &View{
		mgr:    mgr,
		opts:   o,
		bridge: framebuf.NewBridge(framebuf.WithCopyPolicy(o.copyPolicy)),
		bus:    msgbus.New(),

		registry: msgbus.NewRegistry(),
		width:    width,
		height:   height,
	}
	v.translator = input.NewTranslator(v.Bounds())

	eng := mgr.Engine()
	v.eng = eng
	trackEngine(eng)

	surface, err := eng.CreateSurface(engine.SurfaceOptions{
		Width:     width,
		Height:    height,
		StartPage: o.startPage,
		FrameRate: o.frameRate,
		OnPaint:   v.publish,
	})
	if err != nil {
		untrackEngine(eng)
		_ = v.bridge.Close()
		return nil, fmt.Errorf("webui: create surface: %w", err)
	}
	v.surface = surface
	v.outbound = msgbus.NewOutbound(surface, o.namespace)

	if err := v.start(); err != nil {
		untrackEngine(eng)
		_ = surface.Close()
		_ = v.bridge.Close()
		return nil, err
	}
	if err := mgr.Track(v); err != nil {
		return nil, err
	}

	logging.Logger().Debug("webui: view created",
		"surface", surface.ID(),
		"engine", eng.Name(),
		"width", width,
		"height", height,
		"page", o.startPage)
	return v, nil
}

// start registers the script binding and begins loading. The binding must
// exist before the page runs its first script.
func (v *View) start() error {
	binding := msgbus.NewBinding(v.bus)
	if err := v.surface.RegisterScriptBinding(v.opts.bindingName, binding); err != nil {
		return fmt.Errorf("webui: register binding %q: %w", v.opts.bindingName, err)
	}
	if err := v.surface.Load(); err != nil {
		return fmt.Errorf("webui: load %q: %w", v.opts.startPage, err)
	}
	return nil
}

// publish is the engine's paint callback. It runs on the engine goroutine.
func (v *View) publish(width, height int, pix []byte, dirty image.Rectangle) {
	err := v.bridge.Publish(width, height, pix, dirty)
	if err == nil || errors.Is(err, framebuf.ErrClosed) {
		return
	}
	v.paintErrors.Add(1)
	logging.Logger().Error("webui: publish frame", "surface", v.surface.ID(), "err", err)
}

// ID returns the engine surface ID.
func (v *View) ID() uuid.UUID {
	return v.surface.ID()
}

// Surface returns the underlying engine surface.
func (v *View) Surface() engine.Surface {
	return v.surface
}

// Update runs one host frame: it forwards input derived from s to the
// engine and dispatches messages published since the previous update.
//
// Handler failures are logged and do not fail the update. Update returns
// an error only when the view is closed or the engine is not Ready.
func (v *View) Update(s input.Snapshot) error {
	if v.closed {
		return ErrClosed
	}
	if err := v.mgr.Require(); err != nil {
		return err
	}
	v.updates.Add(1)

	events := v.translator.Next(s)
	if v.opts.inputEnabled {
		v.checkDevTools(s.Keys)
		input.Dispatch(v.surface, events)
	}

	if _, err := v.bus.DrainAndDispatch(v.registry); err != nil {
		logging.Logger().Warn("webui: message handlers failed", "surface", v.surface.ID(), "err", err)
	}
	return nil
}

// checkDevTools opens the engine's dev tools when the configured key goes
// down.
func (v *View) checkDevTools(keys input.KeySet) {
	if v.opts.devToolsKey == gpucontext.KeyUnknown {
		return
	}
	down := keys.Has(v.opts.devToolsKey)
	if down && !v.devToolsDown {
		if dt, ok := v.surface.(engine.DevTools); ok {
			dt.ShowDevTools()
		}
	}
	v.devToolsDown = down
}

// On registers the handler for messages named name, replacing any
// previous handler.
func (v *View) On(name string, h msgbus.Handler) error {
	if v.closed {
		return ErrClosed
	}
	return v.registry.Register(name, h)
}

// Off removes the handler for name.
func (v *View) Off(name string) {
	v.registry.Unregister(name)
}

// Push calls window[namespace][name](data) in the page, fire-and-forget.
func (v *View) Push(name string, data any) error {
	if v.closed {
		return ErrClosed
	}
	if err := v.mgr.Require(); err != nil {
		return err
	}
	return v.outbound.Push(name, data)
}

// Publish enqueues a host message for this view's own handlers. It is safe
// for concurrent use, so background goroutines can hand results to the
// update loop.
func (v *View) Publish(name, data string) error {
	return v.bus.Publish(name, data)
}

// Frame copies the latest painted frame into dst if one arrived since the
// previous Frame or Draw call. It reports whether dst was updated.
func (v *View) Frame(dst *framebuf.Frame) bool {
	return v.bridge.CopyIfDirty(dst)
}

// Draw uploads the latest frame if needed and draws it at the view
// position. dc usually comes from gogpu.Context.AsTextureDrawer().
func (v *View) Draw(dc gpucontext.TextureDrawer) error {
	if v.closed {
		return ErrClosed
	}
	if v.presenter == nil {
		p, err := present.New(v.bridge, present.WithPremultiplied(v.opts.premultiplied))
		if err != nil {
			return err
		}
		v.presenter = p
	}
	return v.presenter.RenderToPosition(dc, float32(v.opts.x), float32(v.opts.y))
}

// Resize changes the surface size. The next frame published by the engine
// has the new size; until then Draw keeps showing the old one.
func (v *View) Resize(width, height int) error {
	if v.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if width == v.width && height == v.height {
		return nil
	}
	if err := v.surface.Resize(width, height); err != nil {
		return fmt.Errorf("webui: resize: %w", err)
	}
	v.width, v.height = width, height
	v.translator.SetBounds(v.Bounds())
	return nil
}

// SetPosition moves the view's top-left corner.
func (v *View) SetPosition(x, y float64) {
	v.opts.x, v.opts.y = x, y
	v.translator.SetBounds(v.Bounds())
}

// Bounds returns the view rectangle in window coordinates.
func (v *View) Bounds() input.Rect {
	return input.Rect{
		X:      v.opts.x,
		Y:      v.opts.y,
		Width:  float64(v.width),
		Height: float64(v.height),
	}
}

// SetInputEnabled turns input forwarding on or off. Input sampled while
// disabled is discarded, so enabling does not replay it.
func (v *View) SetInputEnabled(enabled bool) {
	v.opts.inputEnabled = enabled
}

// Stats is a point-in-time snapshot of view counters.
type Stats struct {
	Bridge      framebuf.Stats
	Bus         msgbus.Stats
	Present     present.Stats
	Updates     uint64
	PaintErrors uint64
}

// Stats returns the current counters. Present is only valid when called
// from the draw goroutine.
func (v *View) Stats() Stats {
	s := Stats{
		Bridge:      v.bridge.Stats(),
		Bus:         v.bus.Stats(),
		Updates:     v.updates.Load(),
		PaintErrors: v.paintErrors.Load(),
	}
	if v.presenter != nil {
		s.Present = v.presenter.Stats()
	}
	return s
}

// Close releases the surface, the frame bridge and any GPU texture.
// Close is idempotent.
func (v *View) Close() error {
	if v.closed {
		return nil
	}
	v.closed = true
	v.mgr.Untrack(v)
	untrackEngine(v.eng)

	var errs []error
	if err := v.surface.Close(); err != nil {
		errs = append(errs, fmt.Errorf("webui: close surface: %w", err))
	}
	if err := v.bridge.Close(); err != nil {
		errs = append(errs, err)
	}
	if v.presenter != nil {
		if err := v.presenter.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
