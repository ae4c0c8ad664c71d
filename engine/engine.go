// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package engine

import (
	"errors"
	"fmt"
	"image"

	"github.com/google/uuid"

	"github.com/gogpu/webui/input"
)

// Engine is a process-wide embedded content engine.
//
// Initialize and Shutdown are called once each, from the host's main
// thread, by a lifecycle.Manager.
type Engine interface {
	// Name returns the registry name of the engine.
	Name() string

	// Initialize starts the engine. contentRoot is the directory content
	// is loaded from.
	Initialize(contentRoot string) error

	// Shutdown releases process-wide engine resources. Surfaces still open
	// are closed.
	Shutdown() error

	// CreateSurface creates an off-screen surface. The surface does not
	// load content until Load is called.
	CreateSurface(opts SurfaceOptions) (Surface, error)
}

// Surface is one off-screen document rendered by an engine.
//
// The input.Sink methods and ExecuteScript never block on rendering; the
// engine applies them on its own goroutine in call order.
type Surface interface {
	input.Sink

	// ID identifies the surface for logging and diagnostics.
	ID() uuid.UUID

	// RegisterScriptBinding exposes obj to scripts under name. It must be
	// called before Load; afterwards it returns ErrBindingAfterLoad.
	RegisterScriptBinding(name string, obj any) error

	// Load starts loading the start page.
	Load() error

	// ExecuteScript runs script text in the page without waiting for a
	// result.
	ExecuteScript(script string) error

	// Resize changes the surface size. The next painted frame has the new
	// dimensions.
	Resize(width, height int) error

	// Close releases the surface. Close is idempotent.
	Close() error
}

// DevTools is implemented by surfaces that can show diagnostic tooling.
type DevTools interface {
	ShowDevTools()
}

// PaintFunc receives a painted frame. It is called from the engine's paint
// goroutine. pix holds width*height tightly packed BGRA pixels and is only
// valid for the duration of the call. dirty is the changed region; an empty
// rectangle means the whole frame.
type PaintFunc func(width, height int, pix []byte, dirty image.Rectangle)

// DefaultFrameRate is the paint rate used when SurfaceOptions.FrameRate is
// zero.
const DefaultFrameRate = 30

// MaxFrameRate caps SurfaceOptions.FrameRate.
const MaxFrameRate = 1000

// SurfaceOptions configures a new surface.
type SurfaceOptions struct {
	// Width and Height are the initial surface size in pixels.
	Width, Height int

	// StartPage is the page loaded by Load, relative to the content root.
	StartPage string

	// FrameRate caps how often the engine paints, in frames per second.
	// Validate clamps it to MaxFrameRate.
	FrameRate int

	// OnPaint receives painted frames.
	OnPaint PaintFunc
}

// Validate checks the options and fills in defaults.
func (o *SurfaceOptions) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, o.Width, o.Height)
	}
	if o.OnPaint == nil {
		return ErrNoPaintFunc
	}
	switch {
	case o.FrameRate <= 0:
		o.FrameRate = DefaultFrameRate
	case o.FrameRate > MaxFrameRate:
		o.FrameRate = MaxFrameRate
	}
	return nil
}

// Errors shared by engine implementations.
var (
	// ErrNotInitialized is returned when using an engine before Initialize
	// or after Shutdown.
	ErrNotInitialized = errors.New("engine: not initialized")

	// ErrBindingAfterLoad is returned by RegisterScriptBinding once the
	// surface started loading.
	ErrBindingAfterLoad = errors.New("engine: script binding registered after load")

	// ErrAlreadyLoaded is returned by a second Load call.
	ErrAlreadyLoaded = errors.New("engine: surface already loaded")

	// ErrSurfaceClosed is returned when using a closed surface.
	ErrSurfaceClosed = errors.New("engine: surface is closed")

	// ErrInvalidSize is returned for non-positive surface dimensions.
	ErrInvalidSize = errors.New("engine: invalid surface size")

	// ErrNoPaintFunc is returned when SurfaceOptions.OnPaint is nil.
	ErrNoPaintFunc = errors.New("engine: OnPaint is required")
)
