// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framebuf

import (
	"errors"
	"fmt"
	"image"
	"math"
	"sync"
	"sync/atomic"
)

// Common errors returned by Bridge operations.
var (
	// ErrClosed is returned when publishing to a closed bridge.
	ErrClosed = errors.New("framebuf: bridge is closed")

	// ErrInvalidDimensions is returned when width or height is not positive
	// or the frame size does not fit in an int.
	ErrInvalidDimensions = errors.New("framebuf: invalid dimensions")

	// ErrShortBuffer is returned when the source holds fewer bytes than
	// width*height*BytesPerPixel.
	ErrShortBuffer = errors.New("framebuf: source buffer too short")
)

// CopyPolicy selects how much of a published frame is copied.
type CopyPolicy uint8

const (
	// CopyFull copies the entire frame on every publish.
	CopyFull CopyPolicy = iota

	// CopyDirtyRect copies only the dirty rectangle when the frame
	// dimensions are unchanged.
	CopyDirtyRect
)

// String returns the policy name.
func (p CopyPolicy) String() string {
	switch p {
	case CopyFull:
		return "full"
	case CopyDirtyRect:
		return "dirty-rect"
	default:
		return "unknown"
	}
}

// ParseCopyPolicy returns the policy named by s, as printed by String.
func ParseCopyPolicy(s string) (CopyPolicy, error) {
	switch s {
	case "full", "":
		return CopyFull, nil
	case "dirty-rect":
		return CopyDirtyRect, nil
	}
	return CopyFull, fmt.Errorf("framebuf: unknown copy policy %q", s)
}

// Option configures a Bridge during creation.
type Option func(*Bridge)

// WithCopyPolicy sets the copy policy. The default is CopyFull.
func WithCopyPolicy(p CopyPolicy) Option {
	return func(b *Bridge) {
		b.policy = p
	}
}

// Bridge is a single-producer, single-consumer frame handoff.
//
// Publish is called from the engine's paint goroutine; TakeIfDirty and
// CopyIfDirty are called from the host's draw goroutine. Close may be called
// from any goroutine, including while a publish is in progress.
type Bridge struct {
	// dirty is set by Publish and cleared by the consumer's swap.
	// It is written only while mu is held, and read without it on the
	// fast path.
	dirty atomic.Bool

	// mu guards frame and closed. Held only for the duration of a copy.
	mu     sync.Mutex
	frame  Frame
	closed bool

	policy CopyPolicy
	seq    uint64

	publishes     atomic.Uint64
	takes         atomic.Uint64
	coalesced     atomic.Uint64
	reallocations atomic.Uint64
	bytesCopied   atomic.Uint64
}

// NewBridge creates an empty bridge. The frame buffer is allocated lazily
// on the first publish.
func NewBridge(opts ...Option) *Bridge {
	b := &Bridge{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Policy returns the configured copy policy.
func (b *Bridge) Policy() CopyPolicy {
	return b.policy
}

// Publish copies a painted frame into the bridge and marks it dirty.
//
// src must hold at least width*height*BytesPerPixel bytes of tightly packed
// BGRA pixels. dirty is the region that changed; an empty rectangle means
// the whole frame. When the dimensions differ from the held frame the
// buffer is reallocated and the whole frame becomes dirty.
//
// The bridge keeps no reference to src after Publish returns.
func (b *Bridge) Publish(width, height int, src []byte, dirty image.Rectangle) error {
	if width <= 0 || height <= 0 || width > math.MaxInt/BytesPerPixel/height {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	size := frameSize(width, height)
	if len(src) < size {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrShortBuffer, len(src), size)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrClosed
	}

	bounds := image.Rect(0, 0, width, height)
	dirty = dirty.Intersect(bounds)
	if dirty.Empty() {
		dirty = bounds
	}

	reallocated := b.frame.resize(width, height)
	if reallocated {
		b.reallocations.Add(1)
		dirty = bounds
		b.frame.Dirty = image.Rectangle{}
	}

	var copied int
	if b.policy == CopyDirtyRect && !reallocated && dirty != bounds {
		copied = copyRect(b.frame.Pix, src, width, dirty)
	} else {
		copied = copy(b.frame.Pix, src[:size])
	}

	b.seq++
	b.frame.Seq = b.seq
	b.frame.Dirty = b.frame.Dirty.Union(dirty)

	b.publishes.Add(1)
	b.bytesCopied.Add(uint64(copied)) //nolint:gosec // copied is a non-negative byte count
	if b.dirty.Swap(true) {
		b.coalesced.Add(1)
	}
	return nil
}

// IsDirty reports whether a frame is waiting for the consumer.
// It never blocks.
func (b *Bridge) IsDirty() bool {
	return b.dirty.Load()
}

// TakeIfDirty clears the dirty flag and, if it was set, calls fn with a
// read-only view of the latest frame while holding the buffer lock.
//
// fn must not retain f or f.Pix and must not modify them. It should copy
// what it needs and return quickly: the producer waits on the same lock.
//
// TakeIfDirty reports whether fn was called.
func (b *Bridge) TakeIfDirty(fn func(f *Frame)) bool {
	if !b.dirty.Load() {
		return false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.dirty.Swap(false) || b.closed {
		return false
	}
	b.takes.Add(1)
	fn(&b.frame)
	b.frame.Dirty = image.Rectangle{}
	return true
}

// CopyIfDirty copies the latest frame into dst if it is dirty, reusing
// dst.Pix when possible. It reports whether dst was updated.
func (b *Bridge) CopyIfDirty(dst *Frame) bool {
	return b.TakeIfDirty(func(f *Frame) {
		dst.CopyFrom(f)
	})
}

// Close releases the frame buffer. It waits for an in-flight publish or
// take to finish. Close is idempotent.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.frame = Frame{}
	b.dirty.Store(false)
	return nil
}

// Stats is a point-in-time snapshot of bridge counters.
type Stats struct {
	// Publishes is the number of successful publishes.
	Publishes uint64

	// Takes is the number of takes that delivered a frame.
	Takes uint64

	// Coalesced counts publishes that replaced a frame the consumer never
	// took. They are expected when the engine paints faster than the host
	// draws.
	Coalesced uint64

	// Reallocations counts buffer (re)allocations, including the first.
	Reallocations uint64

	// BytesCopied is the total number of pixel bytes copied by publishes.
	BytesCopied uint64
}

// Stats returns the current counters. Safe for concurrent use.
func (b *Bridge) Stats() Stats {
	return Stats{
		Publishes:     b.publishes.Load(),
		Takes:         b.takes.Load(),
		Coalesced:     b.coalesced.Load(),
		Reallocations: b.reallocations.Load(),
		BytesCopied:   b.bytesCopied.Load(),
	}
}

// copyRect copies the pixels inside r from src to dst. Both buffers share
// the same width and stride. It returns the number of bytes copied.
func copyRect(dst, src []byte, width int, r image.Rectangle) int {
	stride := width * BytesPerPixel
	rowBytes := r.Dx() * BytesPerPixel
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := y*stride + r.Min.X*BytesPerPixel
		n += copy(dst[off:off+rowBytes], src[off:off+rowBytes])
	}
	return n
}
