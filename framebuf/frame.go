// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framebuf

import (
	"image"

	"github.com/gogpu/gputypes"
)

// BytesPerPixel is the size of one BGRA pixel.
const BytesPerPixel = 4

// Format is the GPU texture format matching the frame layout.
const Format = gputypes.TextureFormatBGRA8Unorm

// Frame is a tightly packed BGRA pixel buffer plus metadata.
//
// Invariant: len(Pix) == Width*Height*BytesPerPixel.
type Frame struct {
	Width  int
	Height int

	// Pix holds the pixels in BGRA order, row-major, stride Width*4.
	Pix []byte

	// Dirty is the region changed since the previous consumer read.
	// It covers the whole frame after a reallocation.
	Dirty image.Rectangle

	// Seq is the publish sequence number of the data held in Pix.
	Seq uint64
}

// Bounds returns the frame rectangle anchored at the origin.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// Stride returns the number of bytes per row.
func (f *Frame) Stride() int {
	return f.Width * BytesPerPixel
}

// Size returns the expected buffer length for the frame dimensions.
func (f *Frame) Size() int {
	return frameSize(f.Width, f.Height)
}

// PixelOffset returns the index of the first byte of pixel (x, y).
func (f *Frame) PixelOffset(x, y int) int {
	return y*f.Stride() + x*BytesPerPixel
}

// CopyFrom makes f a deep copy of src, reusing f.Pix when it is large enough.
func (f *Frame) CopyFrom(src *Frame) {
	n := len(src.Pix)
	if cap(f.Pix) < n {
		f.Pix = make([]byte, n)
	}
	f.Pix = f.Pix[:n]
	copy(f.Pix, src.Pix)
	f.Width = src.Width
	f.Height = src.Height
	f.Dirty = src.Dirty
	f.Seq = src.Seq
}

// resize reallocates the buffer for new dimensions.
// It reports whether an allocation happened.
func (f *Frame) resize(width, height int) bool {
	if f.Pix != nil && f.Width == width && f.Height == height {
		return false
	}
	f.Width = width
	f.Height = height
	f.Pix = make([]byte, frameSize(width, height))
	return true
}

func frameSize(width, height int) int {
	return width * height * BytesPerPixel
}
