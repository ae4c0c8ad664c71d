// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package framebuf hands rendered frames from an engine goroutine to the
// host's draw goroutine without tearing and without blocking the producer.
//
// The data flow is:
//
//	engine paint callback -> Bridge.Publish -> Frame (owned) -> Bridge.TakeIfDirty -> host texture
//
// # Synchronization
//
// A Bridge guards its Frame with a mutex held only for the pixel copy, and
// signals new data with a separate atomic dirty flag. The consumer checks
// the flag without locking, so a frame loop that finds nothing new costs a
// single atomic load.
//
// The flag is cleared with a swap while the buffer lock is held. Every
// publish is therefore observed by exactly one take, and a take always sees
// the complete data of the latest publish that finished before it.
//
// # Pixel Format
//
// Frames are 4 bytes per pixel in BGRA order, tightly packed
// (stride = width * 4). This is the layout off-screen browser engines paint
// in and it maps to gputypes.TextureFormatBGRA8Unorm.
//
// # Copy Policy
//
// By default every publish copies the whole frame. CopyDirtyRect copies only
// the rows and columns covered by the dirty rectangle when the dimensions
// are unchanged; a reallocation always falls back to a full copy.
package framebuf
