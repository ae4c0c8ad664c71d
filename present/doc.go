// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package present uploads frames from a framebuf.Bridge to a GPU texture and
// draws them through gpucontext.
//
// A [Presenter] is the consumer side of a bridge. Once per draw call it
// takes the latest frame if one is pending, converts BGRA to RGBA into a
// staging buffer, and uploads it:
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    presenter.RenderToPosition(dc.AsTextureDrawer(), 0, 0)
//	})
//
// The texture is created lazily through the draw context's TextureCreator.
// When the frame size changes the old texture is destroyed only after its
// replacement exists, since in-flight GPU work may still sample it. Partial
// updates go through gpucontext.TextureRegionUpdater when the texture
// supports it.
//
// Presenter is not safe for concurrent use; call it from the draw goroutine.
package present
