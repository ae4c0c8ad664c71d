// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package engine defines the contract between a host and an embedded
// content engine, plus a registry of named engine implementations.
//
// An engine renders off-screen on its own goroutines. For each surface it
// accepts primitive input events (the [input.Sink] methods), runs scripts,
// and reports painted frames through [SurfaceOptions.OnPaint] from its paint
// goroutine. Hosts normally do not talk to an engine directly: a
// lifecycle.Manager owns its process-wide state and a webui.View owns a
// surface.
//
// Implementations register themselves from init:
//
//	func init() {
//	    engine.Register("software", 10, newEngine, nil)
//	}
//
// and hosts select one by name or by priority:
//
//	eng, err := engine.New("software")
//	// or the best available:
//	eng, err := engine.Default()
package engine
