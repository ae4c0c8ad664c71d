// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package input turns per-frame host input state into the ordered primitive
// events an embedded content engine expects.
//
// A host samples its devices once per frame into a [Snapshot], usually with a
// [Recorder] attached to a gpucontext.EventSource. A [Translator] diffs that
// snapshot against the previous one and produces events in a fixed order:
//
//  1. PointerMove, when the pointer moved (leave detection is unconditional)
//  2. ButtonDown/ButtonUp for left, middle, right, only inside the bounds
//  3. Scroll, only inside the bounds
//  4. every KeyUp, then every KeyDown, in ascending key order
//  5. one CharInput per queued rune, in arrival order
//
// Modifiers are computed once per frame and attached to every keyboard event.
// Button transitions while the pointer is outside the bounds are dropped, not
// deferred.
//
// [Dispatch] forwards events to anything implementing [Sink], typically an
// engine surface.
package input
