// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package termhost runs a webui.View inside a terminal using tcell.
//
// Each terminal cell shows two vertically stacked pixels drawn with the
// upper half block, so a view of W x H pixels needs W columns and H/2
// rows. The last row is a status line.
//
// Terminals report key presses but not releases, so keys reach the
// recorder as taps: down and up within one frame.
package termhost
