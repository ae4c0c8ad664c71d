// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package softengine is a small content engine that renders in software.
//
// Pages are HTML files whose inline <script> blocks run in a goja
// JavaScript runtime; the markup outside the scripts is ignored. Scripts
// build the page through a global document object:
//
//	document.setBackground("#1e1e2e");
//	document.addButton("start", 20, 20, 120, 32, "Start");
//	document.addLabel("score", 20, 70, "Score: 0");
//	document.addTextBox("name", 20, 100, 200, 28);
//	document.setText("score", "Score: 10");
//	document.getText("name");
//	document.remove("start");
//	document.log("loaded");
//
// and receive input through optional callbacks on window:
//
//	window.onPointer = function(x, y, exited) {};
//	window.onClick = function(id) {};
//	window.onKey = function(code, down, mods) {};
//	window.onChar = function(str) {};
//	window.onScroll = function(dx, dy) {};
//
// The document is drawn with gg on the surface goroutine, at most at the
// surface frame rate and only after something changed.
//
// Importing the package registers the engine as "software":
//
//	import _ "github.com/gogpu/webui/engine/softengine"
//
// Build with the webui_gpu tag to let gg use its GPU accelerator.
package softengine
