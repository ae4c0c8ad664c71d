// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build webui_gpu

package softengine

// Registers gg's GPU accelerator. Without a usable adapter gg keeps
// rendering on the CPU.
import _ "github.com/gogpu/gg/gpu"
