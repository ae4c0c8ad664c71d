// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !linux && !windows

package lifecycle

// currentThreadID reports 0, which disables the affinity check.
func currentThreadID() uint64 {
	return 0
}
