// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build windows

package lifecycle

import "golang.org/x/sys/windows"

func currentThreadID() uint64 {
	return uint64(windows.GetCurrentThreadId())
}
