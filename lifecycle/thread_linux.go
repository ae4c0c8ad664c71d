// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build linux

package lifecycle

import "golang.org/x/sys/unix"

func currentThreadID() uint64 {
	return uint64(unix.Gettid()) //nolint:gosec // thread IDs are positive
}
