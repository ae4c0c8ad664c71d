// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package lifecycle owns the process-wide state of an embedded content
// engine.
//
// A [Manager] moves through Uninitialized, Initializing, Ready,
// ShuttingDown and Shutdown. It is the single place that enforces the
// engine's thread contract: Initialize and Shutdown must run on the OS
// thread that created the manager. Hosts pin their main goroutine first,
// as gogpu applications do:
//
//	func init() { runtime.LockOSThread() }
//
//	mgr := lifecycle.NewManager(eng)
//	if err := mgr.Initialize("content"); err != nil {
//	    log.Fatal(err)
//	}
//	defer mgr.Shutdown()
//
// Calling Initialize or Shutdown from another thread is a programming error
// in the host. It is reported as ErrWrongThread and never silently ignored.
// Shutdown is idempotent.
//
// Thread identity comes from the OS on Linux and Windows. On other
// platforms it is not available and affinity is not checked.
package lifecycle
