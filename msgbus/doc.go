// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package msgbus carries named messages between an embedded script
// environment and host callbacks.
//
// Any goroutine may publish; publishing never blocks and the queue is
// unbounded. The host drains the bus once per frame on its update goroutine:
//
//	reg := msgbus.NewRegistry()
//	reg.Register("score", func(data string) error { ... })
//
//	// every update
//	res, err := bus.DrainAndDispatch(reg)
//
// A drain dispatches exactly the messages published before it started.
// Messages published by handlers wait for the next drain. Handler errors and
// panics are isolated per message and reported together.
//
// [Binding] is the object a script environment calls into, and [Outbound]
// pushes messages the other way as fire-and-forget script calls.
package msgbus
