// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package msgbus

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/gogpu/webui/internal/logging"
)

// Bus is an unbounded multi-producer, single-consumer message queue.
type Bus struct {
	q        *queue
	draining atomic.Bool

	published  atomic.Uint64
	dispatched atomic.Uint64
	unhandled  atomic.Uint64
	failed     atomic.Uint64
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{q: newQueue()}
}

// Publish enqueues a host message. It never blocks.
func (b *Bus) Publish(name, data string) error {
	return b.PublishFrom(OriginHost, name, data)
}

// PublishFrom enqueues a message with an explicit origin. It never blocks
// and is safe for concurrent use.
func (b *Bus) PublishFrom(origin Origin, name, data string) error {
	if name == "" {
		return ErrEmptyName
	}
	b.q.push(Message{Name: name, Data: data, Origin: origin})
	b.published.Add(1)
	return nil
}

// Len returns the approximate number of pending messages.
func (b *Bus) Len() int {
	return b.q.len()
}

// DrainResult counts the outcome of one drain pass.
type DrainResult struct {
	// Dispatched is the number of messages delivered to a handler,
	// including those whose handler failed.
	Dispatched int

	// Unhandled is the number of messages with no registered handler.
	Unhandled int

	// Failed is the number of handlers that returned an error or panicked.
	Failed int
}

// Total returns the number of messages removed from the queue.
func (r DrainResult) Total() int {
	return r.Dispatched + r.Unhandled
}

// DrainAndDispatch delivers every message published before the call to
// its handler in reg. Messages without a handler are dropped silently.
//
// It must be called from a single goroutine. The returned error joins one
// *DispatchError per failed handler; the pass always runs to completion.
func (b *Bus) DrainAndDispatch(reg *Registry) (DrainResult, error) {
	var res DrainResult
	if !b.draining.CompareAndSwap(false, true) {
		return res, ErrNestedDrain
	}
	defer b.draining.Store(false)

	last := b.q.last()
	if last == nil {
		return res, nil
	}

	var errs []error
	for {
		n := b.q.popWait()
		msg := n.msg
		n.msg = Message{}

		if h, ok := reg.Lookup(msg.Name); ok {
			res.Dispatched++
			if err := invoke(h, msg); err != nil {
				res.Failed++
				errs = append(errs, err)
			}
		} else {
			res.Unhandled++
		}

		if n == last {
			break
		}
	}

	b.dispatched.Add(uint64(res.Dispatched)) //nolint:gosec // counts are non-negative
	b.unhandled.Add(uint64(res.Unhandled))   //nolint:gosec // counts are non-negative
	b.failed.Add(uint64(res.Failed))         //nolint:gosec // counts are non-negative

	logging.Logger().Debug("msgbus: drained",
		"dispatched", res.Dispatched,
		"unhandled", res.Unhandled,
		"failed", res.Failed,
		"pending", b.q.len())

	return res, errors.Join(errs...)
}

// invoke calls h and converts a panic into an error.
func invoke(h Handler, msg Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &DispatchError{Name: msg.Name, Err: fmt.Errorf("%w: %v", ErrHandlerPanic, r)}
		}
	}()
	if herr := h(msg.Data); herr != nil {
		return &DispatchError{Name: msg.Name, Err: herr}
	}
	return nil
}

// Stats is a point-in-time snapshot of bus counters.
type Stats struct {
	Published  uint64
	Dispatched uint64
	Unhandled  uint64
	Failed     uint64
	Pending    int
}

// Stats returns the current counters. Safe for concurrent use.
func (b *Bus) Stats() Stats {
	return Stats{
		Published:  b.published.Load(),
		Dispatched: b.dispatched.Load(),
		Unhandled:  b.unhandled.Load(),
		Failed:     b.failed.Load(),
		Pending:    b.q.len(),
	}
}
