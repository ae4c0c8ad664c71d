// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package msgbus

import (
	"runtime"
	"sync/atomic"
)

// node is a queue element. The consumer keeps the last popped node as the
// stub, so a node's msg is read only once it is reachable from the stub.
type node struct {
	next atomic.Pointer[node]
	msg  Message
}

// queue is an unbounded multi-producer, single-consumer linked queue.
//
// Producers swap themselves into head and then link the previous head to
// the new node. Between those two steps the chain is briefly broken; the
// consumer waits for the link when it knows a node is behind the break.
type queue struct {
	head atomic.Pointer[node] // last pushed node, written by producers
	tail *node                // stub, owned by the consumer
	size atomic.Int64
}

func newQueue() *queue {
	q := &queue{}
	stub := &node{}
	q.head.Store(stub)
	q.tail = stub
	return q
}

// push appends m. Safe for concurrent use.
func (q *queue) push(m Message) {
	n := &node{msg: m}
	q.size.Add(1)
	prev := q.head.Swap(n)
	prev.next.Store(n)
}

// last returns the most recently pushed node, or nil when the queue is
// empty. Consumer only.
func (q *queue) last() *node {
	h := q.head.Load()
	if h == q.tail {
		return nil
	}
	return h
}

// pop removes the oldest node. It returns nil when nothing is linked after
// the stub. Consumer only.
func (q *queue) pop() *node {
	next := q.tail.next.Load()
	if next == nil {
		return nil
	}
	q.tail = next
	q.size.Add(-1)
	return next
}

// popWait removes the oldest node, waiting for an in-flight push to link
// it. The caller must know that at least one node was pushed. Consumer only.
func (q *queue) popWait() *node {
	for {
		if n := q.pop(); n != nil {
			return n
		}
		runtime.Gosched()
	}
}

// len returns the approximate number of queued messages.
func (q *queue) len() int {
	return int(q.size.Load())
}
