// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package lifecycle

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/gogpu/webui/engine"
	"github.com/gogpu/webui/internal/logging"
)

// State is the engine lifecycle state.
type State int32

// Lifecycle states, in order.
const (
	Uninitialized State = iota
	Initializing
	Ready
	ShuttingDown
	Shutdown
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case Initializing:
		return "Initializing"
	case Ready:
		return "Ready"
	case ShuttingDown:
		return "ShuttingDown"
	case Shutdown:
		return "Shutdown"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Errors returned by Manager.
var (
	// ErrWrongThread is returned when Initialize or Shutdown runs on a
	// thread other than the one that created the manager.
	ErrWrongThread = errors.New("lifecycle: called from the wrong thread")

	// ErrAlreadyInitialized is returned by a second Initialize.
	ErrAlreadyInitialized = errors.New("lifecycle: already initialized")

	// ErrShutdown is returned when using the engine after Shutdown.
	ErrShutdown = errors.New("lifecycle: engine is shut down")

	// ErrNotReady is returned by Require when the engine is not Ready.
	ErrNotReady = errors.New("lifecycle: engine is not ready")

	// ErrNilEngine is returned by Initialize when the manager has no engine.
	ErrNilEngine = errors.New("lifecycle: nil engine")
)

// Option configures a Manager.
type Option func(*Manager)

// WithThreadID replaces the OS thread probe. A probe returning 0 disables
// the affinity check.
func WithThreadID(fn func() uint64) Option {
	return func(m *Manager) {
		if fn != nil {
			m.threadID = fn
		}
	}
}

// Manager owns an engine's process-wide lifecycle.
//
// State, Require, Engine, Track and Untrack are safe for concurrent use.
// Initialize and Shutdown must be called from the main thread.
type Manager struct {
	eng      engine.Engine
	threadID func() uint64
	main     uint64

	state atomic.Int32

	mu        sync.Mutex // guards transitions and resources
	resources []io.Closer
}

// NewManager creates a manager for eng and records the calling OS thread as
// the main thread. The caller should have locked its goroutine to that
// thread with runtime.LockOSThread.
func NewManager(eng engine.Engine, opts ...Option) *Manager {
	m := &Manager{
		eng:      eng,
		threadID: currentThreadID,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.main = m.threadID()
	return m
}

// State returns the current state.
func (m *Manager) State() State {
	return State(m.state.Load())
}

// Engine returns the managed engine.
func (m *Manager) Engine() engine.Engine {
	return m.eng
}

// Require returns nil if the engine is Ready.
func (m *Manager) Require() error {
	switch s := m.State(); s {
	case Ready:
		return nil
	case ShuttingDown, Shutdown:
		return fmt.Errorf("%w: %w", ErrNotReady, ErrShutdown)
	default:
		return fmt.Errorf("%w: state %s", ErrNotReady, s)
	}
}

// Initialize starts the engine with contentRoot. It is valid only once,
// from Uninitialized, on the main thread. If the engine fails to start the
// manager returns to Uninitialized and Initialize may be retried.
func (m *Manager) Initialize(contentRoot string) error {
	if err := m.checkThread("Initialize"); err != nil {
		return err
	}
	if m.eng == nil {
		return ErrNilEngine
	}

	m.mu.Lock()
	switch s := m.State(); s {
	case Uninitialized:
	case ShuttingDown, Shutdown:
		m.mu.Unlock()
		return ErrShutdown
	default:
		m.mu.Unlock()
		return fmt.Errorf("%w: state %s", ErrAlreadyInitialized, s)
	}
	m.setState(Initializing)
	m.mu.Unlock()

	err := m.eng.Initialize(contentRoot)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.setState(Uninitialized)
		return fmt.Errorf("lifecycle: initialize %s: %w", m.eng.Name(), err)
	}
	m.setState(Ready)
	return nil
}

// Shutdown closes tracked resources in reverse order and shuts the engine
// down. It returns nil immediately when the engine was never initialized
// or is already shut down. Errors from resources and the engine are joined;
// the manager ends in Shutdown regardless.
func (m *Manager) Shutdown() error {
	switch m.State() {
	case Uninitialized, ShuttingDown, Shutdown:
		return nil
	}
	if err := m.checkThread("Shutdown"); err != nil {
		return err
	}

	m.mu.Lock()
	if s := m.State(); s != Ready {
		m.mu.Unlock()
		if s == Initializing {
			return fmt.Errorf("%w: state %s", ErrNotReady, s)
		}
		return nil
	}
	m.setState(ShuttingDown)
	resources := m.resources
	m.resources = nil
	m.mu.Unlock()

	var errs []error
	for i := len(resources) - 1; i >= 0; i-- {
		if err := resources[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := m.eng.Shutdown(); err != nil {
		errs = append(errs, fmt.Errorf("lifecycle: shutdown %s: %w", m.eng.Name(), err))
	}

	m.mu.Lock()
	m.setState(Shutdown)
	m.mu.Unlock()

	return errors.Join(errs...)
}

// Track registers c to be closed by Shutdown, after every resource tracked
// later. Tracking after shutdown closes c immediately and returns
// ErrShutdown together with any close error.
func (m *Manager) Track(c io.Closer) error {
	m.mu.Lock()
	switch m.State() {
	case ShuttingDown, Shutdown:
		m.mu.Unlock()
		return errors.Join(ErrShutdown, c.Close())
	}
	m.resources = append(m.resources, c)
	m.mu.Unlock()
	return nil
}

// Untrack removes c from the resources closed by Shutdown.
func (m *Manager) Untrack(c io.Closer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.resources {
		if r == c {
			m.resources = append(m.resources[:i], m.resources[i+1:]...)
			return
		}
	}
}

func (m *Manager) setState(s State) {
	prev := State(m.state.Swap(int32(s)))
	logging.Logger().Info("lifecycle: state change", "from", prev, "to", s)
}

func (m *Manager) checkThread(op string) error {
	if m.main == 0 {
		return nil
	}
	if tid := m.threadID(); tid != m.main {
		return fmt.Errorf("%w: %s on thread %d, main thread is %d", ErrWrongThread, op, tid, m.main)
	}
	return nil
}
