// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package softengine

import (
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/gogpu/webui/engine"
	"github.com/gogpu/webui/internal/logging"
)

// Name is the registry name of the engine.
const Name = "software"

// Priority is the registry priority of the engine.
const Priority = 10

func init() {
	engine.Register(Name, Priority, func() (engine.Engine, error) {
		return New(), nil
	}, nil)
}

// Engine is the software engine. The zero value is not usable; call New.
type Engine struct {
	logger atomic.Pointer[slog.Logger]

	mu       sync.Mutex
	root     fs.FS
	running  bool
	surfaces map[uuid.UUID]*Surface
}

var _ engine.Engine = (*Engine)(nil)

// New returns an uninitialized engine.
func New() *Engine {
	e := &Engine{surfaces: make(map[uuid.UUID]*Surface)}
	e.logger.Store(logging.Logger())
	return e
}

// Name implements engine.Engine.
func (e *Engine) Name() string { return Name }

// SetLogger sets the logger used by the engine and its surfaces.
// A nil logger disables logging.
func (e *Engine) SetLogger(l *slog.Logger) {
	if l == nil {
		l = logging.Nop()
	}
	e.logger.Store(l)
}

func (e *Engine) log() *slog.Logger { return e.logger.Load() }

// Initialize implements engine.Engine. An empty contentRoot serves only
// the built-in page.
func (e *Engine) Initialize(contentRoot string) error {
	var root fs.FS
	if contentRoot != "" {
		info, err := os.Stat(contentRoot)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return &fs.PathError{Op: "initialize", Path: contentRoot, Err: fs.ErrInvalid}
		}
		root = os.DirFS(contentRoot)
	}
	return e.InitializeFS(root)
}

// InitializeFS is like Initialize but serves content from root.
func (e *Engine) InitializeFS(root fs.FS) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.root = root
	e.running = true
	e.log().Debug("softengine: initialized", "content", root != nil)
	return nil
}

// Shutdown implements engine.Engine.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	e.running = false
	surfaces := make([]*Surface, 0, len(e.surfaces))
	for _, s := range e.surfaces {
		surfaces = append(surfaces, s)
	}
	e.mu.Unlock()

	for _, s := range surfaces {
		_ = s.Close()
	}
	e.log().Debug("softengine: shut down", "surfaces", len(surfaces))
	return nil
}

// CreateSurface implements engine.Engine.
func (e *Engine) CreateSurface(opts engine.SurfaceOptions) (engine.Surface, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return nil, engine.ErrNotInitialized
	}
	s := newSurface(e, e.root, opts)
	e.surfaces[s.id] = s
	go s.run()
	return s, nil
}

// forget drops a closed surface.
func (e *Engine) forget(s *Surface) {
	e.mu.Lock()
	delete(e.surfaces, s.id)
	e.mu.Unlock()
}
