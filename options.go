package webui

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/webui/engine"
	"github.com/gogpu/webui/framebuf"
	"github.com/gogpu/webui/msgbus"
)

// DefaultStartPage is the page a View loads unless WithStartPage is given.
const DefaultStartPage = "index.html"

// Option configures a View during creation.
//
// Example:
//
//	view, err := webui.NewView(mgr, 800, 600,
//	    webui.WithPosition(16, 16),
//	    webui.WithFrameRate(60),
//	)
type Option func(*viewOptions)

// viewOptions holds optional configuration for View creation.
type viewOptions struct {
	x, y          float64
	startPage     string
	frameRate     int
	bindingName   string
	namespace     string
	copyPolicy    framebuf.CopyPolicy
	devToolsKey   gpucontext.Key
	inputEnabled  bool
	premultiplied bool
}

// defaultOptions returns the default view options.
func defaultOptions() viewOptions {
	return viewOptions{
		startPage:     DefaultStartPage,
		frameRate:     engine.DefaultFrameRate,
		bindingName:   msgbus.DefaultBindingName,
		namespace:     msgbus.DefaultCallbackNamespace,
		copyPolicy:    framebuf.CopyFull,
		devToolsKey:   gpucontext.KeyF12,
		inputEnabled:  true,
		premultiplied: true,
	}
}

// WithPosition places the view's top-left corner in window coordinates.
// Input is filtered and translated against this position.
func WithPosition(x, y float64) Option {
	return func(o *viewOptions) {
		o.x, o.y = x, y
	}
}

// WithStartPage sets the page loaded from the engine's content root.
func WithStartPage(page string) Option {
	return func(o *viewOptions) {
		if page != "" {
			o.startPage = page
		}
	}
}

// WithFrameRate caps how often the engine paints the view. Rates above
// engine.MaxFrameRate are clamped.
func WithFrameRate(fps int) Option {
	return func(o *viewOptions) {
		if fps > 0 {
			o.frameRate = min(fps, engine.MaxFrameRate)
		}
	}
}

// WithBindingName sets the global name under which scripts reach the host.
// The default is "webUIMessage".
func WithBindingName(name string) Option {
	return func(o *viewOptions) {
		if name != "" {
			o.bindingName = name
		}
	}
}

// WithCallbackNamespace sets the global object holding the script callbacks
// that Push invokes. The default is "webUICallbacks".
func WithCallbackNamespace(ns string) Option {
	return func(o *viewOptions) {
		if ns != "" {
			o.namespace = ns
		}
	}
}

// WithCopyPolicy selects how the frame bridge copies painted frames.
// The default is framebuf.CopyFull.
func WithCopyPolicy(p framebuf.CopyPolicy) Option {
	return func(o *viewOptions) {
		o.copyPolicy = p
	}
}

// WithDevToolsKey sets the key that opens the engine's dev tools.
// The default is F12; gpucontext.KeyUnknown disables it.
func WithDevToolsKey(k gpucontext.Key) Option {
	return func(o *viewOptions) {
		o.devToolsKey = k
	}
}

// WithInputEnabled turns input forwarding on or off. The default is on.
func WithInputEnabled(enabled bool) Option {
	return func(o *viewOptions) {
		o.inputEnabled = enabled
	}
}

// WithPremultiplied declares whether the engine paints premultiplied alpha.
// The default is true.
func WithPremultiplied(premultiplied bool) Option {
	return func(o *viewOptions) {
		o.premultiplied = premultiplied
	}
}
