// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/webui/framebuf"
	"github.com/gogpu/webui/internal/logging"
)

// Common errors returned by Presenter operations.
var (
	// ErrClosed is returned when operations are attempted on a closed presenter.
	ErrClosed = errors.New("present: presenter is closed")

	// ErrNilBridge is returned when a nil bridge is passed.
	ErrNilBridge = errors.New("present: nil bridge")

	// ErrNoTextureCreator is returned when the draw context cannot create
	// textures.
	ErrNoTextureCreator = errors.New("present: draw context has no TextureCreator")
)

// textureDestroyer is implemented by GPU textures that own resources.
type textureDestroyer interface {
	Destroy()
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithPremultiplied declares whether frames carry premultiplied alpha.
// The default is true, which matches both gg output and browser engines.
func WithPremultiplied(premultiplied bool) Option {
	return func(p *Presenter) {
		p.premultiplied = premultiplied
	}
}

// Presenter draws bridge frames with a gpucontext.TextureDrawer.
type Presenter struct {
	bridge        *framebuf.Bridge
	premultiplied bool

	// staging holds the last taken frame in RGBA order.
	staging       []byte
	width, height int
	seq           uint64

	// pending is the staging region not yet uploaded.
	pending   image.Rectangle
	regionBuf []byte

	texture    gpucontext.Texture
	oldTexture gpucontext.Texture
	closed     bool

	stats Stats
}

// Stats counts presenter work.
type Stats struct {
	// Frames is the number of frames taken from the bridge.
	Frames uint64

	// TexturesCreated counts texture (re)creations.
	TexturesCreated uint64

	// Uploads counts updates of an existing texture.
	Uploads uint64

	// BytesUploaded is the total number of bytes sent to the GPU.
	BytesUploaded uint64
}

// New creates a presenter consuming bridge.
func New(bridge *framebuf.Bridge, opts ...Option) (*Presenter, error) {
	if bridge == nil {
		return nil, ErrNilBridge
	}
	p := &Presenter{
		bridge:        bridge,
		premultiplied: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Format returns the pixel format of uploaded texture data.
func (p *Presenter) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Size returns the dimensions of the last taken frame, or zero before the
// first one.
func (p *Presenter) Size() (width, height int) {
	return p.width, p.height
}

// Seq returns the bridge sequence number of the last taken frame.
func (p *Presenter) Seq() uint64 {
	return p.seq
}

// Stats returns the presenter counters.
func (p *Presenter) Stats() Stats {
	return p.stats
}

// Texture returns the current GPU texture without flushing.
// Returns nil if no texture has been created yet.
func (p *Presenter) Texture() gpucontext.Texture {
	return p.texture
}

// Flush takes the latest frame from the bridge into the staging buffer if
// one is pending. It reports whether a new frame was taken.
func (p *Presenter) Flush() (bool, error) {
	if p.closed {
		return false, ErrClosed
	}
	took := p.bridge.TakeIfDirty(p.stage)
	if took {
		p.stats.Frames++
	}
	return took, nil
}

// stage converts f into the staging buffer. It runs under the bridge lock.
func (p *Presenter) stage(f *framebuf.Frame) {
	dirty := f.Dirty.Intersect(f.Bounds())
	if f.Width != p.width || f.Height != p.height || p.staging == nil {
		p.width, p.height = f.Width, f.Height
		if cap(p.staging) < f.Size() {
			p.staging = make([]byte, f.Size())
		}
		p.staging = p.staging[:f.Size()]
		dirty = f.Bounds()
		if p.texture != nil {
			p.retireTexture()
		}
		logging.Logger().Debug("present: frame size changed", "width", f.Width, "height", f.Height)
	}
	if dirty.Empty() {
		dirty = f.Bounds()
	}

	stride := f.Stride()
	for y := dirty.Min.Y; y < dirty.Max.Y; y++ {
		start := y*stride + dirty.Min.X*framebuf.BytesPerPixel
		end := y*stride + dirty.Max.X*framebuf.BytesPerPixel
		swizzle(p.staging[start:end], f.Pix[start:end])
	}

	p.pending = p.pending.Union(dirty)
	p.seq = f.Seq
}

// retireTexture parks the current texture until its replacement exists.
func (p *Presenter) retireTexture() {
	if p.oldTexture != nil {
		destroy(p.oldTexture)
	}
	p.oldTexture = p.texture
	p.texture = nil
}

// RenderTo draws the latest frame at (0, 0).
func (p *Presenter) RenderTo(dc gpucontext.TextureDrawer) error {
	return p.RenderToPosition(dc, 0, 0)
}

// RenderToPosition flushes the bridge, uploads pending pixels and draws the
// texture at (x, y). Before the first frame arrives it draws nothing.
func (p *Presenter) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	if _, err := p.Flush(); err != nil {
		return err
	}
	if p.staging == nil {
		return nil
	}
	if err := p.upload(dc); err != nil {
		return err
	}
	return dc.DrawTexture(p.texture, x, y)
}

// upload brings the texture up to date with the staging buffer.
func (p *Presenter) upload(dc gpucontext.TextureDrawer) error {
	if p.texture == nil {
		return p.createTexture(dc)
	}
	if p.pending.Empty() {
		return nil
	}

	full := image.Rect(0, 0, p.width, p.height)
	if p.pending != full {
		if ru, ok := p.texture.(gpucontext.TextureRegionUpdater); ok {
			data := p.region(p.pending)
			r := p.pending
			if err := ru.UpdateRegion(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), data); err != nil {
				return fmt.Errorf("present: texture region update failed: %w", err)
			}
			p.uploaded(len(data))
			return nil
		}
	}

	if u, ok := p.texture.(gpucontext.TextureUpdater); ok {
		if err := u.UpdateData(p.staging); err != nil {
			return fmt.Errorf("present: texture update failed: %w", err)
		}
		p.uploaded(len(p.staging))
		return nil
	}

	// The texture cannot be updated in place.
	p.retireTexture()
	return p.createTexture(dc)
}

func (p *Presenter) uploaded(n int) {
	p.pending = image.Rectangle{}
	p.stats.Uploads++
	p.stats.BytesUploaded += uint64(n) //nolint:gosec // n is a byte count
}

func (p *Presenter) createTexture(dc gpucontext.TextureDrawer) error {
	creator := dc.TextureCreator()
	if creator == nil {
		return ErrNoTextureCreator
	}
	tex, err := creator.NewTextureFromRGBA(p.width, p.height, p.staging)
	if err != nil {
		return fmt.Errorf("present: NewTextureFromRGBA failed: %w", err)
	}
	if pt, ok := tex.(interface{ SetPremultiplied(bool) }); ok {
		pt.SetPremultiplied(p.premultiplied)
	}
	p.texture = tex
	p.pending = image.Rectangle{}
	p.stats.TexturesCreated++
	p.stats.BytesUploaded += uint64(len(p.staging))

	// Creation waits for the GPU, so the retired texture is no longer in use.
	if p.oldTexture != nil {
		destroy(p.oldTexture)
		p.oldTexture = nil
	}
	return nil
}

// region copies r out of the staging buffer into a tightly packed buffer.
func (p *Presenter) region(r image.Rectangle) []byte {
	rowBytes := r.Dx() * framebuf.BytesPerPixel
	n := rowBytes * r.Dy()
	if cap(p.regionBuf) < n {
		p.regionBuf = make([]byte, n)
	}
	buf := p.regionBuf[:n]
	stride := p.width * framebuf.BytesPerPixel
	for y := r.Min.Y; y < r.Max.Y; y++ {
		off := y*stride + r.Min.X*framebuf.BytesPerPixel
		copy(buf[(y-r.Min.Y)*rowBytes:], p.staging[off:off+rowBytes])
	}
	return buf
}

// Close releases the textures and staging memory. Close is idempotent.
func (p *Presenter) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	if p.oldTexture != nil {
		destroy(p.oldTexture)
		p.oldTexture = nil
	}
	if p.texture != nil {
		destroy(p.texture)
		p.texture = nil
	}
	p.staging = nil
	p.regionBuf = nil
	p.bridge = nil
	return nil
}

func destroy(t gpucontext.Texture) {
	if d, ok := t.(textureDestroyer); ok {
		d.Destroy()
	}
}

// swizzle copies BGRA pixels from src into dst as RGBA.
func swizzle(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}
