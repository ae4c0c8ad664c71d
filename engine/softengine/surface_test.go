// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package softengine

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/webui/engine"
	"github.com/gogpu/webui/input"
	"github.com/gogpu/webui/msgbus"
)

const waitTimeout = 5 * time.Second

type frame struct {
	w, h  int
	pix   []byte
	dirty image.Rectangle
}

// pixel returns the BGRA pixel at (x, y).
func (f frame) pixel(x, y int) [4]byte {
	i := (y*f.w + x) * 4
	return [4]byte{f.pix[i], f.pix[i+1], f.pix[i+2], f.pix[i+3]}
}

// inbox collects messages pushed by page scripts.
type inbox struct {
	bus *msgbus.Bus
	reg *msgbus.Registry
	got []msgbus.Message
}

func newInbox(names ...string) *inbox {
	in := &inbox{bus: msgbus.New(), reg: msgbus.NewRegistry()}
	for _, name := range names {
		_ = in.reg.Register(name, func(data string) error {
			in.got = append(in.got, msgbus.Message{Name: name, Data: data})
			return nil
		})
	}
	return in
}

// wait drains the bus until a message called name arrives and returns its
// data.
func (in *inbox) wait(t *testing.T, name string) string {
	t.Helper()
	deadline := time.Now().Add(waitTimeout)
	for time.Now().Before(deadline) {
		if _, err := in.bus.DrainAndDispatch(in.reg); err != nil {
			t.Fatalf("DrainAndDispatch() error = %v", err)
		}
		for i, m := range in.got {
			if m.Name == name {
				in.got = append(in.got[:i], in.got[i+1:]...)
				return m.Data
			}
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("message %q not received within %v", name, waitTimeout)
	return ""
}

type harness struct {
	eng    *Engine
	surf   *Surface
	frames chan frame
	inbox  *inbox
}

// start creates an engine serving page as index.html and a loaded
// surface of the given size. page "" serves the built-in page.
func start(t *testing.T, page string, w, h int, names ...string) *harness {
	t.Helper()
	root := fstest.MapFS{}
	if page != "" {
		root["index.html"] = &fstest.MapFile{Data: []byte(page)}
	}

	eng := New()
	if err := eng.InitializeFS(root); err != nil {
		t.Fatalf("InitializeFS() error = %v", err)
	}
	t.Cleanup(func() { _ = eng.Shutdown() })

	hs := &harness{eng: eng, frames: make(chan frame, 64), inbox: newInbox(names...)}
	s, err := eng.CreateSurface(engine.SurfaceOptions{
		Width:     w,
		Height:    h,
		StartPage: "index.html",
		FrameRate: 120,
		OnPaint: func(w, h int, pix []byte, dirty image.Rectangle) {
			f := frame{w: w, h: h, pix: append([]byte(nil), pix...), dirty: dirty}
			select {
			case hs.frames <- f:
			default:
			}
		},
	})
	if err != nil {
		t.Fatalf("CreateSurface() error = %v", err)
	}
	hs.surf = s.(*Surface)
	if err := s.RegisterScriptBinding("webUIMessage", msgbus.NewBinding(hs.inbox.bus)); err != nil {
		t.Fatalf("RegisterScriptBinding() error = %v", err)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return hs
}

// frame waits for the next painted frame matching ok.
func (hs *harness) frame(t *testing.T, ok func(frame) bool) frame {
	t.Helper()
	timeout := time.After(waitTimeout)
	for {
		select {
		case f := <-hs.frames:
			if ok == nil || ok(f) {
				return f
			}
		case <-timeout:
			t.Fatalf("no matching frame within %v", waitTimeout)
			return frame{}
		}
	}
}

func (hs *harness) click(x, y float64) {
	hs.surf.SendButton(gpucontext.MouseButtonLeft, x, y, true)
	hs.surf.SendButton(gpucontext.MouseButtonLeft, x, y, false)
}

func TestSurfacePaintsBackground(t *testing.T) {
	hs := start(t, `<script>document.setBackground("#ff0000");</script>`, 64, 48)

	f := hs.frame(t, nil)
	if f.w != 64 || f.h != 48 || len(f.pix) != 64*48*4 {
		t.Fatalf("frame = %dx%d (%d bytes), want 64x48 (%d bytes)", f.w, f.h, len(f.pix), 64*48*4)
	}
	if f.dirty != image.Rect(0, 0, 64, 48) {
		t.Errorf("first frame dirty = %v, want full frame", f.dirty)
	}
	want := [4]byte{0x00, 0x00, 0xff, 0xff}
	for _, p := range []image.Point{{0, 0}, {63, 47}, {30, 20}} {
		if got := f.pixel(p.X, p.Y); got != want {
			t.Errorf("pixel %v = %v, want BGRA %v", p, got, want)
		}
	}
}

func TestSurfaceExcessiveFrameRate(t *testing.T) {
	eng := New()
	if err := eng.InitializeFS(fstest.MapFS{}); err != nil {
		t.Fatalf("InitializeFS() error = %v", err)
	}
	defer eng.Shutdown()

	painted := make(chan struct{}, 1)
	s, err := eng.CreateSurface(engine.SurfaceOptions{
		Width:     10,
		Height:    10,
		FrameRate: 2_000_000_000,
		OnPaint: func(int, int, []byte, image.Rectangle) {
			select {
			case painted <- struct{}{}:
			default:
			}
		},
	})
	if err != nil {
		t.Fatalf("CreateSurface() error = %v", err)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	select {
	case <-painted:
	case <-time.After(5 * time.Second):
		t.Fatal("no frame painted")
	}
}

func TestSurfaceBuiltinPage(t *testing.T) {
	hs := start(t, "", 320, 200, "ping")

	f := hs.frame(t, nil)
	if got, want := f.pixel(319, 199), [4]byte{0x2a, 0x23, 0x20, 0xff}; got != want {
		t.Errorf("background pixel = %v, want %v", got, want)
	}

	hs.click(40, 90)
	if got := hs.inbox.wait(t, "ping"); got != "" {
		t.Errorf("ping data = %q, want empty", got)
	}
}

func TestSurfaceScriptsRunInOrder(t *testing.T) {
	page := `<html><body>
<script>var order = ["a"];</script>
<p>ignored markup</p>
<script type="text/javascript">order.push("b");</script>
</body></html>`
	hs := start(t, page, 32, 32, "order")

	if err := hs.surf.ExecuteScript(`order.push("c"); webUIMessage.pushMessageToGame("order", order.join(","));`); err != nil {
		t.Fatalf("ExecuteScript() error = %v", err)
	}
	if got := hs.inbox.wait(t, "order"); got != "a,b,c" {
		t.Errorf("order = %q, want a,b,c", got)
	}
}

func TestSurfaceClick(t *testing.T) {
	page := `<script>
document.addButton("go", 10, 10, 50, 20, "Go");
document.addLabel("info", 10, 40, "hello");
window.onClick = function (id) { webUIMessage.pushMessageToGame("clicked", id); };
</script>`
	hs := start(t, page, 100, 80, "clicked")

	tests := []struct {
		name string
		x, y float64
		want string
	}{
		{"button", 20, 15, "go"},
		{"label", 12, 45, "info"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs.click(tt.x, tt.y)
			if got := hs.inbox.wait(t, "clicked"); got != tt.want {
				t.Errorf("clicked = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSurfaceDragOffButtonDoesNotClick(t *testing.T) {
	page := `<script>
document.addButton("go", 10, 10, 50, 20, "Go");
window.onClick = function (id) { webUIMessage.pushMessageToGame("clicked", id); };
</script>`
	hs := start(t, page, 100, 80, "clicked", "done")

	hs.surf.SendButton(gpucontext.MouseButtonLeft, 20, 15, true)
	hs.surf.SendButton(gpucontext.MouseButtonLeft, 90, 70, false)
	_ = hs.surf.ExecuteScript(`webUIMessage.pushMessageToGame("done", "")`)
	hs.inbox.wait(t, "done")
	for _, m := range hs.inbox.got {
		if m.Name == "clicked" {
			t.Errorf("unexpected click on %q", m.Data)
		}
	}
}

func TestSurfaceTextBox(t *testing.T) {
	page := `<script>document.addTextBox("name", 10, 10, 120, 24);</script>`
	hs := start(t, page, 160, 60, "text")

	hs.click(20, 20)
	for _, r := range "héllo" {
		hs.surf.SendChar(r, 0)
	}
	hs.surf.SendKey(gpucontext.KeyBackspace, 0, true)
	hs.surf.SendKey(gpucontext.KeyBackspace, 0, false)
	hs.surf.SendChar('!', 0)

	_ = hs.surf.ExecuteScript(`webUIMessage.pushMessageToGame("text", document.getText("name"))`)
	if got := hs.inbox.wait(t, "text"); got != "héll!" {
		t.Errorf("text = %q, want %q", got, "héll!")
	}
}

func TestSurfaceInputCallbacks(t *testing.T) {
	page := `<script>
window.onKey = function (code, down, mods) {
	webUIMessage.pushMessageToGame("key", code + ":" + down + ":" + mods);
};
window.onChar = function (s) { webUIMessage.pushMessageToGame("char", s); };
window.onScroll = function (dx, dy) { webUIMessage.pushMessageToGame("scroll", dx + "," + dy); };
window.onPointer = function (x, y, exited) { webUIMessage.pushMessageToGame("pointer", x + "," + y + "," + exited); };
</script>`
	hs := start(t, page, 32, 32, "key", "char", "scroll", "pointer")

	hs.surf.SendKey(gpucontext.KeyEnter, input.LeftShift, true)
	wantKey := strconv.Itoa(int(gpucontext.KeyEnter)) + ":true:" + strconv.Itoa(int(input.LeftShift))
	if got := hs.inbox.wait(t, "key"); got != wantKey {
		t.Errorf("key = %q, want %q", got, wantKey)
	}

	hs.surf.SendChar('ß', 0)
	if got := hs.inbox.wait(t, "char"); got != "ß" {
		t.Errorf("char = %q, want ß", got)
	}

	hs.surf.SendScroll(5, 5, 0, -3)
	if got := hs.inbox.wait(t, "scroll"); got != "0,-3" {
		t.Errorf("scroll = %q, want 0,-3", got)
	}

	hs.surf.SendPointerMove(7, 9, false)
	if got := hs.inbox.wait(t, "pointer"); got != "7,9,false" {
		t.Errorf("pointer = %q, want 7,9,false", got)
	}
}

func TestSurfaceDirtyRect(t *testing.T) {
	page := `<script>document.addButton("b", 10, 10, 50, 20, "A");</script>`
	hs := start(t, page, 100, 80)

	hs.frame(t, nil)
	_ = hs.surf.ExecuteScript(`document.setText("b", "B")`)

	f := hs.frame(t, nil)
	if want := image.Rect(9, 9, 61, 31); f.dirty != want {
		t.Errorf("dirty = %v, want %v", f.dirty, want)
	}
}

func TestSurfaceResize(t *testing.T) {
	hs := start(t, `<script>document.setBackground("#00ff00");</script>`, 32, 32)
	hs.frame(t, nil)

	if err := hs.surf.Resize(40, 30); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	f := hs.frame(t, func(f frame) bool { return f.w == 40 })
	if f.h != 30 || len(f.pix) != 40*30*4 {
		t.Errorf("frame = %dx%d (%d bytes), want 40x30", f.w, f.h, len(f.pix))
	}
	if f.dirty != image.Rect(0, 0, 40, 30) {
		t.Errorf("dirty after resize = %v, want full frame", f.dirty)
	}
	if got, want := f.pixel(39, 29), [4]byte{0x00, 0xff, 0x00, 0xff}; got != want {
		t.Errorf("pixel = %v, want %v", got, want)
	}

	if err := hs.surf.Resize(0, 10); !errors.Is(err, engine.ErrInvalidSize) {
		t.Errorf("Resize(0, 10) error = %v, want ErrInvalidSize", err)
	}
}

func TestSurfaceDevTools(t *testing.T) {
	hs := start(t, `<script>document.setBackground("#ffffff");</script>`, 320, 200)
	before := hs.frame(t, nil)

	hs.surf.ShowDevTools()
	after := hs.frame(t, nil)
	overlay := image.Rect(320-overlayW-8, 8, 320-8, 8+12+overlayLines*overlayLine)
	if !overlay.In(after.dirty) {
		t.Errorf("dirty %v does not cover overlay %v", after.dirty, overlay)
	}
	p := image.Pt(overlay.Min.X+2, overlay.Min.Y+2)
	if after.pixel(p.X, p.Y) == before.pixel(p.X, p.Y) {
		t.Errorf("overlay not drawn at %v", p)
	}
}

func TestSurfaceScriptErrors(t *testing.T) {
	page := `<script>
document.addButton("go", 0, 0, 10, 10, "Go");
try {
	document.addButton("go", 0, 0, 10, 10, "Again");
} catch (e) {
	webUIMessage.pushMessageToGame("dup", String(e));
}
</script>`
	hs := start(t, page, 32, 32, "dup", "after")

	if got := hs.inbox.wait(t, "dup"); !strings.Contains(got, "duplicate element id") {
		t.Errorf("dup error = %q, want duplicate element id", got)
	}

	_ = hs.surf.ExecuteScript(`throw new Error("boom")`)
	_ = hs.surf.ExecuteScript(`undefinedFunction()`)
	_ = hs.surf.ExecuteScript(`webUIMessage.pushMessageToGame("after", "ok")`)
	if got := hs.inbox.wait(t, "after"); got != "ok" {
		t.Errorf("after = %q, want ok", got)
	}
	if st := hs.surf.Stats(); st.ScriptErrors != 2 {
		t.Errorf("ScriptErrors = %d, want 2", st.ScriptErrors)
	}
}

func TestSurfaceScriptBeforeLoad(t *testing.T) {
	eng := New()
	_ = eng.InitializeFS(fstest.MapFS{"index.html": {Data: []byte(`<script>var x = 1;</script>`)}})
	defer eng.Shutdown()

	in := newInbox("x")
	s, err := eng.CreateSurface(engine.SurfaceOptions{
		Width: 8, Height: 8, FrameRate: 120,
		OnPaint: func(int, int, []byte, image.Rectangle) {},
	})
	if err != nil {
		t.Fatalf("CreateSurface() error = %v", err)
	}
	_ = s.RegisterScriptBinding("webUIMessage", msgbus.NewBinding(in.bus))
	if err := s.ExecuteScript(`webUIMessage.pushMessageToGame("x", String(x))`); err != nil {
		t.Fatalf("ExecuteScript() error = %v", err)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := in.wait(t, "x"); got != "1" {
		t.Errorf("x = %q, want 1 (script ran after page)", got)
	}
}

func TestSurfaceErrors(t *testing.T) {
	eng := New()
	paint := func(int, int, []byte, image.Rectangle) {}

	if _, err := eng.CreateSurface(engine.SurfaceOptions{Width: 8, Height: 8, OnPaint: paint}); !errors.Is(err, engine.ErrNotInitialized) {
		t.Errorf("CreateSurface() before Initialize error = %v, want ErrNotInitialized", err)
	}
	_ = eng.InitializeFS(nil)
	if _, err := eng.CreateSurface(engine.SurfaceOptions{Width: 0, Height: 8, OnPaint: paint}); !errors.Is(err, engine.ErrInvalidSize) {
		t.Errorf("CreateSurface(0x8) error = %v, want ErrInvalidSize", err)
	}

	s, err := eng.CreateSurface(engine.SurfaceOptions{Width: 8, Height: 8, OnPaint: paint})
	if err != nil {
		t.Fatalf("CreateSurface() error = %v", err)
	}
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := s.Load(); !errors.Is(err, engine.ErrAlreadyLoaded) {
		t.Errorf("second Load() error = %v, want ErrAlreadyLoaded", err)
	}
	if err := s.RegisterScriptBinding("late", struct{}{}); !errors.Is(err, engine.ErrBindingAfterLoad) {
		t.Errorf("RegisterScriptBinding() after Load error = %v, want ErrBindingAfterLoad", err)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := s.ExecuteScript("1"); !errors.Is(err, engine.ErrSurfaceClosed) {
		t.Errorf("ExecuteScript() after Close error = %v, want ErrSurfaceClosed", err)
	}
	if err := s.Resize(4, 4); !errors.Is(err, engine.ErrSurfaceClosed) {
		t.Errorf("Resize() after Close error = %v, want ErrSurfaceClosed", err)
	}
	s.SendChar('x', 0)
}

func TestEngineShutdownClosesSurfaces(t *testing.T) {
	eng := New()
	_ = eng.InitializeFS(nil)

	var wg sync.WaitGroup
	surfaces := make([]engine.Surface, 3)
	for i := range surfaces {
		s, err := eng.CreateSurface(engine.SurfaceOptions{
			Width: 8, Height: 8,
			OnPaint: func(int, int, []byte, image.Rectangle) {},
		})
		if err != nil {
			t.Fatalf("CreateSurface() error = %v", err)
		}
		surfaces[i] = s
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Load()
		}()
	}
	wg.Wait()

	if err := eng.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	for i, s := range surfaces {
		if err := s.ExecuteScript("1"); !errors.Is(err, engine.ErrSurfaceClosed) {
			t.Errorf("surface %d: ExecuteScript() error = %v, want ErrSurfaceClosed", i, err)
		}
	}
	if _, err := eng.CreateSurface(engine.SurfaceOptions{Width: 8, Height: 8, OnPaint: func(int, int, []byte, image.Rectangle) {}}); !errors.Is(err, engine.ErrNotInitialized) {
		t.Errorf("CreateSurface() after Shutdown error = %v, want ErrNotInitialized", err)
	}
}

func TestEngineInitializeDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(`<script>document.setBackground("#0000ff")</script>`), 0o600); err != nil {
		t.Fatal(err)
	}

	eng := New()
	if err := eng.Initialize(dir); err != nil {
		t.Fatalf("Initialize(%q) error = %v", dir, err)
	}
	defer eng.Shutdown()

	frames := make(chan frame, 4)
	s, err := eng.CreateSurface(engine.SurfaceOptions{
		Width: 4, Height: 4, StartPage: "index.html", FrameRate: 120,
		OnPaint: func(w, h int, pix []byte, dirty image.Rectangle) {
			select {
			case frames <- frame{w: w, h: h, pix: append([]byte(nil), pix...)}:
			default:
			}
		},
	})
	if err != nil {
		t.Fatalf("CreateSurface() error = %v", err)
	}
	_ = s.Load()

	select {
	case f := <-frames:
		if got, want := f.pixel(0, 0), [4]byte{0xff, 0x00, 0x00, 0xff}; got != want {
			t.Errorf("pixel = %v, want %v", got, want)
		}
	case <-time.After(waitTimeout):
		t.Fatal("no frame painted")
	}

	if err := New().Initialize(filepath.Join(dir, "missing")); err == nil {
		t.Error("Initialize(missing dir) succeeded, want error")
	}
}

func TestEngineRegistered(t *testing.T) {
	entry, ok := engine.Get(Name)
	if !ok {
		t.Fatalf("engine %q not registered", Name)
	}
	if entry.Priority != Priority {
		t.Errorf("Priority = %d, want %d", entry.Priority, Priority)
	}
	e, err := engine.New(Name)
	if err != nil {
		t.Fatalf("engine.New(%q) error = %v", Name, err)
	}
	if e.Name() != Name {
		t.Errorf("Name() = %q, want %q", e.Name(), Name)
	}
}
