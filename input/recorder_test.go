// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

import (
	"reflect"
	"sync"
	"testing"

	"github.com/gogpu/gpucontext"
)

// mockEventSource records the callbacks registered by Attach so tests can
// fire them.
type mockEventSource struct {
	gpucontext.NullEventSource

	keyPress   func(gpucontext.Key, gpucontext.Modifiers)
	keyRelease func(gpucontext.Key, gpucontext.Modifiers)
	text       func(string)
	imeEnd     func(string)
	move       func(float64, float64)
	press      func(gpucontext.MouseButton, float64, float64)
	release    func(gpucontext.MouseButton, float64, float64)
	scroll     func(float64, float64)
	focus      func(bool)
}

func (m *mockEventSource) OnKeyPress(fn func(gpucontext.Key, gpucontext.Modifiers))   { m.keyPress = fn }
func (m *mockEventSource) OnKeyRelease(fn func(gpucontext.Key, gpucontext.Modifiers)) { m.keyRelease = fn }
func (m *mockEventSource) OnTextInput(fn func(string))                                 { m.text = fn }
func (m *mockEventSource) OnIMECompositionEnd(fn func(string))                         { m.imeEnd = fn }
func (m *mockEventSource) OnMouseMove(fn func(float64, float64))                       { m.move = fn }
func (m *mockEventSource) OnMousePress(fn func(gpucontext.MouseButton, float64, float64)) {
	m.press = fn
}
func (m *mockEventSource) OnMouseRelease(fn func(gpucontext.MouseButton, float64, float64)) {
	m.release = fn
}
func (m *mockEventSource) OnScroll(fn func(float64, float64)) { m.scroll = fn }
func (m *mockEventSource) OnFocus(fn func(bool))              { m.focus = fn }

func TestRecorderAttach(t *testing.T) {
	src := &mockEventSource{}
	r := NewRecorder()
	r.Attach(src)

	src.move(5, 6)
	src.press(gpucontext.MouseButtonLeft, 7, 8)
	src.keyPress(gpucontext.KeyLeftShift, gpucontext.ModShift)
	src.keyPress(gpucontext.KeyA, gpucontext.ModShift)
	src.text("A")
	src.imeEnd("日本")
	src.scroll(0, 1)
	src.scroll(0, 2)

	s := r.Snapshot()
	if s.Pointer != (Point{X: 7, Y: 8}) {
		t.Errorf("Pointer = %v, want (7,8)", s.Pointer)
	}
	if !s.Buttons.Has(gpucontext.MouseButtonLeft) {
		t.Error("left button not pressed")
	}
	if want := KeySetOf(gpucontext.KeyLeftShift, gpucontext.KeyA); s.Keys != want {
		t.Errorf("Keys = %v, want %v", s.Keys.Keys(), want.Keys())
	}
	if s.Modifiers() != LeftShift {
		t.Errorf("Modifiers() = %v, want LShift", s.Modifiers())
	}
	if got := string(s.Text); got != "A日本" {
		t.Errorf("Text = %q, want %q", got, "A日本")
	}
	if s.Scroll != (Point{Y: 3}) {
		t.Errorf("Scroll = %v, want (0,3)", s.Scroll)
	}

	src.release(gpucontext.MouseButtonLeft, 9, 9)
	src.keyRelease(gpucontext.KeyA, 0)
	s = r.Snapshot()
	if s.Buttons.Has(gpucontext.MouseButtonLeft) {
		t.Error("left button still pressed after release")
	}
	if s.Keys.Has(gpucontext.KeyA) || !s.Keys.Has(gpucontext.KeyLeftShift) {
		t.Errorf("Keys = %v, want only LeftShift", s.Keys.Keys())
	}
	if len(s.Text) != 0 || !s.Scroll.IsZero() {
		t.Errorf("per-frame data not cleared: text=%q scroll=%v", string(s.Text), s.Scroll)
	}

	src.focus(false)
	s = r.Snapshot()
	if !s.Keys.IsEmpty() || s.Buttons != 0 {
		t.Errorf("focus loss kept keys=%v buttons=%b", s.Keys.Keys(), s.Buttons)
	}
}

func TestRecorderQueueTextFilters(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hi", "hi"},
		{"control dropped", "a\tb\x00c\x7f\r\n", "abc"},
		{"decomposed to nfc", "e\u0301", "\u00e9"},
		{"invalid utf8 dropped", "a\xffb", "ab"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecorder()
			r.QueueText(tt.in)
			if got := string(r.Snapshot().Text); got != tt.want {
				t.Errorf("Text = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestRecorderShortPress checks that a press and release inside one frame
// still produce a down/up pair across two frames.
func TestRecorderShortPress(t *testing.T) {
	r := NewRecorder()
	tr := NewTranslator(Rect{Width: 100, Height: 100})
	r.MoveTo(10, 10)
	tr.Next(r.Snapshot())

	r.Press(gpucontext.MouseButtonLeft)
	r.Release(gpucontext.MouseButtonLeft)
	r.KeyDown(gpucontext.KeyEnter)
	r.KeyUp(gpucontext.KeyEnter)

	got := tr.Next(r.Snapshot())
	want := []Event{
		ButtonDown{Button: gpucontext.MouseButtonLeft, X: 10, Y: 10},
		KeyDown{Key: gpucontext.KeyEnter},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("frame 1 = %v, want %v", got, want)
	}

	got = tr.Next(r.Snapshot())
	want = []Event{
		ButtonUp{Button: gpucontext.MouseButtonLeft, X: 10, Y: 10},
		KeyUp{Key: gpucontext.KeyEnter},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("frame 2 = %v, want %v", got, want)
	}

	if got := tr.Next(r.Snapshot()); got != nil {
		t.Errorf("frame 3 = %v, want nil", got)
	}
}

func TestRecorderTap(t *testing.T) {
	r := NewRecorder()
	tr := NewTranslator(Rect{Width: 10, Height: 10})

	r.Tap(gpucontext.KeyC, gpucontext.ModControl)
	got := tr.Next(r.Snapshot())
	mods := LeftControl
	want := []Event{
		KeyDown{Key: gpucontext.KeyC, Modifiers: mods},
		KeyDown{Key: gpucontext.KeyLeftControl, Modifiers: mods},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tap frame = %v, want %v", got, want)
	}

	got = tr.Next(r.Snapshot())
	want = []Event{
		KeyUp{Key: gpucontext.KeyC},
		KeyUp{Key: gpucontext.KeyLeftControl},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("release frame = %v, want %v", got, want)
	}
}

func TestRecorderConcurrent(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				r.QueueText("x")
				r.ScrollBy(0, 1)
				r.MoveTo(float64(j), 0)
			}
		}()
	}

	var text int
	var scroll float64
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	for {
		s := r.Snapshot()
		text += len(s.Text)
		scroll += s.Scroll.Y
		select {
		case <-done:
			s := r.Snapshot()
			text += len(s.Text)
			scroll += s.Scroll.Y
			if text != 800 || scroll != 800 {
				t.Errorf("text=%d scroll=%v, want 800 each", text, scroll)
			}
			return
		default:
		}
	}
}
