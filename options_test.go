package webui

import (
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/webui/framebuf"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.startPage != DefaultStartPage {
		t.Errorf("startPage = %q, want %q", o.startPage, DefaultStartPage)
	}
	if o.frameRate != 30 {
		t.Errorf("frameRate = %d, want 30", o.frameRate)
	}
	if o.bindingName != "webUIMessage" || o.namespace != "webUICallbacks" {
		t.Errorf("names = %q/%q, want webUIMessage/webUICallbacks", o.bindingName, o.namespace)
	}
	if o.copyPolicy != framebuf.CopyFull {
		t.Errorf("copyPolicy = %v, want CopyFull", o.copyPolicy)
	}
	if o.devToolsKey != gpucontext.KeyF12 {
		t.Errorf("devToolsKey = %v, want F12", o.devToolsKey)
	}
	if !o.inputEnabled || !o.premultiplied {
		t.Error("input and premultiplied should default to true")
	}
}

func TestOptions(t *testing.T) {
	tests := []struct {
		name  string
		opt   Option
		check func(viewOptions) bool
	}{
		{"position", WithPosition(3, 4), func(o viewOptions) bool { return o.x == 3 && o.y == 4 }},
		{"start page", WithStartPage("a.html"), func(o viewOptions) bool { return o.startPage == "a.html" }},
		{"empty start page", WithStartPage(""), func(o viewOptions) bool { return o.startPage == DefaultStartPage }},
		{"frame rate", WithFrameRate(60), func(o viewOptions) bool { return o.frameRate == 60 }},
		{"zero frame rate", WithFrameRate(0), func(o viewOptions) bool { return o.frameRate == 30 }},
		{"huge frame rate", WithFrameRate(2_000_000_000), func(o viewOptions) bool { return o.frameRate == 1000 }},
		{"binding", WithBindingName("host"), func(o viewOptions) bool { return o.bindingName == "host" }},
		{"empty binding", WithBindingName(""), func(o viewOptions) bool { return o.bindingName == "webUIMessage" }},
		{"namespace", WithCallbackNamespace("cb"), func(o viewOptions) bool { return o.namespace == "cb" }},
		{"copy policy", WithCopyPolicy(framebuf.CopyDirtyRect), func(o viewOptions) bool { return o.copyPolicy == framebuf.CopyDirtyRect }},
		{"dev tools off", WithDevToolsKey(gpucontext.KeyUnknown), func(o viewOptions) bool { return o.devToolsKey == gpucontext.KeyUnknown }},
		{"input off", WithInputEnabled(false), func(o viewOptions) bool { return !o.inputEnabled }},
		{"straight alpha", WithPremultiplied(false), func(o viewOptions) bool { return !o.premultiplied }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := defaultOptions()
			tt.opt(&o)
			if !tt.check(o) {
				t.Errorf("option not applied: %+v", o)
			}
		})
	}
}
