package main

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/webui/framebuf"
	"github.com/gogpu/webui/msgbus"
)

func TestConfigViewOptions(t *testing.T) {
	c := defaultConfig()
	opts, err := c.viewOptions()
	if err != nil {
		t.Fatalf("viewOptions() error = %v", err)
	}
	if len(opts) != 3 {
		t.Errorf("len(viewOptions()) = %d, want 3", len(opts))
	}

	c.CopyPolicy = "sometimes"
	if opts, err := c.viewOptions(); err == nil || opts != nil {
		t.Errorf("viewOptions() = %v, %v, want an error for an unknown copy policy", opts, err)
	}
}

func TestDecodeConfig(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    config
		wantErr bool
	}{
		{
			name: "defaults kept",
			in:   `content_root = "site"`,
			want: func() config { c := defaultConfig(); c.ContentRoot = "site"; return c }(),
		},
		{
			name: "all fields",
			in: `content_root = "c"
start_page = "app.html"
engine = "software"
frame_rate = 60
copy_policy = "full"
log_file = "x.log"
log_level = "debug"`,
			want: config{
				ContentRoot: "c", StartPage: "app.html", Engine: "software", FrameRate: 60,
				CopyPolicy: "full", LogFile: "x.log", LogLevel: "debug",
			},
		},
		{name: "unknown field", in: `colour = "red"`, wantErr: true},
		{name: "wrong type", in: `frame_rate = "fast"`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			err := decodeConfig(strings.NewReader(tt.in), &cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("decodeConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && cfg != tt.want {
				t.Errorf("decodeConfig() = %+v, want %+v", cfg, tt.want)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config)
		ok     bool
	}{
		{"defaults", func(*config) {}, true},
		{"zero frame rate", func(c *config) { c.FrameRate = 0 }, false},
		{"max frame rate", func(c *config) { c.FrameRate = 1000 }, true},
		{"frame rate too high", func(c *config) { c.FrameRate = 2_000_000_000 }, false},
		{"bad policy", func(c *config) { c.CopyPolicy = "some" }, false},
		{"bad level", func(c *config) { c.LogLevel = "loud" }, false},
		{"warn level", func(c *config) { c.LogLevel = "warn" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := defaultConfig()
			tt.modify(&c)
			if err := c.validate(); (err == nil) != tt.ok {
				t.Errorf("validate() error = %v, want ok %v", err, tt.ok)
			}
		})
	}

	c := defaultConfig()
	if p, _ := c.copyPolicy(); p != framebuf.CopyDirtyRect {
		t.Errorf("default copy policy = %v, want dirty-rect", p)
	}
	c.LogLevel = "debug"
	if l, _ := c.level(); l != slog.LevelDebug {
		t.Errorf("level() = %v, want debug", l)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "none.toml")

	cfg, err := loadConfig(missing, false)
	if err != nil || cfg != defaultConfig() {
		t.Errorf("loadConfig(missing, optional) = %+v, %v; want defaults", cfg, err)
	}
	if _, err := loadConfig(missing, true); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("loadConfig(missing, required) error = %v, want ErrNotExist", err)
	}

	path := filepath.Join(dir, "webui-term.toml")
	if err := os.WriteFile(path, []byte("frame_rate = 12\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadConfig(path, true)
	if err != nil || cfg.FrameRate != 12 || cfg.StartPage != "index.html" {
		t.Errorf("loadConfig() = %+v, %v", cfg, err)
	}
}

func TestConfigLogger(t *testing.T) {
	c := defaultConfig()
	l, closer, err := c.logger()
	if err != nil || l != nil {
		t.Fatalf("logger() without file = %v, %v; want nil logger", l, err)
	}
	_ = closer.Close()

	c.LogFile = filepath.Join(t.TempDir(), "out.log")
	l, closer, err = c.logger()
	if err != nil {
		t.Fatalf("logger() error = %v", err)
	}
	l.Info("hello")
	_ = closer.Close()
	data, _ := os.ReadFile(c.LogFile)
	if !strings.Contains(string(data), "msg=hello") {
		t.Errorf("log file = %q, want msg=hello", data)
	}
}

type fakeView struct {
	reg    *msgbus.Registry
	pushed map[string]any
}

func (v *fakeView) On(name string, h msgbus.Handler) error { return v.reg.Register(name, h) }
func (v *fakeView) Push(name string, data any) error {
	v.pushed[name] = data
	return nil
}

type fakeHost struct{ stopped int }

func (h *fakeHost) Stop() { h.stopped++ }

func TestHandlers(t *testing.T) {
	v := &fakeView{reg: msgbus.NewRegistry(), pushed: map[string]any{}}
	h := &fakeHost{}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := registerHandlers(v, h, func() time.Time { return now }); err != nil {
		t.Fatalf("registerHandlers() error = %v", err)
	}

	bus := msgbus.New()
	_ = bus.Publish("ping", "")
	_ = bus.Publish("quit", "")
	res, err := bus.DrainAndDispatch(v.reg)
	if err != nil || res.Dispatched != 2 {
		t.Fatalf("DrainAndDispatch() = %+v, %v", res, err)
	}
	if got := v.pushed["pong"]; got != "2026-01-02T03:04:05Z" {
		t.Errorf("pong = %v, want 2026-01-02T03:04:05Z", got)
	}
	if h.stopped != 1 {
		t.Errorf("Stop calls = %d, want 1", h.stopped)
	}
}
