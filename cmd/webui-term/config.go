package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/webui"
	"github.com/gogpu/webui/engine"
	"github.com/gogpu/webui/framebuf"
)

// config is the webui-term configuration file:
//
//	content_root = "./content"
//	start_page   = "index.html"
//	engine       = "software"
//	frame_rate   = 30
//	copy_policy  = "dirty-rect"
//	log_file     = "webui-term.log"
//	log_level    = "debug"
type config struct {
	ContentRoot string `toml:"content_root"`
	StartPage   string `toml:"start_page"`
	Engine      string `toml:"engine"`
	FrameRate   int    `toml:"frame_rate"`
	CopyPolicy  string `toml:"copy_policy"`
	LogFile     string `toml:"log_file"`
	LogLevel    string `toml:"log_level"`
}

func defaultConfig() config {
	return config{
		StartPage:  "index.html",
		FrameRate:  30,
		CopyPolicy: framebuf.CopyDirtyRect.String(),
		LogLevel:   "info",
	}
}

// loadConfig reads path over the defaults. A missing file is not an
// error when path is the default location.
func loadConfig(path string, required bool) (config, error) {
	cfg := defaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	if err := decodeConfig(f, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeConfig(r io.Reader, cfg *config) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

func (c config) validate() error {
	if c.FrameRate <= 0 || c.FrameRate > engine.MaxFrameRate {
		return fmt.Errorf("frame_rate must be in 1..%d, got %d", engine.MaxFrameRate, c.FrameRate)
	}
	if _, err := c.copyPolicy(); err != nil {
		return err
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c config) copyPolicy() (framebuf.CopyPolicy, error) {
	return framebuf.ParseCopyPolicy(c.CopyPolicy)
}

// viewOptions returns the View options described by c.
func (c config) viewOptions() ([]webui.Option, error) {
	policy, err := c.copyPolicy()
	if err != nil {
		return nil, err
	}
	return []webui.Option{
		webui.WithStartPage(c.StartPage),
		webui.WithFrameRate(c.FrameRate),
		webui.WithCopyPolicy(policy),
	}, nil
}

func (c config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// logger opens the log file configured in c. The terminal is owned by the
// UI, so without a log file nothing is logged.
func (c config) logger() (*slog.Logger, io.Closer, error) {
	if c.LogFile == "" {
		return nil, io.NopCloser(nil), nil
	}
	level, err := c.level()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})), f, nil
}
