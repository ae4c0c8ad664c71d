// Command webui-term runs a webui page inside a terminal.
//
// The page is rendered by a registered engine, shown with half-block
// characters and driven by terminal keyboard and mouse input.
//
// Usage:
//
//	webui-term [-config webui-term.toml] [-content dir] [-page index.html]
//
// Pages talk to the host through webUIMessage.pushMessageToGame. The host
// answers "ping" with a "pong" callback carrying the current time and
// exits on "quit".
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/webui"
	"github.com/gogpu/webui/engine"
	_ "github.com/gogpu/webui/engine/softengine" // Register the software engine
	"github.com/gogpu/webui/internal/termhost"
	"github.com/gogpu/webui/lifecycle"
	"github.com/gogpu/webui/msgbus"
)

const defaultConfigFile = "webui-term.toml"

func init() {
	// The engine lifecycle belongs to the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "webui-term:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile = flag.String("config", defaultConfigFile, "configuration file")
		content    = flag.String("content", "", "content root directory (overrides config)")
		page       = flag.String("page", "", "start page (overrides config)")
		engineName = flag.String("engine", "", "engine name (overrides config; default picks the best available)")
		logFile    = flag.String("log", "", "log file (overrides config)")
		listOnly   = flag.Bool("engines", false, "list available engines and exit")
	)
	flag.Parse()

	if *listOnly {
		for _, name := range engine.Available() {
			fmt.Println(name)
		}
		return nil
	}

	cfg, err := loadConfig(*configFile, *configFile != defaultConfigFile)
	if err != nil {
		return err
	}
	override(&cfg.ContentRoot, *content)
	override(&cfg.StartPage, *page)
	override(&cfg.Engine, *engineName)
	override(&cfg.LogFile, *logFile)
	if err := cfg.validate(); err != nil {
		return err
	}

	logger, logCloser, err := cfg.logger()
	if err != nil {
		return err
	}
	defer logCloser.Close()
	webui.SetLogger(logger)

	eng, err := newEngine(cfg.Engine)
	if err != nil {
		return err
	}
	mgr := lifecycle.NewManager(eng)
	if err := mgr.Initialize(cfg.ContentRoot); err != nil {
		return err
	}
	defer func() {
		if err := mgr.Shutdown(); err != nil {
			webui.Logger().Error("webui-term: shutdown", "err", err)
		}
	}()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	viewOpts, err := cfg.viewOptions()
	if err != nil {
		return err
	}
	view, err := webui.NewView(mgr, 1, 1, viewOpts...)
	if err != nil {
		return err
	}
	defer view.Close()

	host := termhost.New(screen, view,
		termhost.WithFrameRate(cfg.FrameRate),
		termhost.WithStatus(func() string {
			st := view.Stats()
			return fmt.Sprintf(" %s │ %s │ frames %d │ messages %d │ Ctrl+C quits",
				eng.Name(), cfg.StartPage, st.Bridge.Takes, st.Bus.Dispatched)
		}),
	)
	if err := registerHandlers(view, host, time.Now); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return host.Run(ctx)
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func newEngine(name string) (engine.Engine, error) {
	if name == "" {
		return engine.Default()
	}
	return engine.New(name)
}

// messenger is the part of webui.View the handlers use.
type messenger interface {
	On(name string, h msgbus.Handler) error
	Push(name string, data any) error
}

// registerHandlers answers the messages pages send to the host.
func registerHandlers(view messenger, host interface{ Stop() }, now func() time.Time) error {
	if err := view.On("ping", func(string) error {
		return view.Push("pong", now().Format(time.RFC3339))
	}); err != nil {
		return err
	}
	return view.On("quit", func(string) error {
		host.Stop()
		return nil
	})
}
