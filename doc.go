// Package webui embeds an off-screen content engine in a gogpu host.
//
// # Overview
//
// A content engine renders documents on its own goroutines and runs their
// scripts. webui connects it to a host's single-threaded update/draw loop:
//
//   - painted frames cross from the engine's paint goroutine to the host's
//     draw call through a framebuf.Bridge, without tearing and without
//     uploading unchanged frames
//   - host input is sampled once per frame and diffed into ordered primitive
//     events by the input package
//   - scripts publish named messages to host handlers through a msgbus.Bus
//     drained once per update, and the host pushes messages back as script
//     calls
//   - a lifecycle.Manager owns the engine's process-wide state and its
//     thread contract
//
// # Quick Start
//
//	func init() { runtime.LockOSThread() }
//
//	eng, _ := engine.New("software")
//	mgr := lifecycle.NewManager(eng)
//	if err := mgr.Initialize("content"); err != nil {
//	    log.Fatal(err)
//	}
//	defer mgr.Shutdown()
//
//	view, err := webui.NewView(mgr, 800, 600, webui.WithStartPage("index.html"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	view.On("quit", func(string) error { app.Quit(); return nil })
//
//	rec := input.NewRecorder()
//	rec.Attach(app.EventSource())
//
//	app.OnUpdate(func(dt float64) { _ = view.Update(rec.Snapshot()) })
//	app.OnDraw(func(dc *gogpu.Context) { _ = view.Draw(dc.AsTextureDrawer()) })
//
// In a page, scripts call the host through the registered binding and
// receive host pushes through the callback namespace:
//
//	webUIMessage.pushMessageToGame("quit", null);
//	window.webUICallbacks = { score: function(data) { ... } };
//
// # Logging
//
// webui produces no log output by default. See SetLogger.
package webui
