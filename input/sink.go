// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package input

// Sink receives primitive events. Engine surfaces implement it.
type Sink interface {
	SendPointerMove(x, y float64, exited bool)
	SendButton(b Button, x, y float64, down bool)
	SendScroll(x, y, dx, dy float64)
	SendKey(k Key, m Modifiers, down bool)
	SendChar(r rune, m Modifiers)
}

// Dispatch forwards events to sink in order.
func Dispatch(sink Sink, events []Event) {
	for _, e := range events {
		switch e := e.(type) {
		case PointerMove:
			sink.SendPointerMove(e.X, e.Y, e.Exited)
		case ButtonDown:
			sink.SendButton(e.Button, e.X, e.Y, true)
		case ButtonUp:
			sink.SendButton(e.Button, e.X, e.Y, false)
		case Scroll:
			sink.SendScroll(e.X, e.Y, e.DeltaX, e.DeltaY)
		case KeyDown:
			sink.SendKey(e.Key, e.Modifiers, true)
		case KeyUp:
			sink.SendKey(e.Key, e.Modifiers, false)
		case CharInput:
			sink.SendChar(e.Rune, e.Modifiers)
		}
	}
}
