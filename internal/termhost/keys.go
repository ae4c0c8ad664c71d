// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package termhost

import (
	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gpucontext"
)

var specialKeys = map[tcell.Key]gpucontext.Key{
	tcell.KeyEnter:      gpucontext.KeyEnter,
	tcell.KeyTab:        gpucontext.KeyTab,
	tcell.KeyBacktab:    gpucontext.KeyTab,
	tcell.KeyBackspace:  gpucontext.KeyBackspace,
	tcell.KeyBackspace2: gpucontext.KeyBackspace,
	tcell.KeyEscape:     gpucontext.KeyEscape,
	tcell.KeyInsert:     gpucontext.KeyInsert,
	tcell.KeyDelete:     gpucontext.KeyDelete,
	tcell.KeyHome:       gpucontext.KeyHome,
	tcell.KeyEnd:        gpucontext.KeyEnd,
	tcell.KeyPgUp:       gpucontext.KeyPageUp,
	tcell.KeyPgDn:       gpucontext.KeyPageDown,
	tcell.KeyLeft:       gpucontext.KeyLeft,
	tcell.KeyRight:      gpucontext.KeyRight,
	tcell.KeyUp:         gpucontext.KeyUp,
	tcell.KeyDown:       gpucontext.KeyDown,
	tcell.KeyF1:         gpucontext.KeyF1,
	tcell.KeyF2:         gpucontext.KeyF2,
	tcell.KeyF3:         gpucontext.KeyF3,
	tcell.KeyF4:         gpucontext.KeyF4,
	tcell.KeyF5:         gpucontext.KeyF5,
	tcell.KeyF6:         gpucontext.KeyF6,
	tcell.KeyF7:         gpucontext.KeyF7,
	tcell.KeyF8:         gpucontext.KeyF8,
	tcell.KeyF9:         gpucontext.KeyF9,
	tcell.KeyF10:        gpucontext.KeyF10,
	tcell.KeyF11:        gpucontext.KeyF11,
	tcell.KeyF12:        gpucontext.KeyF12,
	tcell.KeyPause:      gpucontext.KeyPause,
	tcell.KeyPrint:      gpucontext.KeyPrintScreen,
}

var punctKeys = map[rune]gpucontext.Key{
	' ':  gpucontext.KeySpace,
	'-':  gpucontext.KeyMinus,
	'=':  gpucontext.KeyEqual,
	'[':  gpucontext.KeyLeftBracket,
	']':  gpucontext.KeyRightBracket,
	'\\': gpucontext.KeyBackslash,
	';':  gpucontext.KeySemicolon,
	'\'': gpucontext.KeyApostrophe,
	'`':  gpucontext.KeyGrave,
	',':  gpucontext.KeyComma,
	'.':  gpucontext.KeyPeriod,
	'/':  gpucontext.KeySlash,
}

// runeKey returns the key that types r on a US layout without shift, or
// KeyUnknown.
func runeKey(r rune) gpucontext.Key {
	switch {
	case r >= 'a' && r <= 'z':
		return gpucontext.KeyA + gpucontext.Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return gpucontext.KeyA + gpucontext.Key(r-'A')
	case r >= '0' && r <= '9':
		return gpucontext.Key0 + gpucontext.Key(r-'0')
	}
	return punctKeys[r]
}

// mapKey translates a terminal key event into a key and modifiers. text
// is the rune to queue as typed text, or 0.
func mapKey(ev *tcell.EventKey) (k gpucontext.Key, mods gpucontext.Modifiers, text rune) {
	mods = mapMods(ev.Modifiers())
	key := ev.Key()

	switch {
	case key == tcell.KeyRune:
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			mods |= gpucontext.ModShift
		}
		return runeKey(r), mods, r
	case key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ:
		if k, ok := specialKeys[key]; ok {
			// Tab, Enter and Backspace share codes with Ctrl+I, Ctrl+M and Ctrl+H.
			return k, mods, 0
		}
		return gpucontext.KeyA + gpucontext.Key(key-tcell.KeyCtrlA), mods | gpucontext.ModControl, 0
	}
	if key == tcell.KeyBacktab {
		mods |= gpucontext.ModShift
	}
	return specialKeys[key], mods, 0
}

func mapMods(m tcell.ModMask) gpucontext.Modifiers {
	var mods gpucontext.Modifiers
	if m&tcell.ModShift != 0 {
		mods |= gpucontext.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= gpucontext.ModControl
	}
	if m&tcell.ModAlt != 0 {
		mods |= gpucontext.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= gpucontext.ModSuper
	}
	return mods
}
