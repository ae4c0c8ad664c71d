// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package termhost

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gpucontext"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		name     string
		key      tcell.Key
		r        rune
		mod      tcell.ModMask
		wantKey  gpucontext.Key
		wantMods gpucontext.Modifiers
		wantText rune
	}{
		{"letter", tcell.KeyRune, 'a', tcell.ModNone, gpucontext.KeyA, 0, 'a'},
		{"upper letter", tcell.KeyRune, 'Q', tcell.ModNone, gpucontext.KeyQ, gpucontext.ModShift, 'Q'},
		{"digit", tcell.KeyRune, '7', tcell.ModNone, gpucontext.Key7, 0, '7'},
		{"space", tcell.KeyRune, ' ', tcell.ModNone, gpucontext.KeySpace, 0, ' '},
		{"slash", tcell.KeyRune, '/', tcell.ModNone, gpucontext.KeySlash, 0, '/'},
		{"non-ascii", tcell.KeyRune, 'ö', tcell.ModNone, gpucontext.KeyUnknown, 0, 'ö'},
		{"alt letter", tcell.KeyRune, 'x', tcell.ModAlt, gpucontext.KeyX, gpucontext.ModAlt, 'x'},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, gpucontext.KeyEnter, 0, 0},
		{"tab", tcell.KeyTab, 0, tcell.ModNone, gpucontext.KeyTab, 0, 0},
		{"backtab", tcell.KeyBacktab, 0, tcell.ModNone, gpucontext.KeyTab, gpucontext.ModShift, 0},
		{"backspace", tcell.KeyBackspace2, 0, tcell.ModNone, gpucontext.KeyBackspace, 0, 0},
		{"escape", tcell.KeyEscape, 0, tcell.ModNone, gpucontext.KeyEscape, 0, 0},
		{"arrow with shift", tcell.KeyLeft, 0, tcell.ModShift, gpucontext.KeyLeft, gpucontext.ModShift, 0},
		{"f12", tcell.KeyF12, 0, tcell.ModNone, gpucontext.KeyF12, 0, 0},
		{"ctrl letter", tcell.KeyCtrlS, 0, tcell.ModCtrl, gpucontext.KeyS, gpucontext.ModControl, 0},
		{"meta", tcell.KeyHome, 0, tcell.ModMeta, gpucontext.KeyHome, gpucontext.ModSuper, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, mods, text := mapKey(tcell.NewEventKey(tt.key, tt.r, tt.mod))
			if k != tt.wantKey || mods != tt.wantMods || text != tt.wantText {
				t.Errorf("mapKey() = (%v, %v, %q), want (%v, %v, %q)",
					k, mods, text, tt.wantKey, tt.wantMods, tt.wantText)
			}
		})
	}
}

func TestRuneKey(t *testing.T) {
	for r := 'a'; r <= 'z'; r++ {
		if got, want := runeKey(r), gpucontext.KeyA+gpucontext.Key(r-'a'); got != want {
			t.Errorf("runeKey(%q) = %v, want %v", r, got, want)
		}
	}
	for r := '0'; r <= '9'; r++ {
		if got, want := runeKey(r), gpucontext.Key0+gpucontext.Key(r-'0'); got != want {
			t.Errorf("runeKey(%q) = %v, want %v", r, got, want)
		}
	}
	if got := runeKey('€'); got != gpucontext.KeyUnknown {
		t.Errorf("runeKey('€') = %v, want KeyUnknown", got)
	}
}
