package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"treasureisland/screen"
)

var letterKeys = map[ebiten.Key]rune{
	ebiten.KeyA: 'A', ebiten.KeyB: 'B', ebiten.KeyC: 'C', ebiten.KeyD: 'D',
	ebiten.KeyE: 'E', ebiten.KeyF: 'F', ebiten.KeyG: 'G', ebiten.KeyH: 'H',
	ebiten.KeyI: 'I', ebiten.KeyJ: 'J', ebiten.KeyK: 'K', ebiten.KeyL: 'L',
	ebiten.KeyM: 'M', ebiten.KeyN: 'N', ebiten.KeyO: 'O', ebiten.KeyP: 'P',
	ebiten.KeyQ: 'Q', ebiten.KeyR: 'R', ebiten.KeyS: 'S', ebiten.KeyT: 'T',
	ebiten.KeyU: 'U', ebiten.KeyV: 'V', ebiten.KeyW: 'W', ebiten.KeyX: 'X',
	ebiten.KeyY: 'Y', ebiten.KeyZ: 'Z',
}

// Arrow keys are polled while held, in this order.
var arrowKeys = []struct {
	key ebiten.Key
	dir screen.Direction
}{
	{ebiten.KeyArrowUp, screen.DirUp},
	{ebiten.KeyArrowDown, screen.DirDown},
	{ebiten.KeyArrowLeft, screen.DirLeft},
	{ebiten.KeyArrowRight, screen.DirRight},
}

var (
	keyBuf      []ebiten.Key
	clipboardOK bool
)

func initClipboard() {
	if err := clipboard.Init(); err != nil {
		logWarn("clipboard init: %v", err)
		return
	}
	clipboardOK = true
}

// pollEvents turns this tick's keyboard state into screen events.
func pollEvents() []screen.Event {
	var evs []screen.Event
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)
	keyBuf = inpututil.AppendJustPressedKeys(keyBuf[:0])
	for _, k := range keyBuf {
		if ctrl {
			if k == ebiten.KeyV && clipboardOK {
				evs = appendPasteEvents(evs, clipboard.Read(clipboard.FmtText))
			}
			continue
		}
		evs = appendKeyEvent(evs, k)
	}
	for _, a := range arrowKeys {
		if ebiten.IsKeyPressed(a.key) {
			evs = append(evs, screen.Arrow(a.dir))
			break
		}
	}
	return evs
}

func appendKeyEvent(evs []screen.Event, k ebiten.Key) []screen.Event {
	if r, ok := letterKeys[k]; ok {
		return append(evs, screen.Letter(r))
	}
	switch k {
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		return append(evs, screen.Enter())
	case ebiten.KeyBackspace:
		return append(evs, screen.Backspace())
	}
	return evs
}

// appendPasteEvents types pasted text one letter at a time. The screen drops
// anything it does not accept.
func appendPasteEvents(evs []screen.Event, text []byte) []screen.Event {
	for _, r := range string(text) {
		if r == '\n' || r == '\r' {
			break
		}
		evs = append(evs, screen.Letter(r))
	}
	return evs
}
