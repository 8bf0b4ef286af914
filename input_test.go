package main

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"treasureisland/screen"
)

func TestLetterKeysCoverAlphabet(t *testing.T) {
	if len(letterKeys) != 26 {
		t.Fatalf("got %d letter keys, want 26", len(letterKeys))
	}
	seen := make(map[rune]bool)
	for _, r := range letterKeys {
		if r < 'A' || r > 'Z' {
			t.Fatalf("letter %q out of range", r)
		}
		if seen[r] {
			t.Fatalf("letter %q mapped twice", r)
		}
		seen[r] = true
	}
	if letterKeys[ebiten.KeyQ] != 'Q' {
		t.Fatalf("KeyQ -> %q", letterKeys[ebiten.KeyQ])
	}
}

func TestAppendKeyEvent(t *testing.T) {
	var evs []screen.Event
	for _, k := range []ebiten.Key{ebiten.KeyJ, ebiten.KeyDigit1, ebiten.KeyBackspace, ebiten.KeyNumpadEnter, ebiten.KeyEnter} {
		evs = appendKeyEvent(evs, k)
	}
	want := []screen.Event{screen.Letter('J'), screen.Backspace(), screen.Enter(), screen.Enter()}
	if len(evs) != len(want) {
		t.Fatalf("got %d events, want %d", len(evs), len(want))
	}
	for i := range want {
		if evs[i] != want[i] {
			t.Fatalf("event %d = %+v, want %+v", i, evs[i], want[i])
		}
	}
}

func TestCameraPanThrottled(t *testing.T) {
	c := newCamera()
	now := time.Now()
	if !c.pan(screen.DirUp, now) {
		t.Fatalf("first pan refused")
	}
	if c.pan(screen.DirUp, now.Add(5*time.Millisecond)) {
		t.Fatalf("pan within the interval allowed")
	}
	if !c.pan(screen.DirLeft, now.Add(cameraInterval+time.Millisecond)) {
		t.Fatalf("pan after the interval refused")
	}
	if c.x != cameraStep || c.y != cameraStep {
		t.Fatalf("camera at %v,%v", c.x, c.y)
	}
	if c.pan(screen.DirNone, now.Add(time.Second)) {
		t.Fatalf("DirNone moved the camera")
	}
}

func TestCameraDirections(t *testing.T) {
	cases := []struct {
		dir  screen.Direction
		x, y float64
	}{
		{screen.DirUp, 0, cameraStep},
		{screen.DirDown, 0, -cameraStep},
		{screen.DirLeft, cameraStep, 0},
		{screen.DirRight, -cameraStep, 0},
	}
	for _, tc := range cases {
		c := newCamera()
		c.pan(tc.dir, time.Now())
		if c.x != tc.x || c.y != tc.y {
			t.Errorf("%v: camera at %v,%v, want %v,%v", tc.dir, c.x, c.y, tc.x, tc.y)
		}
	}
}

func TestTileOrigin(t *testing.T) {
	c := newCamera()
	x, y := tileOrigin(0, 0, c)
	if x != tileOffsetX || y != tileOffsetY {
		t.Fatalf("origin tile at %v,%v", x, y)
	}
	x, y = tileOrigin(1, 2, c)
	if x != tileOffsetX+tileDistanceX || y != tileOffsetY+3*tileDistanceY {
		t.Fatalf("tile 1,2 at %v,%v", x, y)
	}
	if visible(-tileSize-1, 0, 800, 600) || !visible(0, 0, 800, 600) {
		t.Fatalf("visibility bounds wrong")
	}
}

func TestAppendPasteEvents(t *testing.T) {
	evs := appendPasteEvents(nil, []byte("Jo hn\nSMITH"))
	if len(evs) != 5 {
		t.Fatalf("got %d events, want 5", len(evs))
	}
	for i, r := range "Jo hn" {
		if evs[i] != screen.Letter(r) {
			t.Fatalf("event %d = %+v", i, evs[i])
		}
	}
}
