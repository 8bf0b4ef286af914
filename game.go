package main

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"treasureisland/screen"
	"treasureisland/world"
)

const settingsSaveInterval = 5 * time.Second

var (
	gameCtx   context.Context
	once      sync.Once
	cam       = newCamera()
	lastSaved time.Time

	// Board snapshot, refreshed only when the receiver wrote a new map.
	boardTiles   world.TileMap
	boardVersion uint64
)

type Game struct{}

func (g *Game) Update() error {
	select {
	case <-gameCtx.Done():
		return ebiten.Termination
	default:
	}
	once.Do(initGame)

	if err := sessionFailure(); err != nil {
		return err
	}

	now := time.Now()
	for _, ev := range pollEvents() {
		res, err := machine.HandleEvent(ev)
		if err != nil {
			if errors.Is(err, screen.ErrOutboxFull) {
				addMessage("Still sending, try again.")
			} else {
				logError("input: %v", err)
			}
			continue
		}
		if res.Sent {
			gs.LastUsername = machine.Username()
			settingsDirty = true
		}
		if res.Pan != screen.DirNone {
			cam.pan(res.Pan, now)
		}
	}

	if settingsDirty && now.Sub(lastSaved) >= settingsSaveInterval {
		saveSettings()
		settingsDirty = false
		lastSaved = now
	}
	return nil
}

func (g *Game) Draw(dst *ebiten.Image) {
	dst.Fill(backgroundColor)
	v := machine.View()
	if v.Mode == world.ModeGame {
		if store.TileMapVersion() != boardVersion {
			boardTiles, boardVersion = store.ReadTileMapVersion()
		}
		drawBoard(dst, boardTiles, cam)
		drawCharacters(dst, world.DefaultCharacters, cam)
	} else {
		drawPrompt(dst, v)
	}
	drawMessages(dst)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func runGame(ctx context.Context) {
	gameCtx = ctx

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(&Game{}); err != nil {
		log.Printf("ebiten: %v", err)
	}
}

func initGame() {
	ebiten.SetWindowTitle("Treasure Island")
	pickBackground()
}
