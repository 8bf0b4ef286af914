package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	dark "github.com/thiagokokada/dark-mode-go"

	"treasureisland/screen"
	"treasureisland/world"
)

// Isometric board layout, in pixels at the camera origin.
const (
	tileOffsetX   = -75.0
	tileOffsetY   = -25.0
	tileDistanceX = 69.0
	tileDistanceY = 31.0
	tileSize      = 140.0
)

var spriteColors = [world.SpriteCount]color.RGBA{
	world.SpriteSand1:      {0xe8, 0xd3, 0x9a, 0xff},
	world.SpriteSand2:      {0xe2, 0xca, 0x8c, 0xff},
	world.SpriteSand3:      {0xdb, 0xc0, 0x7e, 0xff},
	world.SpriteSand4:      {0xd4, 0xb6, 0x72, 0xff},
	world.SpriteSandWater1: {0x9c, 0xc6, 0xb4, 0xff},
	world.SpriteSandWater2: {0x94, 0xc0, 0xb8, 0xff},
	world.SpriteSandWater3: {0x8c, 0xba, 0xbc, 0xff},
	world.SpriteSandWater4: {0x84, 0xb4, 0xc0, 0xff},
	world.SpritePalm:       {0x3f, 0x8f, 0x3a, 0xff},
	world.SpriteChest:      {0x8b, 0x5a, 0x2b, 0xff},
	world.SpriteWater:      {0x2a, 0x6f, 0xb8, 0xff},
}

var (
	unknownSpriteColor = color.RGBA{0xff, 0x00, 0xff, 0xff}
	characterColors    = []color.RGBA{
		{0xd0, 0x30, 0x30, 0xff},
		{0x30, 0x30, 0xd0, 0xff},
	}
	backgroundColor = color.RGBA{0x10, 0x10, 0x18, 0xff}
)

// pickBackground follows the desktop theme when it can be detected.
func pickBackground() {
	isDark, err := dark.IsDarkMode()
	if err != nil {
		logDebug("dark mode detection: %v", err)
		return
	}
	if !isDark {
		backgroundColor = color.RGBA{0xe0, 0xe4, 0xea, 0xff}
	}
}

// tileOrigin returns the top-left corner of the tile sprite at col,row.
func tileOrigin(col, row int, cam *camera) (float64, float64) {
	x := tileOffsetX - tileDistanceX*float64(col) + tileDistanceX*float64(row) + cam.x
	y := tileOffsetY + tileDistanceY*float64(col) + tileDistanceY*float64(row) + cam.y
	return x, y
}

func visible(x, y float64, w, h int) bool {
	return x >= -tileSize && x <= float64(w) && y >= -tileSize && y <= float64(h)
}

func drawBoard(dst *ebiten.Image, tiles world.TileMap, cam *camera) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	for cell, sprite := range tiles {
		col, row := world.CellPosition(cell)
		x, y := tileOrigin(col, row, cam)
		if !visible(x, y, w, h) {
			continue
		}
		clr := unknownSpriteColor
		if world.ValidSprite(sprite) {
			clr = spriteColors[sprite]
		}
		vector.DrawFilledRect(dst,
			float32(x+tileSize/2-tileDistanceX), float32(y+tileSize/2-tileDistanceY),
			float32(2*tileDistanceX-2), float32(2*tileDistanceY-2), clr, false)
	}
}

func drawCharacters(dst *ebiten.Image, chars []world.Character, cam *camera) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	for i, c := range chars {
		col, row := world.CellPosition(c.Cell)
		x, y := tileOrigin(col, row, cam)
		if !visible(x, y, w, h) {
			continue
		}
		clr := characterColors[i%len(characterColors)]
		vector.DrawFilledCircle(dst, float32(x+tileSize/2), float32(y+tileSize/2-tileDistanceY), 14, clr, true)
	}
}

func drawPrompt(dst *ebiten.Image, v screen.View) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	ebitenutil.DebugPrintAt(dst, v.Title, w/2-100, h/2-20)
	if v.Mode == world.ModeUsernamePrompt {
		ebitenutil.DebugPrintAt(dst, v.Username+"_", w/2-100, h/2)
	}
}

func drawMessages(dst *ebiten.Image) {
	for i, msg := range getMessages() {
		ebitenutil.DebugPrintAt(dst, msg, 8, 8+16*i)
	}
}
