package world

import "fmt"

// SpriteCount is the number of tile sprites the client knows about.
const SpriteCount = 11

// Sprite indices as the server sends them.
const (
	SpriteSand1 byte = iota
	SpriteSand2
	SpriteSand3
	SpriteSand4
	SpriteSandWater1
	SpriteSandWater2
	SpriteSandWater3
	SpriteSandWater4
	SpritePalm
	SpriteChest
	SpriteWater
)

var spriteNames = [SpriteCount]string{
	"sand_1",
	"sand_2",
	"sand_3",
	"sand_4",
	"sand_water_1",
	"sand_water_2",
	"sand_water_3",
	"sand_water_4",
	"palm_1",
	"chest_1",
	"water_1",
}

func ValidSprite(idx byte) bool {
	return int(idx) < SpriteCount
}

// SpriteName returns the asset name of sprite idx, or "" if idx is out of
// range.
func SpriteName(idx byte) string {
	if !ValidSprite(idx) {
		return ""
	}
	return spriteNames[idx]
}

// Terrain values used by the map generator.
const (
	TerrainWater byte = 0
	TerrainSand1 byte = 1
	TerrainSand2 byte = 2
	TerrainTree  byte = 3
)

// TerrainSprite converts a terrain value into the sprite drawn for it.
func TerrainSprite(value byte) (byte, error) {
	switch value {
	case TerrainWater:
		return SpriteWater, nil
	case TerrainSand1, TerrainSand2:
		return SpriteSand1, nil
	case TerrainTree:
		return SpritePalm, nil
	}
	return 0, fmt.Errorf("no sprite for terrain value %d", value)
}

// Character is a player piece standing on a cell.
type Character struct {
	Sprite string
	Cell   int
}

// DefaultCharacters are the starting cells until the server sends positions.
var DefaultCharacters = []Character{
	{Sprite: "character_1", Cell: 38},
	{Sprite: "character_2", Cell: 361},
}
