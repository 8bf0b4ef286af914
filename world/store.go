// Package world holds the client state shared between the network receiver
// and the render loop.
package world

import (
	"errors"
	"fmt"
	"sync"
)

const (
	TilesPerRow = 20
	Rows        = 20
	TileCount   = TilesPerRow * Rows
)

var ErrTileMapSize = errors.New("tile map must be 400 bytes")

// TileMap is the board, row-major, one sprite index per cell.
type TileMap [TileCount]byte

// At returns the tile in column col of row row.
func (t *TileMap) At(col, row int) byte {
	return t[row*TilesPerRow+col]
}

// CellPosition converts a row-major cell index into its column and row.
func CellPosition(cell int) (col, row int) {
	return cell % TilesPerRow, cell / TilesPerRow
}

// Mode is the screen currently shown to the player.
type Mode int

const (
	ModeUsernamePrompt Mode = iota
	ModeWaitingForPlayers
	ModeGame
)

var modeNames = []string{
	"username prompt",
	"waiting for players",
	"game",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Store guards the tile map and the screen mode. The two fields are locked
// independently; each read or write copies the whole value inside a single
// critical section.
type Store struct {
	tilesMu      sync.RWMutex
	tiles        TileMap
	tilesVersion uint64

	modeMu sync.RWMutex
	mode   Mode
	subs   map[chan ModeChange]struct{}
}

// NewStore returns a store with an all-zero map and the username prompt.
func NewStore() *Store {
	return &Store{mode: ModeUsernamePrompt, subs: make(map[chan ModeChange]struct{})}
}

// WriteTileMap replaces the map with t.
func (s *Store) WriteTileMap(t TileMap) {
	s.tilesMu.Lock()
	s.tiles = t
	s.tilesVersion++
	s.tilesMu.Unlock()
}

// WriteTiles replaces the map with the contents of b, which must hold
// exactly TileCount bytes.
func (s *Store) WriteTiles(b []byte) error {
	if len(b) != TileCount {
		return fmt.Errorf("%w: got %d", ErrTileMapSize, len(b))
	}
	var t TileMap
	copy(t[:], b)
	s.WriteTileMap(t)
	return nil
}

// ReadTileMap returns a copy of the current map.
func (s *Store) ReadTileMap() TileMap {
	s.tilesMu.RLock()
	defer s.tilesMu.RUnlock()
	return s.tiles
}

// TileMapVersion counts the map writes so far.
func (s *Store) TileMapVersion() uint64 {
	s.tilesMu.RLock()
	defer s.tilesMu.RUnlock()
	return s.tilesVersion
}

// ReadTileMapVersion returns the map together with its version.
func (s *Store) ReadTileMapVersion() (TileMap, uint64) {
	s.tilesMu.RLock()
	defer s.tilesMu.RUnlock()
	return s.tiles, s.tilesVersion
}

func (s *Store) Mode() Mode {
	s.modeMu.RLock()
	defer s.modeMu.RUnlock()
	return s.mode
}

// ModeChange is one transition of the active screen.
type ModeChange struct {
	Prev, Next Mode
}

// ModeChangeBuffer is the queue length of each subscription.
const ModeChangeBuffer = 8

// SetMode switches the active screen. A change is published to every
// subscriber without blocking; a subscriber whose queue is full misses it.
// Publication happens under the mode lock, so every subscriber sees changes
// in the order they were applied.
func (s *Store) SetMode(m Mode) {
	s.modeMu.Lock()
	defer s.modeMu.Unlock()
	if s.mode == m {
		return
	}
	ev := ModeChange{Prev: s.mode, Next: m}
	s.mode = m
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// SubscribeMode returns a channel receiving mode changes. Receivers that
// fall behind should act on Mode() rather than on the last event.
func (s *Store) SubscribeMode() <-chan ModeChange {
	ch := make(chan ModeChange, ModeChangeBuffer)
	s.modeMu.Lock()
	if s.subs == nil {
		s.subs = make(map[chan ModeChange]struct{})
	}
	s.subs[ch] = struct{}{}
	s.modeMu.Unlock()
	return ch
}

// UnsubscribeMode stops delivery to ch and closes it.
func (s *Store) UnsubscribeMode(ch <-chan ModeChange) {
	s.modeMu.Lock()
	defer s.modeMu.Unlock()
	for c := range s.subs {
		if c == ch {
			delete(s.subs, c)
			close(c)
			return
		}
	}
}
