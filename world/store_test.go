package world

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestNewStoreDefaults(t *testing.T) {
	s := NewStore()
	if s.Mode() != ModeUsernamePrompt {
		t.Fatalf("mode=%v, want username prompt", s.Mode())
	}
	if s.ReadTileMap() != (TileMap{}) {
		t.Fatalf("tile map not zeroed")
	}
	if s.TileMapVersion() != 0 {
		t.Fatalf("version=%d, want 0", s.TileMapVersion())
	}
}

func TestReadTileMapReturnsCopy(t *testing.T) {
	s := NewStore()
	var tm TileMap
	tm[5] = SpritePalm
	s.WriteTileMap(tm)

	got := s.ReadTileMap()
	got[5] = SpriteChest
	if s.ReadTileMap()[5] != SpritePalm {
		t.Fatalf("store modified through returned copy")
	}
	tm[6] = SpriteWater
	if s.ReadTileMap()[6] != 0 {
		t.Fatalf("store modified through written value")
	}
}

func TestWriteTilesSize(t *testing.T) {
	s := NewStore()
	if err := s.WriteTiles(make([]byte, TileCount-1)); !errors.Is(err, ErrTileMapSize) {
		t.Fatalf("err=%v, want ErrTileMapSize", err)
	}
	if s.TileMapVersion() != 0 {
		t.Fatalf("rejected write bumped version")
	}
	b := make([]byte, TileCount)
	b[399] = SpriteWater
	if err := s.WriteTiles(b); err != nil {
		t.Fatalf("WriteTiles: %v", err)
	}
	tm, v := s.ReadTileMapVersion()
	if tm[399] != SpriteWater || v != 1 {
		t.Fatalf("got tile %d version %d", tm[399], v)
	}
}

func TestTileMapAt(t *testing.T) {
	var tm TileMap
	tm[2*TilesPerRow+3] = 7
	if tm.At(3, 2) != 7 {
		t.Fatalf("At(3,2)=%d, want 7", tm.At(3, 2))
	}
	if c, r := CellPosition(361); c != 1 || r != 18 {
		t.Fatalf("CellPosition(361)=%d,%d", c, r)
	}
}

// Concurrent readers must only ever see maps written in one piece.
func TestTileMapSnapshotsAreAtomic(t *testing.T) {
	s := NewStore()
	const writes = 2000

	var wg sync.WaitGroup
	done := make(chan struct{})
	for w := 0; w < 2; w++ {
		wg.Add(1)
		go func(seed int) {
			defer wg.Done()
			for i := 0; i < writes; i++ {
				var tm TileMap
				v := byte(seed*writes + i)
				for j := range tm {
					tm[j] = v
				}
				s.WriteTileMap(tm)
			}
		}(w)
	}

	errs := make(chan string, 4)
	var rg sync.WaitGroup
	for r := 0; r < 4; r++ {
		rg.Add(1)
		go func() {
			defer rg.Done()
			for {
				select {
				case <-done:
					return
				default:
				}
				tm := s.ReadTileMap()
				for j := range tm {
					if tm[j] != tm[0] {
						errs <- "torn tile map observed"
						return
					}
				}
			}
		}()
	}

	wg.Wait()
	close(done)
	rg.Wait()
	close(errs)
	for e := range errs {
		t.Fatal(e)
	}
	if s.TileMapVersion() != 2*writes {
		t.Fatalf("version=%d, want %d", s.TileMapVersion(), 2*writes)
	}
}

func TestModeSubscription(t *testing.T) {
	s := NewStore()
	ch := s.SubscribeMode()
	s.SetMode(ModeWaitingForPlayers)
	s.SetMode(ModeWaitingForPlayers)
	s.SetMode(ModeGame)

	want := []ModeChange{
		{ModeUsernamePrompt, ModeWaitingForPlayers},
		{ModeWaitingForPlayers, ModeGame},
	}
	for i, w := range want {
		select {
		case got := <-ch:
			if got != w {
				t.Fatalf("change %d = %v, want %v", i, got, w)
			}
		default:
			t.Fatalf("change %d missing", i)
		}
	}
	select {
	case got := <-ch:
		t.Fatalf("unexpected change %v", got)
	default:
	}

	s.UnsubscribeMode(ch)
	if _, ok := <-ch; ok {
		t.Fatalf("channel still open after unsubscribe")
	}
	s.SetMode(ModeUsernamePrompt)
}

func TestSetModeDoesNotWaitForSubscribers(t *testing.T) {
	s := NewStore()
	_ = s.SubscribeMode() // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10*ModeChangeBuffer; i++ {
			s.SetMode(Mode(i % 3))
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("SetMode blocked on a full subscriber")
	}
}

func TestModeChangesKeepOrder(t *testing.T) {
	for run := 0; run < 200; run++ {
		s := NewStore()
		ch := s.SubscribeMode()
		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); s.SetMode(ModeWaitingForPlayers) }()
		go func() { defer wg.Done(); s.SetMode(ModeGame) }()
		wg.Wait()

		var last ModeChange
		prev := ModeUsernamePrompt
		for n := len(ch); n > 0; n-- {
			last = <-ch
			if last.Prev != prev {
				t.Fatalf("run %d: change %v does not follow %v", run, last, prev)
			}
			prev = last.Next
		}
		if last.Next != s.Mode() {
			t.Fatalf("run %d: last change %v, store reads %v", run, last, s.Mode())
		}
	}
}

func TestModeString(t *testing.T) {
	if ModeGame.String() != "game" {
		t.Fatalf("got %q", ModeGame.String())
	}
	if Mode(9).String() != "mode(9)" {
		t.Fatalf("got %q", Mode(9).String())
	}
}

func TestTerrainSprite(t *testing.T) {
	cases := map[byte]byte{
		TerrainWater: SpriteWater,
		TerrainSand1: SpriteSand1,
		TerrainSand2: SpriteSand1,
		TerrainTree:  SpritePalm,
	}
	for in, want := range cases {
		got, err := TerrainSprite(in)
		if err != nil || got != want {
			t.Errorf("TerrainSprite(%d)=%d,%v want %d", in, got, err, want)
		}
	}
	if _, err := TerrainSprite(4); err == nil {
		t.Errorf("expected error for terrain 4")
	}
	if SpriteName(SpriteChest) != "chest_1" || SpriteName(SpriteCount) != "" {
		t.Errorf("SpriteName mismatch")
	}
}
