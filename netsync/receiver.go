// Package netsync runs the two network loops of a game session: one reading
// server frames into the shared store and one writing queued messages back.
package netsync

import (
	"fmt"
	"io"
	"log"

	"treasureisland/proto"
	"treasureisland/world"
)

// Receiver applies server frames to a store.
type Receiver struct {
	Store *world.Store
	Stats *Stats

	// Debugf, when set, receives per-frame trace output.
	Debugf func(format string, v ...any)
	// Dump, when set, receives every raw frame.
	Dump func(prefix string, data []byte)
}

// Run reads frames from r until a read fails. The returned error is never
// nil; there is no recovery from a broken stream.
func (rc *Receiver) Run(r io.Reader) error {
	rc.debugf("listening for messages from the server")
	for {
		f, err := proto.ReadFrame(r)
		if err != nil {
			return fmt.Errorf("receive frame: %w", err)
		}
		if rc.Dump != nil {
			raw := f.Encode()
			rc.Dump("recv", raw[:])
		}
		rc.Apply(f)
	}
}

// Apply performs the effect of a single frame.
func (rc *Receiver) Apply(f proto.Frame) {
	kind := proto.Classify(f.Action)
	if rc.Stats != nil {
		rc.Stats.noteFrame(kind)
	}
	switch kind {
	case proto.KindIgnored:
		return
	case proto.KindPushMap:
		rc.Store.WriteTileMap(world.TileMap(f.Data))
		rc.debugf("recv map push, %d tiles", len(f.Data))
	case proto.KindStartGame:
		if !proto.Known(f.Action) {
			log.Printf("netsync: unrecognised action %d treated as game start", f.Action)
		}
		rc.Store.SetMode(world.ModeGame)
		rc.debugf("recv game start (action %d)", f.Action)
	}
}

func (rc *Receiver) debugf(format string, v ...any) {
	if rc.Debugf != nil {
		rc.Debugf(format, v...)
	}
}
