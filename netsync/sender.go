package netsync

import (
	"context"
	"fmt"
	"io"

	"treasureisland/proto"
)

// Sender relays queued messages to the server in the order they were
// queued.
type Sender struct {
	Stats  *Stats
	Debugf func(format string, v ...any)
	Dump   func(prefix string, data []byte)
}

// Run writes every message received on outbox to w. It returns nil when the
// outbox is closed or ctx is done, and the write error otherwise.
func (s *Sender) Run(ctx context.Context, w io.Writer, outbox <-chan proto.Message) error {
	for {
		var m proto.Message
		var ok bool
		select {
		case <-ctx.Done():
			return nil
		case m, ok = <-outbox:
			if !ok {
				return nil
			}
		}
		if err := proto.WriteMessage(w, m); err != nil {
			return fmt.Errorf("send message: %w", err)
		}
		if s.Stats != nil {
			s.Stats.noteSent()
		}
		if s.Dump != nil {
			raw := m.Encode()
			s.Dump("send", raw[:])
		}
		if s.Debugf != nil {
			s.Debugf("send action %d payload %q", m.Action, m.Text())
		}
	}
}
