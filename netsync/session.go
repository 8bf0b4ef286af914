package netsync

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/remeh/sizedwaitgroup"

	"treasureisland/proto"
	"treasureisland/world"
)

// OutboxSize is the capacity of the queue between the screens and the
// sender.
const OutboxSize = 16

// Dial connects to the game server.
func Dial(ctx context.Context, host string) (net.Conn, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", host)
	if err != nil {
		return nil, fmt.Errorf("tcp connect: %w", err)
	}
	return conn, nil
}

// Session owns a server connection and runs the receiver on its read side
// and the sender on its write side.
type Session struct {
	Receiver *Receiver
	Sender   *Sender
	Stats    *Stats

	in     io.Reader
	out    io.Writer
	closer io.Closer
	outbox <-chan proto.Message
}

// NewSession prepares a session over conn. Messages queued on outbox are
// sent once Run is called.
func NewSession(conn net.Conn, store *world.Store, outbox <-chan proto.Message) *Session {
	return newSession(conn, conn, conn, store, outbox)
}

// NewReplaySession feeds a recorded server stream to the receiver. Outbound
// messages are written to out, which is typically io.Discard.
func NewReplaySession(in io.ReadCloser, out io.Writer, store *world.Store, outbox <-chan proto.Message) *Session {
	return newSession(in, out, in, store, outbox)
}

func newSession(in io.Reader, out io.Writer, closer io.Closer, store *world.Store, outbox <-chan proto.Message) *Session {
	stats := NewStats()
	return &Session{
		Receiver: &Receiver{Store: store, Stats: stats},
		Sender:   &Sender{Stats: stats},
		Stats:    stats,
		in:       in,
		out:      out,
		closer:   closer,
		outbox:   outbox,
	}
}

// SetDebug routes the trace output and raw frames of both loops to debugf
// and dump.
func (s *Session) SetDebug(debugf func(format string, v ...any), dump func(prefix string, data []byte)) {
	s.Receiver.Debugf, s.Receiver.Dump = debugf, dump
	s.Sender.Debugf, s.Sender.Dump = debugf, dump
}

// Run blocks until one of the loops fails or ctx is done. The first loop
// error is returned; the connection is closed on return either way.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 2)
	wg := sizedwaitgroup.New(2)

	wg.Add()
	go func() {
		defer wg.Done()
		errc <- s.Receiver.Run(s.in)
	}()
	wg.Add()
	go func() {
		defer wg.Done()
		errc <- s.Sender.Run(ctx, s.out, s.outbox)
	}()

	var err error
	pending := 2
wait:
	for pending > 0 && err == nil {
		select {
		case err = <-errc:
			pending--
		case <-ctx.Done():
			break wait
		}
	}

	cancel()
	s.closer.Close()
	wg.Wait()
	return err
}
