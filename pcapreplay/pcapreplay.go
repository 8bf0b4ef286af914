// Package pcapreplay extracts the server to client byte stream from a packet
// capture so a recorded game can be played back through the receiver.
package pcapreplay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/google/gopacket/tcpassembly"
)

// DefaultServerPort is the port the game server listens on.
const DefaultServerPort = 4000

type Options struct {
	// ServerPort selects the TCP direction to extract: segments whose
	// source port matches are kept.
	ServerPort uint16
	// Realtime sleeps between packets according to their capture
	// timestamps.
	Realtime bool
}

// Stream returns the reassembled server to client stream of the capture in
// r. Reading ends with io.EOF once the capture is exhausted, or with the
// replay error. Closing the reader stops the replay.
func Stream(ctx context.Context, r io.ReadSeeker, opts Options) io.ReadCloser {
	pr, pw := io.Pipe()
	go func() {
		pw.CloseWithError(replay(ctx, r, opts, pw))
	}()
	return pr
}

func packetSource(r io.ReadSeeker) (*gopacket.PacketSource, error) {
	if ng, err := pcapgo.NewNgReader(r, pcapgo.NgReaderOptions{}); err == nil {
		return gopacket.NewPacketSource(ng, ng.LinkType()), nil
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	pr, err := pcapgo.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	return gopacket.NewPacketSource(pr, pr.LinkType()), nil
}

func replay(ctx context.Context, r io.ReadSeeker, opts Options, w io.Writer) error {
	source, err := packetSource(r)
	if err != nil {
		return err
	}
	if opts.ServerPort == 0 {
		opts.ServerPort = DefaultServerPort
	}

	factory := &streamFactory{
		server: layers.NewTCPPortEndpoint(layers.TCPPort(opts.ServerPort)),
		w:      w,
	}
	pool := tcpassembly.NewStreamPool(factory)
	assembler := tcpassembly.NewAssembler(pool)

	var prevTS time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if factory.err != nil {
			return factory.err
		}
		pkt, err := source.NextPacket()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		ts := pkt.Metadata().CaptureInfo.Timestamp
		if opts.Realtime && !prevTS.IsZero() {
			if d := ts.Sub(prevTS); d > 0 {
				timer := time.NewTimer(d)
				select {
				case <-ctx.Done():
					timer.Stop()
					return ctx.Err()
				case <-timer.C:
				}
			}
		}
		prevTS = ts

		netLayer := pkt.NetworkLayer()
		if netLayer == nil {
			continue
		}
		if tcp, ok := pkt.TransportLayer().(*layers.TCP); ok {
			assembler.AssembleWithTimestamp(netLayer.NetworkFlow(), tcp, ts)
		}
	}
	assembler.FlushAll()
	return factory.err
}

type streamFactory struct {
	server gopacket.Endpoint
	w      io.Writer
	err    error
}

func (f *streamFactory) New(netFlow, tcpFlow gopacket.Flow) tcpassembly.Stream {
	if tcpFlow.Src() != f.server {
		return discardStream{}
	}
	return &serverStream{factory: f, flow: netFlow}
}

// serverStream copies reassembled server bytes to the factory's writer.
// Reassembled runs on the replay goroutine, so factory.err needs no lock.
type serverStream struct {
	factory *streamFactory
	flow    gopacket.Flow
}

func (s *serverStream) Reassembled(rs []tcpassembly.Reassembly) {
	for _, r := range rs {
		if s.factory.err != nil {
			return
		}
		if r.Skip > 0 {
			log.Printf("pcapreplay: %v: %d bytes missing from capture", s.flow, r.Skip)
		}
		if len(r.Bytes) == 0 {
			continue
		}
		if _, err := s.factory.w.Write(r.Bytes); err != nil {
			if !errors.Is(err, io.ErrClosedPipe) {
				err = fmt.Errorf("write replay stream: %w", err)
			}
			s.factory.err = err
		}
	}
}

func (s *serverStream) ReassemblyComplete() {}

type discardStream struct{}

func (discardStream) Reassembled([]tcpassembly.Reassembly) {}
func (discardStream) ReassemblyComplete() {}
