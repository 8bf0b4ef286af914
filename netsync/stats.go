package netsync

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"

	"treasureisland/proto"
)

var shortUnits, _ = durafmt.DefaultUnitsCoder.Decode("y:yrs,wk:wks,d:d,h:h,m:m,s:s,ms:ms,us:us")

// Stats counts traffic for one session. All methods are safe for
// concurrent use.
type Stats struct {
	started time.Time

	ignored   atomic.Uint64
	mapPushes atomic.Uint64
	starts    atomic.Uint64
	sent      atomic.Uint64
}

func NewStats() *Stats {
	return &Stats{started: time.Now()}
}

func (s *Stats) noteFrame(k proto.Kind) {
	switch k {
	case proto.KindIgnored:
		s.ignored.Add(1)
	case proto.KindPushMap:
		s.mapPushes.Add(1)
	case proto.KindStartGame:
		s.starts.Add(1)
	}
}

func (s *Stats) noteSent() {
	s.sent.Add(1)
}

// FramesReceived returns the number of frames applied so far.
func (s *Stats) FramesReceived() uint64 {
	return s.ignored.Load() + s.mapPushes.Load() + s.starts.Load()
}

func (s *Stats) MapPushes() uint64 { return s.mapPushes.Load() }
func (s *Stats) MessagesSent() uint64 { return s.sent.Load() }
func (s *Stats) BytesReceived() uint64 { return s.FramesReceived() * proto.FrameSize }
func (s *Stats) BytesSent() uint64 { return s.sent.Load() * proto.MessageSize }
func (s *Stats) Uptime() time.Duration { return time.Since(s.started) }

func (s *Stats) String() string {
	return fmt.Sprintf("up %s, recv %d frames (%s, %d maps, %d starts, %d idle), sent %d messages (%s)",
		durafmt.Parse(s.Uptime()).LimitFirstN(2).Format(shortUnits),
		s.FramesReceived(),
		humanize.Bytes(s.BytesReceived()),
		s.mapPushes.Load(),
		s.starts.Load(),
		s.ignored.Load(),
		s.sent.Load(),
		humanize.Bytes(s.BytesSent()),
	)
}
