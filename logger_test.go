package main

import (
	"strings"
	"testing"

	"treasureisland/proto"
)

func TestDescribePacket(t *testing.T) {
	frame := proto.Frame{Action: proto.ActionPushMap}.Encode()
	if got := describePacket(frame[:]); got != proto.KindPushMap.String() {
		t.Fatalf("push map frame described as %q", got)
	}

	odd := proto.Frame{Action: 42}.Encode()
	if got := describePacket(odd[:]); !strings.Contains(got, "unrecognised action 42") {
		t.Fatalf("unknown frame described as %q", got)
	}

	m, err := proto.UsernameMessage("AB")
	if err != nil {
		t.Fatalf("UsernameMessage: %v", err)
	}
	raw := m.Encode()
	if got := describePacket(raw[:]); got != `username "AB"` {
		t.Fatalf("username message described as %q", got)
	}
}

func TestTruncateDump(t *testing.T) {
	defer func(n int) { debugPacketDumpLen = n }(debugPacketDumpLen)
	debugPacketDumpLen = 4
	if got := truncateDump(make([]byte, 10)); len(got) != 4 {
		t.Fatalf("dump of %d bytes", len(got))
	}
	debugPacketDumpLen = 0
	if got := truncateDump(make([]byte, 10)); len(got) != 10 {
		t.Fatalf("unlimited dump cut to %d bytes", len(got))
	}
}

func TestLogErrorReachesOverlay(t *testing.T) {
	overlay.mu.Lock()
	overlay.lines = nil
	overlay.mu.Unlock()

	logError("tcp connect: %v", "refused")
	msgs := getMessages()
	if len(msgs) != 1 || msgs[0] != "tcp connect: refused" {
		t.Fatalf("overlay holds %q", msgs)
	}
}
