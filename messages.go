package main

import (
	"fmt"
	"sync"
	"time"
)

const (
	maxMessages     = 5
	messageLifetime = 15 * time.Second
)

// statusLine is one overlay entry. Repeats of the newest line are folded into
// it, so a held Enter on a full outbox shows one line with a count.
type statusLine struct {
	text    string
	repeats int
	expire  time.Time
}

func (l statusLine) String() string {
	if l.repeats > 1 {
		return fmt.Sprintf("%s (x%d)", l.text, l.repeats)
	}
	return l.text
}

// statusLines is the on-screen overlay. The network goroutine and the game
// loop both add to it.
type statusLines struct {
	mu    sync.Mutex
	lines []statusLine
}

var overlay statusLines

func (s *statusLines) add(msg string, now time.Time) {
	if msg == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.lines); n > 0 && s.lines[n-1].text == msg {
		s.lines[n-1].repeats++
		s.lines[n-1].expire = now.Add(messageLifetime)
		return
	}
	s.lines = append(s.lines, statusLine{text: msg, repeats: 1, expire: now.Add(messageLifetime)})
	if len(s.lines) > maxMessages {
		s.lines = s.lines[len(s.lines)-maxMessages:]
	}
}

// current drops expired lines and returns the rest, oldest first.
func (s *statusLines) current(now time.Time) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keep := s.lines[:0]
	var out []string
	for _, l := range s.lines {
		if now.After(l.expire) {
			continue
		}
		keep = append(keep, l)
		out = append(out, l.String())
	}
	s.lines = keep
	return out
}

func addMessage(msg string) {
	overlay.add(msg, time.Now())
}

func getMessages() []string {
	return overlay.current(time.Now())
}
