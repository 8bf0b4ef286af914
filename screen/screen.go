// Package screen decides how player input is handled in each screen mode and
// turns it into messages for the server.
package screen

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"treasureisland/proto"
	"treasureisland/world"
)

// MaxUsernameLen caps the number of letters in a username.
const MaxUsernameLen = 10

var ErrOutboxFull = errors.New("outbox full")

// EventKind identifies a discrete input event.
type EventKind int

const (
	EventLetter EventKind = iota
	EventEnter
	EventBackspace
	EventDirection
)

// Direction of an arrow key. DirNone is the zero value.
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Event is a key press forwarded by the input layer.
type Event struct {
	Kind EventKind
	Rune rune
	Dir  Direction
}

func Letter(r rune) Event { return Event{Kind: EventLetter, Rune: r} }
func Enter() Event { return Event{Kind: EventEnter} }
func Backspace() Event { return Event{Kind: EventBackspace} }
func Arrow(d Direction) Event { return Event{Kind: EventDirection, Dir: d} }

// Result describes what an event did.
type Result struct {
	// Edited is set when the username buffer changed.
	Edited bool
	// Sent is set when a message was queued for the server.
	Sent bool
	// Pan is the camera direction requested in game mode.
	Pan Direction
}

// View is what the renderer needs for one frame.
type View struct {
	Mode     world.Mode
	Title    string
	Username string
}

// Machine handles input for the screen mode held in the store. It is owned
// by the input loop and is not safe for concurrent use.
type Machine struct {
	store  *world.Store
	outbox chan<- proto.Message
	caser  cases.Caser

	username []rune
}

// New returns a machine that queues outbound messages on outbox.
func New(store *world.Store, outbox chan<- proto.Message) *Machine {
	return &Machine{
		store:  store,
		outbox: outbox,
		caser:  cases.Upper(language.Und),
	}
}

// Username returns the letters typed so far.
func (m *Machine) Username() string {
	return string(m.username)
}

// Prefill replaces the username buffer with the acceptable letters of name.
func (m *Machine) Prefill(name string) {
	m.username = m.username[:0]
	for _, r := range name {
		m.appendLetter(r)
	}
}

// View snapshots the state to draw. The mode is read once.
func (m *Machine) View() View {
	v := View{Mode: m.store.Mode()}
	switch v.Mode {
	case world.ModeUsernamePrompt:
		v.Title = "Choose your username:"
		v.Username = string(m.username)
	case world.ModeWaitingForPlayers:
		v.Title = "Waiting for players..."
	}
	return v
}

// HandleEvent applies ev to the active screen.
func (m *Machine) HandleEvent(ev Event) (Result, error) {
	switch m.store.Mode() {
	case world.ModeUsernamePrompt:
		return m.handlePrompt(ev)
	case world.ModeGame:
		if ev.Kind == EventDirection {
			return Result{Pan: ev.Dir}, nil
		}
	}
	return Result{}, nil
}

func (m *Machine) handlePrompt(ev Event) (Result, error) {
	switch ev.Kind {
	case EventLetter:
		return Result{Edited: m.appendLetter(ev.Rune)}, nil
	case EventBackspace:
		if len(m.username) == 0 {
			return Result{}, nil
		}
		m.username = m.username[:len(m.username)-1]
		return Result{Edited: true}, nil
	case EventEnter:
		// The Enter that launched the client can still be down on the
		// first frame; an empty name must not submit.
		if len(m.username) == 0 {
			return Result{}, nil
		}
		msg, err := proto.UsernameMessage(string(m.username))
		if err != nil {
			return Result{}, err
		}
		select {
		case m.outbox <- msg:
		default:
			return Result{}, fmt.Errorf("send username: %w", ErrOutboxFull)
		}
		m.store.SetMode(world.ModeWaitingForPlayers)
		return Result{Sent: true}, nil
	}
	return Result{}, nil
}

// appendLetter adds r, upper-cased, when it is an ASCII letter and the
// buffer has room. Non-ASCII runes are refused before case mapping, since
// some of them (dotless i, long s) upper-case into A-Z.
func (m *Machine) appendLetter(r rune) bool {
	if len(m.username) >= MaxUsernameLen || r > unicode.MaxASCII {
		return false
	}
	up := []rune(m.caser.String(string(r)))
	if len(up) != 1 || up[0] < 'A' || up[0] > 'Z' {
		return false
	}
	m.username = append(m.username, up[0])
	return true
}
