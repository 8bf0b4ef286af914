// Package proto implements the fixed-size frames exchanged with the
// Treasure Island server.
//
// Frames carry no length prefix. The client always writes 33 byte messages
// (action + 32 byte payload) and the server always writes 401 byte frames
// (action + 400 byte map block).
package proto

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

const (
	// PayloadSize is the size of an outbound message payload.
	PayloadSize = 32
	// DataSize is the size of the largest inbound payload, a full map push.
	DataSize = 400

	MessageSize = 1 + PayloadSize
	FrameSize   = 1 + DataSize
)

// Server to client actions.
const (
	ActionIgnored   uint8 = 0
	ActionPushMap   uint8 = 1
	ActionStartGame uint8 = 2
)

// Client to server actions.
const (
	ActionSendUsername uint8 = 1
)

var ErrTextTooLong = errors.New("text does not fit in payload")

// Message is a client to server message.
type Message struct {
	Action  uint8
	Payload [PayloadSize]byte
}

// NewMessage returns a message with a zeroed payload.
func NewMessage(action uint8) Message {
	return Message{Action: action}
}

// SetText stores s left aligned in the payload and zero pads the rest.
func (m *Message) SetText(s string) error {
	if len(s) > PayloadSize {
		return fmt.Errorf("%w: %d bytes", ErrTextTooLong, len(s))
	}
	m.Payload = [PayloadSize]byte{}
	copy(m.Payload[:], s)
	return nil
}

// Text returns the payload up to the first zero byte.
func (m Message) Text() string {
	p := m.Payload[:]
	if i := bytes.IndexByte(p, 0); i >= 0 {
		p = p[:i]
	}
	return string(p)
}

// Encode lays the message out as it travels on the wire.
func (m Message) Encode() [MessageSize]byte {
	var buf [MessageSize]byte
	buf[0] = m.Action
	copy(buf[1:], m.Payload[:])
	return buf
}

func DecodeMessage(b [MessageSize]byte) Message {
	var m Message
	m.Action = b[0]
	copy(m.Payload[:], b[1:])
	return m
}

// UsernameMessage builds the message announcing the player's name.
func UsernameMessage(name string) (Message, error) {
	m := NewMessage(ActionSendUsername)
	if err := m.SetText(name); err != nil {
		return Message{}, err
	}
	return m, nil
}

// Frame is a server to client frame.
type Frame struct {
	Action uint8
	Data   [DataSize]byte
}

func DecodeFrame(b [FrameSize]byte) Frame {
	var f Frame
	f.Action = b[0]
	copy(f.Data[:], b[1:])
	return f
}

// Encode lays the frame out as the server sends it.
func (f Frame) Encode() [FrameSize]byte {
	var buf [FrameSize]byte
	buf[0] = f.Action
	copy(buf[1:], f.Data[:])
	return buf
}

// ReadFrame blocks until a whole frame has been read from r. A short read is
// reported as io.ErrUnexpectedEOF.
func ReadFrame(r io.Reader) (Frame, error) {
	var buf [FrameSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Frame{}, err
	}
	return DecodeFrame(buf), nil
}

// WriteMessage writes the encoded message to w in full.
func WriteMessage(w io.Writer, m Message) error {
	buf := m.Encode()
	return writeAll(w, buf[:])
}

// writeAll writes the entirety of data to w, returning an error if the
// write fails or is short.
func writeAll(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n, err := w.Write(data)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		data = data[n:]
	}
	return nil
}
