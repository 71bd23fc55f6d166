package netplay

import (
	"fmt"

	"github.com/hashicorp/go-msgpack/v2/codec"
)

// Wire format is msgpack: compact, schemaless, and cheap to decode at
// tick rate.
var msgpackHandle codec.MsgpackHandle

// Encode serializes a message for the wire.
func Encode(m Message) ([]byte, error) {
	var buf []byte
	enc := codec.NewEncoderBytes(&buf, &msgpackHandle)
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encode message type %d: %w", m.Type, err)
	}
	return buf, nil
}

// Decode parses a wire frame. Callers treat an error as a malformed
// message and drop it.
func Decode(data []byte) (Message, error) {
	var m Message
	dec := codec.NewDecoderBytes(data, &msgpackHandle)
	if err := dec.Decode(&m); err != nil {
		return Message{}, fmt.Errorf("decode message: %w", err)
	}
	if m.Type < MsgInput || m.Type > MsgReselect {
		return Message{}, fmt.Errorf("unknown message type %d", m.Type)
	}
	if m.Type == MsgInput && m.Input == nil {
		return Message{}, fmt.Errorf("input message without payload")
	}
	if m.Type == MsgWeapons && m.Weapons == nil {
		return Message{}, fmt.Errorf("weapons message without payload")
	}
	return m, nil
}
