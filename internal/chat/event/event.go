// Package event defines the websocket wire protocol. Every frame is a JSON
// envelope {"event": <kind>, "data": <payload>}.
package event

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"famchat/internal/common"
)

type Kind string

// inbound
const (
	JoinRoom     Kind = "join_room"
	SendMessage  Kind = "send_message"
	SendReaction Kind = "send_reaction"
	MarkRead     Kind = "mark_read"
)

// outbound
const (
	ReceiveMessage  Kind = "receive_message"
	ReceiveReaction Kind = "receive_reaction"
	UserRead        Kind = "user_read"
)

var ErrMalformed = errors.New("malformed event")

type Envelope struct {
	Event Kind            `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Encode wraps data in an envelope.
func Encode(kind Kind, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", kind, err)
	}
	return json.Marshal(Envelope{Event: kind, Data: raw})
}

func Decode(frame []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Event == "" {
		return Envelope{}, fmt.Errorf("%w: missing event name", ErrMalformed)
	}
	return env, nil
}

// JoinRoomPayload accepts a bare room id (number or numeric string) or
// an object {"roomId": n}.
type JoinRoomPayload struct {
	RoomID uint64 `json:"roomId"`
}

func (p *JoinRoomPayload) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		type plain JoinRoomPayload
		var v plain
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*p = JoinRoomPayload(v)
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("room id %q: %w", s, err)
		}
		p.RoomID = id
		return nil
	}
	return json.Unmarshal(b, &p.RoomID)
}

type SendMessagePayload struct {
	UserID        uint64             `json:"userId"`
	Content       *string            `json:"content"`
	Type          common.MessageKind `json:"type"`
	AttachmentURL *string            `json:"attachmentUrl"`
	Latitude      *float64           `json:"latitude"`
	Longitude     *float64           `json:"longitude"`
	RoomID        uint64             `json:"roomId"`
	ReplyToID     *uint64            `json:"replyToId"`
	IsForwarded   bool               `json:"isForwarded"`
}

type SendReactionPayload struct {
	MessageID uint64 `json:"messageId"`
	UserID    uint64 `json:"userId"`
	Type      string `json:"type"`
	RoomID    uint64 `json:"roomId"`
}

type MarkReadPayload struct {
	RoomID    uint64 `json:"roomId"`
	UserID    uint64 `json:"userId"`
	MessageID uint64 `json:"messageId"`
}

// UserReadPayload is broadcast after a read mark advances.
type UserReadPayload struct {
	UserID    uint64 `json:"userId"`
	RoomID    uint64 `json:"roomId"`
	MessageID uint64 `json:"messageId"`
}
