// Package view turns stored rows into the message shape clients render.
package view

import (
	"time"

	"famchat/internal/common"
	"famchat/internal/dbmysql"
)

const (
	StatusSent = "sent"
	StatusRead = "read"
)

type Reaction struct {
	Type     string `json:"type"`
	UserID   uint64 `json:"user_id"`
	Username string `json:"username"`
}

// Message is the flattened payload of receive_message and receive_reaction.
// Reply fields are null when there is no reply target or it no longer
// resolves.
type Message struct {
	ID            uint64             `json:"id"`
	RoomID        uint64             `json:"room_id"`
	UserID        uint64             `json:"user_id"`
	Content       *string            `json:"content"`
	Type          common.MessageKind `json:"type"`
	AttachmentURL *string            `json:"attachment_url"`
	Latitude      *float64           `json:"latitude"`
	Longitude     *float64           `json:"longitude"`
	ReplyToID     *uint64            `json:"reply_to_id"`
	IsForwarded   bool               `json:"is_forwarded"`
	CreatedAt     time.Time          `json:"created_at"`

	Username string  `json:"username"`
	Avatar   *string `json:"avatar"`

	ReplyContent  *string             `json:"reply_content"`
	ReplyType     *common.MessageKind `json:"reply_type"`
	ReplyUsername *string             `json:"reply_username"`

	Reactions      []Reaction     `json:"reactions"`
	ReactionCounts map[string]int `json:"reaction_counts"`

	// only set for history responses, relative to the viewer
	ReadStatus string `json:"read_status,omitempty"`
}

// Project builds the client payload. It never fails: a nil reply yields
// null reply fields and nil reactions yield an empty list.
func Project(msg dbmysql.Message, author dbmysql.User, reply *dbmysql.ReplySummary, reactions []dbmysql.ReactionRow) *Message {
	out := &Message{
		ID:             msg.ID,
		RoomID:         msg.RoomID,
		UserID:         msg.UserID,
		Content:        msg.Content,
		Type:           msg.Type,
		AttachmentURL:  msg.AttachmentURL,
		Latitude:       msg.Latitude,
		Longitude:      msg.Longitude,
		ReplyToID:      msg.ReplyToID,
		IsForwarded:    msg.IsForwarded,
		CreatedAt:      msg.CreatedAt,
		Username:       author.Username,
		Avatar:         author.AvatarURL,
		Reactions:      make([]Reaction, 0, len(reactions)),
		ReactionCounts: make(map[string]int),
	}

	if reply != nil {
		kind := reply.Type
		username := reply.Username
		out.ReplyContent = reply.Content
		out.ReplyType = &kind
		out.ReplyUsername = &username
	}

	for _, r := range reactions {
		out.Reactions = append(out.Reactions, Reaction{
			Type:     r.Type,
			UserID:   r.UserID,
			Username: r.Username,
		})
		out.ReactionCounts[r.Type]++
	}

	return out
}

func FromContext(mc *dbmysql.MessageContext) *Message {
	return Project(mc.Message, mc.Author, mc.ReplyTo, mc.Reactions)
}

// ReadStatus reports how the viewer should mark one of their own messages.
// A message is read once any member other than its author has a read mark
// at or past it; in a group that is one member, not all of them. Messages
// the viewer did not write get no status.
func ReadStatus(messageID, authorID, viewerID uint64, members []dbmysql.MemberReadState) string {
	if authorID != viewerID {
		return ""
	}
	for _, m := range members {
		if m.UserID == authorID || m.LastReadMessageID == nil {
			continue
		}
		if *m.LastReadMessageID >= messageID {
			return StatusRead
		}
	}
	return StatusSent
}

// ApplyReadStatus sets ReadStatus on every message in place.
func ApplyReadStatus(msgs []*Message, viewerID uint64, members []dbmysql.MemberReadState) {
	for _, m := range msgs {
		m.ReadStatus = ReadStatus(m.ID, m.UserID, viewerID, members)
	}
}
