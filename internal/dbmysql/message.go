package dbmysql

import (
	"time"

	"famchat/internal/common"
)

// Message rows live in the chats table. IDs are auto-increment, which
// gives the per-room insertion order used for fan-out.
type Message struct {
	ID            uint64             `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Content       *string            `gorm:"column:content;type:text" json:"content"`
	Type          common.MessageKind `gorm:"column:type;size:16;default:'text';not null" json:"type"`
	AttachmentURL *string            `gorm:"column:attachment_url;size:1024" json:"attachment_url"`
	Latitude      *float64           `gorm:"column:latitude" json:"latitude"`
	Longitude     *float64           `gorm:"column:longitude" json:"longitude"`
	ReplyToID     *uint64            `gorm:"column:reply_to_id;index" json:"reply_to_id"`
	IsForwarded   bool               `gorm:"column:is_forwarded;default:false;not null" json:"is_forwarded"`
	UserID        uint64             `gorm:"column:user_id;not null;index" json:"user_id"`
	RoomID        uint64             `gorm:"column:room_id;not null;index" json:"room_id"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Message) TableName() string {
	return "chats"
}

// ReplySummary is the part of a reply target shown under a message.
type ReplySummary struct {
	ID       uint64             `gorm:"column:id"`
	Content  *string            `gorm:"column:content"`
	Type     common.MessageKind `gorm:"column:type"`
	Username string             `gorm:"column:username"`
}

// ReactionRow is a reaction joined with the reacting user.
type ReactionRow struct {
	MessageID uint64 `gorm:"column:message_id"`
	Type      string `gorm:"column:type"`
	UserID    uint64 `gorm:"column:user_id"`
	Username  string `gorm:"column:username"`
}

// MessageContext is a message together with everything needed to render
// it, read in one transaction.
type MessageContext struct {
	Message   Message
	Author    User
	ReplyTo   *ReplySummary
	Reactions []ReactionRow
}

type MemberReadState struct {
	UserID            uint64  `gorm:"column:user_id" json:"user_id"`
	LastReadMessageID *uint64 `gorm:"column:last_read_message_id" json:"last_read_message_id"`
}

type UnreadCount struct {
	RoomID      uint64 `gorm:"column:room_id" json:"room_id"`
	UnreadCount int64  `gorm:"column:unread_count" json:"unread_count"`
}
