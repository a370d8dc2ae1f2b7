package dbmysql

import "time"

// Reaction is unique per (message, user, type); repeats are ignored.
type Reaction struct {
	ID        uint64    `gorm:"primaryKey;column:id;autoIncrement"`
	MessageID uint64    `gorm:"column:message_id;not null;uniqueIndex:idx_message_user_type"`
	UserID    uint64    `gorm:"column:user_id;not null;uniqueIndex:idx_message_user_type"`
	Type      string    `gorm:"column:type;size:32;not null;uniqueIndex:idx_message_user_type"` // emoji or short name
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Reaction) TableName() string {
	return "message_reactions"
}
