package dbmysql

import (
	"time"
)

type RoomType string

const (
	RoomTypeGroup  RoomType = "group"
	RoomTypeDirect RoomType = "direct"
)

type MemberRole string

const (
	RoleAdmin  MemberRole = "admin"
	RoleMember MemberRole = "member"
)

// Room is created and deleted by the room service. Name is nil for direct
// rooms; InviteCode is set only for group rooms.
type Room struct {
	ID          uint64    `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Name        *string   `gorm:"column:name;size:100" json:"name"`
	Type        RoomType  `gorm:"column:type;type:enum('group','direct');default:'group';not null" json:"type"`
	Description *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	AvatarURL   *string   `gorm:"column:avatar_url;size:512" json:"avatar_url,omitempty"`
	InviteCode  *string   `gorm:"column:invite_code;size:32;uniqueIndex" json:"invite_code,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Room) TableName() string {
	return "rooms"
}

// RoomMember ties a user to a room. LastReadMessageID only moves forward.
type RoomMember struct {
	ID                uint64     `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	RoomID            uint64     `gorm:"column:room_id;not null;uniqueIndex:idx_room_user" json:"room_id"`
	UserID            uint64     `gorm:"column:user_id;not null;uniqueIndex:idx_room_user;index" json:"user_id"`
	Role              MemberRole `gorm:"column:role;type:enum('admin','member');default:'member';not null" json:"role"`
	JoinedAt          time.Time  `gorm:"column:joined_at;autoCreateTime" json:"joined_at"`
	LastReadMessageID *uint64    `gorm:"column:last_read_message_id" json:"last_read_message_id"`
}

func (RoomMember) TableName() string {
	return "room_members"
}
