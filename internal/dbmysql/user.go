package dbmysql

import (
	"time"
)

// User is owned by the account service; the chat core only reads it.
type User struct {
	ID        uint64    `gorm:"primaryKey;column:id;autoIncrement" json:"id"`
	Username  string    `gorm:"column:username;uniqueIndex;size:50;not null" json:"username"`
	Email     *string   `gorm:"column:email;size:255" json:"email,omitempty"`
	Bio       *string   `gorm:"column:bio;type:text" json:"bio,omitempty"`
	AvatarURL *string   `gorm:"column:avatar_url;size:512" json:"avatar_url,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
