package models

import (
	"time"
)

// Like is an edge meaning "UserID likes MessageID". The composite
// primary key forbids duplicate likes. A user may like their own
// messages.
type Like struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	MessageID uint      `gorm:"primaryKey;autoIncrement:false" json:"message_id"`
	CreatedAt time.Time `json:"created_at"`

	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Message Message `gorm:"foreignKey:MessageID" json:"message,omitempty"`
}

// TableName specifies the table name for GORM
func (Like) TableName() string {
	return "likes"
}
