package models

import "time"

// ChatMessage is one message in the support chat between a user and the shop.
type ChatMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	MessageText string    `gorm:"column:message_text;type:text;not null" json:"message_text"`
	MessageType string    `gorm:"column:message_type;type:varchar(50);not null" json:"message_type"`
	// No column default: a zero value here must stay false, and a gorm
	// default would overwrite it on insert.
	IsFromUser  bool      `gorm:"column:is_from_user;not null" json:"is_from_user"`
	SentAt      time.Time `gorm:"column:sent_at;autoCreateTime" json:"sent_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
