package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a single unit of communication in a conversation. The sender is
// always the authenticated user that created it and the sent timestamp is
// immutable after creation.
type Message struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID    `gorm:"type:uuid;not null;index" json:"conversation_id"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID" json:"-"`
	SenderID       uuid.UUID    `gorm:"type:uuid;not null;index" json:"sender_id"`
	Sender         User         `gorm:"foreignKey:SenderID" json:"sender"`
	Body           string       `gorm:"not null" json:"body"`
	SentAt         time.Time    `gorm:"autoCreateTime" json:"sent_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

type MessageResponse struct {
	ID             string       `json:"id"`
	ConversationID string       `json:"conversation_id"`
	Sender         UserResponse `json:"sender"`
	Body           string       `json:"body"`
	SentAt         time.Time    `json:"sent_at"`
}

func (m *Message) Response() MessageResponse {
	return MessageResponse{
		ID:             m.ID.String(),
		ConversationID: m.ConversationID.String(),
		Sender:         m.Sender.Response(),
		Body:           m.Body,
		SentAt:         m.SentAt,
	}
}

// CreateMessageRequest requires the target conversation; any sender value a
// client supplies is ignored.
type CreateMessageRequest struct {
	ConversationID uuid.UUID `json:"conversation_id" binding:"required"`
	Body           string    `json:"body" binding:"required"`
}

type UpdateMessageRequest struct {
	Body string `json:"body" binding:"required"`
}
