package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is a container of participants and messages. The participant
// set always includes the creating user; see ConversationService.
type Conversation struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title        *string   `json:"title" gorm:"size:100"`
	Participants []User    `gorm:"many2many:conversation_participants;" json:"participants"`
	Messages     []Message `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"messages"`
	CreatedAt    time.Time `json:"created_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// HasParticipant reports whether the given user is currently in the
// conversation's participant set.
func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	for _, p := range c.Participants {
		if p.ID == userID {
			return true
		}
	}
	return false
}

// ConversationResponse echoes participants and messages but never the
// write-only participant_ids input.
type ConversationResponse struct {
	ID               string            `json:"id"`
	Title            *string           `json:"title"`
	Participants     []UserResponse    `json:"participants"`
	Messages         []MessageResponse `json:"messages"`
	CreatedAt        time.Time         `json:"created_at"`
	ParticipantCount int               `json:"participant_count"`
}

func (c *Conversation) Response() ConversationResponse {
	participants := make([]UserResponse, 0, len(c.Participants))
	for i := range c.Participants {
		participants = append(participants, c.Participants[i].Response())
	}
	messages := make([]MessageResponse, 0, len(c.Messages))
	for i := range c.Messages {
		messages = append(messages, c.Messages[i].Response())
	}
	return ConversationResponse{
		ID:               c.ID.String(),
		Title:            c.Title,
		Participants:     participants,
		Messages:         messages,
		CreatedAt:        c.CreatedAt,
		ParticipantCount: len(c.Participants),
	}
}

// CreateConversationRequest accepts participant identifiers; identifiers that
// do not resolve to an existing user are dropped, not rejected.
type CreateConversationRequest struct {
	Title          *string     `json:"title"`
	ParticipantIDs []uuid.UUID `json:"participant_ids" binding:"required"`
}

// UpdateConversationRequest replaces the participant set. The acting user is
// retained even when omitted from the list.
type UpdateConversationRequest struct {
	Title          *string      `json:"title"`
	ParticipantIDs *[]uuid.UUID `json:"participant_ids"`
}
