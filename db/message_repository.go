package db

import (
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/messaging/models"
	"gorm.io/gorm"
)

type MessageRepository interface {
	ListForParticipant(userID uuid.UUID) ([]models.Message, error)
	ListByConversation(conversationID uuid.UUID, userID uuid.UUID) ([]models.Message, error)
	FindByIDForParticipant(id uuid.UUID, userID uuid.UUID) (*models.Message, error)
	Create(message *models.Message) error
	UpdateBody(id uuid.UUID, body string) error
	Delete(id uuid.UUID) error
}

type messageRepo struct {
	DB *gorm.DB
}

func NewMessageRepo(db *GormDB) MessageRepository {
	return &messageRepo{db.DB}
}

// ListForParticipant returns messages from conversations the user belongs to,
// with sender and conversation pre-fetched for each row.
func (r *messageRepo) ListForParticipant(userID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.DB.
		Joins("JOIN conversation_participants cp ON cp.conversation_id = messages.conversation_id").
		Where("cp.user_id = ?", userID).
		Preload("Sender").
		Preload("Conversation").
		Order("messages.sent_at").
		Find(&messages).Error
	if err != nil {
		log.Printf("ListForParticipant error: %v", err)
		return nil, errors.Wrap(err, "could not list messages")
	}
	return messages, nil
}

// ListByConversation scopes to one conversation, still gated on membership.
func (r *messageRepo) ListByConversation(conversationID uuid.UUID, userID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	err := r.DB.
		Joins("JOIN conversation_participants cp ON cp.conversation_id = messages.conversation_id").
		Where("messages.conversation_id = ? AND cp.user_id = ?", conversationID, userID).
		Preload("Sender").
		Preload("Conversation").
		Order("messages.sent_at").
		Find(&messages).Error
	if err != nil {
		log.Printf("ListByConversation error: %v", err)
		return nil, errors.Wrap(err, "could not list conversation messages")
	}
	return messages, nil
}

// FindByIDForParticipant reports gorm.ErrRecordNotFound both for missing
// messages and for messages in conversations the user cannot see.
func (r *messageRepo) FindByIDForParticipant(id uuid.UUID, userID uuid.UUID) (*models.Message, error) {
	var message models.Message
	err := r.DB.
		Joins("JOIN conversation_participants cp ON cp.conversation_id = messages.conversation_id").
		Where("messages.id = ? AND cp.user_id = ?", id, userID).
		Preload("Sender").
		Preload("Conversation").
		First(&message).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *messageRepo) Create(message *models.Message) error {
	if err := r.DB.Create(message).Error; err != nil {
		log.Printf("Create message error: %v", err)
		return err
	}
	return r.DB.Preload("Sender").First(message, "id = ?", message.ID).Error
}

func (r *messageRepo) UpdateBody(id uuid.UUID, body string) error {
	result := r.DB.Model(&models.Message{}).Where("id = ?", id).Update("body", body)
	if result.Error != nil {
		log.Printf("UpdateBody error: %v", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *messageRepo) Delete(id uuid.UUID) error {
	result := r.DB.Where("id = ?", id).Delete(&models.Message{})
	if result.Error != nil {
		log.Printf("Delete message error: %v", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
