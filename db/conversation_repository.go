package db

import (
	"log"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/messaging/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConversationRepository interface {
	ListByParticipant(userID uuid.UUID) ([]models.Conversation, error)
	FindByIDForParticipant(id uuid.UUID, userID uuid.UUID) (*models.Conversation, error)
	FindByID(id uuid.UUID) (*models.Conversation, error)
	CreateWithParticipants(conversation *models.Conversation, participants []models.User) error
	UpdateTitle(id uuid.UUID, title string) error
	ReplaceParticipants(id uuid.UUID, title *string, participants []models.User) error
	Delete(id uuid.UUID) error
}

type conversationRepo struct {
	DB *gorm.DB
}

func NewConversationRepo(db *GormDB) ConversationRepository {
	return &conversationRepo{db.DB}
}

// ListByParticipant returns only the conversations the user belongs to. The
// membership filter is part of the query itself so records outside the user's
// scope are never materialized.
func (r *conversationRepo) ListByParticipant(userID uuid.UUID) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := r.DB.
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("cp.user_id = ?", userID).
		Preload("Participants").
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("messages.sent_at") }).
		Preload("Messages.Sender").
		Order("conversations.created_at DESC").
		Find(&conversations).Error
	if err != nil {
		log.Printf("ListByParticipant error: %v", err)
		return nil, errors.Wrap(err, "could not list conversations")
	}
	return conversations, nil
}

// FindByIDForParticipant resolves a conversation only when the user is a
// participant. A conversation outside the user's scope reports
// gorm.ErrRecordNotFound, indistinguishable from a missing record.
func (r *conversationRepo) FindByIDForParticipant(id uuid.UUID, userID uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.DB.
		Joins("JOIN conversation_participants cp ON cp.conversation_id = conversations.id").
		Where("conversations.id = ? AND cp.user_id = ?", id, userID).
		Preload("Participants").
		Preload("Messages", func(db *gorm.DB) *gorm.DB { return db.Order("messages.sent_at") }).
		Preload("Messages.Sender").
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// FindByID loads a conversation regardless of the caller's membership. Used
// only where the policy layer needs the current participant set to produce an
// explicit denial; read paths go through FindByIDForParticipant.
func (r *conversationRepo) FindByID(id uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	err := r.DB.
		Preload("Participants").
		Where("id = ?", id).
		First(&conversation).Error
	if err != nil {
		return nil, err
	}
	return &conversation, nil
}

// CreateWithParticipants persists the conversation and its participant set in
// one transaction. The conversation is never observable without participants.
func (r *conversationRepo) CreateWithParticipants(conversation *models.Conversation, participants []models.User) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conversation).Error; err != nil {
			log.Printf("CreateWithParticipants error: %v", err)
			return err
		}
		if err := tx.Model(conversation).Association("Participants").Replace(participants); err != nil {
			log.Printf("CreateWithParticipants association error: %v", err)
			return err
		}
		return nil
	})
}

// UpdateTitle changes the title without touching the participant association,
// so a concurrent membership change is never overwritten by a stale set.
func (r *conversationRepo) UpdateTitle(id uuid.UUID, title string) error {
	result := r.DB.Model(&models.Conversation{}).Where("id = ?", id).Update("title", title)
	if result.Error != nil {
		log.Printf("UpdateTitle error: %v", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceParticipants swaps the participant set inside a single transaction
// with the conversation row locked. Callers that only change the title must
// use UpdateTitle instead; the replacement set written here comes from the
// request, never from an earlier unlocked read.
func (r *conversationRepo) ReplaceParticipants(id uuid.UUID, title *string, participants []models.User) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var conversation models.Conversation
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&conversation).Error; err != nil {
			return err
		}
		if title != nil {
			if err := tx.Model(&conversation).Update("title", title).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&conversation).Association("Participants").Replace(participants); err != nil {
			log.Printf("ReplaceParticipants association error: %v", err)
			return err
		}
		return nil
	})
}

func (r *conversationRepo) Delete(id uuid.UUID) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM conversation_participants WHERE conversation_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&models.Conversation{})
		if result.Error != nil {
			log.Printf("Delete conversation error: %v", result.Error)
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
