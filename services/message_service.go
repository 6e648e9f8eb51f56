package services

import (
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/techagentng/messaging/db"
	apiError "github.com/techagentng/messaging/errors"
	"github.com/techagentng/messaging/models"
	"github.com/techagentng/messaging/services/policy"
	"gorm.io/gorm"
)

// MessageService handles message CRUD. The sender field is always forced to
// the acting user; participation in the owning conversation is checked at
// creation and re-checked before every update or delete.
type MessageService interface {
	ListMessages(actor *models.User) ([]models.MessageResponse, *apiError.Error)
	ListConversationMessages(actor *models.User, conversationID uuid.UUID) ([]models.MessageResponse, *apiError.Error)
	GetMessage(actor *models.User, id uuid.UUID) (*models.MessageResponse, *apiError.Error)
	CreateMessage(actor *models.User, request *models.CreateMessageRequest) (*models.MessageResponse, *apiError.Error)
	UpdateMessage(actor *models.User, id uuid.UUID, request *models.UpdateMessageRequest) (*models.MessageResponse, *apiError.Error)
	DeleteMessage(actor *models.User, id uuid.UUID) *apiError.Error
}

type messageService struct {
	messageRepo      db.MessageRepository
	conversationRepo db.ConversationRepository
}

func NewMessageService(messageRepo db.MessageRepository, conversationRepo db.ConversationRepository) MessageService {
	return &messageService{
		messageRepo:      messageRepo,
		conversationRepo: conversationRepo,
	}
}

func (s *messageService) ListMessages(actor *models.User) ([]models.MessageResponse, *apiError.Error) {
	messages, err := s.messageRepo.ListForParticipant(actor.ID)
	if err != nil {
		log.Printf("ListMessages error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return toMessageResponses(messages), nil
}

func (s *messageService) ListConversationMessages(actor *models.User, conversationID uuid.UUID) ([]models.MessageResponse, *apiError.Error) {
	// Resolve the conversation through the scoped query first so an outsider
	// gets not-found rather than an empty list that confirms existence.
	if _, err := s.conversationRepo.FindByIDForParticipant(conversationID, actor.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("ListConversationMessages lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	messages, err := s.messageRepo.ListByConversation(conversationID, actor.ID)
	if err != nil {
		log.Printf("ListConversationMessages error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	return toMessageResponses(messages), nil
}

func (s *messageService) GetMessage(actor *models.User, id uuid.UUID) (*models.MessageResponse, *apiError.Error) {
	message, err := s.messageRepo.FindByIDForParticipant(id, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("GetMessage error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	resp := message.Response()
	return &resp, nil
}

func (s *messageService) CreateMessage(actor *models.User, request *models.CreateMessageRequest) (*models.MessageResponse, *apiError.Error) {
	if strings.TrimSpace(request.Body) == "" {
		return nil, apiError.ValidationError("message body must not be empty")
	}

	// Unscoped lookup: a missing conversation is a validation failure, a
	// conversation the actor does not belong to is a policy denial.
	conversation, err := s.conversationRepo.FindByID(request.ConversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ValidationError("conversation does not exist")
		}
		log.Printf("CreateMessage lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if denied := policy.CanCreateMessage(actor, conversation); denied != nil {
		return nil, denied
	}

	message := &models.Message{
		ConversationID: conversation.ID,
		SenderID:       actor.ID, // forced server-side, input ignored
		Body:           request.Body,
	}
	if err := s.messageRepo.Create(message); err != nil {
		log.Printf("CreateMessage error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	resp := message.Response()
	return &resp, nil
}

func (s *messageService) UpdateMessage(actor *models.User, id uuid.UUID, request *models.UpdateMessageRequest) (*models.MessageResponse, *apiError.Error) {
	if strings.TrimSpace(request.Body) == "" {
		return nil, apiError.ValidationError("message body must not be empty")
	}

	message, conversation, apiErr := s.loadForMutation(actor, id)
	if apiErr != nil {
		return nil, apiErr
	}
	if denied := policy.CanMutateMessage(actor, message, conversation); denied != nil {
		return nil, denied
	}

	if err := s.messageRepo.UpdateBody(id, request.Body); err != nil {
		log.Printf("UpdateMessage error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	message.Body = request.Body
	resp := message.Response()
	return &resp, nil
}

func (s *messageService) DeleteMessage(actor *models.User, id uuid.UUID) *apiError.Error {
	message, conversation, apiErr := s.loadForMutation(actor, id)
	if apiErr != nil {
		return apiErr
	}
	if denied := policy.CanMutateMessage(actor, message, conversation); denied != nil {
		return denied
	}

	if err := s.messageRepo.Delete(id); err != nil {
		log.Printf("DeleteMessage error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

// loadForMutation fetches the message and the current participant set of its
// conversation. Participation is read fresh here, never trusted from an
// earlier list call.
func (s *messageService) loadForMutation(actor *models.User, id uuid.UUID) (*models.Message, *models.Conversation, *apiError.Error) {
	message, err := s.messageRepo.FindByIDForParticipant(id, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apiError.ErrNotFound
		}
		log.Printf("loadForMutation message error: %v", err)
		return nil, nil, apiError.ErrInternalServerError
	}
	conversation, err := s.conversationRepo.FindByIDForParticipant(message.ConversationID, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apiError.Forbidden(policy.ReasonNoLongerParticipant)
		}
		log.Printf("loadForMutation conversation error: %v", err)
		return nil, nil, apiError.ErrInternalServerError
	}
	return message, conversation, nil
}

func toMessageResponses(messages []models.Message) []models.MessageResponse {
	responses := make([]models.MessageResponse, 0, len(messages))
	for i := range messages {
		responses = append(responses, messages[i].Response())
	}
	return responses
}
