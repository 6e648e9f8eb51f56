package services

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/techagentng/messaging/db"
	apiError "github.com/techagentng/messaging/errors"
	"github.com/techagentng/messaging/models"
	"github.com/techagentng/messaging/services/policy"
	"gorm.io/gorm"
)

// ConversationService manages conversations and their participant sets. Every
// read is scoped to the acting user's memberships; every mutation re-checks
// membership against the datastore's current state, not what the caller last
// listed.
type ConversationService interface {
	ListConversations(actor *models.User) ([]models.ConversationResponse, *apiError.Error)
	GetConversation(actor *models.User, id uuid.UUID) (*models.ConversationResponse, *apiError.Error)
	CreateConversation(actor *models.User, request *models.CreateConversationRequest) (*models.ConversationResponse, *apiError.Error)
	UpdateConversation(actor *models.User, id uuid.UUID, request *models.UpdateConversationRequest) (*models.ConversationResponse, *apiError.Error)
	DeleteConversation(actor *models.User, id uuid.UUID) *apiError.Error
}

type conversationService struct {
	conversationRepo db.ConversationRepository
	authRepo         db.AuthRepository
}

func NewConversationService(conversationRepo db.ConversationRepository, authRepo db.AuthRepository) ConversationService {
	return &conversationService{
		conversationRepo: conversationRepo,
		authRepo:         authRepo,
	}
}

func (s *conversationService) ListConversations(actor *models.User) ([]models.ConversationResponse, *apiError.Error) {
	conversations, err := s.conversationRepo.ListByParticipant(actor.ID)
	if err != nil {
		log.Printf("ListConversations error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	responses := make([]models.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		responses = append(responses, conversations[i].Response())
	}
	return responses, nil
}

func (s *conversationService) GetConversation(actor *models.User, id uuid.UUID) (*models.ConversationResponse, *apiError.Error) {
	conversation, err := s.conversationRepo.FindByIDForParticipant(id, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("GetConversation error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	resp := conversation.Response()
	return &resp, nil
}

// CreateConversation resolves the requested participant ids (unknown ids are
// dropped silently), forces the creator into the set and persists both
// atomically. A conversation can never exist with zero participants.
func (s *conversationService) CreateConversation(actor *models.User, request *models.CreateConversationRequest) (*models.ConversationResponse, *apiError.Error) {
	participants, err := s.authRepo.FindUsersByIDs(request.ParticipantIDs)
	if err != nil {
		log.Printf("CreateConversation resolve error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	participants = ensureParticipant(participants, actor)

	conversation := &models.Conversation{
		Title: request.Title,
	}
	if err := s.conversationRepo.CreateWithParticipants(conversation, participants); err != nil {
		log.Printf("CreateConversation error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	conversation.Participants = participants
	resp := conversation.Response()
	return &resp, nil
}

// UpdateConversation retitles the conversation and/or replaces its
// participant set. Membership is re-read at mutation time (it may have lapsed
// since listing) and the actor is appended to the proposed list when omitted,
// so nobody silently removes themselves. A title-only request never rewrites
// the association: passing the earlier read back in would let it clobber a
// membership change that landed in between.
func (s *conversationService) UpdateConversation(actor *models.User, id uuid.UUID, request *models.UpdateConversationRequest) (*models.ConversationResponse, *apiError.Error) {
	current, err := s.conversationRepo.FindByIDForParticipant(id, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("UpdateConversation lookup error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	if denied := policy.CanUpdateConversation(actor, current); denied != nil {
		return nil, denied
	}

	switch {
	case request.ParticipantIDs != nil:
		resolved, err := s.authRepo.FindUsersByIDs(*request.ParticipantIDs)
		if err != nil {
			log.Printf("UpdateConversation resolve error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
		participants := ensureParticipant(resolved, actor)
		if err := s.conversationRepo.ReplaceParticipants(id, request.Title, participants); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apiError.ErrNotFound
			}
			log.Printf("UpdateConversation error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
	case request.Title != nil:
		if err := s.conversationRepo.UpdateTitle(id, *request.Title); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apiError.ErrNotFound
			}
			log.Printf("UpdateConversation title error: %v", err)
			return nil, apiError.ErrInternalServerError
		}
	}

	// Reload through the scoped query so the response matches what a GET on
	// the same resource returns, messages included.
	updated, err := s.conversationRepo.FindByIDForParticipant(id, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apiError.ErrNotFound
		}
		log.Printf("UpdateConversation reload error: %v", err)
		return nil, apiError.ErrInternalServerError
	}
	resp := updated.Response()
	return &resp, nil
}

func (s *conversationService) DeleteConversation(actor *models.User, id uuid.UUID) *apiError.Error {
	conversation, err := s.conversationRepo.FindByIDForParticipant(id, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError.ErrNotFound
		}
		log.Printf("DeleteConversation lookup error: %v", err)
		return apiError.ErrInternalServerError
	}
	if denied := policy.CanDeleteConversation(actor, conversation); denied != nil {
		return denied
	}
	if err := s.conversationRepo.Delete(id); err != nil {
		log.Printf("DeleteConversation error: %v", err)
		return apiError.ErrInternalServerError
	}
	return nil
}

// ensureParticipant appends the actor when the resolved list omits them.
func ensureParticipant(participants []models.User, actor *models.User) []models.User {
	for _, p := range participants {
		if p.ID == actor.ID {
			return participants
		}
	}
	return append(participants, *actor)
}
