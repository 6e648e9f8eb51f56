package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/techagentng/messaging/models"
	"gorm.io/gorm"
)

// In-memory repository fakes backing the service tests. They mirror the
// scoped-query behavior of the gorm repositories: lookups outside the actor's
// participation report gorm.ErrRecordNotFound.

type fakeAuthRepo struct {
	users     map[uuid.UUID]*models.User
	blacklist map[string]bool
}

func newFakeAuthRepo(users ...*models.User) *fakeAuthRepo {
	repo := &fakeAuthRepo{
		users:     make(map[uuid.UUID]*models.User),
		blacklist: make(map[string]bool),
	}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeAuthRepo) CreateUser(user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeAuthRepo) FindUserByID(id uuid.UUID) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeAuthRepo) FindUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAuthRepo) FindUsersByIDs(ids []uuid.UUID) ([]models.User, error) {
	var users []models.User
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			users = append(users, *u)
		}
	}
	return users, nil
}

func (f *fakeAuthRepo) GetAllUsers() ([]models.User, error) {
	var users []models.User
	for _, u := range f.users {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeAuthRepo) IsEmailExist(email string) error {
	for _, u := range f.users {
		if u.Email == email {
			return errors.New("email already in use")
		}
	}
	return nil
}

func (f *fakeAuthRepo) IsUsernameExist(username string) error {
	for _, u := range f.users {
		if u.Username == username {
			return errors.New("username already in use")
		}
	}
	return nil
}

func (f *fakeAuthRepo) UpdateUser(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeAuthRepo) DeleteUser(id uuid.UUID) error {
	if _, ok := f.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeAuthRepo) AddToBlackList(blacklist *models.Blacklist) error {
	f.blacklist[blacklist.Token] = true
	return nil
}

func (f *fakeAuthRepo) IsTokenInBlacklist(token string) bool {
	return f.blacklist[token]
}

type fakeConversationRepo struct {
	conversations map[uuid.UUID]*models.Conversation
	replaceCalls  int
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[uuid.UUID]*models.Conversation)}
}

func (f *fakeConversationRepo) ListByParticipant(userID uuid.UUID) ([]models.Conversation, error) {
	var conversations []models.Conversation
	for _, c := range f.conversations {
		if c.HasParticipant(userID) {
			conversations = append(conversations, *c)
		}
	}
	return conversations, nil
}

func (f *fakeConversationRepo) FindByIDForParticipant(id uuid.UUID, userID uuid.UUID) (*models.Conversation, error) {
	c, ok := f.conversations[id]
	if !ok || !c.HasParticipant(userID) {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeConversationRepo) FindByID(id uuid.UUID) (*models.Conversation, error) {
	c, ok := f.conversations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeConversationRepo) CreateWithParticipants(conversation *models.Conversation, participants []models.User) error {
	if conversation.ID == uuid.Nil {
		conversation.ID = uuid.New()
	}
	conversation.CreatedAt = time.Now()
	conversation.Participants = participants
	stored := *conversation
	f.conversations[conversation.ID] = &stored
	return nil
}

func (f *fakeConversationRepo) UpdateTitle(id uuid.UUID, title string) error {
	c, ok := f.conversations[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Title = &title
	return nil
}

func (f *fakeConversationRepo) ReplaceParticipants(id uuid.UUID, title *string, participants []models.User) error {
	f.replaceCalls++
	c, ok := f.conversations[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if title != nil {
		c.Title = title
	}
	c.Participants = participants
	return nil
}

func (f *fakeConversationRepo) Delete(id uuid.UUID) error {
	if _, ok := f.conversations[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.conversations, id)
	return nil
}

type fakeMessageRepo struct {
	messages      map[uuid.UUID]*models.Message
	conversations *fakeConversationRepo
}

func newFakeMessageRepo(conversations *fakeConversationRepo) *fakeMessageRepo {
	return &fakeMessageRepo{
		messages:      make(map[uuid.UUID]*models.Message),
		conversations: conversations,
	}
}

func (f *fakeMessageRepo) visible(m *models.Message, userID uuid.UUID) bool {
	c, ok := f.conversations.conversations[m.ConversationID]
	return ok && c.HasParticipant(userID)
}

func (f *fakeMessageRepo) ListForParticipant(userID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	for _, m := range f.messages {
		if f.visible(m, userID) {
			messages = append(messages, *m)
		}
	}
	return messages, nil
}

func (f *fakeMessageRepo) ListByConversation(conversationID uuid.UUID, userID uuid.UUID) ([]models.Message, error) {
	var messages []models.Message
	for _, m := range f.messages {
		if m.ConversationID == conversationID && f.visible(m, userID) {
			messages = append(messages, *m)
		}
	}
	return messages, nil
}

func (f *fakeMessageRepo) FindByIDForParticipant(id uuid.UUID, userID uuid.UUID) (*models.Message, error) {
	m, ok := f.messages[id]
	if !ok || !f.visible(m, userID) {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMessageRepo) Create(message *models.Message) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	message.SentAt = time.Now()
	message.Sender = models.User{Model: models.Model{ID: message.SenderID}}
	stored := *message
	f.messages[message.ID] = &stored
	return nil
}

func (f *fakeMessageRepo) UpdateBody(id uuid.UUID, body string) error {
	m, ok := f.messages[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	m.Body = body
	return nil
}

func (f *fakeMessageRepo) Delete(id uuid.UUID) error {
	if _, ok := f.messages[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.messages, id)
	return nil
}
