package services

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/messaging/models"
	"github.com/techagentng/messaging/services/policy"
)

type messageFixture struct {
	alice    *models.User
	bob      *models.User
	outsider *models.User
	convID   uuid.UUID
	convRepo *fakeConversationRepo
	msgRepo  *fakeMessageRepo
	convSvc  ConversationService
	msgSvc   MessageService
}

func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()
	f := &messageFixture{
		alice:    regularUser("alice", "alice@example.com"),
		bob:      regularUser("bob", "bob@example.com"),
		outsider: regularUser("carol", "carol@example.com"),
	}
	authRepo := newFakeAuthRepo(f.alice, f.bob, f.outsider)
	f.convRepo = newFakeConversationRepo()
	f.msgRepo = newFakeMessageRepo(f.convRepo)
	f.convSvc = NewConversationService(f.convRepo, authRepo)
	f.msgSvc = NewMessageService(f.msgRepo, f.convRepo)

	created, apiErr := f.convSvc.CreateConversation(f.alice, &models.CreateConversationRequest{
		ParticipantIDs: []uuid.UUID{f.bob.ID},
	})
	require.Nil(t, apiErr)
	f.convID = uuid.MustParse(created.ID)
	return f
}

func TestCreateMessage(t *testing.T) {
	t.Run("sender is forced to the actor", func(t *testing.T) {
		f := newMessageFixture(t)
		resp, apiErr := f.msgSvc.CreateMessage(f.bob, &models.CreateMessageRequest{
			ConversationID: f.convID,
			Body:           "hello",
		})
		require.Nil(t, apiErr)
		assert.Equal(t, f.bob.ID.String(), resp.Sender.ID)
		assert.Equal(t, "hello", resp.Body)
	})

	t.Run("outsider is denied", func(t *testing.T) {
		f := newMessageFixture(t)
		_, apiErr := f.msgSvc.CreateMessage(f.outsider, &models.CreateMessageRequest{
			ConversationID: f.convID,
			Body:           "let me in",
		})
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusForbidden, apiErr.Status)
		assert.Equal(t, policy.ReasonNotParticipant, apiErr.Message)
	})

	t.Run("unknown conversation fails validation", func(t *testing.T) {
		f := newMessageFixture(t)
		_, apiErr := f.msgSvc.CreateMessage(f.alice, &models.CreateMessageRequest{
			ConversationID: uuid.New(),
			Body:           "into the void",
		})
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	})

	t.Run("blank body rejected", func(t *testing.T) {
		f := newMessageFixture(t)
		_, apiErr := f.msgSvc.CreateMessage(f.alice, &models.CreateMessageRequest{
			ConversationID: f.convID,
			Body:           "   ",
		})
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
	})
}

func TestMessageVisibility(t *testing.T) {
	f := newMessageFixture(t)
	sent, apiErr := f.msgSvc.CreateMessage(f.alice, &models.CreateMessageRequest{
		ConversationID: f.convID,
		Body:           "hello bob",
	})
	require.Nil(t, apiErr)
	messageID := uuid.MustParse(sent.ID)

	t.Run("participant can read", func(t *testing.T) {
		got, apiErr := f.msgSvc.GetMessage(f.bob, messageID)
		require.Nil(t, apiErr)
		assert.Equal(t, "hello bob", got.Body)
	})

	t.Run("outsider sees not found", func(t *testing.T) {
		_, apiErr := f.msgSvc.GetMessage(f.outsider, messageID)
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
	})

	t.Run("list is scoped to participation", func(t *testing.T) {
		messages, apiErr := f.msgSvc.ListMessages(f.bob)
		require.Nil(t, apiErr)
		assert.Len(t, messages, 1)

		messages, apiErr = f.msgSvc.ListMessages(f.outsider)
		require.Nil(t, apiErr)
		assert.Empty(t, messages)
	})

	t.Run("nested list hides the conversation from outsiders", func(t *testing.T) {
		messages, apiErr := f.msgSvc.ListConversationMessages(f.bob, f.convID)
		require.Nil(t, apiErr)
		assert.Len(t, messages, 1)

		// Not an empty list: the conversation itself must read as missing.
		_, apiErr = f.msgSvc.ListConversationMessages(f.outsider, f.convID)
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
	})
}

func TestUpdateMessage(t *testing.T) {
	t.Run("sender can edit", func(t *testing.T) {
		f := newMessageFixture(t)
		sent, apiErr := f.msgSvc.CreateMessage(f.alice, &models.CreateMessageRequest{
			ConversationID: f.convID,
			Body:           "draft",
		})
		require.Nil(t, apiErr)

		updated, apiErr := f.msgSvc.UpdateMessage(f.alice, uuid.MustParse(sent.ID), &models.UpdateMessageRequest{Body: "final"})
		require.Nil(t, apiErr)
		assert.Equal(t, "final", updated.Body)
	})

	t.Run("other participant cannot edit", func(t *testing.T) {
		f := newMessageFixture(t)
		sent, apiErr := f.msgSvc.CreateMessage(f.alice, &models.CreateMessageRequest{
			ConversationID: f.convID,
			Body:           "mine",
		})
		require.Nil(t, apiErr)

		_, apiErr = f.msgSvc.UpdateMessage(f.bob, uuid.MustParse(sent.ID), &models.UpdateMessageRequest{Body: "hijack"})
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusForbidden, apiErr.Status)
		assert.Equal(t, policy.ReasonNotYourMessage, apiErr.Message)
	})

	t.Run("lapsed participation blocks the sender", func(t *testing.T) {
		f := newMessageFixture(t)
		sent, apiErr := f.msgSvc.CreateMessage(f.alice, &models.CreateMessageRequest{
			ConversationID: f.convID,
			Body:           "before removal",
		})
		require.Nil(t, apiErr)

		// Bob replaces the set without Alice; her old message stays but she
		// can no longer touch it.
		newSet := []uuid.UUID{f.bob.ID}
		_, apiErr = f.convSvc.UpdateConversation(f.bob, f.convID, &models.UpdateConversationRequest{
			ParticipantIDs: &newSet,
		})
		require.Nil(t, apiErr)

		_, apiErr = f.msgSvc.UpdateMessage(f.alice, uuid.MustParse(sent.ID), &models.UpdateMessageRequest{Body: "too late"})
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.Status)
	})
}

func TestDeleteMessage(t *testing.T) {
	f := newMessageFixture(t)
	sent, apiErr := f.msgSvc.CreateMessage(f.alice, &models.CreateMessageRequest{
		ConversationID: f.convID,
		Body:           "to be removed",
	})
	require.Nil(t, apiErr)
	messageID := uuid.MustParse(sent.ID)

	apiErr = f.msgSvc.DeleteMessage(f.bob, messageID)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)

	apiErr = f.msgSvc.DeleteMessage(f.outsider, messageID)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	require.Nil(t, f.msgSvc.DeleteMessage(f.alice, messageID))
	_, apiErr = f.msgSvc.GetMessage(f.alice, messageID)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}
