package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techagentng/messaging/models"
)

func newUser(isStaff bool) *models.User {
	return &models.User{
		Model:   models.Model{ID: uuid.New()},
		IsStaff: isStaff,
	}
}

func conversationWith(users ...*models.User) *models.Conversation {
	c := &models.Conversation{ID: uuid.New()}
	for _, u := range users {
		c.Participants = append(c.Participants, *u)
	}
	return c
}

func TestUserRules(t *testing.T) {
	admin := newUser(true)
	regular := newUser(false)
	other := newUser(false)

	t.Run("create is staff only", func(t *testing.T) {
		require.Nil(t, CanCreateUser(admin))
		denied := CanCreateUser(regular)
		require.NotNil(t, denied)
		assert.Equal(t, ReasonOnlyAdminsCreateUsers, denied.Message)
	})

	t.Run("update self or staff", func(t *testing.T) {
		require.Nil(t, CanUpdateUser(regular, regular.ID))
		require.Nil(t, CanUpdateUser(admin, regular.ID))
		denied := CanUpdateUser(regular, other.ID)
		require.NotNil(t, denied)
		assert.Equal(t, ReasonOwnProfileOnly, denied.Message)
	})

	t.Run("delete is staff only", func(t *testing.T) {
		require.Nil(t, CanDeleteUser(admin))
		denied := CanDeleteUser(regular)
		require.NotNil(t, denied)
		assert.Equal(t, ReasonOnlyAdminsDeleteUsers, denied.Message)
	})

	t.Run("visibility", func(t *testing.T) {
		assert.True(t, UserVisibleTo(admin, other.ID))
		assert.True(t, UserVisibleTo(regular, regular.ID))
		assert.False(t, UserVisibleTo(regular, other.ID))
	})
}

func TestConversationRules(t *testing.T) {
	member := newUser(false)
	outsider := newUser(false)
	conversation := conversationWith(member)

	require.Nil(t, CanUpdateConversation(member, conversation))
	require.Nil(t, CanDeleteConversation(member, conversation))

	denied := CanUpdateConversation(outsider, conversation)
	require.NotNil(t, denied)
	assert.Equal(t, ReasonNotParticipant, denied.Message)

	denied = CanDeleteConversation(outsider, conversation)
	require.NotNil(t, denied)
	assert.Equal(t, ReasonNotParticipant, denied.Message)

	// Staff get no special access to conversations they are not part of.
	admin := newUser(true)
	denied = CanUpdateConversation(admin, conversation)
	require.NotNil(t, denied)
}

func TestMessageRules(t *testing.T) {
	sender := newUser(false)
	member := newUser(false)
	outsider := newUser(false)
	conversation := conversationWith(sender, member)
	message := &models.Message{
		ID:             uuid.New(),
		ConversationID: conversation.ID,
		SenderID:       sender.ID,
	}

	t.Run("create requires participation", func(t *testing.T) {
		require.Nil(t, CanCreateMessage(member, conversation))
		denied := CanCreateMessage(outsider, conversation)
		require.NotNil(t, denied)
		assert.Equal(t, ReasonNotParticipant, denied.Message)
	})

	t.Run("mutate requires sender", func(t *testing.T) {
		require.Nil(t, CanMutateMessage(sender, message, conversation))
		denied := CanMutateMessage(member, message, conversation)
		require.NotNil(t, denied)
		assert.Equal(t, ReasonNotYourMessage, denied.Message)
	})

	t.Run("mutate requires current participation", func(t *testing.T) {
		// Sender was removed from the conversation after posting.
		shrunk := conversationWith(member)
		shrunk.ID = conversation.ID
		denied := CanMutateMessage(sender, message, shrunk)
		require.NotNil(t, denied)
		assert.Equal(t, ReasonNoLongerParticipant, denied.Message)
	})

	t.Run("denials are stable across repeats", func(t *testing.T) {
		first := CanCreateMessage(outsider, conversation)
		second := CanCreateMessage(outsider, conversation)
		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.Equal(t, first.Message, second.Message)
		assert.Equal(t, first.Status, second.Status)
	})
}
