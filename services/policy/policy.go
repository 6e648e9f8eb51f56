// Package policy holds the pure allow/deny rules consulted before every
// mutating operation. Functions here never touch the datastore: callers fetch
// the current state of the resource first, then ask for a decision. A nil
// return means allow; a non-nil *errors.Error is the denial with its
// caller-facing reason.
package policy

import (
	"github.com/google/uuid"
	errs "github.com/techagentng/messaging/errors"
	"github.com/techagentng/messaging/models"
)

// Denial reasons surfaced to clients. Repeating a denied check with the same
// inputs yields the identical denial.
const (
	ReasonOnlyAdminsCreateUsers = "only admins can create users"
	ReasonOnlyAdminsDeleteUsers = "only admins can delete users"
	ReasonOwnProfileOnly        = "you can only update your own profile"
	ReasonNotParticipant        = "not a participant in this conversation"
	ReasonNoLongerParticipant   = "no longer a participant in this conversation"
	ReasonNotYourMessage        = "not your message"
)

// CanCreateUser allows user creation to staff only.
func CanCreateUser(actor *models.User) *errs.Error {
	if !actor.IsStaff {
		return errs.Forbidden(ReasonOnlyAdminsCreateUsers)
	}
	return nil
}

// CanUpdateUser allows staff to update anyone and a user to update themselves.
func CanUpdateUser(actor *models.User, targetID uuid.UUID) *errs.Error {
	if actor.IsStaff || actor.ID == targetID {
		return nil
	}
	return errs.Forbidden(ReasonOwnProfileOnly)
}

// CanDeleteUser allows hard deletion of accounts to staff only.
func CanDeleteUser(actor *models.User) *errs.Error {
	if !actor.IsStaff {
		return errs.Forbidden(ReasonOnlyAdminsDeleteUsers)
	}
	return nil
}

// UserVisibleTo reports whether a user record falls inside the actor's
// readable scope: staff see everyone, others only themselves.
func UserVisibleTo(actor *models.User, targetID uuid.UUID) bool {
	return actor.IsStaff || actor.ID == targetID
}

// CanUpdateConversation gates participant-set changes on current membership.
// Self-retention (the actor staying in the proposed list) is enforced by the
// service, not here.
func CanUpdateConversation(actor *models.User, conversation *models.Conversation) *errs.Error {
	if !conversation.HasParticipant(actor.ID) {
		return errs.Forbidden(ReasonNotParticipant)
	}
	return nil
}

// CanDeleteConversation requires membership at the time of deletion.
func CanDeleteConversation(actor *models.User, conversation *models.Conversation) *errs.Error {
	if !conversation.HasParticipant(actor.ID) {
		return errs.Forbidden(ReasonNotParticipant)
	}
	return nil
}

// CanCreateMessage requires the actor to be a participant of the target
// conversation at creation time.
func CanCreateMessage(actor *models.User, conversation *models.Conversation) *errs.Error {
	if !conversation.HasParticipant(actor.ID) {
		return errs.Forbidden(ReasonNotParticipant)
	}
	return nil
}

// CanMutateMessage covers update and delete: the actor must be the original
// sender and must still be a participant of the owning conversation. The two
// checks fail with distinct reasons because participation can lapse after a
// message was sent.
func CanMutateMessage(actor *models.User, message *models.Message, conversation *models.Conversation) *errs.Error {
	if message.SenderID != actor.ID {
		return errs.Forbidden(ReasonNotYourMessage)
	}
	if !conversation.HasParticipant(actor.ID) {
		return errs.Forbidden(ReasonNoLongerParticipant)
	}
	return nil
}
