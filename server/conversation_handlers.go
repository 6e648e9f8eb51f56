package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/messaging/models"
	"github.com/techagentng/messaging/server/response"
)

func (s *Server) handleListConversations() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, apiErr := actorFromContext(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		conversations, apiErr := s.ConversationService.ListConversations(actor)
		if apiErr != nil {
			response.JSON(c, "Error fetching conversations", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Successfully fetched conversations", http.StatusOK, conversations, nil)
	}
}

func (s *Server) handleGetConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, apiErr := actorFromContext(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		id, apiErr := parseIDParam(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		conversation, apiErr := s.ConversationService.GetConversation(actor, id)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Successfully fetched conversation", http.StatusOK, conversation, nil)
	}
}

func (s *Server) handleCreateConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, apiErr := actorFromContext(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		var request models.CreateConversationRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		conversation, apiErr := s.ConversationService.CreateConversation(actor, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Conversation created successfully", http.StatusCreated, conversation, nil)
	}
}

func (s *Server) handleUpdateConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, apiErr := actorFromContext(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		id, apiErr := parseIDParam(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		var request models.UpdateConversationRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		conversation, apiErr := s.ConversationService.UpdateConversation(actor, id, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Conversation updated successfully", http.StatusOK, conversation, nil)
	}
}

func (s *Server) handleDeleteConversation() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, apiErr := actorFromContext(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		id, apiErr := parseIDParam(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		if apiErr := s.ConversationService.DeleteConversation(actor, id); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Conversation deleted successfully", http.StatusOK, nil, nil)
	}
}

// handleListConversationMessages lists messages nested under a conversation.
func (s *Server) handleListConversationMessages() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, apiErr := actorFromContext(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		id, apiErr := parseIDParam(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		messages, apiErr := s.MessageService.ListConversationMessages(actor, id)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Successfully fetched messages", http.StatusOK, messages, nil)
	}
}

// handleCreateConversationMessage posts a message into the conversation named
// in the path; the body's conversation field is not consulted.
func (s *Server) handleCreateConversationMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, apiErr := actorFromContext(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		id, apiErr := parseIDParam(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		var body models.UpdateMessageRequest
		if err := decode(c, &body); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		request := models.CreateMessageRequest{
			ConversationID: id,
			Body:           body.Body,
		}
		message, apiErr := s.MessageService.CreateMessage(actor, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Message sent successfully", http.StatusCreated, message, nil)
	}
}
