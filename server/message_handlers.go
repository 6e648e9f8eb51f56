package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/messaging/models"
	"github.com/techagentng/messaging/server/response"
)

func (s *Server) handleListMessages() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, apiErr := actorFromContext(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		messages, apiErr := s.MessageService.ListMessages(actor)
		if apiErr != nil {
			response.JSON(c, "Error fetching messages", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Successfully fetched messages", http.StatusOK, messages, nil)
	}
}

func (s *Server) handleGetMessage() gin.HandlerFunc {
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
		message, apiErr := s.MessageService.GetMessage(actor, id)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Successfully fetched message", http.StatusOK, message, nil)
	}
}

func (s *Server) handleCreateMessage() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, apiErr := actorFromContext(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		var request models.CreateMessageRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		message, apiErr := s.MessageService.CreateMessage(actor, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Message sent successfully", http.StatusCreated, message, nil)
	}
}

func (s *Server) handleUpdateMessage() gin.HandlerFunc {
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
		var request models.UpdateMessageRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		message, apiErr := s.MessageService.UpdateMessage(actor, id, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Message updated successfully", http.StatusOK, message, nil)
	}
}

func (s *Server) handleDeleteMessage() gin.HandlerFunc {
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
		if apiErr := s.MessageService.DeleteMessage(actor, id); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Message deleted successfully", http.StatusOK, nil, nil)
	}
}
