package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	errs "github.com/techagentng/messaging/errors"
	"github.com/techagentng/messaging/models"
	"github.com/techagentng/messaging/server/response"
)

// parseIDParam reads the :id path segment as a UUID.
func parseIDParam(c *gin.Context) (uuid.UUID, *errs.Error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errs.New("invalid id", http.StatusBadRequest)
	}
	return id, nil
}

func (s *Server) handleListUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, apiErr := actorFromContext(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		users, apiErr := s.UserService.ListUsers(actor)
		if apiErr != nil {
			response.JSON(c, "Error fetching users", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Successfully fetched users", http.StatusOK, users, nil)
	}
}

func (s *Server) handleGetUser() gin.HandlerFunc {
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
		user, apiErr := s.UserService.GetUser(actor, id)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "Successfully fetched user", http.StatusOK, user, nil)
	}
}

func (s *Server) handleCreateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, apiErr := actorFromContext(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		var request models.CreateUserRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		user, apiErr := s.UserService.CreateUser(actor, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "User created successfully", http.StatusCreated, user, nil)
	}
}

func (s *Server) handleUpdateUser() gin.HandlerFunc {
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
		var request models.UpdateUserRequest
		if err := decode(c, &request); err != nil {
			response.JSON(c, "", http.StatusBadRequest, nil, err)
			return
		}
		user, apiErr := s.UserService.UpdateUser(actor, id, &request)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "User updated successfully", http.StatusOK, user, nil)
	}
}

func (s *Server) handleDeleteUser() gin.HandlerFunc {
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
		if apiErr := s.UserService.DeleteUser(actor, id); apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "User deleted successfully", http.StatusOK, nil, nil)
	}
}
