package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/techagentng/messaging/errors"
	errs "github.com/techagentng/messaging/errors"
	"github.com/techagentng/messaging/models"
	"github.com/techagentng/messaging/server/response"
)

// handleToken exchanges a credential for an access+refresh token pair.
func (s *Server) handleToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginRequest models.LoginRequest
		if err := decode(c, &loginRequest); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		userResponse, err := s.AuthService.LoginUser(&loginRequest)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "login successful", http.StatusOK, userResponse, nil)
	}
}

// handleTokenRefresh exchanges a refresh token for a fresh access token.
func (s *Server) handleTokenRefresh() gin.HandlerFunc {
	return func(c *gin.Context) {
		var refreshRequest models.RefreshRequest
		if err := decode(c, &refreshRequest); err != nil {
			response.JSON(c, "", errors.ErrBadRequest.Status, nil, err)
			return
		}
		accessToken, err := s.AuthService.RefreshAccessToken(refreshRequest.RefreshToken)
		if err != nil {
			response.HandleErrors(c, err)
			return
		}
		response.JSON(c, "token refreshed", http.StatusOK, gin.H{"access_token": accessToken}, nil)
	}
}

// handleLogout invalidates the access token by adding it to the blacklist.
func (s *Server) handleLogout() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, exists := c.Get("access_token")
		if !exists {
			respondAndAbort(c, "Access token not found in context", http.StatusInternalServerError, nil, errs.New("Internal server error", http.StatusInternalServerError))
			return
		}
		accessToken, ok := token.(string)
		if !ok {
			respondAndAbort(c, "Access token is not a string", http.StatusInternalServerError, nil, errs.New("Internal server error", http.StatusInternalServerError))
			return
		}

		if err := s.AuthService.Logout(accessToken); err != nil {
			response.JSON(c, "Logout failed", err.Status, nil, err)
			return
		}
		response.JSON(c, "Logout successful", http.StatusOK, nil, nil)
	}
}

// handleShowProfile returns the authenticated user's own record.
func (s *Server) handleShowProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, apiErr := actorFromContext(c)
		if apiErr != nil {
			response.JSON(c, "", apiErr.Status, nil, apiErr)
			return
		}
		response.JSON(c, "User profile retrieved successfully", http.StatusOK, actor.Response(), nil)
	}
}
