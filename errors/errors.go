package errors

import (
	"net/http"
	"strings"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is the API error carried from services up to the response boundary.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

var (
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrUnauthorized        = New("Unauthorized", http.StatusUnauthorized)
	ErrInvalidPassword     = New("invalid email or password", http.StatusUnauthorized)
)

func (e *Error) Error() string {
	return e.Message
}

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

// Forbidden builds a permission-denied error with a caller-facing reason.
func Forbidden(reason string) *Error {
	return New(reason, http.StatusForbidden)
}

// ValidationError flags malformed input with field-level detail in the message.
func ValidationError(detail string) *Error {
	return New(detail, http.StatusUnprocessableEntity)
}

// GetUniqueContraintError maps a datastore duplicate-key failure to a
// client-facing validation error, keeping the offending column visible.
func GetUniqueContraintError(err error) *Error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "username"):
		return New("username already in use", http.StatusConflict)
	case strings.Contains(msg, "email"):
		return New("email already in use", http.StatusConflict)
	default:
		return New("duplicate value for a unique field", http.StatusConflict)
	}
}

// ErrorHandler is plugged into the rate limiter for the token endpoint.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"message": "too many requests, try again later",
		"status":  http.StatusTooManyRequests,
	})
	c.Abort()
}
