package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	errs "github.com/techagentng/messaging/errors"
)

// JSON writes the uniform response envelope. Errors carry their own message
// and status; a nil err means success.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	errMessage := ""
	if err != nil {
		errMessage = err.Error()
	}
	c.JSON(status, gin.H{
		"message": message,
		"data":    data,
		"errors":  errMessage,
		"status":  http.StatusText(status),
	})
}

// HandleErrors maps service errors onto the envelope, defaulting to 500 for
// anything that is not an *errs.Error.
func HandleErrors(c *gin.Context, err error) {
	if apiErr, ok := err.(*errs.Error); ok {
		JSON(c, "", apiErr.Status, nil, apiErr)
		return
	}
	JSON(c, "", http.StatusInternalServerError, nil, errs.ErrInternalServerError)
}
