package response

import (
	"net/http"

	"project-tracker/internal/apperr"
	"project-tracker/internal/logutils"

	"github.com/gin-gonic/gin"
)

const internalMessage = "internal server error"

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// HTTPError sends a failure envelope with an explicit status and message.
func HTTPError(c *gin.Context, httpCode int, msg string) {
	c.AbortWithStatusJSON(httpCode, Envelope{Success: false, Error: msg})
}

func BadRequest(c *gin.Context, msg string) {
	HTTPError(c, http.StatusBadRequest, msg)
}

// Fail maps err onto its HTTP status. Internal errors are logged and
// replaced by a generic message.
func Fail(c *gin.Context, err error) {
	status := apperr.Status(err)
	if !apperr.Public(err) {
		logutils.Log.WithError(err).WithFields(logutils.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("request failed")
		HTTPError(c, status, internalMessage)
		return
	}
	HTTPError(c, status, err.Error())
}
