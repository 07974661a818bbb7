// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"net/http"

	"friendchat/internal/services"
	"friendchat/internal/transport/httpdto"
	friendchat_errors "friendchat/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// writeError maps err to a status and body. Store failures are hidden from
// the client and left on the context for the error middleware to log.
func writeError(c *gin.Context, err error) {
	status := services.HTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		message = "internal server error"
	}
	c.JSON(status, httpdto.NewErrorResponse(message, errorCode(status)))
}

func writeBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse(message, errorCode(http.StatusBadRequest)))
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusRequestEntityTooLarge:
		return "TOO_LARGE"
	default:
		return "INTERNAL_ERROR"
	}
}

func parseUUID(value, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, friendchat_errors.Invalid("invalid " + field)
	}
	return id, nil
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := parseUUID(c.Param(name), name)
	if err != nil {
		writeError(c, err)
		return uuid.Nil, false
	}
	return id, true
}
