package services

import (
	"errors"
	"net/http"

	friendchat_errors "friendchat/pkg/errors"
)

func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, friendchat_errors.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, friendchat_errors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, friendchat_errors.ErrUnauthorized), errors.Is(err, friendchat_errors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, friendchat_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, friendchat_errors.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
