// Package handler holds the response envelope and error mapping shared by
// the resource handlers.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/podocentro/clinic-api/internal/repository"
	apperrors "github.com/podocentro/clinic-api/pkg/errors"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError maps a service error to a response. Application errors carry
// their own status; a repository miss becomes 404; anything else is a 500
// with the detail kept in the log, not the body.
func RespondError(c *gin.Context, err error) {
	if appErr, ok := apperrors.AsAppError(err); ok {
		c.JSON(appErr.HTTPStatus(), NewErrorResponse(appErr.Message))
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, NewErrorResponse("resource not found"))
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	c.JSON(http.StatusInternalServerError, NewErrorResponse("internal server error"))
}
