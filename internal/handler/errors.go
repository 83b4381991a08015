package handler

import (
	"errors"
	"net/http"

	"borrowdesk/internal/model"
	"borrowdesk/pkg/response"

	"github.com/gin-gonic/gin"
)

// httpStatus maps the service error taxonomy onto HTTP statuses.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrRemoteFailure):
		return http.StatusBadGateway
	case errors.Is(err, model.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	status := httpStatus(err)
	c.JSON(status, response.Error(status, err.Error()))
}
