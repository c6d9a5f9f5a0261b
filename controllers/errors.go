package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/food-delivery-app/services"
	"github.com/yeremiapane/food-delivery-app/utils"
)

// statusForError maps pipeline errors onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInvalidReference),
		errors.Is(err, services.ErrTerminalStatus),
		errors.Is(err, services.ErrSignatureMismatch):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotAssigned):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyAssigned):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError logs and answers a failed service call. Store errors
// become an opaque 500; taxonomy errors keep their message.
func respondServiceError(c *gin.Context, err error) {
	code := statusForError(err)
	if code == http.StatusInternalServerError {
		utils.ErrorLogger.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondError(c, code, errors.New("internal server error"))
		return
	}
	utils.RespondError(c, code, err)
}
