package helpers

import (
	"errors"
	"net/http"

	"github.com/eventgobj/eventgo/internal/status"
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithServiceError translates the service error taxonomy into an
// HTTP response. Unrecognized errors become a 500 without leaking detail.
func RespondWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, status.ErrValidation):
		RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, status.ErrUnauthorized):
		RespondWithError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, status.ErrForbidden):
		RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, status.ErrNotFound):
		RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, status.ErrOutOfStock), errors.Is(err, status.ErrConflict):
		RespondWithError(c, http.StatusConflict, err.Error())
	default:
		RespondWithError(c, http.StatusInternalServerError, "Something went wrong.")
	}
}
