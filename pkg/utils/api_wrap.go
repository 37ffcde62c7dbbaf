package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/romansmolin/love-connect-vibe-coded-sub000/pkg/logger"
)

// ErrorResponse is the JSON body returned on every failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{Message: message})
}

// HandleServiceError translates a domain error into its HTTP status.
// Unknown errors are logged and surfaced as a generic 500.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUnauthorized):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrGiftNotFound),
		errors.Is(err, ErrTransactionNotFound),
		errors.Is(err, ErrPaymentTokenNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrNotOwner),
		errors.Is(err, ErrNotAMatch):
		RespondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, ErrGiftNotAvailable),
		errors.Is(err, ErrInvalidCredits),
		errors.Is(err, ErrInsufficientCredits),
		errors.Is(err, ErrInvalidPayload),
		errors.Is(err, ErrInvalidSignature):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUpstreamFailure):
		RespondError(c, http.StatusBadGateway, err.Error())
	case errors.Is(err, ErrDatabaseError):
		logger.S().Errorw("database error", "trace_id", c.GetString("trace_id"), "error", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		logger.S().Errorw("unexpected error", "trace_id", c.GetString("trace_id"), "error", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
