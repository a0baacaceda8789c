package handlers

import (
	"net/http"

	"busbooking/internal/domain"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	payload := gin.H{
		"error": message,
		"code":  code,
	}
	if details != nil {
		payload["details"] = details
	}
	if rid := requestID(c); rid != "" {
		payload["request_id"] = rid
	}
	c.JSON(status, payload)
}

// RespondDomainError maps domain errors to HTTP responses. Seat
// conflicts carry the offending seat numbers so clients can re-prompt
// seat selection; busy maps to a retryable 503.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsSeatConflict(err):
		respondError(c, http.StatusConflict, "seat_conflict", err.Error(),
			gin.H{"seats": domain.ConflictSeats(err)})
	case domain.IsAlreadyCancelled(err):
		respondError(c, http.StatusConflict, "already_cancelled", err.Error(), nil)
	case domain.IsBusy(err):
		c.Header("Retry-After", "1")
		respondError(c, http.StatusServiceUnavailable, "busy", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong", nil)
	}
}
