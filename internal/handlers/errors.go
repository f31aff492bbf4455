package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/apperrors"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/services"
)

// statusForError maps service sentinels onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, services.ErrNotMatched):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrLockNotAvailable),
		errors.Is(err, services.ErrAlreadyPosted),
		errors.Is(err, services.ErrAlreadyReversed),
		errors.Is(err, services.ErrNotPosted),
		errors.Is(err, services.ErrNotDraft),
		errors.Is(err, services.ErrPeriodClosed),
		errors.Is(err, services.ErrNotClosed),
		errors.Is(err, services.ErrNotOpen),
		errors.Is(err, services.ErrAlreadyMatched),
		errors.Is(err, services.ErrAlreadyFinalized),
		errors.Is(err, services.ErrStatementHasMatch):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, services.ErrUnbalanced),
		errors.Is(err, services.ErrEntryMinLines),
		errors.Is(err, services.ErrInvalidAccount),
		errors.Is(err, services.ErrInvalidAccountCode),
		errors.Is(err, services.ErrDateOutOfPeriod),
		errors.Is(err, services.ErrExchangeRate),
		errors.Is(err, services.ErrNarrativeMissing),
		errors.Is(err, services.ErrReasonMissing),
		errors.Is(err, services.ErrValidationFailed),
		errors.Is(err, services.ErrAccountMismatch),
		errors.Is(err, services.ErrStatementMissing),
		errors.Is(err, services.ErrStatementNoRows):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status; 5xx responses hide the cause.
func respondError(c *gin.Context, err error, fallback string) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
