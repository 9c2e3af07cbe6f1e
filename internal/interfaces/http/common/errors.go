package common

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sngm3741/restaurant-recs/api/internal/submission/domain"
)

// Messages returned to clients.
const (
	MsgSubmissionNotFound   = "Submission not found"
	MsgRestaurantNotFound   = "Restaurant not found"
	MsgSubmissionNotPending = "Submission is not pending"
	MsgInvalidBody          = "invalid request body"
	MsgInternal             = "internal server error"
)

// WriteError maps service errors onto HTTP responses. Unknown errors are
// logged and reported as 500 without leaking the cause.
func WriteError(logger *slog.Logger, w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	switch {
	case errors.As(err, &validation):
		WriteMessage(logger, w, http.StatusBadRequest, validation.Message)
	case errors.Is(err, domain.ErrSubmissionNotFound):
		WriteMessage(logger, w, http.StatusNotFound, MsgSubmissionNotFound)
	case errors.Is(err, domain.ErrRestaurantNotFound):
		WriteMessage(logger, w, http.StatusNotFound, MsgRestaurantNotFound)
	case errors.Is(err, domain.ErrSubmissionNotPending):
		WriteMessage(logger, w, http.StatusConflict, MsgSubmissionNotPending)
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("request timed out", "error", err)
		WriteMessage(logger, w, http.StatusGatewayTimeout, http.StatusText(http.StatusGatewayTimeout))
	default:
		logger.Error("internal server error", "error", err)
		WriteMessage(logger, w, http.StatusInternalServerError, MsgInternal)
	}
}
