package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sngm3741/restaurant-recs/api/internal/submission/domain"
	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"validation", domain.RequiredFieldError("category"), http.StatusBadRequest, `{"error":{"message":"'category' is required"}}`},
		{"submission missing", fmt.Errorf("lookup: %w", domain.ErrSubmissionNotFound), http.StatusNotFound, `{"error":{"message":"Submission not found"}}`},
		{"restaurant missing", domain.ErrRestaurantNotFound, http.StatusNotFound, `{"error":{"message":"Restaurant not found"}}`},
		{"not pending", domain.ErrSubmissionNotPending, http.StatusConflict, `{"error":{"message":"Submission is not pending"}}`},
		{"timeout", fmt.Errorf("find: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, `{"error":{"message":"Gateway Timeout"}}`},
		{"unknown", errors.New("socket closed"), http.StatusInternalServerError, `{"error":{"message":"internal server error"}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(slog.Default(), rec, tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}

func TestRequestLoggerFallsBack(t *testing.T) {
	fallback := slog.Default()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Same(t, fallback, RequestLogger(r, fallback))
}
