package submissions

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/application"
)

const defaultRequestTimeout = 5 * time.Second

// Handler wires submission HTTP endpoints to the submission service.
type Handler struct {
	logger  *slog.Logger
	service application.SubmissionService
	timeout time.Duration
}

// Config provides dependencies for Handler.
type Config struct {
	Logger         *slog.Logger
	Service        application.SubmissionService
	RequestTimeout time.Duration
}

// NewHandler constructs the submission handler set.
func NewHandler(cfg Config) *Handler {
	h := &Handler{
		logger:  cfg.Logger,
		service: cfg.Service,
		timeout: cfg.RequestTimeout,
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.timeout <= 0 {
		h.timeout = defaultRequestTimeout
	}
	return h
}

// Register mounts submission routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.listHandler())
	r.Post("/", h.createHandler())
	r.Get("/{id}", h.detailHandler())
	r.Put("/{id}", h.updateHandler())
	r.Delete("/{id}", h.deleteHandler())
	r.Post("/{id}/approve", h.approveHandler())
	r.Post("/{id}/reject", h.rejectHandler())
}
