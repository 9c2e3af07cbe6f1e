package restaurants

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sngm3741/restaurant-recs/api/internal/interfaces/http/common"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/application"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/domain"
)

// Handler serves published restaurants.
type Handler struct {
	logger  *slog.Logger
	service application.RestaurantService
	timeout time.Duration
}

// Config provides dependencies for Handler.
type Config struct {
	Logger         *slog.Logger
	Service        application.RestaurantService
	RequestTimeout time.Duration
}

func NewHandler(cfg Config) *Handler {
	h := &Handler{logger: cfg.Logger, service: cfg.Service, timeout: cfg.RequestTimeout}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.timeout <= 0 {
		h.timeout = 5 * time.Second
	}
	return h
}

// Register mounts restaurant routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.listHandler())
	r.Get("/{id}", h.detailHandler())
}

// Response is the JSON representation of a restaurant.
type Response struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Category           string    `json:"category"`
	Location           string    `json:"location"`
	PriceRange         string    `json:"priceRange"`
	Description        string    `json:"description"`
	RecommendedMenu    []string  `json:"recommendedMenu"`
	Image              string    `json:"image"`
	SourceSubmissionID string    `json:"sourceSubmissionId,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
}

// NewResponse maps a domain restaurant; the menu is never null.
func NewResponse(r domain.Restaurant) Response {
	return Response{
		ID:                 r.ID,
		Name:               r.Name,
		Category:           r.Category,
		Location:           r.Location,
		PriceRange:         r.PriceRange,
		Description:        r.Description,
		RecommendedMenu:    domain.NormaliseMenu(r.RecommendedMenu),
		Image:              r.Image,
		SourceSubmissionID: r.SourceSubmissionID,
		CreatedAt:          r.CreatedAt,
	}
}

func (h *Handler) listHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := common.RequestLogger(r, h.logger)
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		restaurants, err := h.service.List(ctx)
		if err != nil {
			common.WriteError(logger, w, err)
			return
		}
		items := make([]Response, 0, len(restaurants))
		for _, restaurant := range restaurants {
			items = append(items, NewResponse(restaurant))
		}
		common.WriteData(logger, w, http.StatusOK, items)
	}
}

func (h *Handler) detailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := common.RequestLogger(r, h.logger)
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		restaurant, err := h.service.Detail(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteError(logger, w, err)
			return
		}
		common.WriteData(logger, w, http.StatusOK, NewResponse(*restaurant))
	}
}
