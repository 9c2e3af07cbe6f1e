package submissions

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sngm3741/restaurant-recs/api/internal/interfaces/http/common"
	"github.com/sngm3741/restaurant-recs/api/internal/interfaces/http/restaurants"
	"github.com/sngm3741/restaurant-recs/api/internal/submission/application"
)

func (h *Handler) listHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := common.RequestLogger(r, h.logger)
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		filter := application.SubmissionFilter{
			Status: strings.TrimSpace(r.URL.Query().Get("status")),
		}
		submissions, err := h.service.List(ctx, filter)
		if err != nil {
			common.WriteError(logger, w, err)
			return
		}

		items := make([]submissionResponse, 0, len(submissions))
		for _, s := range submissions {
			items = append(items, toSubmissionResponse(s))
		}
		common.WriteData(logger, w, http.StatusOK, items)
	}
}

func (h *Handler) detailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := common.RequestLogger(r, h.logger)
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		submission, err := h.service.Detail(ctx, chi.URLParam(r, "id"))
		if err != nil {
			common.WriteError(logger, w, err)
			return
		}
		common.WriteData(logger, w, http.StatusOK, toSubmissionResponse(*submission))
	}
}

func (h *Handler) createHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := common.RequestLogger(r, h.logger)

		var req createRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			logger.Debug("decode create submission body", "error", err)
			common.WriteMessage(logger, w, http.StatusBadRequest, common.MsgInvalidBody)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		submission, err := h.service.Create(ctx, req.command())
		if err != nil {
			common.WriteError(logger, w, err)
			return
		}
		logger.Info("submission created", "submissionId", submission.ID)
		common.WriteData(logger, w, http.StatusCreated, toSubmissionResponse(*submission))
	}
}

func (h *Handler) updateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := common.RequestLogger(r, h.logger)

		var req updateRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxRequestBody)).Decode(&req); err != nil {
			logger.Debug("decode update submission body", "error", err)
			common.WriteMessage(logger, w, http.StatusBadRequest, common.MsgInvalidBody)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		submission, err := h.service.Update(ctx, chi.URLParam(r, "id"), req.command())
		if err != nil {
			common.WriteError(logger, w, err)
			return
		}
		common.WriteData(logger, w, http.StatusOK, toSubmissionResponse(*submission))
	}
}

func (h *Handler) deleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := common.RequestLogger(r, h.logger)
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		id := chi.URLParam(r, "id")
		if err := h.service.Delete(ctx, id); err != nil {
			common.WriteError(logger, w, err)
			return
		}
		logger.Info("submission deleted", "submissionId", id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *Handler) approveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := common.RequestLogger(r, h.logger)
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		id := chi.URLParam(r, "id")
		restaurant, err := h.service.Approve(ctx, id)
		if err != nil {
			common.WriteError(logger, w, err)
			return
		}
		logger.Info("submission approved", "submissionId", id, "restaurantId", restaurant.ID)
		common.WriteData(logger, w, http.StatusCreated, restaurants.NewResponse(*restaurant))
	}
}

func (h *Handler) rejectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := common.RequestLogger(r, h.logger)
		ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
		defer cancel()

		id := chi.URLParam(r, "id")
		submission, err := h.service.Reject(ctx, id)
		if err != nil {
			common.WriteError(logger, w, err)
			return
		}
		logger.Info("submission rejected", "submissionId", id)
		common.WriteData(logger, w, http.StatusOK, toSubmissionResponse(*submission))
	}
}
