package story

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/heyverne/verne-backend/internal/entity"
	"github.com/heyverne/verne-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

type Handler struct {
	usecase StoryUsecase
}

func NewHandler(usecase StoryUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// NextPage handles POST /story/next-page
func (h *Handler) NextPage(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "NextPage")

	var req entity.NextPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	ctx = logger.AddFields(ctx, zap.String("session_id", req.SessionID))

	resp, err := h.usecase.NextPage(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// CheckImages handles GET /story/check-images
func (h *Handler) CheckImages(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CheckImages")

	query := r.URL.Query()
	sessionID := query.Get("sessionId")
	taskID1 := query.Get("taskId1")
	taskID2 := query.Get("taskId2")

	if sessionID == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "sessionId is required", nil)
		return
	}
	if taskID1 == "" && taskID2 == "" {
		h.respondError(ctx, w, http.StatusBadRequest, "at least one task ID required", nil)
		return
	}

	pageNumber, err := strconv.Atoi(query.Get("pageNumber"))
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid page number", err)
		return
	}

	resp, err := h.usecase.CheckImages(ctx, sessionID, pageNumber, taskID1, taskID2)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// PageContent handles GET /story/content/{pageNumber}
func (h *Handler) PageContent(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "PageContent")

	pageNumber, err := strconv.Atoi(chi.URLParam(r, "pageNumber"))
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid page number", err)
		return
	}

	resp, err := h.usecase.PageContent(pageNumber, r.URL.Query().Get("planet"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// Helper methods
func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if err != nil {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Error(ctx, message)
	}
	h.respondJSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	if errors.Is(err, entity.ErrSessionNotFound) || errors.Is(err, entity.ErrTaskNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	} else if errors.Is(err, entity.ErrSessionCompleted) {
		h.respondError(ctx, w, http.StatusConflict, "session already completed", err)
	} else if errors.Is(err, entity.ErrPageOutOfOrder) {
		h.respondError(ctx, w, http.StatusConflict, "page advance out of order", err)
	} else if errors.Is(err, entity.ErrInvalidPage) || errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrInvalidParameter) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid parameter", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
