package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/reviewqr/reviewqr/internal/auth"
	"github.com/reviewqr/reviewqr/internal/handler/dto"
	"github.com/reviewqr/reviewqr/internal/model"
	"github.com/reviewqr/reviewqr/internal/service"
)

// FeedbackHandler handles feedback submission and listing.
type FeedbackHandler struct {
	svc    *service.FeedbackService
	logger *slog.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(svc *service.FeedbackService, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		svc:    svc,
		logger: logger,
	}
}

// Submit handles POST /api/feedback. Anonymous; rate limited upstream.
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	feedback, err := h.svc.Submit(r.Context(), req.BusinessID, req.Rating, req.FeedbackText)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("feedback_submitted",
		"business_id", feedback.BusinessID,
		"rating", feedback.Rating,
		"has_text", feedback.FeedbackText != nil,
	)

	writeJSON(w, http.StatusCreated, dto.ToFeedbackResponse(feedback))
}

// List handles GET /api/feedback?businessId=&rating=. The business
// must belong to the authenticated owner. rating may be repeated to
// filter to specific star values.
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	query := r.URL.Query()
	businessID := query.Get("businessId")
	if businessID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_BUSINESS_ID", "businessId query parameter is required")
		return
	}

	var ratings []int
	for _, raw := range query["rating"] {
		rating, err := strconv.Atoi(raw)
		if err != nil || !model.IsValidRating(rating) {
			writeError(w, http.StatusBadRequest, "INVALID_RATING", "rating filter must be between 1 and 5")
			return
		}
		ratings = append(ratings, rating)
	}

	entries, err := h.svc.List(r.Context(), userID, businessID, ratings)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToFeedbackListResponse(entries))
}

// handleServiceError maps feedback service errors to HTTP responses.
func (h *FeedbackHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingBusinessID):
		writeError(w, http.StatusBadRequest, "MISSING_BUSINESS_ID", "businessId is required")
	case errors.Is(err, service.ErrInvalidRating):
		writeError(w, http.StatusBadRequest, "INVALID_RATING", "Rating must be between 1 and 5")
	case errors.Is(err, service.ErrBusinessNotFound):
		writeError(w, http.StatusNotFound, "BUSINESS_NOT_FOUND", "Business not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
