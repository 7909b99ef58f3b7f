package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/reviewqr/reviewqr/internal/auth"
	"github.com/reviewqr/reviewqr/internal/handler/dto"
	"github.com/reviewqr/reviewqr/internal/qr"
	"github.com/reviewqr/reviewqr/internal/service"
)

// BusinessHandler handles HTTP requests for the business registry.
type BusinessHandler struct {
	svc    *service.BusinessService
	qrGen  *qr.Generator
	logger *slog.Logger
}

// NewBusinessHandler creates a new BusinessHandler.
func NewBusinessHandler(svc *service.BusinessService, qrGen *qr.Generator, logger *slog.Logger) *BusinessHandler {
	return &BusinessHandler{
		svc:    svc,
		qrGen:  qrGen,
		logger: logger,
	}
}

// Create handles POST /api/business.
func (h *BusinessHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req dto.CreateBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	business, err := h.svc.Create(r.Context(), userID, req.BusinessName, req.GoogleReviewURL)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("business_created",
		"business_id", business.ID,
		"owner_id", userID,
	)

	response := dto.ToBusinessResponse(business, h.qrGen.FeedbackURL(business.QRCodeID))
	writeJSON(w, http.StatusCreated, response)
}

// List handles GET /api/business.
func (h *BusinessHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	businesses, err := h.svc.ListForOwner(r.Context(), userID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	responses := make([]dto.BusinessResponse, len(businesses))
	for i, business := range businesses {
		responses[i] = *dto.ToBusinessResponse(business, h.qrGen.FeedbackURL(business.QRCodeID))
	}
	writeJSON(w, http.StatusOK, dto.BusinessListResponse{Businesses: responses})
}

// GetPublic handles GET /api/business/{qrId}, the unauthenticated
// lookup behind the rating page.
func (h *BusinessHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	qrCodeID := chi.URLParam(r, "qrId")

	business, err := h.svc.GetByQRCodeID(r.Context(), qrCodeID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPublicBusinessResponse(business))
}

// handleServiceError maps business service errors to HTTP responses.
func (h *BusinessHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrMissingBusinessFields):
		writeError(w, http.StatusBadRequest, "MISSING_FIELDS", "Business name and review URL are required")
	case errors.Is(err, service.ErrInvalidReviewURL):
		writeError(w, http.StatusBadRequest, "INVALID_REVIEW_URL", "Review URL must be a valid http(s) URL")
	case errors.Is(err, service.ErrBusinessNotFound):
		writeError(w, http.StatusNotFound, "BUSINESS_NOT_FOUND", "Business not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
