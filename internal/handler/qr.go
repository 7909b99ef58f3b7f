package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/reviewqr/reviewqr/internal/auth"
	"github.com/reviewqr/reviewqr/internal/handler/dto"
	"github.com/reviewqr/reviewqr/internal/qr"
	"github.com/reviewqr/reviewqr/internal/service"
)

// QRHandler serves rendered QR codes to business owners.
type QRHandler struct {
	businesses *service.BusinessService
	generator  *qr.Generator
	logger     *slog.Logger
}

// NewQRHandler creates a new QRHandler.
func NewQRHandler(businesses *service.BusinessService, generator *qr.Generator, logger *slog.Logger) *QRHandler {
	return &QRHandler{
		businesses: businesses,
		generator:  generator,
		logger:     logger,
	}
}

// Get handles GET /api/qr?id=. The qr id must belong to one of the
// authenticated owner's businesses.
func (h *QRHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	qrCodeID := r.URL.Query().Get("id")
	if qrCodeID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "id query parameter is required")
		return
	}

	if _, err := h.businesses.GetOwnedByQRCodeID(r.Context(), userID, qrCodeID); err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			writeError(w, http.StatusNotFound, "BUSINESS_NOT_FOUND", "Business not found")
			return
		}
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	dataURI, err := h.generator.RenderDataURI(qrCodeID)
	if err != nil {
		h.logger.Error("qr_render_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
		return
	}

	writeJSON(w, http.StatusOK, dto.QRCodeResponse{QRCode: dataURI})
}
