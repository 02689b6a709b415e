package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unighana/unighana-backend/internal/domain"
)

type admissionGetter interface {
	Get(ctx context.Context) (*domain.AdmissionDetails, error)
}

type AdmissionHandler struct {
	admissions admissionGetter
	logger     *slog.Logger
}

func NewAdmissionHandler(admissions admissionGetter, logger *slog.Logger) *AdmissionHandler {
	return &AdmissionHandler{
		admissions: admissions,
		logger:     logger.With("component", "admission_handler"),
	}
}

// GET /schools/knust-admission
func (h *AdmissionHandler) Get(c *gin.Context) {
	details, err := h.admissions.Get(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "fetch admission details", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching admission details"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": details})
}
