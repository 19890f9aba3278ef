package handler

import (
	"net/http"

	"corpintel_backend/internal/enrichment/service"
	"corpintel_backend/internal/enrichment/transport"
	"corpintel_backend/platform/httpkit"
	"corpintel_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Scan)
}

// Scan runs a synchronous enrichment scan and returns the full report.
func (h *Handler) Scan(c *gin.Context) {
	var req transport.ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	report, err := h.svc.Scan(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, report)
}
