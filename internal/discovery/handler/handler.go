package handler

import (
	"net/http"

	"corpintel_backend/internal/discovery/service"
	"corpintel_backend/internal/discovery/transport"
	"corpintel_backend/platform/httpkit"
	"corpintel_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

type Handler struct {
	svc *service.Service
	val *validator.Validator
}

func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/email", h.DiscoverEmail)
	rg.POST("/candidates", h.GenerateCandidates)
	rg.GET("/patterns/:domain", h.GetPattern)
}

// DiscoverEmail runs the full discovery pipeline for one person.
func (h *Handler) DiscoverEmail(c *gin.Context) {
	var req transport.DiscoverEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result := h.svc.DiscoverEmail(c.Request.Context(), req.FullName, req.Domain)
	if result == nil {
		httpkit.OK(c, transport.DiscoverEmailResponse{Found: false})
		return
	}

	httpkit.OK(c, transport.DiscoverEmailResponse{
		Found:      true,
		Email:      result.Email,
		Status:     result.Status,
		Score:      result.Score,
		Candidates: result.Candidates,
	})
}

// GenerateCandidates returns the ordered candidate list without validating.
func (h *Handler) GenerateCandidates(c *gin.Context) {
	var req transport.CandidatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	candidates := h.svc.GenerateCandidates(c.Request.Context(), req.FullName, req.Domain)
	httpkit.OK(c, transport.CandidatesResponse{Candidates: candidates})
}

// GetPattern reports the learned email template for a domain.
func (h *Handler) GetPattern(c *gin.Context) {
	domain := c.Param("domain")
	if domain == "" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, "domain is required")
		return
	}

	tmpl, err := h.svc.GetPattern(c.Request.Context(), domain)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.PatternResponse{
		Domain:  domain,
		Pattern: string(tmpl),
		Known:   tmpl != "",
	})
}
