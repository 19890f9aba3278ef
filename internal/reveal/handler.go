package reveal

import (
	"net/http"

	"corpintel_backend/platform/httpkit"
	"corpintel_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// IssueTokenRequest asks for a reveal token for one discovered contact.
type IssueTokenRequest struct {
	ContactID   string `json:"contactId" validate:"required,min=1,max=100"`
	ContactName string `json:"contactName" validate:"required,min=1,max=200"`
	CompanyName string `json:"companyName" validate:"required,min=1,max=200"`
	CompanyID   string `json:"companyId" validate:"omitempty,max=100"`
}

// IssueTokenResponse carries the signed token.
type IssueTokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Handler exposes the reveal endpoints.
type Handler struct {
	svc *Service
	val *validator.Validator
}

// NewHandler creates a reveal handler.
func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// IssueToken signs a token for a machine client.
func (h *Handler) IssueToken(c *gin.Context) {
	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	token, expiresAt, err := h.svc.IssueToken(req.ContactID, req.ContactName, req.CompanyName, req.CompanyID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, IssueTokenResponse{Token: token, ExpiresAt: expiresAt.Unix()})
}

// Redirect validates the token from the visitor's link and forwards them to
// the CRM landing page.
func (h *Handler) Redirect(c *gin.Context) {
	claims, err := h.svc.ValidateToken(c.Param("token"))
	if httpkit.HandleError(c, err) {
		return
	}

	target := h.svc.LandingURL(claims)
	if target == "" {
		httpkit.Error(c, http.StatusNotFound, "landing page not configured", nil)
		return
	}

	c.Redirect(http.StatusFound, target)
}
