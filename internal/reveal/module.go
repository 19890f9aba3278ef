package reveal

import (
	apphttp "corpintel_backend/internal/http"
	"corpintel_backend/platform/config"
	"corpintel_backend/platform/validator"
)

// Module is the reveal bounded context implementing http.Module.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule creates the reveal module.
func NewModule(cfg config.RevealConfig, val *validator.Validator) *Module {
	svc := NewService(cfg)
	return &Module{
		handler: NewHandler(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "reveal"
}

// Service returns the reveal service.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts reveal routes. Token issuance requires the API key;
// the redirect is public since visitors follow it from email links.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.POST("/reveal/token", m.handler.IssueToken)
	ctx.V1.GET("/reveal/:token", m.handler.Redirect)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
