// Package discovery provides the email discovery bounded context module.
package discovery

import (
	"corpintel_backend/internal/discovery/client"
	"corpintel_backend/internal/discovery/generator"
	"corpintel_backend/internal/discovery/handler"
	"corpintel_backend/internal/discovery/repository"
	"corpintel_backend/internal/discovery/service"
	apphttp "corpintel_backend/internal/http"
	"corpintel_backend/platform/config"
	"corpintel_backend/platform/events"
	"corpintel_backend/platform/logger"
	"corpintel_backend/platform/validator"
)

// Module is the email discovery bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and wires the discovery module. The pattern store backing
// is chosen by the caller so the composition root controls which
// infrastructure gets connected.
func NewModule(
	cfg config.DiscoveryConfig,
	store repository.PatternStore,
	bus events.Bus,
	val *validator.Validator,
	log *logger.Logger,
) *Module {
	gen := generator.New(store, log)
	validatorClient := client.NewValidator(cfg, log)
	svc := service.New(gen, validatorClient, store, bus, log)
	h := handler.New(svc, val)

	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "discovery"
}

// Service returns the discovery service for use by other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts discovery routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/discovery")
	m.handler.RegisterRoutes(group)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
