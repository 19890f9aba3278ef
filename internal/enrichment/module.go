// Package enrichment provides the company enrichment bounded context module.
package enrichment

import (
	"corpintel_backend/internal/enrichment/handler"
	"corpintel_backend/internal/enrichment/ports"
	"corpintel_backend/internal/enrichment/service"
	apphttp "corpintel_backend/internal/http"
	"corpintel_backend/platform/events"
	"corpintel_backend/platform/logger"
	"corpintel_backend/platform/validator"
)

// Deps groups the collaborator ports the orchestrator needs. The composition
// root fills these from the concrete modules.
type Deps struct {
	Domains   ports.DomainFinder
	Socials   ports.SocialsFinder
	Employees ports.EmployeeFinder
	Scraper   ports.WebsiteScraper
	Infra     ports.InfrastructureProber
	Analyzer  ports.CompanyAnalyzer
	Discovery ports.EmailDiscovery
}

// Module is the enrichment bounded context implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and wires the enrichment module.
func NewModule(deps Deps, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	svc := service.New(
		deps.Domains,
		deps.Socials,
		deps.Employees,
		deps.Scraper,
		deps.Infra,
		deps.Analyzer,
		deps.Discovery,
		bus,
		log,
	)
	return &Module{
		handler: handler.New(svc, val),
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "enrichment"
}

// Service returns the enrichment service.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts enrichment routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/enrich")
	m.handler.RegisterRoutes(group)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
