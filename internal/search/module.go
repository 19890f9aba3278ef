// Package search provides the web search collaborator module.
package search

import (
	"corpintel_backend/internal/search/client"
	"corpintel_backend/internal/search/service"
	"corpintel_backend/platform/config"
	"corpintel_backend/platform/logger"
)

// Module wires the Serper-backed search service.
type Module struct {
	service *service.Service
}

// NewModule creates a new search module.
func NewModule(cfg config.SearchConfig, log *logger.Logger) *Module {
	cli := client.New(cfg.GetSerperAPIKey(), log)
	svc := service.New(cli, log)
	return &Module{service: svc}
}

// Service returns the search service.
func (m *Module) Service() *service.Service {
	return m.service
}
