// Package adapters contains thin anti-corruption adapters between bounded
// contexts so modules only depend on their own port interfaces.
package adapters

import (
	"context"

	discoveryservice "corpintel_backend/internal/discovery/service"
	"corpintel_backend/internal/enrichment/ports"
)

// DiscoveryAdapter exposes the discovery service through the enrichment
// EmailDiscovery port.
type DiscoveryAdapter struct {
	svc *discoveryservice.Service
}

// NewDiscoveryAdapter creates a discovery adapter for enrichment.
func NewDiscoveryAdapter(svc *discoveryservice.Service) *DiscoveryAdapter {
	return &DiscoveryAdapter{svc: svc}
}

// DiscoverEmail runs discovery and maps the result to the port type.
func (a *DiscoveryAdapter) DiscoverEmail(ctx context.Context, fullName, domain string) *ports.DiscoveredEmail {
	result := a.svc.DiscoverEmail(ctx, fullName, domain)
	if result == nil {
		return nil
	}
	return &ports.DiscoveredEmail{
		Email:  result.Email,
		Status: result.Status,
		Score:  result.Score,
	}
}

// Compile-time check.
var _ ports.EmailDiscovery = (*DiscoveryAdapter)(nil)
