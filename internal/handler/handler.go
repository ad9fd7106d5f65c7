// Package handler holds the HTTP handlers of the operational surface.
//
// The data layer itself is a Go API carried on Handlers; the only
// endpoint served is the health check used by load balancers and uptime
// monitors.
package handler

import (
	"context"

	"github.com/deppfellow/erestaurant/internal/server"
	"github.com/deppfellow/erestaurant/internal/service"
)

// Pinger is a dependency the health check can check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers groups all HTTP handlers together with the services they
// front.
type Handlers struct {
	Health   *HealthHandler
	Services *service.Services
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	checks := map[string]Pinger{}
	if s.DB != nil {
		checks["database"] = s.DB
	}

	return &Handlers{
		Health:   NewHealthHandler(s, checks),
		Services: services,
	}
}
