package middleware

import (
	"github.com/deppfellow/erestaurant/internal/server"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Middlewares groups every middleware component so the router builds
// them once.
type Middlewares struct {
	// Global holds request logging, recovery, secure headers and the
	// global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer attaches a request scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing wraps requests in New Relic transactions. It is a no-op
	// when New Relic is not configured.
	Tracing *TracingMiddleware
}

func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(nrApp),
	}
}
