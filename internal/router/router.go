// Package router builds the echo instance of the health check server.
//
// It registers the middleware chain and the system routes.
package router

import (
	"github.com/deppfellow/erestaurant/internal/handler"
	"github.com/deppfellow/erestaurant/internal/middleware"
	"github.com/deppfellow/erestaurant/internal/server"
	"github.com/labstack/echo/v4"
)

// NewRouter wires the middleware in the order they depend on each other:
// request id first, then the New Relic transaction, then the context
// logger that reads both.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
	)

	registerSystemRoutes(router, h)

	return router
}
