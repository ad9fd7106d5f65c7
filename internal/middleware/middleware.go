// Package middleware stores the echo middleware of the health check
// server.
//
// These handle cross-cutting concerns such as request ids, request
// scoped logging, New Relic transactions, request logging, panic
// recovery and the global error handler.
package middleware
