// Package errs defines custom error types and utilities.
//
// StoreError classifies failures of the data layer (connectivity,
// query translation, data shape, validation). HTTPError gives the
// health check and the global error handler a consistent JSON shape.
package errs
