// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic SQLSTATE codes from the driver and classifies
// them into the data layer's error kinds (e.g. an undefined column
// becomes a translation failure, a refused connection a
// connectivity failure).
package sqlerr
