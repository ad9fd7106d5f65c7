package errs

import (
	"errors"
	"fmt"
)

// Kind is the failure category of a data layer operation.
type Kind string

const (
	// KindConnectivity means a connection could not be acquired or used.
	KindConnectivity Kind = "connectivity"

	// KindTranslation means the store rejected the query itself
	// (unknown column, unsupported function, syntax).
	KindTranslation Kind = "translation"

	// KindDataShape means the stored data did not have the shape the
	// operation relies on, e.g. two open bills on one table.
	KindDataShape Kind = "data_shape"

	// KindValidation means the caller passed an invalid argument.
	KindValidation Kind = "validation"

	// KindUnknown is anything the classifier could not place.
	KindUnknown Kind = "unknown"
)

// StoreError is returned by every repository and service operation.
//
// Op names the failing operation (e.g. "seating.SeatingByDateTime") and
// Err keeps the underlying cause reachable through errors.As/Is.
type StoreError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError builds a StoreError.
func NewStoreError(kind Kind, op string, err error) *StoreError {
	return &StoreError{Kind: kind, Op: op, Err: err}
}

// WithOp returns err labelled with op. An existing StoreError keeps its
// kind; the innermost op is replaced by the outer one so messages read
// from the caller's point of view.
func WithOp(op string, err error) error {
	if err == nil {
		return nil
	}

	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return &StoreError{Kind: storeErr.Kind, Op: op, Err: storeErr.Err}
	}

	return &StoreError{Kind: KindUnknown, Op: op, Err: err}
}

// KindOf reports the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is a StoreError of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
