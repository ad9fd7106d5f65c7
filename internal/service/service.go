// Package service contains the read operations of the data layer.
//
// Each operation validates its input, borrows one pooled connection for
// the duration of the call, runs its repository queries on it, and then
// merges and projects the rows in memory. Services hold no mutable state
// and are safe for concurrent use.
package service

import (
	"context"
	"time"

	"github.com/deppfellow/erestaurant/internal/database"
	"github.com/deppfellow/erestaurant/internal/errs"
	"github.com/deppfellow/erestaurant/internal/validation"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// Connector hands out a scoped connection. *database.Database implements it.
type Connector interface {
	WithConn(ctx context.Context, fn func(q database.Querier) error) error
}

// execute runs one service operation with observability:
//   - New Relic segment and noticed errors when a transaction is in ctx
//   - input validation (input may be nil)
//   - one debug line with duration and result size on success
//   - every error labelled with op
func execute[T any](
	ctx context.Context,
	logger *zerolog.Logger,
	op string,
	input validation.Validatable,
	fn func() ([]T, error),
) ([]T, error) {
	start := time.Now()

	txn := newrelic.FromContext(ctx)
	if txn != nil {
		defer txn.StartSegment(op).End()
	}

	log := requestLogger(ctx, logger).With().Str("operation", op).Logger()

	if input != nil {
		if err := validation.Check(op, input); err != nil {
			log.Warn().Err(err).Msg("invalid input")
			if txn != nil {
				txn.NoticeError(nrpkgerrors.Wrap(err))
				txn.AddAttribute("validation.status", "failed")
			}
			return nil, err
		}
	}

	result, err := fn()
	duration := time.Since(start)

	if err != nil {
		err = errs.WithOp(op, err)

		log.Error().
			Err(err).
			Str("kind", string(errs.KindOf(err))).
			Dur("duration", duration).
			Msg("operation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute(op+".status", "error")
		}
		return nil, err
	}

	log.Debug().
		Int("count", len(result)).
		Dur("duration", duration).
		Msg("operation completed")

	if txn != nil {
		txn.AddAttribute(op+".status", "success")
		txn.AddAttribute(op+".duration_ms", duration.Milliseconds())
	}

	return result, nil
}

// requestLogger prefers the logger carried by ctx, which holds request
// fields when the call comes through the HTTP middleware.
func requestLogger(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return fallback
}
