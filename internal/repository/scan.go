package repository

import (
	"time"

	"github.com/deppfellow/erestaurant/internal/errs"
	"github.com/deppfellow/erestaurant/internal/model"
	"github.com/deppfellow/erestaurant/internal/sqlerr"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pkg/errors"
)

// dateParts splits date into the components EXTRACT(YEAR/MONTH/DAY ...)
// is compared against.
func dateParts(date time.Time) (int, int, int) {
	y, m, d := date.Date()
	return y, int(m), d
}

func timeParam(tod model.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: tod.Microseconds(), Valid: true}
}

func timeOfDay(t pgtype.Time) *model.TimeOfDay {
	if !t.Valid {
		return nil
	}
	tod := time.Duration(t.Microseconds) * time.Microsecond
	return &tod
}

// queryFailed classifies an error returned by Query or rows.Err.
func queryFailed(op string, err error) error {
	return sqlerr.Classify(op, errors.Wrap(err, "query"))
}

// scanFailed reports a row that does not fit its destination.
func scanFailed(op string, err error) error {
	return errs.NewStoreError(errs.KindDataShape, op, errors.Wrap(err, "scan"))
}
