package repository

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRows serves pre-typed rows. Each value must be assignable to the
// destination it is scanned into; nil zeroes the destination.
type fakeRows struct {
	rows   [][]any
	pos    int
	err    error
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.pos >= len(r.rows) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Values() ([]any, error) {
	return r.rows[r.pos-1], nil
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.pos-1]
	if len(dest) != len(row) {
		return fmt.Errorf("%d columns scanned into %d destinations", len(row), len(dest))
	}
	for i, d := range dest {
		target := reflect.ValueOf(d).Elem()
		if row[i] == nil {
			target.Set(reflect.Zero(target.Type()))
			continue
		}
		value := reflect.ValueOf(row[i])
		if !value.Type().AssignableTo(target.Type()) {
			return fmt.Errorf("column %d: cannot scan %s into %s", i, value.Type(), target.Type())
		}
		target.Set(value)
	}
	return nil
}

type fakeQuerier struct {
	rows     *fakeRows
	queryErr error

	calls int
	sql   string
	args  []any
}

func (q *fakeQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.calls++
	q.sql = sql
	q.args = args
	if q.queryErr != nil {
		return nil, q.queryErr
	}
	if q.rows == nil {
		q.rows = &fakeRows{}
	}
	return q.rows, nil
}

func (q *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return errRow{err: err}
	}
	if !rows.Next() {
		return errRow{err: pgx.ErrNoRows}
	}
	return rows
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }

func ptr[T any](v T) *T {
	return &v
}
