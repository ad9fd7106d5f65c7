package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/erestaurant/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapCode(t *testing.T) {
	tests := []struct {
		state string
		want  Code
	}{
		{"23505", UniqueViolation},
		{"23502", NotNullViolation},
		{"23000", IntegrityViolation},
		{"42703", UndefinedColumn},
		{"42P01", UndefinedTable},
		{"42883", UndefinedFunction},
		{"42601", SyntaxOrAccessRule},
		{"0A000", FeatureNotSupported},
		{"22008", DataException},
		{"08006", ConnectionException},
		{"53300", InsufficientResources},
		{"57P01", OperatorIntervention},
		{"57014", QueryCanceled},
		{"XX000", Other},
		{"", Other},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			assert.Equal(t, tt.want, MapCode(tt.state))
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.Kind
	}{
		{"undefinedColumn", &pgconn.PgError{Code: "42703", Severity: "ERROR", TableName: "bills"}, errs.KindTranslation},
		{"unsupported", &pgconn.PgError{Code: "0A000", Severity: "ERROR"}, errs.KindTranslation},
		{"badDatetime", &pgconn.PgError{Code: "22008", Severity: "ERROR"}, errs.KindDataShape},
		{"adminShutdown", &pgconn.PgError{Code: "57P01", Severity: "FATAL"}, errs.KindConnectivity},
		{"wrappedPgError", fmt.Errorf("query: %w", &pgconn.PgError{Code: "42P01"}), errs.KindTranslation},
		{"deadline", context.DeadlineExceeded, errs.KindConnectivity},
		{"canceled", fmt.Errorf("acquire: %w", context.Canceled), errs.KindConnectivity},
		{"noRows", pgx.ErrNoRows, errs.KindDataShape},
		{"unknown", errors.New("boom"), errs.KindUnknown},
		{"alreadyClassified", errs.NewStoreError(errs.KindValidation, "inner", errors.New("bad")), errs.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("repository.Test", tt.err)
			require.Error(t, got)
			assert.Equal(t, tt.want, errs.KindOf(got))

			var storeErr *errs.StoreError
			require.ErrorAs(t, got, &storeErr)
			assert.Equal(t, "repository.Test", storeErr.Op)
		})
	}

	assert.NoError(t, Classify("op", nil))
}

func TestClassifyKeepsDriverError(t *testing.T) {
	src := &pgconn.PgError{Code: "42703", Severity: "ERROR", Message: `column "x" does not exist`}
	got := Classify("op", src)

	var sqlErr *Error
	require.ErrorAs(t, got, &sqlErr)
	assert.Equal(t, UndefinedColumn, sqlErr.Code)
	assert.Equal(t, UndefinedColumn, ErrCode(got))

	var pgerr *pgconn.PgError
	require.ErrorAs(t, got, &pgerr)
	assert.Same(t, src, pgerr)
}

func TestHandleError(t *testing.T) {
	t.Run("httpErrorPassthrough", func(t *testing.T) {
		in := errs.NewNotFoundError("Route not found", false, nil)
		assert.Same(t, in, HandleError(in))
	})

	t.Run("connectivity", func(t *testing.T) {
		var httpErr *errs.HTTPError
		require.ErrorAs(t, HandleError(context.DeadlineExceeded), &httpErr)
		assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
	})

	t.Run("translation", func(t *testing.T) {
		var httpErr *errs.HTTPError
		err := HandleError(&pgconn.PgError{Code: "42703", ColumnName: "menu_category_id"})
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, http.StatusText(http.StatusInternalServerError), httpErr.Message)
		assert.NotContains(t, httpErr.Message, "Menu Category")
	})
}

func TestDescribe(t *testing.T) {
	column := Classify("repository.ListItemsWithCategory", &pgconn.PgError{Code: "42703", ColumnName: "menu_category_id"})
	assert.Equal(t, "The Menu Category query references an unknown column", Describe(column))

	relation := &pgconn.PgError{Code: "42P01", TableName: "bill_items"}
	assert.Equal(t, "The query references an unknown relation", Describe(Classify("", relation)))

	assert.Empty(t, Describe(Classify("", &pgconn.PgError{Code: "08006"})))
	assert.Empty(t, Describe(assert.AnError))
}

func TestGetEntityName(t *testing.T) {
	assert.Equal(t, "Reservation", getEntityName("", "reservation_id"))
	assert.Equal(t, "Bill Item", getEntityName("bill_items", ""))
	assert.Equal(t, "record", getEntityName("", ""))
}
