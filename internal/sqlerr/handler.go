package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/deppfellow/erestaurant/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrCode reports the mapped sqlerr.Code for a given error.
//
// If err can be unwrapped into *sqlerr.Error its Code is returned,
// otherwise sqlerr.Other.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError converts a raw pgconn.PgError into our sqlerr.Error.
//
// SQLSTATE and severity are mapped into enums for easier switching;
// the original is kept for Unwrap() and debugging.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// kindForCode places a Code in the data layer's error taxonomy.
func kindForCode(code Code) errs.Kind {
	switch code {
	case ConnectionException, InsufficientResources, OperatorIntervention, QueryCanceled:
		return errs.KindConnectivity
	case SyntaxOrAccessRule, UndefinedColumn, UndefinedTable, UndefinedFunction, FeatureNotSupported:
		return errs.KindTranslation
	case DataException, IntegrityViolation, NotNullViolation, ForeignKeyViolation, UniqueViolation, CheckViolation:
		return errs.KindDataShape
	default:
		return errs.KindUnknown
	}
}

// Classify converts a low-level driver error into an *errs.StoreError
// labelled with op.
//
//   - *errs.StoreError: relabelled with op, kind kept
//   - *pgconn.PgError: kind derived from its SQLSTATE, cause becomes *sqlerr.Error
//   - connect/network/timeout/cancel errors: KindConnectivity
//   - pgx.ErrNoRows: KindDataShape (read paths expect rows to exist)
//   - anything else: KindUnknown
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var storeErr *errs.StoreError
	if errors.As(err, &storeErr) {
		return errs.WithOp(op, err)
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		return errs.NewStoreError(kindForCode(sqlErr.Code), op, sqlErr)
	}

	var connectErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connectErr),
		errors.As(err, &netErr),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled),
		pgconn.Timeout(err),
		pgconn.SafeToRetry(err):
		return errs.NewStoreError(errs.KindConnectivity, op, err)
	case errors.Is(err, pgx.ErrNoRows):
		return errs.NewStoreError(errs.KindDataShape, op, err)
	}

	return errs.NewStoreError(errs.KindUnknown, op, err)
}

// HandleError converts any error reaching the HTTP layer into an *errs.HTTPError.
//
//   - *errs.HTTPError: returned unchanged
//   - everything else is classified and mapped with errs.FromStoreError
//
// Client messages never carry schema details; see Describe for the log side.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	return errs.FromStoreError(Classify("", err))
}

// Describe returns a readable account of a query the store refused to
// run, naming the relation involved, or "" for any other error. It is
// meant for logs only.
func Describe(err error) string {
	var sqlErr *Error
	if !errors.As(err, &sqlErr) || kindForCode(sqlErr.Code) != errs.KindTranslation {
		return ""
	}
	return formatTranslationMessage(sqlErr)
}

// formatTranslationMessage describes a query the store refused to run.
func formatTranslationMessage(sqlErr *Error) string {
	entity := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case UndefinedColumn:
		return fmt.Sprintf("The %s query references an unknown column", entity)
	case UndefinedTable:
		return "The query references an unknown relation"
	case UndefinedFunction:
		return "The query uses a function the database does not provide"
	default:
		return fmt.Sprintf("The %s query could not be executed", entity)
	}
}

// getEntityName infers an entity name from table/column data.
//
//  1. Column ending with "_id" wins: "menu_category_id" -> "Menu Category".
//  2. Otherwise the table name, singularized if it ends with "s".
//  3. Otherwise "record".
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case into Title Case: "bill_items" -> "Bill Items".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}
