package sqlerr

import "fmt"

// Code is a coarse category of a PostgreSQL SQLSTATE.
type Code string

const (
	Other                 Code = "other"
	ConnectionException   Code = "connection_exception"
	FeatureNotSupported   Code = "feature_not_supported"
	DataException         Code = "data_exception"
	IntegrityViolation    Code = "integrity_violation"
	NotNullViolation      Code = "not_null_violation"
	ForeignKeyViolation   Code = "foreign_key_violation"
	UniqueViolation       Code = "unique_violation"
	CheckViolation        Code = "check_violation"
	SyntaxOrAccessRule    Code = "syntax_error_or_access_rule_violation"
	UndefinedColumn       Code = "undefined_column"
	UndefinedTable        Code = "undefined_table"
	UndefinedFunction     Code = "undefined_function"
	InsufficientResources Code = "insufficient_resources"
	OperatorIntervention  Code = "operator_intervention"
	QueryCanceled         Code = "query_canceled"
)

// Severity mirrors the severity field of a PostgreSQL error report.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
)

// Error is a PostgreSQL error report reduced to what the data layer needs.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("SQL %s (%s): %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a five character SQLSTATE onto a Code. Exact codes win
// over their class.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "42703":
		return UndefinedColumn
	case "42P01":
		return UndefinedTable
	case "42883":
		return UndefinedFunction
	case "57014":
		return QueryCanceled
	}

	if len(sqlState) < 2 {
		return Other
	}

	switch sqlState[:2] {
	case "08":
		return ConnectionException
	case "0A":
		return FeatureNotSupported
	case "22":
		return DataException
	case "23":
		return IntegrityViolation
	case "42":
		return SyntaxOrAccessRule
	case "53":
		return InsufficientResources
	case "57":
		return OperatorIntervention
	}

	return Other
}

// MapSeverity normalizes the severity string of a server error.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityError
	}
}
