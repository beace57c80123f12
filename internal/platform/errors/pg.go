package errors

// Postgres-specific helpers: SQLSTATE to ErrorCode mapping, field-name
// extraction from constraint metadata, and retry classification

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	sqlstateUniqueViolation     = "23505"
	sqlstateForeignKeyViolation = "23503"
	sqlstateNotNullViolation    = "23502"
	sqlstateCheckViolation      = "23514"
	sqlstateStringTruncation    = "22001"
	sqlstateInvalidText         = "22P02"

	sqlstateSerializationFailure = "40001"
	sqlstateDeadlockDetected     = "40P01"
	sqlstateLockNotAvailable     = "55P03"
	sqlstateReadOnlyTx           = "25006"
	sqlstateCannotConnectNow     = "57P03" // startup in progress
)

// sqlstateCodes maps each SQLSTATE we distinguish to a project ErrorCode.
// Unique violations surface as DuplicateKey; FK violations mean the input
// referenced a missing row, so they classify as invalid input
var sqlstateCodes = map[string]ErrorCode{
	sqlstateUniqueViolation:     ErrorCodeDuplicateKey,
	sqlstateForeignKeyViolation: ErrorCodeInvalidArgument,
	sqlstateNotNullViolation:    ErrorCodeValidation,
	sqlstateCheckViolation:      ErrorCodeValidation,
	sqlstateStringTruncation:    ErrorCodeInvalidArgument,
	sqlstateInvalidText:         ErrorCodeInvalidArgument,

	// retryable server-side contention stays ErrorCodeDB
	sqlstateSerializationFailure: ErrorCodeDB,
	sqlstateDeadlockDetected:     ErrorCodeDB,
	sqlstateLockNotAvailable:     ErrorCodeDB,

	sqlstateReadOnlyTx:       ErrorCodeUnavailable,
	sqlstateCannotConnectNow: ErrorCodeUnavailable,
}

// DBErrorCode maps a Postgres error to an ErrorCode with an ok flag.
// !ok means err wasn't a PgError; caller may fall back to generic handling
func DBErrorCode(err error) (ErrorCode, bool) {
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return ErrorCodeUnknown, false
	}
	if code, known := sqlstateCodes[pgErr.Code]; known {
		return code, true
	}
	return ErrorCodeDB, true
}

func wrapPG(err error, msg string) error {
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}

// FromPostgres wraps a pg error with a mapped ErrorCode and message.
// Nil in, nil out
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	return wrapPG(err, msg)
}

// FromPostgresf is the formatted variant of FromPostgres
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return wrapPG(err, fmt.Sprintf(format, a...))
}

// AttachFieldFromPg tries to enrich an error with a field name derived from
// PgError metadata. ColumnName wins when set; otherwise the last token of
// ConstraintName is used as a best-effort guess. Returns the original error
// when nothing can be inferred
func AttachFieldFromPg(err error) error {
	var pgErr *pgconn.PgError
	if !stderrs.As(Root(err), &pgErr) {
		return err
	}
	if col := strings.TrimSpace(pgErr.ColumnName); col != "" {
		return WithField(err, col)
	}
	cons := strings.TrimSpace(pgErr.ConstraintName)
	if cons == "" {
		return err
	}
	tok := cons
	if i := strings.LastIndex(cons, "_"); i >= 0 && i+1 < len(cons) {
		tok = cons[i+1:]
	}
	if tok == "" || tok == "key" {
		return err
	}
	return WithField(err, tok)
}

// FromPostgresWithField wraps the error like FromPostgres and then attempts
// to attach a field name discoverable from the PgError metadata
func FromPostgresWithField(err error, msg string) error {
	return AttachFieldFromPg(FromPostgres(err, msg))
}

// retryableText holds driver/server phrases that signal transient failures
// without a structured SQLSTATE, e.g. the generic pgx text seen on commit
var retryableText = []string{
	"commit unexpectedly resulted in rollback",
	"deadlock detected",
	"could not serialize access",
	"serialization failure",
	"canceling statement due to statement timeout",
	"canceling statement due to lock timeout",
	"could not obtain lock on row",
	"terminating connection due to administrator command",
}

// IsRetryable reports whether a database error represents a transient
// condition worth retrying
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// local cancellations/timeouts belong to the caller, never retry them
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}

	root := Root(err)

	var pgErr *pgconn.PgError
	if stderrs.As(root, &pgErr) {
		switch pgErr.Code {
		case sqlstateSerializationFailure, sqlstateDeadlockDetected, sqlstateLockNotAvailable:
			return true
		}
		return false
	}

	s := strings.ToLower(root.Error())
	for _, phrase := range retryableText {
		if strings.Contains(s, phrase) {
			return true
		}
	}
	return false
}
