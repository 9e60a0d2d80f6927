// Package profileerr defines the error taxonomy shared by the catalog, the
// query engine and the store. Callers match on codes with errors.As or the
// Is* helpers; "not found" is never an error and has no code here.
package profileerr

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeUnknownTable       Code = "unknown_table"
	CodeInvalidFilter      Code = "invalid_filter"
	CodeInvalidSortOrder   Code = "invalid_sort_order"
	CodeValidation         Code = "validation_failed"
	CodeStorage            Code = "storage_failed"
	CodeForbiddenStatement Code = "forbidden_statement"
)

type Error struct {
	Code    Code
	Op      string
	Table   string
	Field   string
	Value   any
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "profile operation failed"
	}
	msg := e.Message
	if msg == "" && e.Cause != nil {
		msg = e.Cause.Error()
	}
	prefix := fmt.Sprintf("%s (code=%s", e.Op, e.Code)
	if e.Table != "" {
		prefix += " table=" + e.Table
	}
	if e.Field != "" {
		prefix += " field=" + e.Field
	}
	prefix += ")"
	if msg == "" {
		return prefix
	}
	return prefix + ": " + msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func UnknownTable(op, table string) error {
	return &Error{
		Code:    CodeUnknownTable,
		Op:      op,
		Table:   table,
		Message: fmt.Sprintf("unknown table %q", table),
	}
}

func InvalidFilter(op, table, key, msg string) error {
	return &Error{
		Code:    CodeInvalidFilter,
		Op:      op,
		Table:   table,
		Field:   key,
		Message: fmt.Sprintf("filter %q: %s", key, msg),
	}
}

func InvalidSortOrder(op, order string) error {
	return &Error{
		Code:    CodeInvalidSortOrder,
		Op:      op,
		Field:   "sort_order",
		Value:   order,
		Message: fmt.Sprintf("sort order must be asc or desc, got %q", order),
	}
}

func Validation(op, table, field string, value any, msg string) error {
	return &Error{
		Code:    CodeValidation,
		Op:      op,
		Table:   table,
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("%s (value=%v)", msg, value),
	}
}

func Storage(op, table string, cause error) error {
	return &Error{
		Code:  CodeStorage,
		Op:    op,
		Table: table,
		Cause: cause,
	}
}

func Forbidden(op, msg string) error {
	return &Error{
		Code:    CodeForbiddenStatement,
		Op:      op,
		Message: msg,
	}
}

// CodeOf returns the code of the outermost *Error in err's chain, or "".
func CodeOf(err error) Code {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

func IsUnknownTable(err error) bool       { return CodeOf(err) == CodeUnknownTable }
func IsInvalidFilter(err error) bool      { return CodeOf(err) == CodeInvalidFilter }
func IsInvalidSortOrder(err error) bool   { return CodeOf(err) == CodeInvalidSortOrder }
func IsValidation(err error) bool         { return CodeOf(err) == CodeValidation }
func IsStorage(err error) bool            { return CodeOf(err) == CodeStorage }
func IsForbiddenStatement(err error) bool { return CodeOf(err) == CodeForbiddenStatement }
