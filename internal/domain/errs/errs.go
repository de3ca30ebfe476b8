// Package errs defines the closed error taxonomy surfaced by the core.
//
// Every error the core returns is one of these codes, wrapped with
// fmt.Errorf("%w", ...) style context when useful. None are swallowed.
package errs

import (
	"errors"
	"fmt"
)

// Code identifies a member of the error taxonomy.
type Code string

const (
	CodeNotFound           Code = "NOT_FOUND"
	CodeValidation         Code = "VALIDATION"
	CodeConflict           Code = "CONFLICT"
	CodeCircularDependency Code = "CIRCULAR_DEPENDENCY"
	CodeHasDependents      Code = "HAS_DEPENDENTS"
	CodeStoreFailure       Code = "STORE_FAILURE"
	CodeUnsupported        Code = "UNSUPPORTED"
)

// Error is the concrete error type for every taxonomy member.
type Error struct {
	Code    Code
	Message string
	Details map[string]interface{}
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// WithDetails returns a copy of e with the given details attached.
func (e *Error) WithDetails(details map[string]interface{}) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

// New builds an *Error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// NotFound builds a NotFound error for the given entity/id.
func NotFound(entity string, id interface{}) *Error {
	return New(CodeNotFound, fmt.Sprintf("%s %v not found", entity, id))
}

// Validation builds a Validation error.
func Validation(format string, args ...interface{}) *Error {
	return New(CodeValidation, fmt.Sprintf(format, args...))
}

// Conflict builds a Conflict error.
func Conflict(format string, args ...interface{}) *Error {
	return New(CodeConflict, fmt.Sprintf(format, args...))
}

// CircularDependency builds a CircularDependency error naming the offending edge.
func CircularDependency(from, to int64) *Error {
	return New(CodeCircularDependency, fmt.Sprintf("dependency %d -> %d would create a cycle", from, to))
}

// HasDependents builds a HasDependents error listing the referencing ids.
func HasDependents(taskID int64, dependents []int64) *Error {
	return New(CodeHasDependents, fmt.Sprintf("task %d is still referenced by %v", taskID, dependents)).
		WithDetails(map[string]interface{}{"dependents": dependents})
}

// StoreFailure wraps a lower-level storage error.
func StoreFailure(cause error) *Error {
	return &Error{Code: CodeStoreFailure, Message: fmt.Sprintf("store failure: %v", cause)}
}

// Unsupported builds an Unsupported error for an unrecognized variant/unit.
func Unsupported(format string, args ...interface{}) *Error {
	return New(CodeUnsupported, fmt.Sprintf(format, args...))
}

// Is reports whether err is, or wraps, an *Error with the given code.
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func IsNotFound(err error) bool           { return Is(err, CodeNotFound) }
func IsValidation(err error) bool         { return Is(err, CodeValidation) }
func IsConflict(err error) bool           { return Is(err, CodeConflict) }
func IsCircularDependency(err error) bool { return Is(err, CodeCircularDependency) }
func IsHasDependents(err error) bool      { return Is(err, CodeHasDependents) }
func IsStoreFailure(err error) bool       { return Is(err, CodeStoreFailure) }
func IsUnsupported(err error) bool        { return Is(err, CodeUnsupported) }
