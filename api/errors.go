// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for fdextra.

package api

import (
	"errors"
	"fmt"
	"syscall"
)

// Common errors used across the library. Structured errors returned by the
// library match these through errors.Is.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrSystem            = errors.New("system error")
	ErrNotSupported      = errors.New("operation not supported")
	ErrOpenMaxUnresolved = errors.New("cannot resolve descriptor table size")
	ErrNoProgress        = errors.New("write made no progress")
	ErrRegionClosed      = errors.New("blocking region is closed")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeSystem
	ErrCodeNotSupported
	ErrCodeRuntime
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeInvalidArgument:
		return "invalid-argument"
	case ErrCodeSystem:
		return "system-error"
	case ErrCodeNotSupported:
		return "unsupported-operation"
	case ErrCodeRuntime:
		return "runtime-error"
	default:
		return "unknown"
	}
}

// Error represents a structured error with code, operation and cause.
type Error struct {
	Code ErrorCode
	Op   string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Code, e.Err)
}

// Unwrap exposes the cause, so errors.Is(err, unix.EBADF) works for
// system errors.
func (e *Error) Unwrap() error { return e.Err }

// Is matches the code-level sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidArgument:
		return e.Code == ErrCodeInvalidArgument
	case ErrSystem:
		return e.Code == ErrCodeSystem
	case ErrNotSupported:
		return e.Code == ErrCodeNotSupported
	}
	return false
}

// Errno returns the OS error code carried by a system error.
func (e *Error) Errno() (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(e.Err, &errno) {
		return errno, true
	}
	return 0, false
}

// InvalidArgument builds an invalid-argument error for op.
func InvalidArgument(op, format string, args ...any) *Error {
	return &Error{
		Code: ErrCodeInvalidArgument,
		Op:   op,
		Err:  fmt.Errorf(format, args...),
	}
}

// SystemError wraps a failed syscall. cause is usually a syscall.Errno.
func SystemError(op string, cause error) *Error {
	return &Error{Code: ErrCodeSystem, Op: op, Err: cause}
}

// NotSupported reports a primitive missing on this platform.
func NotSupported(op string) *Error {
	return &Error{Code: ErrCodeNotSupported, Op: op, Err: ErrNotSupported}
}

// Errno extracts the OS error code from any error chain.
func Errno(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}
