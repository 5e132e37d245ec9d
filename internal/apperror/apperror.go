package apperror

import (
	"errors"
	"fmt"
)

// Sentinel outcomes surfaced to callers. Handlers map these to HTTP statuses;
// services never retry them internally.
var (
	ErrConflict          = errors.New("conflict")
	ErrNotFound          = errors.New("not found")
	ErrUnverified        = errors.New("unverified")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrNoCodeIssued      = errors.New("no code issued")
	ErrExpired           = errors.New("expired")
	ErrInvalidCode       = errors.New("invalid code")
	ErrForbidden         = errors.New("forbidden")
	ErrValidation        = errors.New("validation failed")
)

// AppError pairs a sentinel with a user-presentable message.
type AppError struct {
	Err     error
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Conflict(message string) *AppError {
	return &AppError{Err: ErrConflict, Message: message}
}

func NotFound(resource string) *AppError {
	return &AppError{Err: ErrNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func Unverified(message string) *AppError {
	return &AppError{Err: ErrUnverified, Message: message}
}

func InvalidCredential(message string) *AppError {
	return &AppError{Err: ErrInvalidCredential, Message: message}
}

func NoCodeIssued(message string) *AppError {
	return &AppError{Err: ErrNoCodeIssued, Message: message}
}

func Expired(message string) *AppError {
	return &AppError{Err: ErrExpired, Message: message}
}

func InvalidCode(message string) *AppError {
	return &AppError{Err: ErrInvalidCode, Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Err: ErrForbidden, Message: message}
}

func Validation(message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message}
}
