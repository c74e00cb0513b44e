package services

import (
	"errors"
	"fmt"

	"ascenda-backend-go/internal/store"
)

type ServiceError struct {
	Status  int
	Message string
}

func (e ServiceError) Error() string {
	return e.Message
}

func ErrNotFound(msg string) error {
	return ServiceError{Status: 404, Message: msg}
}

func ErrBadRequest(msg string) error {
	return ServiceError{Status: 400, Message: msg}
}

func ErrForbidden(msg string) error {
	return ServiceError{Status: 403, Message: msg}
}

func ErrUnauthorized(msg string) error {
	return ServiceError{Status: 401, Message: msg}
}

func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// StatusOf maps an error to its HTTP status. Store lookups that miss count
// as not found; anything unrecognized is a server error.
func StatusOf(err error) int {
	var svcErr ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Status
	}
	if errors.Is(err, store.ErrNotFound) {
		return 404
	}
	return 500
}

// MessageOf returns the user-facing message for an error, hiding internals
// behind a fixed message.
func MessageOf(err error) string {
	var svcErr ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	if errors.Is(err, store.ErrNotFound) {
		return "Not found"
	}
	return "Internal server error"
}
