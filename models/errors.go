package models

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrDuplicate    = errors.New("duplicate")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrForbidden          = errors.New("forbidden")
	ErrExpired            = errors.New("invalid or expired")
)

// AggregateError reports that a review write succeeded but the artisan's
// rating could not be recomputed afterwards. The review write stands.
type AggregateError struct {
	ArtisanID string
	Err       error
}

func (e *AggregateError) Error() string {
	return fmt.Sprintf("recompute rating for artisan %s: %v", e.ArtisanID, e.Err)
}

func (e *AggregateError) Unwrap() error { return e.Err }
