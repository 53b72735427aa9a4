package service

import (
	"errors"
	"fmt"

	"github.com/Skotchmaster/marketplace/internal/repo"
)

var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("not found")
	ErrNoProducts        = errors.New("no products")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrConflict          = errors.New("conflict")
	ErrDataLayer         = errors.New("data layer")
)

type Kind string

const (
	KindInvalidIdentifier Kind = "invalid_identifier"
	KindInvalidArgument   Kind = "invalid_argument"
	KindNotFound          Kind = "not_found"
	KindNoProducts        Kind = "no_products"
	KindUnauthenticated   Kind = "unauthenticated"
	KindConflict          Kind = "conflict"
	KindDataLayer         Kind = "data_layer"
)

// KindOf classifies err. Anything that is not one of the package sentinels
// counts as a data layer failure.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrInvalidIdentifier):
		return KindInvalidIdentifier
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrNoProducts):
		return KindNoProducts
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrConflict):
		return KindConflict
	default:
		return KindDataLayer
	}
}

// storeErr translates a store error into the service vocabulary. what names
// the record for NotFound and Conflict messages.
func storeErr(what string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repo.ErrNotFound):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case errors.Is(err, repo.ErrConflict):
		return fmt.Errorf("%s: %w", what, ErrConflict)
	default:
		return fmt.Errorf("%w: %w", ErrDataLayer, err)
	}
}
