// Package command holds the write-side services: account lifecycle, the
// transaction engine, and the branch/customer back-office operations. Every
// money-moving operation runs inside exactly one Store unit of work.
package command

import (
	"context"
	"errors"

	"github.com/mateus-ssouza/sevencc-bank/internal/apperr"
	"github.com/mateus-ssouza/sevencc-bank/internal/repository"
)

// Store is the persistence handle the command services run against.
// *repository.Store satisfies it; tests substitute an in-memory fake.
type Store interface {
	repository.Repos
	InTx(ctx context.Context, fn func(r repository.Repos) error) error
}

// Publisher emits domain events after a unit of work commits.
// *events.Publisher satisfies it.
type Publisher interface {
	Publish(ctx context.Context, stream, eventType string, data any) error
}

// ViewInvalidator drops a cached read-model projection for an account.
type ViewInvalidator interface {
	Invalidate(ctx context.Context, accountID int64)
}

// classify returns domain errors untouched and wraps anything else as a
// repository failure carrying the original cause.
func classify(err error, fallback string) error {
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return apperr.Wrap(fallback, err)
}

// notFound converts a repository miss into the domain NotFound for message;
// other errors pass through for classify to wrap.
func notFound(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.New(apperr.NotFound, message)
	}
	return err
}
