// Package service defines the backend-agnostic interface for todo operations.
package service

import (
	"context"

	"github.com/idilsaglam/todoclient/internal/model"
)

// Service is the remote todo collection. Each method maps to one REST call.
// Implementations never retry; a failed call returns an error and the caller
// decides what to do next.
type Service interface {
	// ListAll returns the full collection in server order.
	ListAll(ctx context.Context) ([]model.Todo, error)

	// GetOne returns a single record.
	GetOne(ctx context.Context, id model.ID) (model.Todo, error)

	// Create stores a new record; the server assigns its id.
	Create(ctx context.Context, p model.Payload) (model.Todo, error)

	// Update replaces every field of an existing record.
	Update(ctx context.Context, id model.ID, p model.Payload) (model.Todo, error)

	// Delete removes a record.
	Delete(ctx context.Context, id model.ID) error
}
