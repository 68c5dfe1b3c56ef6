package repository

import (
	"context"

	"github.com/tebnews/TEBNews_Go/internal/domain"
)

// Catalog defines read access to cases and their item pools
type Catalog interface {
	// ListCases returns every case without its items, ordered by id.
	ListCases(ctx context.Context) ([]domain.Case, error)
	// GetCase returns a case with its ordered item pool or domain.ErrCaseNotFound.
	GetCase(ctx context.Context, id int) (*domain.Case, error)
}
