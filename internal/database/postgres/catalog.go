package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tebnews/TEBNews_Go/internal/domain"
)

// CatalogRepository implements repository.Catalog for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListCases returns every case ordered by id, without item pools
func (r *CatalogRepository) ListCases(ctx context.Context) ([]domain.Case, error) {
	rows, err := r.db.Query(ctx, "SELECT case_id, name, price, image_url FROM cases ORDER BY case_id")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCases, err)
	}

	cases, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Case, error) {
		var c domain.Case
		err := row.Scan(&c.ID, &c.Name, &c.Price, &c.ImageURL)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListCases, err)
	}
	return cases, nil
}

// GetCase returns a case with its item pool in pool order, or domain.ErrCaseNotFound
func (r *CatalogRepository) GetCase(ctx context.Context, id int) (*domain.Case, error) {
	var c domain.Case
	err := r.db.QueryRow(ctx,
		"SELECT case_id, name, price, image_url FROM cases WHERE case_id = $1", id,
	).Scan(&c.ID, &c.Name, &c.Price, &c.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetCase, err)
	}

	rows, err := r.db.Query(ctx,
		"SELECT "+itemColumns+" FROM items i WHERE i.case_id = $1 ORDER BY i.position, i.item_id", id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItems, err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Item, error) {
		return scanItem(row)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanItem, err)
	}
	c.Items = items
	return &c, nil
}
