package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tebnews/TEBNews_Go/internal/domain"
)

// isUniqueViolation reports whether err is a PostgreSQL unique constraint violation
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == PgErrorCodeUniqueViolation
}

// itemColumns is the column list scanned by scanItem, prefixed with the items alias "i"
const itemColumns = "i.item_id, i.case_id, i.name, i.rarity, i.value, i.image_url"

// scanItem reads the itemColumns projection into a domain.Item
func scanItem(row pgx.Row) (domain.Item, error) {
	var (
		item   domain.Item
		rarity string
	)
	if err := row.Scan(&item.ID, &item.CaseID, &item.Name, &rarity, &item.Value, &item.ImageURL); err != nil {
		return domain.Item{}, err
	}
	r, err := domain.ParseRarity(rarity)
	if err != nil {
		return domain.Item{}, err
	}
	item.Rarity = r
	return item, nil
}

// optionalItem builds an item from the nullable columns of a LEFT JOIN
func optionalItem(id pgtype.Int4, caseID pgtype.Int4, name, rarity, imageURL pgtype.Text, value pgtype.Int8) (*domain.Item, error) {
	if !id.Valid {
		return nil, nil
	}
	r, err := domain.ParseRarity(rarity.String)
	if err != nil {
		return nil, err
	}
	return &domain.Item{
		ID:       int(id.Int32),
		CaseID:   int(caseID.Int32),
		Name:     name.String,
		Rarity:   r,
		Value:    value.Int64,
		ImageURL: imageURL.String,
	}, nil
}

// itemIDOrNil returns the item id for a nullable column
func itemIDOrNil(item *domain.Item) *int {
	if item == nil {
		return nil
	}
	id := item.ID
	return &id
}
