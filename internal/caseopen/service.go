// Package caseopen resolves case openings: one debit, one weighted draw, one grant, in one transaction.
package caseopen

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/event"
	"github.com/tebnews/TEBNews_Go/internal/logger"
	"github.com/tebnews/TEBNews_Go/internal/repository"
	"github.com/tebnews/TEBNews_Go/internal/reward"
)

// OpenResult is the outcome of one case opening
type OpenResult struct {
	CaseID          int         `json:"case_id"`
	CaseName        string      `json:"case_name"`
	Price           int64       `json:"price"`
	Item            domain.Item `json:"item"`
	InventoryItemID *uuid.UUID  `json:"inventory_item_id,omitempty"`
	QuickSold       bool        `json:"quick_sold"`
	Balance         int64       `json:"balance"`
}

// Service defines the case catalog and opening operations
type Service interface {
	ListCases(ctx context.Context) ([]domain.Case, error)
	GetCase(ctx context.Context, id int) (*domain.Case, error)
	// OpenCase debits the case price and either grants the drawn item or, with quickSell,
	// credits its value instead.
	OpenCase(ctx context.Context, userID uuid.UUID, caseID int, quickSell bool) (*OpenResult, error)
}

type service struct {
	catalog   repository.Catalog
	wallet    repository.Wallet
	publisher event.Publisher
	sampler   *reward.Sampler // Injectable for testing
	cache     *catalogCache
}

// NewService creates a new case opening service
func NewService(catalog repository.Catalog, wallet repository.Wallet, publisher event.Publisher) Service {
	return &service{
		catalog:   catalog,
		wallet:    wallet,
		publisher: publisher,
		sampler:   reward.NewSampler(),
		cache:     newCatalogCache(DefaultCacheSize, DefaultCacheTTL),
	}
}

func (s *service) ListCases(ctx context.Context) ([]domain.Case, error) {
	if cases, ok := s.cache.GetList(); ok {
		return cases, nil
	}
	cases, err := s.catalog.ListCases(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToListCases, err)
	}
	s.cache.SetList(cases)
	return cases, nil
}

func (s *service) GetCase(ctx context.Context, id int) (*domain.Case, error) {
	if c, ok := s.cache.GetCase(id); ok {
		return c, nil
	}
	c, err := s.catalog.GetCase(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetCase, err)
	}
	s.cache.SetCase(c)
	return c, nil
}

func (s *service) OpenCase(ctx context.Context, userID uuid.UUID, caseID int, quickSell bool) (*OpenResult, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgOpenCaseCalled, "user_id", userID, "case_id", caseID, "quick_sell", quickSell)

	c, err := s.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		log.Error(LogMsgEmptyPool, "case_id", caseID)
		return nil, fmt.Errorf("case %d: %w", caseID, domain.ErrEmptyPool)
	}

	item, err := s.sampler.Sample(c.Items)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToSample, err)
	}

	tx, err := s.wallet.BeginWalletTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToBeginTx, err)
	}
	defer repository.SafeRollback(ctx, tx)

	balance, err := tx.Debit(ctx, userID, c.Price)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToDebit, err)
	}

	result := &OpenResult{
		CaseID:    c.ID,
		CaseName:  c.Name,
		Price:     c.Price,
		Item:      item,
		QuickSold: quickSell,
	}

	if quickSell {
		if balance, err = tx.Credit(ctx, userID, item.Value); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToCredit, err)
		}
	} else {
		ids, err := tx.GrantItems(ctx, []domain.ItemGrant{{UserID: userID, ItemID: item.ID, Source: domain.ItemSourceCase}})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextFailedToGrantItem, err)
		}
		if len(ids) > 0 {
			result.InventoryItemID = &ids[0]
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCommitTx, err)
	}
	result.Balance = balance

	log.Info(LogMsgCaseOpened,
		"user_id", userID,
		"case_id", c.ID,
		"item_id", item.ID,
		"rarity", item.Rarity,
		"value", item.Value,
		"quick_sell", quickSell)

	if s.publisher != nil {
		s.publisher.PublishWithRetry(ctx, event.NewCaseOpenedEvent(domain.CaseOpenedPayload{
			UserID:    userID.String(),
			CaseID:    c.ID,
			Price:     c.Price,
			ItemID:    item.ID,
			ItemName:  item.Name,
			Rarity:    item.Rarity,
			Value:     item.Value,
			QuickSell: quickSell,
		}))
	}

	return result, nil
}
