package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/tebnews/TEBNews_Go/internal/auth"
	"github.com/tebnews/TEBNews_Go/internal/battle"
	"github.com/tebnews/TEBNews_Go/internal/blackjack"
	"github.com/tebnews/TEBNews_Go/internal/caseopen"
	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/economy"
	"github.com/tebnews/TEBNews_Go/internal/user"
)

var testUserID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// withUser marks the request as authenticated for userID
func withUser(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(auth.WithUserID(r.Context(), userID))
}

// withURLParams attaches chi route parameters to a request built outside the router
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

// MockUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) BotUser(ctx context.Context) (*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) InvalidateUser(id uuid.UUID) {
	m.Called(id)
}

func (m *MockUserService) GetCacheStats() user.CacheStats {
	args := m.Called()
	return args.Get(0).(user.CacheStats)
}

// MockEconomyService
type MockEconomyService struct {
	mock.Mock
}

func (m *MockEconomyService) GetBalance(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEconomyService) ListInventory(ctx context.Context, userID uuid.UUID) ([]domain.InventoryItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockEconomyService) SellItem(ctx context.Context, userID, inventoryID uuid.UUID) (*economy.SellResult, error) {
	args := m.Called(ctx, userID, inventoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*economy.SellResult), args.Error(1)
}

// MockTokenIssuer
type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Issue(u *domain.User) (string, time.Time, error) {
	args := m.Called(u)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

// MockCaseService
type MockCaseService struct {
	mock.Mock
}

func (m *MockCaseService) ListCases(ctx context.Context) ([]domain.Case, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Case), args.Error(1)
}

func (m *MockCaseService) GetCase(ctx context.Context, id int) (*domain.Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseService) OpenCase(ctx context.Context, userID uuid.UUID, caseID int, quickSell bool) (*caseopen.OpenResult, error) {
	args := m.Called(ctx, userID, caseID, quickSell)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*caseopen.OpenResult), args.Error(1)
}

// MockBlackjackService
type MockBlackjackService struct {
	mock.Mock
}

func (m *MockBlackjackService) result(args mock.Arguments) (*blackjack.Result, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blackjack.Result), args.Error(1)
}

func (m *MockBlackjackService) Deal(ctx context.Context, userID uuid.UUID, bet int64) (*blackjack.Result, error) {
	return m.result(m.Called(ctx, userID, bet))
}

func (m *MockBlackjackService) Hit(ctx context.Context, userID uuid.UUID, state string) (*blackjack.Result, error) {
	return m.result(m.Called(ctx, userID, state))
}

func (m *MockBlackjackService) Stand(ctx context.Context, userID uuid.UUID, state string) (*blackjack.Result, error) {
	return m.result(m.Called(ctx, userID, state))
}

func (m *MockBlackjackService) Double(ctx context.Context, userID uuid.UUID, state string) (*blackjack.Result, error) {
	return m.result(m.Called(ctx, userID, state))
}

// MockSlotsService
type MockSlotsService struct {
	mock.Mock
}

func (m *MockSlotsService) Spin(ctx context.Context, userID uuid.UUID, betAmount int64) (*domain.SlotsResult, error) {
	args := m.Called(ctx, userID, betAmount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SlotsResult), args.Error(1)
}

// MockBattleService
type MockBattleService struct {
	mock.Mock
}

func (m *MockBattleService) CreateBattle(ctx context.Context, userID uuid.UUID, caseID, rounds int) (*battle.CreateResult, error) {
	args := m.Called(ctx, userID, caseID, rounds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*battle.CreateResult), args.Error(1)
}

func (m *MockBattleService) JoinBattle(ctx context.Context, userID, battleID uuid.UUID) (*domain.BattleResult, error) {
	args := m.Called(ctx, userID, battleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BattleResult), args.Error(1)
}

func (m *MockBattleService) BotBattle(ctx context.Context, userID uuid.UUID, caseID, rounds int) (*domain.BattleResult, error) {
	args := m.Called(ctx, userID, caseID, rounds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BattleResult), args.Error(1)
}

func (m *MockBattleService) GetBattle(ctx context.Context, id uuid.UUID) (*domain.Battle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Battle), args.Error(1)
}

func (m *MockBattleService) ListWaitingBattles(ctx context.Context, limit int) ([]domain.Battle, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Battle), args.Error(1)
}
