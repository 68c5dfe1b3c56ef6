package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/logger"
	"github.com/tebnews/TEBNews_Go/internal/repository"
)

// Service defines the interface for user operations
type Service interface {
	// Register creates a player account funded with the starting balance.
	Register(ctx context.Context, username string) (*domain.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// BotUser returns the house account, creating it on first use.
	BotUser(ctx context.Context) (*domain.User, error)
	InvalidateUser(id uuid.UUID)
	GetCacheStats() CacheStats
}

// service implements the Service interface
type service struct {
	repo            repository.User
	startingBalance int64
	botUsername     string
	userCache       *userCache // In-memory cache for user lookups

	botMu sync.Mutex
	bot   *domain.User
	now   func() time.Time
}

// NewService creates a new user service
func NewService(repo repository.User, startingBalance int64, botUsername string, cacheConfig CacheConfig) Service {
	return &service{
		repo:            repo,
		startingBalance: startingBalance,
		botUsername:     botUsername,
		userCache:       newUserCache(cacheConfig),
		now:             time.Now,
	}
}

func normalizeUsername(username string) (string, error) {
	username = strings.TrimSpace(username)
	if n := len([]rune(username)); n < MinUsernameLength || n > MaxUsernameLength {
		return "", fmt.Errorf("%w: username must be %d-%d characters", domain.ErrInvalidInput, MinUsernameLength, MaxUsernameLength)
	}
	return username, nil
}

func (s *service) Register(ctx context.Context, username string) (*domain.User, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRegisterCalled, "username", username)

	username, err := normalizeUsername(username)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(username, s.botUsername) {
		return nil, domain.ErrUsernameTaken
	}

	user := &domain.User{
		ID:        uuid.New(),
		Username:  username,
		Balance:   s.startingBalance,
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, err
		}
		log.Error(LogErrFailedToCreateUser, "error", err, "username", username)
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToCreateUser, err)
	}

	s.userCache.Set(user)
	log.Info(LogMsgUserRegistered, "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *service) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if user, ok := s.userCache.Get(id); ok {
		return user, nil
	}
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetUser, err)
	}
	s.userCache.Set(user)
	return user, nil
}

func (s *service) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetUser, err)
	}
	s.userCache.Set(user)
	return user, nil
}

func (s *service) BotUser(ctx context.Context) (*domain.User, error) {
	s.botMu.Lock()
	defer s.botMu.Unlock()

	if s.bot != nil {
		return s.bot, nil
	}

	bot, err := s.repo.GetUserByUsername(ctx, s.botUsername)
	if errors.Is(err, domain.ErrNotFound) {
		bot, err = s.createBot(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToGetBot, err)
	}

	s.bot = bot
	return bot, nil
}

// createBot inserts the bot account. Another instance may win the insert, in which case its row is used.
func (s *service) createBot(ctx context.Context) (*domain.User, error) {
	bot := &domain.User{
		ID:        uuid.New(),
		Username:  s.botUsername,
		IsBot:     true,
		CreatedAt: s.now(),
	}
	err := s.repo.CreateUser(ctx, bot)
	if errors.Is(err, domain.ErrUsernameTaken) {
		return s.repo.GetUserByUsername(ctx, s.botUsername)
	}
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info(LogMsgBotUserCreated, "user_id", bot.ID, "username", bot.Username)
	return bot, nil
}

func (s *service) InvalidateUser(id uuid.UUID) {
	s.userCache.Invalidate(id)
}

func (s *service) GetCacheStats() CacheStats {
	return s.userCache.GetStats()
}
