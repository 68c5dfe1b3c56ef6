package bootstrap

import (
	"github.com/redis/go-redis/v9"

	"github.com/tebnews/TEBNews_Go/internal/battle"
	"github.com/tebnews/TEBNews_Go/internal/blackjack"
	"github.com/tebnews/TEBNews_Go/internal/caseopen"
	"github.com/tebnews/TEBNews_Go/internal/concurrency"
	"github.com/tebnews/TEBNews_Go/internal/config"
	"github.com/tebnews/TEBNews_Go/internal/economy"
	"github.com/tebnews/TEBNews_Go/internal/event"
	"github.com/tebnews/TEBNews_Go/internal/server"
	"github.com/tebnews/TEBNews_Go/internal/slots"
	"github.com/tebnews/TEBNews_Go/internal/user"
)

// InitializeServices builds every domain service. Battles read cases through the
// case service so they share its catalog cache, and draw the house account from
// the user service. With a redis client, spent blackjack state is shared between instances.
func InitializeServices(cfg *config.Config, repos *Repositories, publisher event.Publisher, redisClient redis.UniversalClient) server.Services {
	var spent blackjack.SpentTokenStore
	if redisClient != nil {
		spent = blackjack.NewRedisSpentTokens(redisClient)
	}

	userService := user.NewService(repos.User, cfg.StartingBalance, cfg.BotUsername, user.DefaultCacheConfig())
	caseService := caseopen.NewService(repos.Catalog, repos.Wallet, publisher)

	return server.Services{
		User:      userService,
		Economy:   economy.NewService(repos.Wallet, publisher),
		Cases:     caseService,
		Blackjack: blackjack.NewService(repos.Wallet, publisher, spent, cfg.StateSecret, cfg.StateTTL),
		Slots:     slots.NewService(repos.Wallet, publisher),
		Battles:   battle.NewService(repos.Battle, caseService, userService, publisher, concurrency.NewLockManager()),
	}
}
