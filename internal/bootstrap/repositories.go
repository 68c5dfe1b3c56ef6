package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tebnews/TEBNews_Go/internal/database/postgres"
	"github.com/tebnews/TEBNews_Go/internal/repository"
)

// Repositories holds all repository implementations used by the application.
type Repositories struct {
	User    repository.User
	Catalog repository.Catalog
	Wallet  repository.Wallet
	Battle  repository.Battle
}

// InitializeRepositories creates all repository implementations over one pool.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:    postgres.NewUserRepository(dbPool),
		Catalog: postgres.NewCatalogRepository(dbPool),
		Wallet:  postgres.NewWalletRepository(dbPool),
		Battle:  postgres.NewBattleRepository(dbPool),
	}
}
