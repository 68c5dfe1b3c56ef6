package postgres

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/tebnews/TEBNews_Go/internal/database"
	"github.com/tebnews/TEBNews_Go/internal/domain"
	"github.com/tebnews/TEBNews_Go/internal/event"
	"github.com/tebnews/TEBNews_Go/migrations"
)

var (
	testDBConnString  string
	testPool          *pgxpool.Pool
	migrationsApplied bool
	migrationsMux     sync.Mutex
)

func TestMain(m *testing.M) {
	var terminate func()
	if !testing.Short() {
		testDBConnString, terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if testPool != nil {
		testPool.Close()
	}
	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	// Handle potential panics from testcontainers
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", nil
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", nil
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

// setupDB skips when no database is available and returns a migrated pool shared by the package
func setupDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}
	ensureMigrations(t)
	return testPool
}

// ensureMigrations applies migrations once for all tests in the package
func ensureMigrations(t *testing.T) {
	migrationsMux.Lock()
	defer migrationsMux.Unlock()

	if migrationsApplied {
		return
	}

	pool, err := database.NewPool(testDBConnString, 20, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	testPool = pool

	if err := database.Migrate(context.Background(), testPool, migrations.FS); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	migrationsApplied = true
}

// createTestUser inserts a user with a unique name and the given balance
func createTestUser(t *testing.T, pool *pgxpool.Pool, balance int64) *domain.User {
	t.Helper()
	user := &domain.User{
		Username: "player_" + uuid.NewString()[:8],
		Balance:  balance,
	}
	require.NoError(t, NewUserRepository(pool).CreateUser(context.Background(), user))
	return user
}

// createTestCase inserts a case whose pool holds the given values, all at one rarity
func createTestCase(t *testing.T, pool *pgxpool.Pool, price int64, rarity domain.Rarity, values ...int64) int {
	t.Helper()
	ctx := context.Background()

	var caseID int
	err := pool.QueryRow(ctx,
		"INSERT INTO cases (name, price) VALUES ($1, $2) RETURNING case_id",
		"Test Case "+uuid.NewString()[:8], price,
	).Scan(&caseID)
	require.NoError(t, err)

	for i, v := range values {
		_, err := pool.Exec(ctx,
			"INSERT INTO items (case_id, name, rarity, value, position) VALUES ($1, $2, $3, $4, $5)",
			caseID, fmt.Sprintf("Item %d", i+1), string(rarity), v, i+1)
		require.NoError(t, err)
	}
	return caseID
}

// nopPublisher drops every event
type nopPublisher struct{}

func (nopPublisher) PublishWithRetry(context.Context, event.Event) {}
