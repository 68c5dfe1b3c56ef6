package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tebnews/TEBNews_Go/internal/config"
	"github.com/tebnews/TEBNews_Go/internal/database"
	"github.com/tebnews/TEBNews_Go/migrations"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status)"
}

func (c *MigrateCommand) Run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status")
	}
	subcmd := args[0]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}
	defer pool.Close()

	provider, db, err := database.NewMigrator(pool, migrations.FS)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()

	switch subcmd {
	case "up":
		PrintHeader("Applying migrations...")
		results, err := provider.Up(ctx)
		if err != nil {
			return err
		}
		for _, r := range results {
			PrintSuccess("Applied %d (%s)", r.Source.Version, r.Duration)
		}
		if len(results) == 0 {
			PrintInfo("Database is up to date")
		}
	case "down":
		if !confirm("Roll back the latest migration?") {
			PrintWarning("Aborted")
			return nil
		}
		result, err := provider.Down(ctx)
		if err != nil {
			return err
		}
		PrintSuccess("Rolled back %d", result.Source.Version)
	case "status":
		PrintHeader("Migration status")
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			applied := "pending"
			if !s.AppliedAt.IsZero() {
				applied = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("  %-6d %-40s %s\n", s.Source.Version, s.Source.Path, applied)
		}
	default:
		return fmt.Errorf("unknown subcommand %q: expected up, down, status", subcmd)
	}
	return nil
}

// confirm asks on stdin; DEVTOOL_YES=yes skips the prompt for scripts
func confirm(question string) bool {
	if os.Getenv("DEVTOOL_YES") == confirmYes {
		return true
	}
	fmt.Printf("%s Type '%s' to continue: ", question, confirmYes)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(answer) == confirmYes
}
