package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cirocosta/offmychest/internal/config"
	"github.com/cirocosta/offmychest/internal/repository"
)

type rootOptions struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "offmychest",
		Short: "Get thoughts off your chest and keep a few todos",
		Long: `offmychest serves a small web application for writing down thoughts,
with an optional antidote, next to a list of todos.

Settings come from offmychest.yaml (or --config) and OFFMYCHEST_* environment
variables.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: offmychest.yaml)")

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newMigrateCommand(opts))
	rootCmd.AddCommand(newOpenAPICommand())

	return rootCmd
}

func (o *rootOptions) load(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, cfg.Log.NewLogger(cmd.ErrOrStderr()), nil
}

// stores are the repositories selected by the database driver
type stores struct {
	todos    repository.TodoRepository
	thoughts repository.ThoughtRepository
	db       *repository.DB
}

// openStores connects to the configured database and brings its schema up
// to date. The memory driver needs neither.
func openStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (*stores, error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn("using the memory driver, nothing will be persisted")
		return &stores{
			todos:    repository.NewInMemoryTodoRepository(),
			thoughts: repository.NewInMemoryThoughtRepository(),
		}, nil
	}

	db, err := repository.Open(ctx, cfg.DBConfig())
	if err != nil {
		return nil, err
	}

	if _, err := repository.NewMigrator(db, repository.Migrations, logger).Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &stores{
		todos:    repository.NewSQLTodoRepository(db),
		thoughts: repository.NewSQLThoughtRepository(db),
		db:       db,
	}, nil
}

func (s *stores) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
