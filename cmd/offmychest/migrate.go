package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cirocosta/offmychest/internal/config"
	"github.com/cirocosta/offmychest/internal/repository"
)

type migrateOptions struct {
	*rootOptions
	revert bool
}

func newMigrateCommand(root *rootOptions) *cobra.Command {
	opts := &migrateOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: `Apply every pending migration, each in its own transaction.

With --revert the most recently applied migration is undone instead.`,
		Args: cobra.NoArgs,
		RunE: opts.run,
	}

	cmd.Flags().BoolVar(&opts.revert, "revert", false, "undo the last applied migration")

	return cmd
}

func (o *migrateOptions) run(cmd *cobra.Command, args []string) error {
	cfg, logger, err := o.load(cmd)
	if err != nil {
		return err
	}

	if cfg.Database.Driver == config.DriverMemory {
		return errors.New("the memory driver has no schema to migrate")
	}

	db, err := repository.Open(cmd.Context(), cfg.DBConfig())
	if err != nil {
		return err
	}
	defer db.Close()

	migrator := repository.NewMigrator(db, repository.Migrations, logger)
	out := cmd.OutOrStdout()

	if o.revert {
		name, err := migrator.Revert(cmd.Context())
		if err != nil {
			return err
		}
		if name == "" {
			fmt.Fprintln(out, "Nothing to revert")
			return nil
		}
		fmt.Fprintf(out, "Reverted %s\n", name)
		return nil
	}

	applied, err := migrator.Up(cmd.Context())
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		fmt.Fprintln(out, "Database is up to date")
		return nil
	}
	for _, name := range applied {
		fmt.Fprintf(out, "Applied %s\n", name)
	}
	return nil
}
