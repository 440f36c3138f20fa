package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cirocosta/offmychest/internal/api"
	"github.com/cirocosta/offmychest/internal/config"
	"github.com/cirocosta/offmychest/internal/service"
)

const shutdownTimeout = 5 * time.Second

type serveOptions struct {
	*rootOptions
	addr string
	env  string
}

func newServeCommand(root *rootOptions) *cobra.Command {
	opts := &serveOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE:  opts.run,
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "HTTP server address (overrides the config)")
	cmd.Flags().StringVar(&opts.env, "env", "", "environment: development, testing or production (overrides the config)")

	return cmd
}

func (o *serveOptions) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, _, err := o.load(cmd)
	if err != nil {
		return config.Config{}, err
	}

	if o.addr != "" {
		cfg.Addr = o.addr
	}
	if o.env != "" {
		cfg.Environment = o.env
	}

	return cfg, cfg.Validate()
}

func (o *serveOptions) run(cmd *cobra.Command, args []string) error {
	cfg, err := o.resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := cfg.Log.NewLogger(cmd.ErrOrStderr())

	// create context that listens for interrupts
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	seed := !cfg.IsProduction()
	handler, err := api.NewRouter(
		service.NewTodoService(st.todos, seed),
		service.NewThoughtService(st.thoughts),
		api.Options{Logger: logger},
	)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			"addr", cfg.Addr,
			"environment", cfg.Environment,
			"driver", cfg.Database.Driver,
			"seed_todos", seed,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
