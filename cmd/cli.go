package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	httpadapter "github.com/Shmhzr/ai-voice/internal/adapters/in/http"
	"github.com/Shmhzr/ai-voice/internal/core/domain/model/menu"
)

const shutdownTimeout = 10 * time.Second

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile string
}

// NewRootCommand creates the ai-voice CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "ai-voice",
		Short:         "Pizza ordering backend for a voice agent",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to load before reading the environment")

	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMenuCommand(opts))

	return cmd
}

// NewServeCommand runs the HTTP server and background jobs until interrupted.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the function-call and operator API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(rootOpts.EnvFile)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg)
		},
	}
}

func runServe(ctx context.Context, cfg Config) error {
	logger := NewLogger(cfg, os.Stderr)

	app, err := NewCompositionRoot(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.Close(closeCtx); err != nil {
			logger.Error("shutdown incomplete", "error", err)
		}
	}()

	server, err := app.CreateHTTPServer()
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	// Warm the cache so the first caller does not wait on the fetch.
	go app.Resolver().Get(ctx, false)

	e := httpadapter.NewRouter(server, app.HealthChecks()...)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "port", cfg.HTTPPort, "store", cfg.OrderStore)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort))
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// NewMenuCommand fetches the menu once and prints its normalized form.
func NewMenuCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Fetch the menu and print it as the agent sees it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(rootOpts.EnvFile)
			if err != nil {
				return err
			}
			logger := NewLogger(cfg, cmd.ErrOrStderr())
			resolver := NewMenuResolver(cfg, logger, nil)

			if err := resolver.Refresh(cmd.Context()); err != nil {
				logger.Warn("menu fetch failed, showing fallback", "error", err)
			}
			return PrintMenu(cmd.OutOrStdout(), resolver.Get(cmd.Context(), false))
		},
	}
}

type menuDocument struct {
	Summary  string                     `yaml:"summary"`
	Flavors  []string                   `yaml:"flavors"`
	Toppings []string                   `yaml:"toppings"`
	Addons   []string                   `yaml:"addons"`
	Sizes    []string                   `yaml:"sizes"`
	Prices   map[string]menu.SizePrices `yaml:"prices"`
}

// PrintMenu writes m as YAML. Prices are listed under display names only.
func PrintMenu(w io.Writer, m menu.Menu) error {
	doc := menuDocument{
		Summary:  m.Summary,
		Flavors:  m.Flavors,
		Toppings: m.Toppings,
		Addons:   m.Addons,
		Sizes:    m.Sizes,
		Prices:   make(map[string]menu.SizePrices),
	}
	for _, name := range m.PricedItems() {
		if p, ok := m.PricesFor(name); ok {
			doc.Prices[name] = p
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
