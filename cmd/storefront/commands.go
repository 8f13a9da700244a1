package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/config"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/app"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/guard"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/kv"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/notify"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// shellCmd runs the interactive shell with a live session timer.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive storefront shell",
	RunE:  runShell,
}

// routesCmd prints the navigation table and the roles allowed on each page.
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List client routes and the roles allowed on each",
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "PATH\tNAME\tROLES")
		fmt.Fprintln(w, "----\t----\t-----")
		for _, route := range guard.DefaultRoutes() {
			roles := make([]string, len(route.Allowed))
			for i, role := range route.Allowed {
				roles[i] = string(role)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", route.Pattern, route.Name, strings.Join(roles, ","))
		}
		return w.Flush()
	},
}

func runShell(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Welcome to the furniture storefront. Type 'help' for commands.")
	return a.Run(ctx, cmd.InOrStdin())
}

// passthrough exposes one shell command as a one-shot subcommand.
func passthrough(use, short string, args cobra.PositionalArgs) *cobra.Command {
	name, _, _ := strings.Cut(use, " ")

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd.Context(), cmd)
			if err != nil {
				return err
			}
			return a.Execute(cmd.Context(), strings.Join(append([]string{name}, args...), " "))
		},
	}
}

func setup(ctx context.Context, cmd *cobra.Command) (*app.App, error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.LoadClient(configPath)
	if err != nil {
		return nil, err
	}

	store, err := kv.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening client state: %w", err)
	}

	var notifier notify.Notifier = notify.NewWriterNotifier(cmd.OutOrStdout())
	if verbose {
		notifier = notify.Multi{notifier, notify.NewLogNotifier(logger)}
	}

	httpClient := &http.Client{
		Timeout:   cfg.RequestTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	a, err := app.New(cfg, app.Deps{
		Store:      store,
		HTTPClient: httpClient,
		Notifier:   notifier,
		Logger:     logger,
		Out:        cmd.OutOrStdout(),
	})
	if err != nil {
		return nil, err
	}

	if err := a.Start(ctx); err != nil {
		return nil, err
	}

	logger.Debug("client ready", slog.String("api", cfg.APIBaseURL), slog.String("state", cfg.State.Driver))
	return a, nil
}
