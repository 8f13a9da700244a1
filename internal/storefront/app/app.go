// Package app wires the storefront client together and runs its event loop.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/config"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/apiclient"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/auth"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/cart"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/checkout"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/guard"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/kv"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/notify"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/session"
)

var ErrQuit = errors.New("quit")

type Deps struct {
	Store      kv.Store
	HTTPClient *http.Client
	Notifier   notify.Notifier
	Logger     *slog.Logger
	Out        io.Writer
	// Now defaults to time.Now.
	Now func() time.Time
}

// App owns every client store. All mutation happens on the goroutine that
// calls Run or Execute.
type App struct {
	API      *apiclient.Client
	Auth     *auth.Store
	Cart     *cart.Store
	Session  *session.Monitor
	Guard    *guard.Guard
	Checkout *checkout.Service

	cfg      *config.Client
	logger   *slog.Logger
	out      io.Writer
	now      func() time.Time
	location string
	commands map[string]command
}

func New(cfg *config.Client, deps Deps) (*App, error) {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.HTTPClient == nil {
		deps.HTTPClient = &http.Client{Timeout: cfg.RequestTimeout}
	}
	if deps.Out == nil {
		deps.Out = io.Discard
	}

	a := &App{
		cfg:      cfg,
		logger:   deps.Logger,
		out:      deps.Out,
		now:      deps.Now,
		location: guard.HomePath,
	}

	client, err := apiclient.New(deps.HTTPClient, cfg.APIBaseURL, func() string { return a.Auth.Token() })
	if err != nil {
		return nil, err
	}

	a.API = client
	a.Auth = auth.NewStore(deps.Store, client, deps.Notifier, deps.Logger)
	a.Cart = cart.NewStore(deps.Notifier, cfg.Language)
	a.Session = session.NewMonitor(cfg.Session, deps.Store, a.Auth, deps.Notifier, deps.Logger, session.WithClock(deps.Now))
	a.Guard = guard.New(guard.DefaultRoutes())
	a.Checkout = checkout.NewService(a.Cart, a.Auth, client, deps.Notifier, cfg.DeliveryFee, deps.Logger)
	a.commands = a.commandTable()

	return a, nil
}

// Start restores the previous session and applies any deadline that passed
// while the client was not running.
func (a *App) Start(ctx context.Context) error {
	if err := a.Auth.Hydrate(ctx); err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}

	if err := a.Session.Sync(ctx); err != nil {
		return fmt.Errorf("arming session: %w", err)
	}

	a.Tick(ctx, a.now())
	return nil
}

// Location is the route the user is currently on.
func (a *App) Location() string {
	return a.location
}

// Run reads commands from in until quit, EOF or ctx is done. The session is
// ticked from the same loop so commands and deadlines never interleave.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(a.cfg.Session.Tick)
	defer ticker.Stop()

	a.prompt()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-ticker.C:
			a.Tick(ctx, a.now())

		case line, ok := <-lines:
			if !ok {
				return nil
			}

			err := a.Execute(ctx, line)
			if errors.Is(err, ErrQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(a.out, "error: %s\n", err)
			}
			a.prompt()
		}
	}
}

// Tick advances the session and reacts to its transitions.
func (a *App) Tick(ctx context.Context, now time.Time) {
	transition := a.Session.Tick(ctx, now)
	if !transition.Changed() {
		return
	}

	switch transition.To {
	case session.WarningShown:
		fmt.Fprintf(a.out, "\nSession Expiring Soon: your session will expire in %s.\nType 'continue' to stay signed in or 'logout' to leave.\n",
			a.Session.FormatRemaining())
	case session.Expired:
		a.revisit()
	}
}

// Navigate resolves path through the guard and moves there when allowed.
func (a *App) Navigate(path string) guard.Decision {
	decision := a.Guard.Resolve(path, a.Auth.Role(), a.Auth.Loading())

	switch decision.Outcome {
	case guard.Allow:
		a.location = path
	case guard.Redirect:
		a.location = decision.Target
	}

	return decision
}

// revisit re-checks the current location after the role changed.
func (a *App) revisit() {
	decision := a.Navigate(a.location)

	switch decision.Outcome {
	case guard.Redirect:
		fmt.Fprintf(a.out, "Redirected to %s\n", decision.Target)
	case guard.Denied:
		a.location = guard.HomePath
		fmt.Fprintf(a.out, "%s Back to %s\n", decision.Message, guard.HomePath)
	}
}

func (a *App) prompt() {
	who := "guest"
	if identity := a.Auth.Identity(); identity != nil {
		who = identity.Username
	}
	fmt.Fprintf(a.out, "%s@%s [cart %d]> ", who, a.location, a.Cart.Count())
}

func (a *App) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.cfg.RequestTimeout)
}

// Execute runs one command line. It returns ErrQuit for quit and exit.
func (a *App) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	name := strings.ToLower(fields[0])
	cmd, ok := a.commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q, type 'help'", name)
	}

	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0]))
	err := cmd.run(ctx, fields[1:], rest)

	if apiclient.IsStatus(err, http.StatusUnauthorized) && a.Auth.Identity() != nil {
		a.logger.Warn("Server rejected the stored token, signing out")
		_ = a.Auth.Logout(ctx)
		a.revisit()
	}

	return err
}
