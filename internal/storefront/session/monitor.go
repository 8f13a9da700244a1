// Package session expires the client session a fixed time after login and
// offers a renewal window before it does.
//
// The monitor is a small state machine driven by one recurring Tick. Its only
// timing input is the persisted session clock, so a restart mid-session picks
// up the same deadlines instead of starting over.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/config"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/auth"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/kv"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/notify"
)

type State int

const (
	Inactive State = iota
	Active
	WarningShown
	Expired
)

func (s State) String() string {
	switch s {
	case Inactive:
		return "inactive"
	case Active:
		return "active"
	case WarningShown:
		return "warning"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

var ErrNoSession = errors.New("no active session")

type Authenticator interface {
	Identity() *auth.Identity
	Logout(ctx context.Context) error
	Subscribe(fn auth.Listener)
}

// Transition reports what a Tick did.
type Transition struct {
	From State
	To   State
}

func (t Transition) Changed() bool {
	return t.From != t.To
}

type Monitor struct {
	mu        sync.Mutex
	state     State
	clock     time.Time
	remaining time.Duration

	cfg      config.Session
	kv       kv.Store
	auth     Authenticator
	notifier notify.Notifier
	logger   *slog.Logger
	now      func() time.Time
}

type Option func(*Monitor)

// WithClock replaces time.Now for identity-driven arming.
func WithClock(now func() time.Time) Option {
	return func(m *Monitor) { m.now = now }
}

// NewMonitor subscribes to identity changes on authStore. Call Sync once the
// auth store has hydrated.
func NewMonitor(cfg config.Session, store kv.Store, authStore Authenticator, notifier notify.Notifier, logger *slog.Logger, opts ...Option) *Monitor {
	m := &Monitor{
		cfg:      cfg,
		kv:       store,
		auth:     authStore,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	authStore.Subscribe(m.onIdentity)

	return m
}

func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Clock is the login or renewal instant the deadlines hang off.
func (m *Monitor) Clock() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.clock
}

func (m *Monitor) WarningDeadline() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.clock.Add(m.cfg.Duration - m.cfg.Warning)
}

func (m *Monitor) ExpiryDeadline() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.clock.Add(m.cfg.Duration)
}

// Remaining is the countdown shown while the warning is up, zero otherwise.
func (m *Monitor) Remaining() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != WarningShown {
		return 0
	}
	return m.remaining
}

func (m *Monitor) FormatRemaining() string {
	return FormatCountdown(m.Remaining())
}

// FormatCountdown renders whole seconds as m:ss.
func FormatCountdown(d time.Duration) string {
	seconds := int(d / time.Second)
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Sync arms or disarms the monitor from the current identity.
func (m *Monitor) Sync(ctx context.Context) error {
	if m.auth.Identity() == nil {
		m.disarm()
		return nil
	}
	return m.arm(ctx, m.now())
}

func (m *Monitor) onIdentity(identity *auth.Identity) {
	if identity == nil {
		m.disarm()
		return
	}

	if err := m.arm(context.Background(), m.now()); err != nil {
		m.logger.Error("Failed to arm session", slog.String("error", err.Error()))
	}
}

// arm reuses a stored clock or starts a new one at now.
func (m *Monitor) arm(ctx context.Context, now time.Time) error {
	clock, found, err := m.storedClock(ctx)
	if err != nil {
		m.logger.Warn("Ignoring unreadable session clock", slog.String("error", err.Error()))
		found = false
	}

	if !found {
		clock = now
		if err := m.saveClock(ctx, clock); err != nil {
			return err
		}
	}

	m.mu.Lock()
	m.state = Active
	m.clock = clock
	m.remaining = 0
	m.mu.Unlock()

	m.logger.Debug("Session armed", slog.Time("clock", clock))
	return nil
}

func (m *Monitor) disarm() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = Inactive
	m.clock = time.Time{}
	m.remaining = 0
}

// Tick advances the state machine to now. A tick that expires the session
// reports Expired; the monitor itself rests in Inactive afterwards.
func (m *Monitor) Tick(ctx context.Context, now time.Time) Transition {
	m.mu.Lock()
	from := m.state

	if from != Active && from != WarningShown {
		m.mu.Unlock()
		return Transition{From: from, To: from}
	}

	expiry := m.clock.Add(m.cfg.Duration)
	warning := expiry.Add(-m.cfg.Warning)

	switch {
	case !now.Before(expiry):
		m.mu.Unlock()
		m.expire(ctx)
		return Transition{From: from, To: Expired}

	case !now.Before(warning):
		m.state = WarningShown
		m.remaining = max(expiry.Sub(now).Truncate(time.Second), 0)
	}

	to := m.state
	m.mu.Unlock()

	if from != to {
		m.logger.Info("Session expiring soon", slog.String("remaining", FormatCountdown(m.Remaining())))
	}

	return Transition{From: from, To: to}
}

// Continue renews the session from now.
func (m *Monitor) Continue(ctx context.Context, now time.Time) error {
	m.mu.Lock()
	state := m.state
	expired := !now.Before(m.clock.Add(m.cfg.Duration))
	m.mu.Unlock()

	if state != Active && state != WarningShown {
		return ErrNoSession
	}

	// A deadline that passed between ticks cannot be renewed.
	if expired {
		m.expire(ctx)
		return ErrNoSession
	}

	if err := m.saveClock(ctx, now); err != nil {
		return err
	}

	m.mu.Lock()
	m.state = Active
	m.clock = now
	m.remaining = 0
	m.mu.Unlock()

	m.notifier.Notify(notify.Info("Session Extended",
		fmt.Sprintf("Your session has been extended for another %s.", describe(m.cfg.Duration))))

	return nil
}

// LogoutNow ends the session immediately, as if it had expired.
func (m *Monitor) LogoutNow(ctx context.Context) error {
	state := m.State()
	if state != Active && state != WarningShown {
		return ErrNoSession
	}

	m.expire(ctx)
	return nil
}

func (m *Monitor) expire(ctx context.Context) {
	m.mu.Lock()
	m.state = Expired
	m.remaining = 0
	m.mu.Unlock()

	if err := m.kv.Delete(ctx, kv.KeyLoginTime); err != nil {
		m.logger.Error("Failed to clear session clock", slog.String("error", err.Error()))
	}

	if err := m.auth.Logout(ctx); err != nil {
		m.logger.Error("Failed to log out expired session", slog.String("error", err.Error()))
	}

	m.notifier.Notify(notify.Error("Session Expired", "Your session has expired. Please login again."))

	m.disarm()
}

func (m *Monitor) storedClock(ctx context.Context) (time.Time, bool, error) {
	raw, found, err := m.kv.Get(ctx, kv.KeyLoginTime)
	if err != nil || !found {
		return time.Time{}, false, err
	}

	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing session clock %q: %w", raw, err)
	}

	return time.UnixMilli(millis), true, nil
}

func (m *Monitor) saveClock(ctx context.Context, clock time.Time) error {
	if err := m.kv.Set(ctx, kv.KeyLoginTime, strconv.FormatInt(clock.UnixMilli(), 10)); err != nil {
		return fmt.Errorf("storing session clock: %w", err)
	}
	return nil
}

func describe(d time.Duration) string {
	if d%time.Minute == 0 {
		return fmt.Sprintf("%d minutes", int(d/time.Minute))
	}
	return d.String()
}
