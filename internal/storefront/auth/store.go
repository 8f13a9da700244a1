// Package auth holds the signed-in identity on the client and keeps it in
// durable storage between runs.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/kv"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/notify"
)

type Gateway interface {
	Login(ctx context.Context, username, password string) (*models.TokenResponse, error)
	Register(ctx context.Context, username, password string) (*models.TokenResponse, error)
}

// Listener is told about every identity change. A nil identity means signed out.
type Listener func(identity *Identity)

type Store struct {
	mu        sync.RWMutex
	identity  *Identity
	token     string
	loading   bool
	listeners []Listener

	kv       kv.Store
	gateway  Gateway
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewStore starts in the loading state until Hydrate runs.
func NewStore(store kv.Store, gateway Gateway, notifier notify.Notifier, logger *slog.Logger) *Store {
	return &Store{
		loading:  true,
		kv:       store,
		gateway:  gateway,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners = append(s.listeners, fn)
}

// Identity returns a copy of the current identity, or nil for a guest.
func (s *Store) Identity() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.identity == nil {
		return nil
	}
	identity := *s.identity
	return &identity
}

func (s *Store) Role() Role {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return RoleOf(s.identity)
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Loading is true until Hydrate has finished. Callers must not act on Role
// while it is set.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loading
}

// Hydrate restores the identity saved by a previous run without asking the
// server. A stored identity that does not decode is discarded along with the
// token and session clock.
func (s *Store) Hydrate(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	token, found, err := s.kv.Get(ctx, kv.KeyToken)
	if err != nil {
		return fmt.Errorf("reading stored token: %w", err)
	}
	if !found || token == "" {
		return nil
	}

	raw, found, err := s.kv.Get(ctx, kv.KeyUser)
	if err != nil {
		return fmt.Errorf("reading stored user: %w", err)
	}
	if !found {
		return nil
	}

	var identity Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil || identity.Username == "" {
		s.logger.Warn("Discarding malformed stored identity", slog.Any("error", err))
		if err := s.kv.Delete(ctx, kv.KeyToken, kv.KeyUser, kv.KeyLoginTime); err != nil {
			return fmt.Errorf("purging stored session: %w", err)
		}
		return nil
	}

	s.setIdentity(&identity, token)
	s.logger.Info("Restored session", slog.String("username", identity.Username))

	return nil
}

func (s *Store) Login(ctx context.Context, username, password string) error {
	resp, err := s.gateway.Login(ctx, username, password)
	if err == nil {
		err = s.persist(ctx, resp)
	}

	if err != nil {
		s.logger.Warn("Login failed", slog.String("username", username), slog.String("error", err.Error()))
		s.notifier.Notify(notify.Error("Login failed", "Please check your credentials."))
		return err
	}

	role := "User"
	if resp.IsAdmin {
		role = "Admin"
	}
	s.notifier.Notify(notify.Info("Welcome back!", "Logged in as "+role))

	return nil
}

func (s *Store) Register(ctx context.Context, username, password string) error {
	resp, err := s.gateway.Register(ctx, username, password)
	if err == nil {
		err = s.persist(ctx, resp)
	}

	if err != nil {
		message := err.Error()
		if message == "" {
			message = "Registration failed"
		}
		s.logger.Warn("Registration failed", slog.String("username", username), slog.String("error", message))
		s.notifier.Notify(notify.Error("Registration failed", message))
		return err
	}

	s.notifier.Notify(notify.Info("Account created!", "Welcome to our furniture store"))

	return nil
}

// Logout clears the stored credentials and the identity. Calling it while
// signed out does nothing.
func (s *Store) Logout(ctx context.Context) error {
	if s.Identity() == nil {
		return nil
	}

	err := s.kv.Delete(ctx, kv.KeyToken, kv.KeyUser, kv.KeyLoginTime)
	if err != nil {
		s.logger.Error("Failed to clear stored session", slog.String("error", err.Error()))
	}

	s.setIdentity(nil, "")
	s.notifier.Notify(notify.Info("Logged out successfully", ""))

	return err
}

func (s *Store) persist(ctx context.Context, resp *models.TokenResponse) error {
	if resp == nil || resp.AccessToken == "" {
		return errors.New("server returned no access token")
	}

	identity := &Identity{Username: resp.Username, IsAdmin: resp.IsAdmin}

	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encoding identity: %w", err)
	}

	previous, hadToken, err := s.kv.Get(ctx, kv.KeyToken)
	if err != nil {
		return fmt.Errorf("reading stored token: %w", err)
	}

	if err := s.kv.Set(ctx, kv.KeyToken, resp.AccessToken); err != nil {
		return fmt.Errorf("storing token: %w", err)
	}
	if err := s.kv.Set(ctx, kv.KeyUser, string(raw)); err != nil {
		s.restoreToken(ctx, previous, hadToken)
		return fmt.Errorf("storing identity: %w", err)
	}

	s.setIdentity(identity, resp.AccessToken)
	return nil
}

// restoreToken puts back the token that was stored before a failed login.
func (s *Store) restoreToken(ctx context.Context, previous string, found bool) {
	var err error
	if found {
		err = s.kv.Set(ctx, kv.KeyToken, previous)
	} else {
		err = s.kv.Delete(ctx, kv.KeyToken)
	}

	if err != nil {
		s.logger.Error("Failed to roll back stored token", slog.String("error", err.Error()))
	}
}

// setIdentity swaps the identity and then tells listeners, outside the lock.
func (s *Store) setIdentity(identity *Identity, token string) {
	s.mu.Lock()
	previous := s.identity
	s.identity = identity
	s.token = token
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	if sameIdentity(previous, identity) {
		return
	}

	for _, fn := range listeners {
		if identity == nil {
			fn(nil)
			continue
		}
		copied := *identity
		fn(&copied)
	}
}

func sameIdentity(a, b *Identity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
