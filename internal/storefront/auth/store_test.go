package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/models"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/apiclient"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/auth"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/auth/mocks"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/kv"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/storefront/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type fixture struct {
	store   *auth.Store
	kv      *kv.MemoryStore
	gateway *mocks.Gateway
	rec     *notify.Recorder
}

func newFixture(t *testing.T) fixture {
	f := fixture{kv: kv.NewMemoryStore(), gateway: mocks.NewGateway(t), rec: &notify.Recorder{}}
	f.store = auth.NewStore(f.kv, f.gateway, f.rec, discard)
	return f
}

func stored(t *testing.T, store kv.Store, key string) (string, bool) {
	t.Helper()
	value, found, err := store.Get(t.Context(), key)
	require.NoError(t, err)
	return value, found
}

func TestRoleOf(t *testing.T) {
	assert.Equal(t, auth.RoleGuest, auth.RoleOf(nil))
	assert.Equal(t, auth.RoleAdmin, auth.RoleOf(&auth.Identity{Username: "boss", IsAdmin: true}))
	assert.Equal(t, auth.RoleUser, auth.RoleOf(&auth.Identity{Username: "rubel"}))
}

func TestLogin(t *testing.T) {
	t.Run("Success - Stores token and identity", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.gateway.On("Login", mock.Anything, "boss", "secret1").
			Return(&models.TokenResponse{AccessToken: "jwt-1", TokenType: "bearer", Username: "boss", IsAdmin: true}, nil).Once()

		var seen []*auth.Identity
		f.store.Subscribe(func(identity *auth.Identity) { seen = append(seen, identity) })

		// Act
		err := f.store.Login(t.Context(), "boss", "secret1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, auth.RoleAdmin, f.store.Role())
		assert.Equal(t, "jwt-1", f.store.Token())

		token, _ := stored(t, f.kv, kv.KeyToken)
		assert.Equal(t, "jwt-1", token)
		user, _ := stored(t, f.kv, kv.KeyUser)
		assert.JSONEq(t, `{"username":"boss","isAdmin":true}`, user)

		last, _ := f.rec.Last()
		assert.Equal(t, notify.Info("Welcome back!", "Logged in as Admin"), last)

		require.Len(t, seen, 1)
		assert.Equal(t, "boss", seen[0].Username)
	})

	t.Run("Failure - State unchanged and error returned", func(t *testing.T) {
		f := newFixture(t)
		apiErr := &apiclient.APIError{StatusCode: 401, Message: "Incorrect username or password"}
		f.gateway.On("Login", mock.Anything, "rubel", "wrong").Return(nil, apiErr).Once()

		err := f.store.Login(t.Context(), "rubel", "wrong")

		require.ErrorIs(t, err, apiErr)
		assert.Nil(t, f.store.Identity())
		assert.Equal(t, auth.RoleGuest, f.store.Role())
		_, found := stored(t, f.kv, kv.KeyToken)
		assert.False(t, found)

		last, _ := f.rec.Last()
		assert.Equal(t, "Login failed", last.Title)
		assert.Equal(t, notify.VariantDestructive, last.Variant)
	})

	t.Run("Failure - Missing access token", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("Login", mock.Anything, "rubel", "pw1234").
			Return(&models.TokenResponse{Username: "rubel"}, nil).Once()

		err := f.store.Login(t.Context(), "rubel", "pw1234")

		require.Error(t, err)
		assert.Nil(t, f.store.Identity())
	})

	t.Run("Failure - Identity write failure rolls back the token", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		store := &failingStore{MemoryStore: f.kv, failKey: kv.KeyUser}
		authStore := auth.NewStore(store, f.gateway, f.rec, discard)
		f.gateway.On("Login", mock.Anything, "rubel", "pw1234").
			Return(&models.TokenResponse{AccessToken: "jwt-2", Username: "rubel"}, nil).Once()

		// Act
		err := authStore.Login(t.Context(), "rubel", "pw1234")

		// Assert
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storing identity")
		assert.Nil(t, authStore.Identity())
		_, found := stored(t, f.kv, kv.KeyToken)
		assert.False(t, found)
		assert.Contains(t, f.rec.Titles(), "Login failed")
	})

	t.Run("Failure - Previous token survives a failed write", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.kv.Set(t.Context(), kv.KeyToken, "jwt-old"))
		store := &failingStore{MemoryStore: f.kv, failKey: kv.KeyUser}
		authStore := auth.NewStore(store, f.gateway, f.rec, discard)
		f.gateway.On("Login", mock.Anything, "rubel", "pw1234").
			Return(&models.TokenResponse{AccessToken: "jwt-2", Username: "rubel"}, nil).Once()

		err := authStore.Login(t.Context(), "rubel", "pw1234")

		require.Error(t, err)
		token, found := stored(t, f.kv, kv.KeyToken)
		assert.True(t, found)
		assert.Equal(t, "jwt-old", token)
	})
}

// failingStore rejects writes to one key.
type failingStore struct {
	*kv.MemoryStore
	failKey string
}

func (s *failingStore) Set(ctx context.Context, key, value string) error {
	if key == s.failKey {
		return errors.New("disk full")
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func TestRegister(t *testing.T) {
	t.Run("Success - Signed in as user", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("Register", mock.Anything, "karim", "secret1").
			Return(&models.TokenResponse{AccessToken: "jwt-2", Username: "karim"}, nil).Once()

		err := f.store.Register(t.Context(), "karim", "secret1")

		require.NoError(t, err)
		assert.Equal(t, auth.RoleUser, f.store.Role())
		last, _ := f.rec.Last()
		assert.Equal(t, "Account created!", last.Title)
	})

	t.Run("Failure - Server message surfaces", func(t *testing.T) {
		f := newFixture(t)
		f.gateway.On("Register", mock.Anything, "karim", "secret1").
			Return(nil, errors.New("Username already registered")).Once()

		err := f.store.Register(t.Context(), "karim", "secret1")

		require.Error(t, err)
		last, _ := f.rec.Last()
		assert.Equal(t, notify.Error("Registration failed", "Username already registered"), last)
	})
}

func TestLogout(t *testing.T) {
	f := newFixture(t)
	f.gateway.On("Login", mock.Anything, "rubel", "secret1").
		Return(&models.TokenResponse{AccessToken: "jwt", Username: "rubel"}, nil).Once()
	require.NoError(t, f.store.Login(t.Context(), "rubel", "secret1"))
	require.NoError(t, f.kv.Set(t.Context(), kv.KeyLoginTime, "1700000000000"))

	var cleared int
	f.store.Subscribe(func(identity *auth.Identity) {
		if identity == nil {
			cleared++
		}
	})

	require.NoError(t, f.store.Logout(t.Context()))

	assert.Nil(t, f.store.Identity())
	assert.Empty(t, f.store.Token())
	for _, key := range []string{kv.KeyToken, kv.KeyUser, kv.KeyLoginTime} {
		_, found := stored(t, f.kv, key)
		assert.False(t, found, key)
	}
	last, _ := f.rec.Last()
	assert.Equal(t, "Logged out successfully", last.Title)

	t.Run("Success - Second logout is silent", func(t *testing.T) {
		before := len(f.rec.All())

		require.NoError(t, f.store.Logout(t.Context()))

		assert.Len(t, f.rec.All(), before)
		assert.Equal(t, 1, cleared)
	})
}

func TestHydrate(t *testing.T) {
	t.Run("Success - Restores identity without the server", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.kv.Set(t.Context(), kv.KeyToken, "jwt"))
		require.NoError(t, f.kv.Set(t.Context(), kv.KeyUser, `{"username":"boss","isAdmin":true}`))
		assert.True(t, f.store.Loading())

		require.NoError(t, f.store.Hydrate(t.Context()))

		assert.False(t, f.store.Loading())
		assert.Equal(t, auth.RoleAdmin, f.store.Role())
		assert.Equal(t, "jwt", f.store.Token())
	})

	t.Run("Success - No token means guest", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.kv.Set(t.Context(), kv.KeyUser, `{"username":"boss","isAdmin":true}`))

		require.NoError(t, f.store.Hydrate(t.Context()))

		assert.False(t, f.store.Loading())
		assert.Equal(t, auth.RoleGuest, f.store.Role())
	})

	t.Run("Success - Malformed identity is purged", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.kv.Set(t.Context(), kv.KeyToken, "jwt"))
		require.NoError(t, f.kv.Set(t.Context(), kv.KeyUser, `{"username":`))
		require.NoError(t, f.kv.Set(t.Context(), kv.KeyLoginTime, "1700000000000"))

		require.NoError(t, f.store.Hydrate(t.Context()))

		assert.False(t, f.store.Loading())
		assert.Equal(t, auth.RoleGuest, f.store.Role())
		for _, key := range []string{kv.KeyToken, kv.KeyUser, kv.KeyLoginTime} {
			_, found := stored(t, f.kv, key)
			assert.False(t, found, key)
		}
	})
}
