package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/TooLazyToCreate/account-service/config"
	"github.com/TooLazyToCreate/account-service/internal/model"
	"github.com/TooLazyToCreate/account-service/internal/repository"
	"github.com/TooLazyToCreate/account-service/internal/token"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturingNotifier struct {
	mu        sync.Mutex
	passwords map[string]string
	err       error
}

func (n *capturingNotifier) SendTemporaryPassword(_ context.Context, user *model.User, password string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.passwords == nil {
		n.passwords = make(map[string]string)
	}
	n.passwords[user.Email] = password
	return n.err
}

func (n *capturingNotifier) password(email string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.passwords[email]
}

type fixture struct {
	store    *repository.MemoryStore
	notifier *capturingNotifier
	users    *UserService
	auth     *AuthService
	codec    *token.Codec
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := &config.Config{PhoneRegion: "US", PasswordLength: 12}
	codec, err := token.NewCodec([]byte("service-test-secret"), "HS256", 0)
	require.NoError(t, err)

	store := repository.NewMemoryStore()
	notifier := &capturingNotifier{}
	return &fixture{
		store:    store,
		notifier: notifier,
		users:    NewUserService(zap.NewNop(), cfg, store, notifier),
		auth:     NewAuthService(zap.NewNop(), codec, store),
		codec:    codec,
	}
}

func (f *fixture) register(t *testing.T, email string) *model.User {
	t.Helper()
	user, err := f.users.Register(context.Background(), model.UserFields{
		FirstName: "First",
		LastName:  "Last",
		Email:     email,
	})
	require.NoError(t, err)
	return user
}

func strPtr(s string) *string {
	return &s
}

var errDelivery = errors.New("smtp unavailable")
