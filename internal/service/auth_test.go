package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"papertrade/internal/config"
	"papertrade/internal/database"
	"papertrade/internal/models"
)

type fakeUserStore struct {
	byEmail map[string]models.User
	seq     int
}

func (f *fakeUserStore) CreateUser(_ context.Context, name, email, passwordHash string) (models.User, error) {
	if _, ok := f.byEmail[email]; ok {
		return models.User{}, database.ErrEmailTaken
	}
	f.seq++
	u := models.User{
		ID:           string(rune('a' + f.seq)),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	f.byEmail[email] = u
	return u, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return models.User{}, database.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, userID string) (models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == userID {
			return u, nil
		}
	}
	return models.User{}, database.ErrNotFound
}

func newAuthService() (*AuthService, *fakeUserStore) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{
		Auth: config.Auth{JWTSecret: "test-secret", TokenTTL: time.Hour},
	}
	store := &fakeUserStore{byEmail: make(map[string]models.User)}
	return NewAuthService(cfg, store, logger), store
}

func TestRegisterHashesPasswordAndIssuesToken(t *testing.T) {
	svc, store := newAuthService()

	u, token, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "s3cret-pass", store.byEmail["alice@example.com"].PasswordHash)

	parsed, err := jwt.Parse(token, func(_ *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, u.ID, claims["user_id"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()

	_, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "Bob", "alice@example.com", "other-pass")
	assert.ErrorIs(t, err, database.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService()

	_, _, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	u, token, err := svc.Login(context.Background(), "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
