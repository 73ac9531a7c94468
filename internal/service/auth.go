package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"papertrade/internal/config"
	"papertrade/internal/database"
	"papertrade/internal/models"
)

type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
	GetUserByID(ctx context.Context, userID string) (models.User, error)
}

type AuthService struct {
	cfg   *config.Config
	store UserStore
	log   *logrus.Logger
}

func NewAuthService(cfg *config.Config, store UserStore, log *logrus.Logger) *AuthService {
	return &AuthService{cfg: cfg, store: store, log: log}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, "", err
	}
	u, err := s.store.CreateUser(ctx, name, email, string(hash))
	if err != nil {
		return models.User{}, "", err
	}
	token, err := s.token(u.ID)
	if err != nil {
		return models.User{}, "", err
	}
	return u, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (models.User, string, error) {
	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}
	token, err := s.token(u.ID)
	if err != nil {
		return models.User{}, "", err
	}
	return u, token, nil
}

func (s *AuthService) User(ctx context.Context, userID string) (models.User, error) {
	return s.store.GetUserByID(ctx, userID)
}

func (s *AuthService) token(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.cfg.Auth.TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.JWTSecret))
}
