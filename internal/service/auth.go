// Package service provides the business logic of the list API,
// delegating persistence to repository interfaces.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"listpad/internal/models"
)

var (
	// ErrUserExists is returned when registering an already taken username.
	ErrUserExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserRepository defines the persistence operations required by AuthService.
type UserRepository interface {
	// UserExists returns true if a user with the given username exists.
	UserExists(ctx context.Context, username string) (bool, error)
	// CreateUser creates a new user record and returns it.
	CreateUser(ctx context.Context, username, passwordHash string) (models.User, error)
	// UserByUsername returns the user and its password hash.
	UserByUsername(ctx context.Context, username string) (models.User, string, error)
}

// Claims carries the authenticated user inside a session token.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthService implements registration and login on top of a UserRepository.
type AuthService struct {
	repo     UserRepository
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService constructs an AuthService. secret signs session tokens and
// ttl bounds their lifetime.
func NewAuthService(repo UserRepository, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{repo: repo, secret: secret, tokenTTL: ttl}
}

// Register creates a new user with a bcrypt-hashed password.
// Returns ErrUserExists when the username is taken.
func (s *AuthService) Register(ctx context.Context, username, password string) (models.User, error) {
	exists, err := s.repo.UserExists(ctx, username)
	if err != nil {
		return models.User{}, fmt.Errorf("check user: %w", err)
	}
	if exists {
		return models.User{}, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.CreateUser(ctx, username, string(hash))
}

// Login verifies the credentials and returns a signed session token.
// Returns ErrInvalidCredentials when the user is unknown or the password
// does not match.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, hash, err := s.repo.UserByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	claims := Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a session token and returns its claims.
func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
