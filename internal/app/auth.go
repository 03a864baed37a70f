/**
 * @description
 * Simulated authentication. Accounts live in the users snapshot; passwords
 * are bcrypt-hashed and logins are answered with a locally signed HS256
 * token. A fixed artificial delay mimics the latency of a real identity
 * provider, matching the rest of the simulated backend.
 */
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/akshay12-del/subzz/internal/domain"
	"github.com/akshay12-del/subzz/internal/store"
)

// AuthService manages local accounts and session tokens.
type AuthService struct {
	mu    sync.Mutex
	users map[string]domain.User // keyed by username

	store     store.Store
	logger    *slog.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
	delay     time.Duration
	now       func() time.Time
}

// NewAuthService loads the users snapshot and returns the service.
func NewAuthService(ctx context.Context, st store.Store, logger *slog.Logger, jwtSecret string, tokenTTL, delay time.Duration) (*AuthService, error) {
	s := &AuthService{
		users:     map[string]domain.User{},
		store:     st,
		logger:    logger,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		delay:     delay,
		now:       time.Now,
	}
	if _, err := st.Load(ctx, store.KeyUsers, &s.users); err != nil {
		return nil, err
	}
	return s, nil
}

// Signup registers a new account. All fields are required and the password
// must be at least 6 characters.
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (domain.PublicUser, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return domain.PublicUser{}, err
	}
	if username == "" || email == "" || password == "" {
		return domain.PublicUser{}, ErrMissingFields
	}
	if len(password) < 6 {
		return domain.PublicUser{}, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.PublicUser{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[username]; exists {
		return domain.PublicUser{}, ErrUsernameTaken
	}
	user := domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		AvatarURL:    avatarURL(username),
		CreatedAt:    s.now(),
	}
	s.users[username] = user
	if err := s.store.Save(ctx, store.KeyUsers, s.users); err != nil {
		s.logger.Error("failed to persist users", "error", err)
	}

	s.logger.Info("account created", "username", username)
	return user.Public(), nil
}

// Login verifies credentials and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.PublicUser, error) {
	if err := s.simulateLatency(ctx); err != nil {
		return "", domain.PublicUser{}, err
	}
	if username == "" || password == "" {
		return "", domain.PublicUser{}, ErrMissingFields
	}

	s.mu.Lock()
	user, exists := s.users[username]
	s.mu.Unlock()
	if !exists {
		return "", domain.PublicUser{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", domain.PublicUser{}, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", domain.PublicUser{}, err
	}
	return token, user.Public(), nil
}

func (s *AuthService) issueToken(user domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// simulateLatency waits out the configured artificial delay, honoring
// context cancellation.
func (s *AuthService) simulateLatency(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func avatarURL(username string) string {
	return fmt.Sprintf(
		"https://ui-avatars.com/api/?name=%s&background=000000&color=ffffff&size=128",
		url.QueryEscape(username),
	)
}
