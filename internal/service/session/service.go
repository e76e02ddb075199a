// Package session is the single source of truth for who is logged in.
// Authentication is delegated to an AuthProvider (the remote backend or the
// local demo provider); successful identities are held in memory for the
// session lifetime and referenced from signed tokens.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"wedding-liaison/internal/config"
	"wedding-liaison/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidRole        = errors.New("invalid role")
	ErrLogoutFailed       = errors.New("logout failed, session retained")
)

// AuthProvider is the external authentication collaborator. Both the remote
// gateway and the local demo provider satisfy it.
type AuthProvider interface {
	Login(ctx context.Context, input domain.LoginInput) (*domain.User, error)
	Register(ctx context.Context, input domain.RegisterInput) (*domain.User, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (*domain.User, error)
}

type Service interface {
	Login(ctx context.Context, input domain.LoginInput) (*domain.User, string, error)
	Register(ctx context.Context, input domain.RegisterInput) (*domain.User, string, error)
	Logout(ctx context.Context, token string) error
	IsAuthenticated(token string, requiredRole domain.UserRole) bool
	CurrentUser(token string) *domain.User
	Recover(ctx context.Context)
	Loading() bool
}

type Claims struct {
	SessionID string          `json:"session_id"`
	UserID    string          `json:"user_id"`
	Role      domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type liveSession struct {
	user      domain.User
	createdAt time.Time
}

type service struct {
	provider AuthProvider
	cfg      *config.Config

	mu       sync.RWMutex
	sessions map[string]*liveSession

	loading atomic.Bool
}

func NewService(provider AuthProvider, cfg *config.Config) Service {
	s := &service{
		provider: provider,
		cfg:      cfg,
		sessions: make(map[string]*liveSession),
	}
	s.loading.Store(true)
	return s
}

// Recover asks the provider for an existing identity before the manager
// settles in either state. Failures leave the manager unauthenticated; they
// are never fatal.
func (s *service) Recover(ctx context.Context) {
	defer s.loading.Store(false)

	user, err := s.provider.Status(ctx)
	if err != nil || user == nil {
		return
	}
	if !user.Role.IsValid() {
		log.Printf("Recovered session has unknown role %q, discarding", user.Role)
		return
	}

	s.mu.Lock()
	s.sessions[uuid.New().String()] = &liveSession{user: *user, createdAt: time.Now()}
	s.mu.Unlock()
	log.Printf("Recovered existing session for %s (%s)", user.Email, user.Role)
}

func (s *service) Loading() bool {
	return s.loading.Load()
}

func (s *service) Login(ctx context.Context, input domain.LoginInput) (*domain.User, string, error) {
	if !input.Role.IsValid() {
		return nil, "", ErrInvalidRole
	}

	user, err := s.provider.Login(ctx, input)
	if err != nil {
		return nil, "", err
	}
	if user.Role != input.Role {
		// The provider holds an account under this email, but not for the
		// requested role. A role change requires a fresh login as that role.
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.establish(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *service) Register(ctx context.Context, input domain.RegisterInput) (*domain.User, string, error) {
	if !input.Role.IsValid() {
		return nil, "", ErrInvalidRole
	}

	user, err := s.provider.Register(ctx, input)
	if err != nil {
		return nil, "", err
	}

	// Registration stores identity exactly as login does.
	token, err := s.establish(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout invalidates the provider session first. The local identity is
// cleared only when the provider confirms; otherwise the session is retained
// and the caller surfaces the error.
func (s *service) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return ErrInvalidToken
	}

	if err := s.provider.Logout(ctx); err != nil {
		return ErrLogoutFailed
	}

	s.mu.Lock()
	delete(s.sessions, claims.SessionID)
	s.mu.Unlock()
	return nil
}

func (s *service) IsAuthenticated(token string, requiredRole domain.UserRole) bool {
	user := s.CurrentUser(token)
	if user == nil {
		return false
	}
	if requiredRole != "" {
		return user.Role == requiredRole
	}
	return true
}

func (s *service) CurrentUser(token string) *domain.User {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	live, ok := s.sessions[claims.SessionID]
	if !ok {
		return nil
	}
	user := live.user
	return &user
}

func (s *service) establish(user *domain.User) (string, error) {
	sessionID := uuid.New().String()

	s.mu.Lock()
	s.sessions[sessionID] = &liveSession{user: *user, createdAt: time.Now()}
	s.mu.Unlock()

	claims := &Claims{
		SessionID: sessionID,
		UserID:    user.ID,
		Role:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.SessionExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   user.ID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *service) parseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
