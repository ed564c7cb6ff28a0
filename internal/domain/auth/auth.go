// Package auth implements the demo login stub: a single configured user and
// opaque in-memory session tokens. It is intentionally not a real identity
// system; the service's engine endpoints do not require authentication.
package auth

import (
	"crypto/subtle"
	"sync"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidCredentials is returned when the email/password pair does not
// match the configured demo user.
var ErrInvalidCredentials = errors.New("invalid email or password")

// User is the profile returned on a successful login. It doubles as a ready
// made UserContext source for the best-coupon UI.
type User struct {
	ID            string
	Email         string
	Name          string
	Tier          string
	Country       string
	LifetimeSpend decimal.Decimal
	OrdersPlaced  int
}

// Service authenticates the demo user and issues session tokens.
type Service struct {
	user     User
	password string

	mu       sync.Mutex
	sessions map[string]string // token -> user ID
}

// NewService creates a Service for the given demo user and password.
func NewService(user User, password string) *Service {
	return &Service{
		user:     user,
		password: password,
		sessions: make(map[string]string),
	}
}

// Authenticate checks the credentials and, on success, issues a fresh opaque
// session token. Comparison is constant-time so response timing does not
// leak how much of the secret matched.
func (s *Service) Authenticate(email, password string) (*User, string, error) {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.user.Email)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	if !emailOK || !passwordOK {
		return nil, "", ErrInvalidCredentials
	}

	token := uuid.New().String()

	s.mu.Lock()
	s.sessions[token] = s.user.ID
	s.mu.Unlock()

	u := s.user
	return &u, token, nil
}

// ValidSession reports whether the given token was issued by Authenticate.
func (s *Service) ValidSession(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[token]
	return ok
}
