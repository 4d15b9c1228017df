// Package auth simulates sign-in and registration. Any well-formed
// submission succeeds after a short delay and yields a locally signed
// session token; nothing leaves the process.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "skyscholar"

var ErrInvalidToken = errors.New("invalid session token")

// User is the signed-in learner.
type User struct {
	Name   string
	Email  string
	Role   Role
	Joined time.Time
}

// Session is the result of a successful sign-in.
type Session struct {
	User      User
	Token     string
	ExpiresAt time.Time
}

// Config controls the simulated service.
type Config struct {
	Delay    time.Duration `mapstructure:"delay"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

// DefaultConfig matches the one-second round trip of the web form.
func DefaultConfig() Config {
	return Config{Delay: time.Second, TokenTTL: 24 * time.Hour}
}

type claims struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
	jwt.RegisteredClaims
}

// Service signs learners in. It remembers registrations for the life of
// the process so a later login returns the registered profile.
type Service struct {
	cfg    Config
	key    []byte
	now    func() time.Time
	logger *slog.Logger

	mu    sync.Mutex
	users map[string]User
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLogger sets the logger for sign-in events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a service with a fresh random signing key, so tokens
// never verify across processes.
func NewService(cfg Config, opts ...Option) *Service {
	key := make([]byte, 32)
	rand.Read(key)

	s := &Service{
		cfg:    cfg,
		key:    key,
		now:    time.Now,
		logger: slog.Default(),
		users:  make(map[string]User),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login signs in an existing or unknown learner. Unknown emails get a
// student pilot profile named after the address's local part.
func (s *Service) Login(ctx context.Context, form LoginForm) (*Session, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	email := normalizeEmail(form.Email)
	s.mu.Lock()
	u, ok := s.users[email]
	s.mu.Unlock()
	if !ok {
		name, _, _ := strings.Cut(email, "@")
		u = User{Name: name, Email: email, Role: RoleStudentPilot, Joined: s.now()}
	}

	s.logger.Info("login", "email", email, "known", ok)
	return s.issue(u)
}

// Register creates a profile and signs it in. Registering an email again
// replaces the earlier profile.
func (s *Service) Register(ctx context.Context, form RegisterForm) (*Session, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	u := User{
		Name:   strings.TrimSpace(form.Name),
		Email:  normalizeEmail(form.Email),
		Role:   form.Role,
		Joined: s.now(),
	}
	s.mu.Lock()
	s.users[u.Email] = u
	s.mu.Unlock()

	s.logger.Info("register", "email", u.Email, "role", string(u.Role))
	return s.issue(u)
}

// Verify parses a token issued by this service and returns its user.
func (s *Service) Verify(token string) (*User, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.key, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	u := User{Name: c.Name, Email: c.Subject, Role: c.Role}
	if c.IssuedAt != nil {
		u.Joined = c.IssuedAt.Time
	}
	s.mu.Lock()
	if known, ok := s.users[u.Email]; ok {
		u.Joined = known.Joined
	}
	s.mu.Unlock()
	return &u, nil
}

func (s *Service) issue(u User) (*Session, error) {
	now := s.now()
	exp := now.Add(s.cfg.TokenTTL)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name: u.Name,
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   u.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := tok.SignedString(s.key)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &Session{User: u, Token: signed, ExpiresAt: exp}, nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.cfg.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.cfg.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
