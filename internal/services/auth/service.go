package auth

import (
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/stakemesh/wagerd/internal/dependencies/clock"
	"github.com/stakemesh/wagerd/internal/dependencies/random"
	"github.com/stakemesh/wagerd/internal/model"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrIdentityExists     = errors.New("identity already exists")
)

const (
	tokenLength   = 32
	tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Token is a bearer credential bound to an account
type Token struct {
	Value     string
	Account   model.AccountID
	CreatedAt time.Time
	ExpiresAt time.Time
}

type identity struct {
	account      model.AccountID
	passwordHash string
	createdAt    time.Time
}

// Service registers caller identities and issues the bearer tokens the API
// uses to resolve them. Authorities and players are both plain accounts; the
// distinction is made per session by its recorded authority, not here.
type Service struct {
	clock  clock.Clock
	random random.Random

	mu         sync.RWMutex
	identities map[model.AccountID]*identity
	tokens     map[string]*Token

	tokenDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	TokenDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(clock clock.Clock, random random.Random, cfg Config) *Service {
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = DefaultConfig().TokenDuration
	}
	return &Service{
		clock:         clock,
		random:        random,
		identities:    make(map[model.AccountID]*identity),
		tokens:        make(map[string]*Token),
		tokenDuration: cfg.TokenDuration,
	}
}

// Register creates an identity for the given account and issues its first
// token. Account names share the session id character rules.
func (s *Service) Register(account model.AccountID, password string) (*Token, error) {
	if err := model.ValidateSessionID(model.SessionID(account)); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if _, ok := s.identities[account]; ok {
		s.mu.Unlock()
		return nil, ErrIdentityExists
	}
	s.identities[account] = &identity{
		account:      account,
		passwordHash: string(hash),
		createdAt:    s.clock.Now(),
	}
	s.mu.Unlock()

	return s.issueToken(account), nil
}

// Login authenticates an identity and issues a fresh token
func (s *Service) Login(account model.AccountID, password string) (*Token, error) {
	s.mu.RLock()
	ident, ok := s.identities[account]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ident.passwordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(account), nil
}

// ValidateToken resolves a bearer token to its account
func (s *Service) ValidateToken(value string) (model.AccountID, error) {
	s.mu.RLock()
	token, ok := s.tokens[value]
	s.mu.RUnlock()

	if !ok {
		return "", ErrInvalidToken
	}

	if s.clock.Now().After(token.ExpiresAt) {
		s.mu.Lock()
		delete(s.tokens, value)
		s.mu.Unlock()
		return "", ErrInvalidToken
	}

	return token.Account, nil
}

// RevokeToken removes a token
func (s *Service) RevokeToken(value string) {
	s.mu.Lock()
	delete(s.tokens, value)
	s.mu.Unlock()
}

func (s *Service) issueToken(account model.AccountID) *Token {
	now := s.clock.Now()
	token := &Token{
		Value:     s.random.Token(tokenLength, tokenAlphabet),
		Account:   account,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenDuration),
	}

	s.mu.Lock()
	s.tokens[token.Value] = token
	s.mu.Unlock()

	return token
}

// CleanExpiredTokens removes expired tokens (call periodically)
func (s *Service) CleanExpiredTokens() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for value, token := range s.tokens {
		if now.After(token.ExpiresAt) {
			delete(s.tokens, value)
		}
	}
}
