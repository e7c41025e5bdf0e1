package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the identity fields carried by a Sahyogi token
type Claims struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Session holds the token of the logged-in identity. The zero value is an
// empty session.
type Session struct {
	mu     sync.RWMutex
	token  string
	claims *Claims
	now    func() time.Time
}

// NewSession returns an empty session
func NewSession() *Session {
	return &Session{now: time.Now}
}

// Set stores token and its decoded claims. The signature is not checked;
// the server does that on every request.
func (s *Session) Set(token string) error {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("decode token: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.claims = claims
	return nil
}

// Clear forgets the token
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.claims = nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Claims returns a copy of the decoded claims, or nil when empty
func (s *Session) Claims() *Claims {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.claims == nil {
		return nil
	}
	c := *s.claims
	return &c
}

// ExpiresAt is the zero time for an empty session
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.claims == nil || s.claims.ExpiresAt == nil {
		return time.Time{}
	}
	return s.claims.ExpiresAt.Time
}

// Valid reports whether a token is held and has not expired
func (s *Session) Valid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || s.claims == nil || s.claims.ExpiresAt == nil {
		return false
	}
	return s.clock().Before(s.claims.ExpiresAt.Time)
}

func (s *Session) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

type sessionFile struct {
	Token string `json:"token"`
}

// Save writes the token to path with owner-only permissions
func (s *Session) Save(path string) error {
	data, err := json.Marshal(sessionFile{Token: s.Token()})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// LoadSession reads a session saved by Save. A missing file yields an
// empty session.
func LoadSession(path string) (*Session, error) {
	s := NewSession()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	if f.Token == "" {
		return s, nil
	}
	if err := s.Set(f.Token); err != nil {
		return nil, err
	}
	return s, nil
}
