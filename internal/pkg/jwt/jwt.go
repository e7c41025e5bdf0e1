package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrMissingRole  = errors.New("token does not carry a valid role")
)

// Role is the single enumerated role claim carried by every token
type Role string

const (
	RoleUser         Role = "user"
	RoleNGO          Role = "ngo"
	RoleSocialWorker Role = "socialworker"
	RoleAdmin        Role = "admin"
)

// AllRoles lists every role an account can hold
func AllRoles() []Role {
	return []Role{RoleUser, RoleNGO, RoleSocialWorker, RoleAdmin}
}

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleNGO, RoleSocialWorker, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// Claims represents JWT claims
type Claims struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 tokens
type Manager struct {
	secret []byte
	expiry time.Duration
	issuer string
	now    func() time.Time
}

// NewManager returns a manager signing with secret and issuing tokens valid for expiry
func NewManager(secret string, expiry time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		expiry: expiry,
		issuer: "sahyogi-api",
		now:    time.Now,
	}
}

// WithClock overrides the clock used for issuing and verifying
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Expiry returns the lifetime of issued tokens
func (m *Manager) Expiry() time.Duration {
	return m.expiry
}

// GenerateToken signs a token for the given identity
func (m *Manager) GenerateToken(id, name, email string, role Role) (string, error) {
	if len(m.secret) == 0 {
		return "", errors.New("JWT secret is not configured")
	}
	if !role.IsValid() {
		return "", ErrMissingRole
	}

	now := m.now()
	claims := &Claims{
		ID:    id,
		Name:  name,
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   id,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies signature and expiry. Expired tokens yield
// ErrExpiredToken, anything else unparseable yields ErrInvalidToken.
// The role claim is not checked here; RequireRoles decides on it.
func (m *Manager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// DecodeUnverified returns the claims of a token without checking the
// signature. Only clients holding their own token should use it.
func DecodeUnverified(tokenString string) (*Claims, error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(tokenString, &Claims{})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid claims format")
	}

	return claims, nil
}
