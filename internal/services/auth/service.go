// Package auth verifies the bearer tokens of CMS staff.
package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/qurancms/recitation-api/pkg/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrNotStaff     = errors.New("principal is not staff")
	ErrNoSecret     = errors.New("no signing secret configured")
)

// Claims are issued by the CMS login for its users
type Claims struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsStaff bool   `json:"is_staff"`

	jwt.RegisteredClaims
}

// Principal is the authenticated caller
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Service validates HS256 tokens and checks the staff flag
type Service struct {
	secret    []byte
	staffRole string
	devToken  string
	now       func() time.Time
}

// NewService creates a verifier from the auth settings
func NewService(cfg config.AuthConfig) *Service {
	role := cfg.StaffRole
	if role == "" {
		role = "staff"
	}
	return &Service{
		secret:    []byte(cfg.JWTSecret),
		staffRole: role,
		devToken:  cfg.DevToken,
		now:       time.Now,
	}
}

// Authenticate returns the staff principal behind a bearer token
func (s *Service) Authenticate(token string) (*Principal, error) {
	if s.devToken != "" && subtle.ConstantTimeCompare([]byte(token), []byte(s.devToken)) == 1 {
		return &Principal{ID: "dev-staff", Email: "dev@localhost", Role: s.staffRole}, nil
	}
	if len(s.secret) == 0 {
		return nil, ErrNoSecret
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	if !claims.IsStaff && claims.Role != s.staffRole {
		return nil, ErrNotStaff
	}

	return &Principal{ID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}

// IssueToken signs a staff token. Used by the CLI and tests.
func (s *Service) IssueToken(subject, email string, staff bool, ttl time.Duration) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrNoSecret
	}
	now := s.now()
	claims := Claims{
		Email:   email,
		IsStaff: staff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
