// Package token issues and verifies the HMAC-signed bearer tokens that
// carry a user's identity between requests.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Verification failures. Expiry is reported apart from every other
// defect so callers can tell a stale session from a forged one.
var (
	ErrExpired   = errors.New("token expired")
	ErrMalformed = errors.New("token malformed")
)

const defaultTTL = 168 * time.Hour

// Identity is the subset of user fields embedded in issued tokens.
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  string
}

// Claims is the signed payload. The user id rides in the registered
// Subject field.
type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens with a single process-wide secret.
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewService builds a token service. A non-positive ttl falls back to
// seven days.
func NewService(secret, issuer string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Service{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Issue signs a token for id, valid from now until now+TTL.
func (s *Service) Issue(id Identity) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: id.Email,
		Name:  id.Name,
		Role:  id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates raw. Any defect other than expiry, wrong
// algorithm and bad signature included, comes back as ErrMalformed; a
// failed token never yields partial claims.
func (s *Service) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrMalformed
	}
	if !tok.Valid || claims.Subject == "" {
		return nil, ErrMalformed
	}
	return claims, nil
}
