package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/hospitalms/hospital-api/pkg/errors"
)

// DefaultTokenTTL is used when no expiry is configured for a token.
const DefaultTokenTTL = 15 * time.Minute

// Claims carried by an access token.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited identity tokens.
type TokenService interface {
	Issue(subject, role string, ttl time.Duration) (string, error)
	Verify(token string) (*Claims, error)
}

type jwtService struct {
	secret     []byte
	defaultTTL time.Duration
	now        func() time.Time
}

type Option func(*jwtService)

// WithClock overrides the time source, used for deterministic expiry tests.
func WithClock(now func() time.Time) Option {
	return func(s *jwtService) {
		s.now = now
	}
}

// NewTokenService creates a TokenService signing with the given secret.
// The secret is process-wide, injected once at startup.
func NewTokenService(secret string, defaultTTL time.Duration, opts ...Option) TokenService {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTokenTTL
	}
	s := &jwtService{
		secret:     []byte(secret),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *jwtService) Issue(subject, role string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	now := s.now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.Internal(err)
	}
	return signed, nil
}

func (s *jwtService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{},
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, apperrors.InvalidToken(err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, apperrors.InvalidToken(nil)
	}
	if claims.Subject == "" {
		return nil, apperrors.MissingSubject()
	}
	return claims, nil
}
