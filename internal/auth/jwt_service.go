package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// AccessTokenExpiry is the default duration for which access tokens are valid.
	AccessTokenExpiry = time.Minute
	// RefreshTokenExpiry is the duration for which refresh tokens are valid.
	RefreshTokenExpiry = 30 * 24 * time.Hour
)

var (
	// ErrTokenInvalid is returned for a bad signature or a malformed token.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenExpired is returned when the token is past its expiry.
	ErrTokenExpired = errors.New("token expired")
)

// Claims represents JWT claims. UserID is the only application claim.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret    []byte
	accessTTL time.Duration
	now       func() time.Time
}

// Option customizes a JWTService.
type Option func(*JWTService)

// WithAccessTTL overrides the access token lifetime.
func WithAccessTTL(ttl time.Duration) Option {
	return func(s *JWTService) {
		if ttl > 0 {
			s.accessTTL = ttl
		}
	}
}

// WithClock replaces the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(s *JWTService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewJWTService creates a new JWT service with the given signing key.
func NewJWTService(secret []byte, opts ...Option) *JWTService {
	s := &JWTService{
		secret:    secret,
		accessTTL: AccessTokenExpiry,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue signs claims with an issued-at of now and an expiry of now+ttl.
func (s *JWTService) Issue(claims Claims, ttl time.Duration) (string, error) {
	now := s.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// GenerateAccessToken generates a new access token for the user.
func (s *JWTService) GenerateAccessToken(userID string) (string, error) {
	return s.Issue(Claims{UserID: userID}, s.accessTTL)
}

// GenerateRefreshToken generates a new refresh token for the user.
func (s *JWTService) GenerateRefreshToken(userID string) (string, error) {
	return s.Issue(Claims{UserID: userID}, RefreshTokenExpiry)
}

// Verify validates a JWT token and returns the claims. It returns
// ErrTokenExpired for an expired token and ErrTokenInvalid for anything else.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	if !token.Valid || claims.UserID == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
