package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"timevents/internal/domain"
)

const (
	// DefaultAlgorithm is the signing algorithm used when none is configured.
	DefaultAlgorithm = "HS256"
	// FallbackTTL applies when Issue is called without a positive ttl.
	FallbackTTL = 15 * time.Minute
)

// TokenConfig holds the process-wide signing settings. It is built once at
// startup and shared by the issuer and the verifier.
type TokenConfig struct {
	Secret    string
	Algorithm string
	// Clock returns the current time; nil means time.Now.
	Clock func() time.Time
}

type jwtCodec struct {
	secret []byte
	method jwt.SigningMethod
	now    func() time.Time
}

func newJWTCodec(cfg *TokenConfig) (*jwtCodec, error) {
	if cfg == nil || cfg.Secret == "" {
		return nil, errors.New("token secret is required")
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = DefaultAlgorithm
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported token algorithm %q", alg)
	}
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &jwtCodec{secret: []byte(cfg.Secret), method: method, now: now}, nil
}

// NewJWTIssuer returns a TokenIssuer that signs JWTs with the configured HMAC algorithm.
func NewJWTIssuer(cfg *TokenConfig) (domain.TokenIssuer, error) {
	return newJWTCodec(cfg)
}

// NewJWTVerifier returns a TokenVerifier for tokens produced by NewJWTIssuer with the same config.
func NewJWTVerifier(cfg *TokenConfig) (domain.TokenVerifier, error) {
	return newJWTCodec(cfg)
}

func (c *jwtCodec) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("token subject is required")
	}
	if ttl <= 0 {
		ttl = FallbackTTL
	}
	now := c.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(c.method, claims)
	tokenString, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (c *jwtCodec) Verify(tokenString string) (string, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid || claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
