package auth

import (
	"crypto/rsa"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTStrategy verifies third-party identity tokens.
type JWTStrategy struct {
	keyFunc jwt.Keyfunc
	parser  *jwt.Parser
}

// NewHMACStrategy verifies HS256 tokens signed with a shared secret.
func NewHMACStrategy(secret string, opts Options) *JWTStrategy {
	key := []byte(secret)
	return &JWTStrategy{
		keyFunc: func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return key, nil
		},
		parser: newParser(jwt.SigningMethodHS256.Alg(), opts),
	}
}

// NewRSAStrategy verifies RS256 tokens against a PEM encoded public key.
func NewRSAStrategy(publicKeyPEM []byte, opts Options) (*JWTStrategy, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("parse identity public key: %w", err)
	}
	return newRSAStrategy(key, opts), nil
}

func newRSAStrategy(key *rsa.PublicKey, opts Options) *JWTStrategy {
	return &JWTStrategy{
		keyFunc: func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return key, nil
		},
		parser: newParser(jwt.SigningMethodRS256.Alg(), opts),
	}
}

func newParser(alg string, opts Options) *jwt.Parser {
	leeway := opts.Leeway
	if leeway <= 0 {
		leeway = 30 * time.Second
	}
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{alg}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	}
	if opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(opts.Issuer))
	}
	if opts.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(opts.Audience))
	}
	return jwt.NewParser(parserOpts...)
}

// ParseToken verifies the signature and registered claims.
func (s *JWTStrategy) ParseToken(token string) (*Identity, error) {
	var c claims
	parsed, err := s.parser.ParseWithClaims(token, &c, s.keyFunc)
	if err != nil || !parsed.Valid {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if c.Subject == "" {
		return nil, ErrMissingSubject
	}

	identity := &Identity{
		Subject: c.Subject,
		Name:    c.Name,
		TokenID: c.ID,
	}
	if identity.TokenID == "" {
		sum := sha256.Sum256([]byte(token))
		identity.TokenID = hex.EncodeToString(sum[:])
	}
	if c.ExpiresAt != nil {
		identity.ExpiresAt = c.ExpiresAt.Time
	}
	return identity, nil
}
