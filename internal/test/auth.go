package test

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/polkiloo/drinkshop/internal/pkg/auth"
)

// StrategyStub parses tokens via function overrides.
type StrategyStub struct {
	ParseFn func(string) (*auth.Identity, error)
}

// ParseToken returns a deterministic identity named after the token.
func (s StrategyStub) ParseToken(token string) (*auth.Identity, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return &auth.Identity{
		Subject:   "uid-" + token,
		Name:      token,
		TokenID:   "tid-" + token,
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil
}

// SignIdentityToken mints an HS256 identity token the way the upstream
// identity provider does.
func SignIdentityToken(secret, subject, name string, ttl time.Duration) (string, error) {
	claims := struct {
		Name string `json:"name,omitempty"`
		jwt.RegisteredClaims
	}{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// AuthenticatorStub implements middleware authentication contract.
type AuthenticatorStub struct {
	Identity *auth.Identity
	Err      error
	AuthFn   func(context.Context, string) (*auth.Identity, error)
}

// Authenticate either delegates to override or returns predefined result.
func (s AuthenticatorStub) Authenticate(ctx context.Context, token string) (*auth.Identity, error) {
	if s.AuthFn != nil {
		return s.AuthFn(ctx, token)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Identity != nil {
		return s.Identity, nil
	}
	return &auth.Identity{Subject: "uid-1", Name: "amy", TokenID: "tid-1", ExpiresAt: time.Now().Add(time.Hour)}, nil
}

var _ auth.Strategy = StrategyStub{}
