package usecase

import (
	"context"
	"errors"
	"log/slog"

	domainErrors "github.com/polkiloo/drinkshop/internal/domain/errors"
	"github.com/polkiloo/drinkshop/internal/domain/repository"
	"github.com/polkiloo/drinkshop/internal/pkg/auth"
)

// SessionUseCase answers "is signed in" and performs sign out.
type SessionUseCase struct {
	strategy    auth.Strategy
	revocations repository.RevocationStore
	orders      *OrderUseCase
	logger      *slog.Logger
}

// NewSessionUseCase constructs SessionUseCase.
func NewSessionUseCase(strategy auth.Strategy, revocations repository.RevocationStore, orders *OrderUseCase, logger *slog.Logger) *SessionUseCase {
	return &SessionUseCase{strategy: strategy, revocations: revocations, orders: orders, logger: logger}
}

// Authenticate verifies the token and rejects revoked ones.
func (u *SessionUseCase) Authenticate(ctx context.Context, token string) (*auth.Identity, error) {
	identity, err := u.strategy.ParseToken(token)
	if err != nil {
		return nil, errors.Join(domainErrors.ErrUnauthenticated, err)
	}
	revoked, err := u.revocations.IsRevoked(ctx, identity.TokenID)
	if err != nil {
		u.logger.Error("check token revocation failed", slog.String("error", err.Error()))
		return nil, err
	}
	if revoked {
		return nil, domainErrors.ErrUnauthenticated
	}
	return identity, nil
}

// SignOut revokes the token until it expires and drops the user's order board.
func (u *SessionUseCase) SignOut(ctx context.Context, identity *auth.Identity) error {
	if err := u.revocations.Revoke(ctx, identity.TokenID, identity.ExpiresAt); err != nil {
		u.logger.Error("revoke token failed", slog.String("error", err.Error()))
		return err
	}
	u.orders.SignOut(identity.Owner())
	return nil
}
