package auth

import (
	"fmt"
	"os"

	"go.uber.org/fx"

	"github.com/polkiloo/drinkshop/internal/config"
)

// Module provides identity token verification via fx.
var Module = fx.Options(
	fx.Provide(newTokenStrategy),
)

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) (Strategy, error) {
	opts := Options{
		Issuer:   p.Config.IdentityIssuer,
		Audience: p.Config.IdentityAudience,
	}
	if p.Config.IdentityPublicKeyFile != "" {
		pem, err := os.ReadFile(p.Config.IdentityPublicKeyFile)
		if err != nil {
			return nil, fmt.Errorf("read identity public key: %w", err)
		}
		return NewRSAStrategy(pem, opts)
	}
	return NewHMACStrategy(p.Config.IdentitySecret, opts), nil
}
