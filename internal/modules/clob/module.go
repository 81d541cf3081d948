package clob

import (
	"go.uber.org/fx"

	"clob_trader/internal/modules/clob/service"
	"clob_trader/internal/modules/config"
)

func Module() fx.Option {
	return fx.Module("clob",
		fx.Provide(
			func(cfg *config.Config) service.WalletSigner { return service.NewRemoteSigner(cfg) },
			func(cfg *config.Config, signer service.WalletSigner) service.Deriver {
				return service.NewHTTPDeriver(cfg, signer)
			},
			service.NewCredentialProvider,
			service.NewClient,
		),
	)
}
