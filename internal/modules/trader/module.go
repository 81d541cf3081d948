package trader

import (
	"go.uber.org/fx"

	clobsvc "clob_trader/internal/modules/clob/service"
	"clob_trader/internal/modules/trader/service"
)

func Module() fx.Option {
	return fx.Module("trader",
		fx.Provide(
			func(c *clobsvc.Client) service.Gateway { return c },
			service.NewEngine,
		),
	)
}
