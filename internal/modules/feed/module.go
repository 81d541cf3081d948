package feed

import (
	"context"

	"go.uber.org/fx"

	"clob_trader/internal/modules/config"
	"clob_trader/internal/modules/feed/service"
	"clob_trader/pkg/logger"
)

func newUpdatesChan() chan service.Update {
	return make(chan service.Update, 64)
}
func asSendOnlyUpdates(ch chan service.Update) chan<- service.Update { return ch }
func asRecvOnlyUpdates(ch chan service.Update) <-chan service.Update { return ch }

func Module() fx.Option {
	return fx.Module("feed",
		fx.Provide(
			newUpdatesChan,
			asSendOnlyUpdates,
			asRecvOnlyUpdates,
			service.NewClient,
		),
		fx.Invoke(func(lc fx.Lifecycle, ctx context.Context, cfg *config.Config, c *service.Client, out chan<- service.Update) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					if cfg.Feed.WSURL == "" {
						logger.Warn("feed: ws url is not configured, snapshot stream disabled")
						return nil
					}
					go c.Start(ctx, out)
					return nil
				},
			})
		}),
	)
}
