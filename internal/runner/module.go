package runner

import (
	"context"

	"go.uber.org/fx"

	"clob_trader/internal/modules/config"
	feedsvc "clob_trader/internal/modules/feed/service"
	"clob_trader/internal/notify"
)

func Module() fx.Option {
	return fx.Module("runner",
		fx.Provide(
			func(cfg *config.Config) (notify.Notifier, error) {
				if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
					tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
					if err != nil {
						return nil, err
					}
					return tg, nil
				}
				return notify.NewStdout(), nil
			},
			New,
		),
		fx.Invoke(func(lc fx.Lifecycle, ctx context.Context, r *Runner, updates <-chan feedsvc.Update) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go r.Loop(ctx, updates)
					return nil
				},
			})
		}),
	)
}
