package audit

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"clob_trader/internal/modules/audit/service"
	"clob_trader/internal/modules/config"
	"clob_trader/pkg/db"
)

func Module() fx.Option {
	return fx.Module("audit",
		fx.Provide(
			service.NewCsvStore,
			// Зеркало опционально: без DSN отдаём nil, Recorder это понимает.
			func(ctx context.Context, cfg *config.Config) (*service.PgMirror, error) {
				if cfg.DB == "" {
					return nil, nil
				}
				pool, err := db.NewPool(ctx, db.PoolConfig{DSN: cfg.DB})
				if err != nil {
					return nil, fmt.Errorf("failed to create audit pool: %w", err)
				}
				if err := pool.Ping(ctx); err != nil {
					return nil, err
				}
				return service.NewPgMirror(db.NewPgTxManager(pool)), nil
			},
			service.NewRecorder,
		),
		fx.Invoke(func(lc fx.Lifecycle, mirror *service.PgMirror) {
			if mirror == nil {
				return
			}
			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return mirror.Init(ctx)
				},
			})
		}),
	)
}
