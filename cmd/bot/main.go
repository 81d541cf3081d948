package main

import (
	"context"
	"log"

	"go.uber.org/fx"

	"clob_trader/internal/modules/audit"
	"clob_trader/internal/modules/clob"
	"clob_trader/internal/modules/config"
	"clob_trader/internal/modules/feed"
	"clob_trader/internal/modules/health"
	"clob_trader/internal/modules/trader"
	"clob_trader/internal/runner"
	"clob_trader/pkg/logger"
	"clob_trader/pkg/tracing"
)

const serviceName = "clob_trader"

func main() {
	if err := logger.Init(); err != nil {
		log.Fatal(err)
	}
	logger.SetServiceName(serviceName)
	tracing.SetServiceName(serviceName)

	app := fx.New(
		fx.Provide(
			// общий контекст приложения, отменяется на останове
			func(lc fx.Lifecycle) context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				lc.Append(fx.Hook{
					OnStop: func(context.Context) error {
						cancel()
						return nil
					},
				})
				return ctx
			},
		),
		config.Module(),
		clob.Module(),
		audit.Module(),
		trader.Module(),
		feed.Module(),
		health.Module(),
		runner.Module(),
		fx.Invoke(initTracing),
	)
	app.Run()
}

func initTracing(lc fx.Lifecycle, cfg *config.Config) error {
	if cfg.Jaeger.Host == "" {
		return nil
	}
	_, closeFn, err := tracing.InitTracer(tracing.Config{
		Host: cfg.Jaeger.Host,
		Port: cfg.Jaeger.Port,
	})
	if err != nil {
		return err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			closeFn()
			return nil
		},
	})
	return nil
}
