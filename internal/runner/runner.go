package runner

import (
	"context"
	"time"

	"clob_trader/internal/models"
	feedsvc "clob_trader/internal/modules/feed/service"
	healthsvc "clob_trader/internal/modules/health/service"
	tradersvc "clob_trader/internal/modules/trader/service"
	"clob_trader/internal/notify"
	"clob_trader/pkg/logger"
)

// Runner гонит снапшоты из фида через движок: одна оценка на тик.
type Runner struct {
	engine *tradersvc.Engine
	n      notify.Notifier
	state  *healthsvc.State
}

func New(engine *tradersvc.Engine, n notify.Notifier, state *healthsvc.State) *Runner {
	return &Runner{
		engine: engine,
		n:      n,
		state:  state,
	}
}

func (r *Runner) Loop(ctx context.Context, updates <-chan feedsvc.Update) {
	logger.Info("runner: evaluation loop started")
	for {
		select {
		case <-ctx.Done():
			logger.Info("runner: evaluation loop stopped")
			return
		case upd, ok := <-updates:
			if !ok {
				logger.Info("runner: updates channel closed")
				return
			}
			r.onUpdate(ctx, upd)
		}
	}
}

func (r *Runner) onUpdate(ctx context.Context, upd feedsvc.Update) {
	r.state.TouchTick(time.Now())
	r.state.SetReady(true)

	if upd.UpTokenID != "" || upd.DownTokenID != "" {
		r.engine.UpdateTokenIDs(upd.UpTokenID, upd.DownTokenID)
	}

	d := r.engine.Evaluate(ctx, upd.Snapshot)

	switch d.Action {
	case models.ActionTrade:
		r.n.Sendf("✅ TRADE %s | %s", upd.Snapshot.MarketSlug, d.Reason)
	case models.ActionDryRun:
		r.n.Sendf("🧪 DRY_RUN %s | %s", upd.Snapshot.MarketSlug, d.Reason)
	case models.ActionFailed:
		r.n.Sendf("❗️ FAILED %s | %s", upd.Snapshot.MarketSlug, d.Reason)
	}

	logger.Info("%s", r.engine.StatusLine())
}
