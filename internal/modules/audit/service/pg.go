package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"clob_trader/pkg/db"
)

// PgMirror — необязательное зеркало аудита в Postgres. Источник правды —
// csv; зеркало нужно для ad-hoc запросов по истории решений.
type PgMirror struct {
	tx *db.PgTxManager
}

func NewPgMirror(tx *db.PgTxManager) *PgMirror {
	return &PgMirror{tx: tx}
}

const createTablesSQL = `
CREATE TABLE IF NOT EXISTS trade_log (
    id            BIGSERIAL PRIMARY KEY,
    ts            TIMESTAMPTZ NOT NULL,
    market_slug   TEXT NOT NULL,
    side          TEXT NOT NULL,
    price_cents   DOUBLE PRECISION NOT NULL,
    size_shares   DOUBLE PRECISION NOT NULL,
    predict_pct   DOUBLE PRECISION NOT NULL,
    time_left_min DOUBLE PRECISION NOT NULL,
    distance_usd  DOUBLE PRECISION NOT NULL,
    reason        TEXT NOT NULL,
    order_id      TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS order_log (
    id             BIGSERIAL PRIMARY KEY,
    ts             TIMESTAMPTZ NOT NULL,
    market_slug    TEXT NOT NULL,
    side           TEXT NOT NULL,
    price_cents    DOUBLE PRECISION NOT NULL,
    size_shares    DOUBLE PRECISION NOT NULL,
    signal         TEXT NOT NULL DEFAULT '',
    recommendation TEXT NOT NULL DEFAULT '',
    order_status   TEXT NOT NULL DEFAULT '',
    order_id       TEXT NOT NULL DEFAULT '',
    error          TEXT NOT NULL DEFAULT ''
);`

func (m *PgMirror) Init(ctx context.Context) error {
	return m.tx.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, createTablesSQL)
		return err
	})
}

func (m *PgMirror) InsertTrade(ctx context.Context, row TradeRow) error {
	return m.tx.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx,
			`INSERT INTO trade_log (ts, market_slug, side, price_cents, size_shares, predict_pct, time_left_min, distance_usd, reason, order_id)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			row.Timestamp, row.MarketSlug, string(row.Side), row.PriceCents, row.SizeShares,
			row.PredictPct, row.TimeLeftMin, row.DistanceUSD, row.Reason, row.OrderID,
		)
		return err
	})
}

func (m *PgMirror) InsertOrder(ctx context.Context, row OrderRow) error {
	return m.tx.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx,
			`INSERT INTO order_log (ts, market_slug, side, price_cents, size_shares, signal, recommendation, order_status, order_id, error)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
			row.Timestamp, row.MarketSlug, string(row.Side), row.PriceCents, row.SizeShares,
			row.Signal, row.Recommendation, row.OrderStatus, row.OrderID, row.Error,
		)
		return err
	})
}
