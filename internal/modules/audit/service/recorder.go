package service

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	"clob_trader/internal/models"
	"clob_trader/internal/modules/config"
	"clob_trader/pkg/logger"
)

// Схемы фиксированы на хранилище и не меняются от строки к строке.
var (
	tradesHeader = []string{
		"timestamp", "market_slug", "side", "price_cents", "size_shares",
		"predict_pct", "time_left_min", "distance_usd", "reason", "order_id",
	}
	ordersHeader = []string{
		"timestamp", "market_slug", "side", "price_cents", "size_shares",
		"signal", "recommendation", "order_status", "order_id", "error",
	}
)

// TradeRow — строка трейд-леджера (одна на TRADE/DRY_RUN).
type TradeRow struct {
	Timestamp   time.Time
	MarketSlug  string
	Side        models.Side
	PriceCents  float64
	SizeShares  float64
	PredictPct  float64
	TimeLeftMin float64
	DistanceUSD float64
	Reason      string
	OrderID     string
}

// OrderRow — строка ордер-леджера (одна на каждую попытку сабмита, включая FAILED).
type OrderRow struct {
	Timestamp      time.Time
	MarketSlug     string
	Side           models.Side
	PriceCents     float64
	SizeShares     float64
	Signal         string
	Recommendation string
	OrderStatus    string
	OrderID        string
	Error          string
}

// Recorder пишет обе строки в csv и, если настроен DSN, зеркалит в Postgres.
// Ошибки записи аудита не фатальны для тика: логируем и продолжаем —
// I/O журнала не должен ронять торговлю.
type Recorder struct {
	store  *CsvStore
	mirror *PgMirror

	tradesPath string
	ordersPath string
}

func NewRecorder(cfg *config.Config, store *CsvStore, mirror *PgMirror) *Recorder {
	return &Recorder{
		store:      store,
		mirror:     mirror,
		tradesPath: filepath.Join(cfg.LogsDir, "trades.csv"),
		ordersPath: filepath.Join(cfg.LogsDir, "orders.csv"),
	}
}

func (r *Recorder) Trade(ctx context.Context, row TradeRow) {
	rec := []string{
		row.Timestamp.UTC().Format(time.RFC3339),
		row.MarketSlug,
		string(row.Side),
		formatNum(row.PriceCents),
		formatNum(row.SizeShares),
		formatNum(row.PredictPct),
		strconv.FormatFloat(row.TimeLeftMin, 'f', 3, 64),
		strconv.FormatFloat(row.DistanceUSD, 'f', 2, 64),
		row.Reason,
		row.OrderID,
	}
	if err := r.store.Append(r.tradesPath, tradesHeader, rec); err != nil {
		logger.Warn("audit: trades.csv append failed: %v", err)
	}
	if r.mirror != nil {
		if err := r.mirror.InsertTrade(ctx, row); err != nil {
			logger.Warn("audit: pg mirror trade insert failed: %v", err)
		}
	}
}

func (r *Recorder) Order(ctx context.Context, row OrderRow) {
	rec := []string{
		row.Timestamp.UTC().Format(time.RFC3339),
		row.MarketSlug,
		string(row.Side),
		formatNum(row.PriceCents),
		formatNum(row.SizeShares),
		row.Signal,
		row.Recommendation,
		row.OrderStatus,
		row.OrderID,
		row.Error,
	}
	if err := r.store.Append(r.ordersPath, ordersHeader, rec); err != nil {
		logger.Warn("audit: orders.csv append failed: %v", err)
	}
	if r.mirror != nil {
		if err := r.mirror.InsertOrder(ctx, row); err != nil {
			logger.Warn("audit: pg mirror order insert failed: %v", err)
		}
	}
}

func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
