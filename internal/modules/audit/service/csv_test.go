package service

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clob_trader/internal/models"
	"clob_trader/internal/modules/config"
	"clob_trader/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func readCsv(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCsvStore_HeaderWrittenOnce(t *testing.T) {
	s := NewCsvStore()
	path := filepath.Join(t.TempDir(), "sub", "ledger.csv")
	header := []string{"a", "b"}

	require.NoError(t, s.Append(path, header, []string{"1", "2"}))
	require.NoError(t, s.Append(path, header, []string{"3", "4"}))

	rows := readCsv(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, []string{"1", "2"}, rows[1])
	assert.Equal(t, []string{"3", "4"}, rows[2])
}

func TestCsvStore_NeverTruncatesExisting(t *testing.T) {
	s := NewCsvStore()
	path := filepath.Join(t.TempDir(), "ledger.csv")

	require.NoError(t, s.Append(path, []string{"a"}, []string{"old"}))

	// новый экземпляр стора видит существующий файл и только дописывает
	require.NoError(t, NewCsvStore().Append(path, []string{"a"}, []string{"new"}))

	rows := readCsv(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"old"}, rows[1])
	assert.Equal(t, []string{"new"}, rows[2])
}

func TestRecorder_WritesBothLedgers(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{LogsDir: dir}
	r := NewRecorder(cfg, NewCsvStore(), nil)

	at := time.Date(2026, 1, 15, 14, 45, 30, 0, time.UTC)
	r.Trade(context.Background(), TradeRow{
		Timestamp:   at,
		MarketSlug:  "btc-up-or-down-15m",
		Side:        models.SideUp,
		PriceCents:  80,
		SizeShares:  12.5,
		PredictPct:  0.7,
		TimeLeftMin: 7,
		DistanceUSD: 100,
		Reason:      "submitted",
		OrderID:     "ord-42",
	})
	r.Order(context.Background(), OrderRow{
		Timestamp:      at,
		MarketSlug:     "btc-up-or-down-15m",
		Side:           models.SideUp,
		PriceCents:     80,
		SizeShares:     12.5,
		Signal:         "LONG",
		Recommendation: "ENTER",
		OrderStatus:    "live",
		OrderID:        "ord-42",
	})

	trades := readCsv(t, filepath.Join(dir, "trades.csv"))
	require.Len(t, trades, 2)
	assert.Equal(t, []string{
		"timestamp", "market_slug", "side", "price_cents", "size_shares",
		"predict_pct", "time_left_min", "distance_usd", "reason", "order_id",
	}, trades[0])
	assert.Equal(t, []string{
		"2026-01-15T14:45:30Z", "btc-up-or-down-15m", "UP", "80", "12.5",
		"0.7", "7.000", "100.00", "submitted", "ord-42",
	}, trades[1])

	orders := readCsv(t, filepath.Join(dir, "orders.csv"))
	require.Len(t, orders, 2)
	assert.Equal(t, []string{
		"timestamp", "market_slug", "side", "price_cents", "size_shares",
		"signal", "recommendation", "order_status", "order_id", "error",
	}, orders[0])
	assert.Equal(t, []string{
		"2026-01-15T14:45:30Z", "btc-up-or-down-15m", "UP", "80", "12.5",
		"LONG", "ENTER", "live", "ord-42", "",
	}, orders[1])
}

func TestRecorder_AppendFailureIsNonFatal(t *testing.T) {
	dir := t.TempDir()
	// каталог вместо файла: Append упадёт, но Trade не должен паниковать
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "trades.csv"), 0o755))

	cfg := &config.Config{LogsDir: dir}
	r := NewRecorder(cfg, NewCsvStore(), nil)

	assert.NotPanics(t, func() {
		r.Trade(context.Background(), TradeRow{Timestamp: time.Now(), MarketSlug: "btc"})
	})
}
