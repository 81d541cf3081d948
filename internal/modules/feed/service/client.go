package service

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"clob_trader/internal/models"
	"clob_trader/internal/modules/config"
	healthsvc "clob_trader/internal/modules/health/service"
	"clob_trader/pkg/logger"
)

// wireSnapshot — сообщение коллектора сигналов. Отсутствующие числа
// приходят как null, поэтому указатели.
type wireSnapshot struct {
	MarketSlug     string   `json:"market_slug"`
	TimeLeftMin    *float64 `json:"time_left_min"`
	PLong          *float64 `json:"p_long"`
	PShort         *float64 `json:"p_short"`
	HeikenColor    string   `json:"heiken_color"`
	HeikenCount    int      `json:"heiken_count"`
	MarketUp       *float64 `json:"market_up"`
	MarketDown     *float64 `json:"market_down"`
	PriceToBeat    *float64 `json:"price_to_beat"`
	CurrentPrice   *float64 `json:"current_price"`
	Regime         string   `json:"regime"`
	Signal         string   `json:"signal"`
	Recommendation string   `json:"recommendation"`

	// Маркет-дискавери прокидывает найденные token id вместе со снапшотом.
	UpTokenID   string `json:"up_token_id"`
	DownTokenID string `json:"down_token_id"`
}

// Update — что отдаём наружу (стрим в раннер).
type Update struct {
	Snapshot    models.MarketSnapshot
	UpTokenID   string
	DownTokenID string
}

type Client struct {
	cfg      *config.Config
	wsDialer *websocket.Dialer
	state    *healthsvc.State
}

func NewClient(cfg *config.Config, state *healthsvc.State) *Client {
	return &Client{
		cfg:      cfg,
		wsDialer: &websocket.Dialer{},
		state:    state,
	}
}

// Start держит соединение с коллектором и льёт снапшоты в out.
// Реконнект с экспоненциальным бэкоффом до 30с.
func (c *Client) Start(ctx context.Context, out chan<- Update) {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := c.wsDialer.DialContext(ctx, c.cfg.Feed.WSURL, nil)
		if err != nil {
			logger.Warn("feed: dial %s failed: %v (retry in %s)", c.cfg.Feed.WSURL, err, backoff)
			if !sleepCtx(ctx, backoff) {
				return
			}
			if backoff *= 2; backoff > 30*time.Second {
				backoff = 30 * time.Second
			}
			continue
		}

		logger.Info("feed: connected to %s", c.cfg.Feed.WSURL)
		c.state.SetWSConnected(true)
		backoff = time.Second

		c.readLoop(ctx, conn, out)

		c.state.SetWSConnected(false)
		logger.Warn("feed: connection lost")
	}
}

func (c *Client) readLoop(ctx context.Context, conn *websocket.Conn, out chan<- Update) {
	done := make(chan struct{})
	defer close(done)

	// рвём блокирующий ReadMessage при остановке приложения
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
			_ = conn.Close()
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				logger.Warn("feed: read: %v", err)
			}
			return
		}

		var w wireSnapshot
		if err := sonic.Unmarshal(data, &w); err != nil {
			logger.Warn("feed: bad snapshot payload: %v", err)
			continue
		}

		upd := Update{
			Snapshot:    toSnapshot(w),
			UpTokenID:   w.UpTokenID,
			DownTokenID: w.DownTokenID,
		}

		select {
		case out <- upd:
		case <-ctx.Done():
			return
		}
	}
}

func toSnapshot(w wireSnapshot) models.MarketSnapshot {
	return models.MarketSnapshot{
		MarketSlug:     w.MarketSlug,
		TimeLeftMin:    orMissing(w.TimeLeftMin),
		PLong:          orMissing(w.PLong),
		PShort:         orMissing(w.PShort),
		HeikenColor:    w.HeikenColor,
		HeikenCount:    w.HeikenCount,
		MarketUp:       orMissing(w.MarketUp),
		MarketDown:     orMissing(w.MarketDown),
		PriceToBeat:    orMissing(w.PriceToBeat),
		CurrentPrice:   orMissing(w.CurrentPrice),
		Regime:         w.Regime,
		Signal:         w.Signal,
		Recommendation: w.Recommendation,
	}
}

func orMissing(v *float64) float64 {
	if v == nil {
		return models.Missing()
	}
	return *v
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
