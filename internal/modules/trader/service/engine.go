package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"clob_trader/internal/helper"
	"clob_trader/internal/models"
	auditsvc "clob_trader/internal/modules/audit/service"
	"clob_trader/internal/modules/config"
	"clob_trader/pkg/logger"
)

// Gateway — сабмит ордера на биржу (см. clob/service.Client.PlaceOrder).
type Gateway interface {
	PlaceOrder(ctx context.Context, intent models.OrderIntent) (*models.OrderResult, error)
}

// Engine — воронка гейтов. Порядок фиксирован: первый упавший гейт
// становится причиной вердикта, дальше ничего не вычисляется. Порядок
// менять нельзя — от него зависят детерминированные причины скипов
// (дешёвые/фундаментальные проверки раньше ценовой математики).
type Engine struct {
	cfg     *config.Config
	gw      Gateway
	rec     *auditsvc.Recorder
	ledger  *TradeLedger
	tokens  *TokenIDs
	blocked []Window

	// сериализация оценки+мутации леджера по рынку
	marketLocks sync.Map // slug -> *sync.Mutex

	mu           sync.Mutex
	lastDecision *models.Decision

	now func() time.Time
}

func NewEngine(cfg *config.Config, gw Gateway, rec *auditsvc.Recorder) *Engine {
	return &Engine{
		cfg:     cfg,
		gw:      gw,
		rec:     rec,
		ledger:  NewTradeLedger(cfg.Trading.MaxTradesPerMarket),
		tokens:  &TokenIDs{},
		blocked: ParseWindows(cfg.Trading.BlockedETWindows),
		now:     time.Now,
	}
}

// UpdateTokenIDs — узкий сеттер для token id, найденных маркет-дискавери.
func (e *Engine) UpdateTokenIDs(up, down string) {
	e.tokens.Update(up, down)
}

// StatusLine — человекочитаемый статус последнего решения.
func (e *Engine) StatusLine() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastDecision == nil {
		return ""
	}
	return fmt.Sprintf("AutoTrade: %s | %s", e.lastDecision.Action, e.lastDecision.Reason)
}

// Evaluate прогоняет снапшот через воронку и всегда возвращает вердикт,
// никогда не ошибку: сетевые/аутентификационные сбои сабмита превращаются
// в FAILED и пишутся в ордер-леджер.
func (e *Engine) Evaluate(ctx context.Context, snap models.MarketSnapshot) models.Decision {
	t := &e.cfg.Trading

	if !t.Enabled {
		return e.finish(models.Decision{Action: models.ActionSkip, Reason: "disabled"})
	}

	if !t.DryRun {
		switch t.AccountType {
		case "email", "wallet":
		default:
			return e.finish(models.Decision{Action: models.ActionSkip, Reason: "missing_account_type"})
		}
		if t.PrivateKey == "" {
			return e.finish(models.Decision{Action: models.ActionSkip, Reason: "missing_private_key"})
		}
	}

	if snap.MarketSlug == "" {
		return e.finish(models.Decision{Action: models.ActionSkip, Reason: "missing_market_slug"})
	}

	if !helper.Finite(snap.TimeLeftMin) {
		return e.finish(models.Decision{Action: models.ActionSkip, Reason: "missing_time_left"})
	}

	// Дальше гейты читают/меняют леджер — оценка по одному рынку строго
	// последовательна, чтобы конкурентные тики не проскочили мимо лимита.
	unlock := e.lockMarket(snap.MarketSlug)
	defer unlock()

	// Окно (min, max]: нижняя граница исключена, верхняя включена.
	if snap.TimeLeftMin <= t.MinMinutesLeft || snap.TimeLeftMin > t.MaxMinutesLeft {
		return e.finish(e.skip("outside_time_window", kv{"timeLeftMin", fixed(snap.TimeLeftMin, 2)}))
	}

	if len(e.blocked) > 0 {
		nowMin := etMinutes(e.now())
		for _, w := range e.blocked {
			if w.Contains(nowMin) {
				return e.finish(models.Decision{Action: models.ActionSkip, Reason: "blocked_et_window"})
			}
		}
	}

	if !helper.Finite(snap.PLong) || !helper.Finite(snap.PShort) {
		return e.finish(models.Decision{Action: models.ActionSkip, Reason: "missing_predict"})
	}

	side := models.SideNone
	switch {
	case snap.PLong >= t.MinPredictPct && snap.PLong > snap.PShort:
		side = models.SideUp
	case snap.PShort >= t.MinPredictPct && snap.PShort > snap.PLong:
		side = models.SideDown
	}
	if side == models.SideNone {
		return e.finish(e.skip("predict_below_threshold",
			kv{"pLong", num(snap.PLong)}, kv{"pShort", num(snap.PShort)}))
	}

	heiken := strings.ToLower(snap.HeikenColor)
	expectedColor := side.ExpectedHeikenColor()
	if t.RequireHeikenColor && heiken != expectedColor {
		return e.finish(e.skip("heiken_mismatch",
			kv{"heiken", heiken}, kv{"expectedColor", expectedColor}))
	}

	if t.MinHeikenCount > 0 && snap.HeikenCount < t.MinHeikenCount {
		return e.finish(e.skip("heiken_too_mixed", kv{"heikenCount", strconv.Itoa(snap.HeikenCount)}))
	}

	marketPrice := snap.MarketUp
	if side == models.SideDown {
		marketPrice = snap.MarketDown
	}
	priceCents, ok := helper.CentsFromPrice(marketPrice, t.PriceUnit)
	if !ok {
		return e.finish(models.Decision{Action: models.ActionSkip, Reason: "missing_market_price"})
	}

	if priceCents > t.MaxPriceCents {
		return e.finish(e.skip("price_too_high", kv{"priceCents", num(priceCents)}))
	}

	predictPct := snap.PLong
	if side == models.SideDown {
		predictPct = snap.PShort
	}
	// Сравнение сохранено буквально как в проде: predictPct — доля (0.70),
	// масштабированная на 100. Не "чинить" без пересмотра контракта.
	if t.EnforcePriceVsPredict && priceCents > predictPct*100 {
		return e.finish(e.skip("price_above_predict",
			kv{"priceCents", num(priceCents)}, kv{"predictPct", num(predictPct)}))
	}

	if !helper.Finite(snap.CurrentPrice) || !helper.Finite(snap.PriceToBeat) {
		return e.finish(models.Decision{Action: models.ActionSkip, Reason: "missing_price_to_beat"})
	}

	distance := snap.CurrentPrice - snap.PriceToBeat
	if distance < 0 {
		distance = -distance
	}
	distanceMin := t.MinDistanceQuietUSD
	if strings.HasPrefix(snap.Regime, "TREND") {
		distanceMin = t.MinDistanceVolatileUSD
	}
	if distance < distanceMin {
		return e.finish(e.skip("distance_too_small", kv{"distance", fixed(distance, 2)}))
	}

	if e.ledger.Count(snap.MarketSlug) >= t.MaxTradesPerMarket {
		return e.finish(models.Decision{Action: models.ActionSkip, Reason: "trade_limit_reached"})
	}

	sizeShares, ok := helper.SharesFromUSD(t.OrderUSD, priceCents)
	if !ok || sizeShares <= 0 || !helper.Finite(sizeShares) {
		return e.finish(models.Decision{Action: models.ActionSkip, Reason: "invalid_order_size"})
	}

	tokenID := e.tokens.ForSide(side)
	if tokenID == "" {
		return e.finish(models.Decision{Action: models.ActionSkip, Reason: "missing_token_id"})
	}

	sizeRounded := helper.Round(sizeShares, 4)
	priceRounded := helper.Round(priceCents, 2)
	reason := formatReason("trade_ready",
		kv{"side", string(side)}, kv{"priceCents", num(priceRounded)}, kv{"sizeShares", num(sizeRounded)})

	if t.DryRun {
		return e.finish(e.dryRun(ctx, snap, side, priceRounded, sizeRounded, predictPct, distance, reason))
	}

	return e.finish(e.submit(ctx, snap, side, tokenID, priceRounded, sizeRounded, predictPct, distance, reason))
}

func (e *Engine) dryRun(
	ctx context.Context,
	snap models.MarketSnapshot,
	side models.Side,
	priceRounded, sizeRounded, predictPct, distance float64,
	reason string,
) models.Decision {
	now := e.now()
	mtxOrders.WithLabelValues("dry_run").Inc()
	e.rec.Trade(ctx, auditsvc.TradeRow{
		Timestamp:   now,
		MarketSlug:  snap.MarketSlug,
		Side:        side,
		PriceCents:  priceRounded,
		SizeShares:  sizeRounded,
		PredictPct:  predictPct,
		TimeLeftMin: snap.TimeLeftMin,
		DistanceUSD: distance,
		Reason:      "dry_run",
	})
	e.rec.Order(ctx, auditsvc.OrderRow{
		Timestamp:      now,
		MarketSlug:     snap.MarketSlug,
		Side:           side,
		PriceCents:     priceRounded,
		SizeShares:     sizeRounded,
		Signal:         snap.Signal,
		Recommendation: snap.Recommendation,
		OrderStatus:    "dry_run",
	})

	return models.Decision{Action: models.ActionDryRun, Reason: reason}
}

func (e *Engine) submit(
	ctx context.Context,
	snap models.MarketSnapshot,
	side models.Side,
	tokenID string,
	priceRounded, sizeRounded, predictPct, distance float64,
	reason string,
) models.Decision {
	orderPrice := priceRounded
	if e.cfg.Trading.PriceUnit == "dollars" {
		orderPrice = priceRounded / 100
	}

	order, err := e.gw.PlaceOrder(ctx, models.OrderIntent{
		TokenID:     tokenID,
		Side:        side.ExchangeSide(),
		Price:       orderPrice,
		Size:        sizeRounded,
		Type:        e.cfg.Trading.OrderType,
		TimeInForce: e.cfg.Trading.TimeInForce,
	})
	if err != nil {
		// Сабмит упал — сделки не было, леджер не трогаем.
		mtxOrders.WithLabelValues("failed").Inc()
		e.rec.Order(ctx, auditsvc.OrderRow{
			Timestamp:      e.now(),
			MarketSlug:     snap.MarketSlug,
			Side:           side,
			PriceCents:     priceRounded,
			SizeShares:     sizeRounded,
			Signal:         snap.Signal,
			Recommendation: snap.Recommendation,
			OrderStatus:    "failed",
			Error:          err.Error(),
		})
		return models.Decision{Action: models.ActionFailed, Reason: err.Error()}
	}

	if err := e.ledger.Append(snap.MarketSlug, LedgerEntry{
		Side:     side,
		At:       e.now(),
		OrderRef: order.Ref(),
	}); err != nil {
		// Под пер-маркет локом сюда не попадаем; лог на случай гонки в будущем.
		logger.Error("trade ledger append: %v", err)
	}

	status := order.Status
	if status == "" {
		status = "submitted"
	}
	mtxOrders.WithLabelValues(status).Inc()

	now := e.now()
	e.rec.Trade(ctx, auditsvc.TradeRow{
		Timestamp:   now,
		MarketSlug:  snap.MarketSlug,
		Side:        side,
		PriceCents:  priceRounded,
		SizeShares:  sizeRounded,
		PredictPct:  predictPct,
		TimeLeftMin: snap.TimeLeftMin,
		DistanceUSD: distance,
		Reason:      "submitted",
		OrderID:     order.Ref(),
	})
	e.rec.Order(ctx, auditsvc.OrderRow{
		Timestamp:      now,
		MarketSlug:     snap.MarketSlug,
		Side:           side,
		PriceCents:     priceRounded,
		SizeShares:     sizeRounded,
		Signal:         snap.Signal,
		Recommendation: snap.Recommendation,
		OrderStatus:    status,
		OrderID:        order.Ref(),
	})

	return models.Decision{Action: models.ActionTrade, Reason: reason, Order: order}
}

// finish фиксирует терминальную ветку: lastDecision + метрики.
func (e *Engine) finish(d models.Decision) models.Decision {
	e.mu.Lock()
	e.lastDecision = &d
	e.mu.Unlock()

	mtxDecisions.WithLabelValues(string(d.Action)).Inc()
	if d.Action == models.ActionSkip {
		mtxSkipReasons.WithLabelValues(baseReason(d.Reason)).Inc()
	}
	return d
}

func (e *Engine) lockMarket(slug string) func() {
	v, _ := e.marketLocks.LoadOrStore(slug, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (e *Engine) skip(reason string, pairs ...kv) models.Decision {
	return models.Decision{Action: models.ActionSkip, Reason: formatReason(reason, pairs...)}
}

type kv struct {
	k string
	v string
}

func formatReason(reason string, pairs ...kv) string {
	if len(pairs) == 0 {
		return reason
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.k+"="+p.v)
	}
	return reason + " (" + strings.Join(parts, ", ") + ")"
}

// baseReason отрезает детали в скобках для метрик.
func baseReason(reason string) string {
	if i := strings.IndexByte(reason, ' '); i > 0 {
		return reason[:i]
	}
	return reason
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func fixed(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}
