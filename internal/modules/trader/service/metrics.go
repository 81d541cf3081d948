package service

import "github.com/prometheus/client_golang/prometheus"

var (
	mtxDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trader_decisions_total",
			Help: "Terminal funnel outcomes",
		},
		[]string{"action"},
	)

	// Только базовая метка гейта, без динамических деталей.
	mtxSkipReasons = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trader_skip_reasons_total",
			Help: "Skips split by failing gate",
		},
		[]string{"reason"},
	)

	mtxOrders = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trader_orders_total",
			Help: "Order submissions by result",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(mtxDecisions, mtxSkipReasons, mtxOrders)
}
