package models

// Action — терминальный исход воронки. Всегда возвращается значением,
// никогда не паникой/ошибкой наружу.
type Action string

const (
	ActionSkip   Action = "SKIP"
	ActionDryRun Action = "DRY_RUN"
	ActionTrade  Action = "TRADE"
	ActionFailed Action = "FAILED"
)

type Decision struct {
	Action Action
	Reason string
	Order  *OrderResult // только для TRADE
}
