package service

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"clob_trader/internal/models"
)

var errTradeCapReached = errors.New("trade cap reached for market")

type LedgerEntry struct {
	Side     models.Side
	At       time.Time
	OrderRef string
}

// TradeLedger — ограниченный пер-маркет список сделок процесса.
// Инвариант: длина списка по ключу никогда не превышает cap,
// Append сам его enforce'ит (а не только гейт в движке).
type TradeLedger struct {
	mu       sync.Mutex
	cap      int
	byMarket map[string][]LedgerEntry
}

func NewTradeLedger(capPerMarket int) *TradeLedger {
	return &TradeLedger{
		cap:      capPerMarket,
		byMarket: make(map[string][]LedgerEntry),
	}
}

func (l *TradeLedger) Count(slug string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byMarket[slug])
}

func (l *TradeLedger) Append(slug string, e LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries := l.byMarket[slug]
	if l.cap > 0 && len(entries) >= l.cap {
		return errTradeCapReached
	}
	l.byMarket[slug] = append(entries, e)
	return nil
}
