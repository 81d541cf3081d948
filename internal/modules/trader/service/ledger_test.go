package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clob_trader/internal/models"
)

func TestTradeLedger_CapEnforced(t *testing.T) {
	l := NewTradeLedger(2)

	require.NoError(t, l.Append("btc", LedgerEntry{Side: models.SideUp, At: time.Now()}))
	require.NoError(t, l.Append("btc", LedgerEntry{Side: models.SideDown, At: time.Now()}))
	assert.Equal(t, 2, l.Count("btc"))

	err := l.Append("btc", LedgerEntry{Side: models.SideUp, At: time.Now()})
	assert.ErrorIs(t, err, errTradeCapReached)
	assert.Equal(t, 2, l.Count("btc"))

	// кап пер-маркет: другой slug не задет
	require.NoError(t, l.Append("eth", LedgerEntry{Side: models.SideUp, At: time.Now()}))
	assert.Equal(t, 1, l.Count("eth"))
}

func TestTradeLedger_ZeroCapUnlimited(t *testing.T) {
	l := NewTradeLedger(0)
	for i := 0; i < 10; i++ {
		require.NoError(t, l.Append("btc", LedgerEntry{Side: models.SideUp}))
	}
	assert.Equal(t, 10, l.Count("btc"))
}

func TestTradeLedger_ConcurrentAppendsNeverExceedCap(t *testing.T) {
	const maxTrades = 3
	l := NewTradeLedger(maxTrades)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = l.Append("btc", LedgerEntry{Side: models.SideUp, At: time.Now()})
		}()
	}
	wg.Wait()

	assert.Equal(t, maxTrades, l.Count("btc"))
}
