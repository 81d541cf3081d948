package service

import (
	"math"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToSnapshot_NullsBecomeMissing(t *testing.T) {
	payload := []byte(`{
		"market_slug": "btc-up-or-down-15m",
		"time_left_min": 7.2,
		"p_long": 0.70,
		"p_short": null,
		"heiken_color": "green",
		"heiken_count": 3,
		"market_up": 80,
		"market_down": null,
		"price_to_beat": 65000,
		"current_price": null,
		"regime": "RANGE",
		"signal": "LONG",
		"recommendation": "ENTER",
		"up_token_id": "tok-up",
		"down_token_id": "tok-down"
	}`)

	var w wireSnapshot
	require.NoError(t, sonic.Unmarshal(payload, &w))

	snap := toSnapshot(w)
	assert.Equal(t, "btc-up-or-down-15m", snap.MarketSlug)
	assert.InDelta(t, 7.2, snap.TimeLeftMin, 1e-9)
	assert.InDelta(t, 0.70, snap.PLong, 1e-9)
	assert.True(t, math.IsNaN(snap.PShort))
	assert.InDelta(t, 80.0, snap.MarketUp, 1e-9)
	assert.True(t, math.IsNaN(snap.MarketDown))
	assert.True(t, math.IsNaN(snap.CurrentPrice))
	assert.Equal(t, 3, snap.HeikenCount)
	assert.Equal(t, "ENTER", snap.Recommendation)
	assert.Equal(t, "tok-up", w.UpTokenID)
	assert.Equal(t, "tok-down", w.DownTokenID)
}

func TestToSnapshot_OmittedFieldsAreMissing(t *testing.T) {
	var w wireSnapshot
	require.NoError(t, sonic.Unmarshal([]byte(`{"market_slug":"eth"}`), &w))

	snap := toSnapshot(w)
	assert.True(t, math.IsNaN(snap.TimeLeftMin))
	assert.True(t, math.IsNaN(snap.PLong))
	assert.True(t, math.IsNaN(snap.PriceToBeat))
	assert.Equal(t, "", snap.HeikenColor)
}
