package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindows(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, ParseWindows(""))
	})

	t.Run("single", func(t *testing.T) {
		got := ParseWindows("09:30-10:15")
		require.Len(t, got, 1)
		assert.Equal(t, Window{StartMin: 9*60 + 30, EndMin: 10*60 + 15}, got[0])
	})

	t.Run("multiple-with-spaces", func(t *testing.T) {
		got := ParseWindows(" 09:30-10:15 , 15:45-16:00 ")
		require.Len(t, got, 2)
		assert.Equal(t, Window{StartMin: 15*60 + 45, EndMin: 16 * 60}, got[1])
	})

	t.Run("garbage-chunks-skipped", func(t *testing.T) {
		got := ParseWindows("garbage,09:30-10:15,xx:yy-10:00,,")
		require.Len(t, got, 1)
		assert.Equal(t, 9*60+30, got[0].StartMin)
	})

	t.Run("hour-only", func(t *testing.T) {
		got := ParseWindows("9-10")
		require.Len(t, got, 1)
		assert.Equal(t, Window{StartMin: 9 * 60, EndMin: 10 * 60}, got[0])
	})
}

func TestWindowContains(t *testing.T) {
	w := Window{StartMin: 9*60 + 30, EndMin: 10*60 + 15}
	assert.False(t, w.Contains(9*60+29))
	assert.True(t, w.Contains(9*60+30))
	assert.True(t, w.Contains(10*60))
	assert.True(t, w.Contains(10*60+15))
	assert.False(t, w.Contains(10*60+16))
}

func TestWindowContains_MidnightWrap(t *testing.T) {
	// 23:30-00:15 — окно через полночь
	w := Window{StartMin: 23*60 + 30, EndMin: 15}
	assert.True(t, w.Contains(23*60+45))
	assert.True(t, w.Contains(0))
	assert.True(t, w.Contains(15))
	assert.False(t, w.Contains(16))
	assert.False(t, w.Contains(23*60+29))
	assert.False(t, w.Contains(12*60))
}

func TestEtMinutes(t *testing.T) {
	// январь: EST = UTC-5, поэтому 14:45 UTC = 09:45 ET
	winter := time.Date(2026, 1, 15, 14, 45, 0, 0, time.UTC)
	assert.Equal(t, 9*60+45, etMinutes(winter))

	// июль: EDT = UTC-4
	summer := time.Date(2026, 7, 15, 14, 45, 0, 0, time.UTC)
	assert.Equal(t, 10*60+45, etMinutes(summer))
}
