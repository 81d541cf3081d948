package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clob_trader/internal/models"
)

func TestSignPayload(t *testing.T) {
	secret := "super-secret"
	canonical := "1700000000POST/order" + `{"tokenID":"t1"}`

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(canonical))
	sum := mac.Sum(nil)

	t.Run("hex", func(t *testing.T) {
		got, err := signPayload(secret, "1700000000", "POST", "/order", `{"tokenID":"t1"}`, "hex")
		require.NoError(t, err)
		assert.Equal(t, hex.EncodeToString(sum), got)
	})

	t.Run("base64", func(t *testing.T) {
		got, err := signPayload(secret, "1700000000", "POST", "/order", `{"tokenID":"t1"}`, "base64")
		require.NoError(t, err)
		assert.Equal(t, base64.StdEncoding.EncodeToString(sum), got)
	})

	t.Run("method-uppercased", func(t *testing.T) {
		lower, err := signPayload(secret, "1700000000", "post", "/order", `{"tokenID":"t1"}`, "hex")
		require.NoError(t, err)
		upper, err := signPayload(secret, "1700000000", "POST", "/order", `{"tokenID":"t1"}`, "hex")
		require.NoError(t, err)
		assert.Equal(t, upper, lower)
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := signPayload(secret, "1700000000", "POST", "/order", "{}", "hex")
		require.NoError(t, err)
		b, err := signPayload(secret, "1700000000", "POST", "/order", "{}", "hex")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("unknown-encoding", func(t *testing.T) {
		_, err := signPayload(secret, "1700000000", "POST", "/order", "{}", "utf7")
		assert.Error(t, err)
	})
}

func TestAuthTimestamp(t *testing.T) {
	now := time.Unix(1700000000, 123*int64(time.Millisecond))
	assert.Equal(t, "1700000000", authTimestamp(now, "s"))
	assert.Equal(t, "1700000000123", authTimestamp(now, "ms"))
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "/", normalizePath(""))
	assert.Equal(t, "/order", normalizePath("order"))
	assert.Equal(t, "/order", normalizePath("/order"))
}

func TestAuthHeaders(t *testing.T) {
	creds := models.Credentials{
		APIKey:        "key-1",
		APISecret:     "sec-1",
		APIPassphrase: "pass-1",
	}
	now := time.Unix(1700000000, 0)

	headers, err := authHeaders(creds, now, "post", "/order", "{}", "hex", "s")
	require.NoError(t, err)

	wantSign, err := signPayload("sec-1", "1700000000", "POST", "/order", "{}", "hex")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"X-API-KEY":        "key-1",
		"X-API-PASSPHRASE": "pass-1",
		"X-API-TIMESTAMP":  "1700000000",
		"X-API-SIGNATURE":  wantSign,
		"Content-Type":     "application/json",
	}, headers)
}
