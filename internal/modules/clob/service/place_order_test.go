package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clob_trader/internal/models"
)

func testClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	cfg := clobConfig()
	cfg.ClobBaseURL = baseURL
	cfg.Trading.APIKey = "key-1"
	cfg.Trading.APISecret = "sec-1"
	cfg.Trading.APIPassphrase = "pass-1"

	c := NewClient(cfg, NewCredentialProvider(cfg, nil))
	c.now = func() time.Time { return time.Unix(1700000000, 0) }
	return c
}

func sampleIntent() models.OrderIntent {
	return models.OrderIntent{
		TokenID:     "tok-up",
		Side:        "buy",
		Price:       80,
		Size:        12.5,
		Type:        "limit",
		TimeInForce: "gtc",
	}
}

func TestPlaceOrder_SignsAndParsesAck(t *testing.T) {
	var gotBody []byte
	var gotHeaders http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotHeaders = r.Header.Clone()
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/order", r.URL.Path)
		_, _ = w.Write([]byte(`{"order_id":"ord-42","status":"live"}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	result, err := c.PlaceOrder(context.Background(), sampleIntent())
	require.NoError(t, err)
	assert.Equal(t, "ord-42", result.Ref())
	assert.Equal(t, "live", result.Status)

	var sent models.OrderIntent
	require.NoError(t, sonic.Unmarshal(gotBody, &sent))
	assert.Equal(t, sampleIntent(), sent)

	// подпись пересчитывается из тех же ингредиентов и обязана совпасть
	wantSign, err := signPayload("sec-1", "1700000000", "POST", "/order", string(gotBody), "hex")
	require.NoError(t, err)
	assert.Equal(t, "key-1", gotHeaders.Get("X-API-KEY"))
	assert.Equal(t, "pass-1", gotHeaders.Get("X-API-PASSPHRASE"))
	assert.Equal(t, "1700000000", gotHeaders.Get("X-API-TIMESTAMP"))
	assert.Equal(t, wantSign, gotHeaders.Get("X-API-SIGNATURE"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
}

func TestPlaceOrder_AuthRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Unauthorized"}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.PlaceOrder(context.Background(), sampleIntent())
	require.Error(t, err)

	var authErr *AuthRejectedError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.Status)
	assert.Contains(t, authErr.Body, "Unauthorized")
	assert.Contains(t, err.Error(), "builder API keys")
}

func TestPlaceOrder_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("maintenance"))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.PlaceOrder(context.Background(), sampleIntent())
	require.Error(t, err)

	var gwErr *GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusServiceUnavailable, gwErr.Status)
	assert.Equal(t, "maintenance", gwErr.Body)

	var authErr *AuthRejectedError
	assert.False(t, errors.As(err, &authErr))
}

func TestPlaceOrder_CredsErrorShortCircuits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("request must not reach the exchange without credentials")
	}))
	defer srv.Close()

	cfg := clobConfig()
	cfg.ClobBaseURL = srv.URL
	cfg.Trading.PrivateKey = ""

	c := NewClient(cfg, NewCredentialProvider(cfg, nil))
	_, err := c.PlaceOrder(context.Background(), sampleIntent())
	assert.ErrorIs(t, err, ErrMissingPrivateKey)
}
