package service

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"clob_trader/internal/models"
	"clob_trader/internal/modules/config"
)

const deriveAPIKeyPath = "/auth/derive-api-key"

// WalletSigner — внешняя подпись L1-аутентификации кошельком.
// Криптография приватного ключа остаётся снаружи процесса.
type WalletSigner interface {
	SignAuthMessage(ctx context.Context, timestamp string, nonce uint64) (address, signature string, err error)
}

// HTTPDeriver получает user-креды у биржи: GET /auth/derive-api-key
// с L1-заголовками POLY_*.
type HTTPDeriver struct {
	baseURL string
	http    *http.Client
	signer  WalletSigner
}

func NewHTTPDeriver(cfg *config.Config, signer WalletSigner) *HTTPDeriver {
	return &HTTPDeriver{
		baseURL: cfg.ClobBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		signer:  signer,
	}
}

func (d *HTTPDeriver) Derive(ctx context.Context) (models.Credentials, error) {
	ts := strconv.FormatInt(time.Now().Unix(), 10)

	address, signature, err := d.signer.SignAuthMessage(ctx, ts, 0)
	if err != nil {
		return models.Credentials{}, errors.Wrap(err, "sign auth message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+deriveAPIKeyPath, nil)
	if err != nil {
		return models.Credentials{}, errors.Wrap(err, "new request")
	}
	req.Header.Set("POLY_ADDRESS", address)
	req.Header.Set("POLY_SIGNATURE", signature)
	req.Header.Set("POLY_TIMESTAMP", ts)
	req.Header.Set("POLY_NONCE", "0")

	resp, err := d.http.Do(req)
	if err != nil {
		return models.Credentials{}, errors.Wrap(err, "derive request")
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return models.Credentials{}, errors.Errorf("derive http %d: %s", resp.StatusCode, string(data))
	}

	var creds models.Credentials
	if err := sonic.Unmarshal(data, &creds); err != nil {
		return models.Credentials{}, errors.Wrapf(err, "derive decode: %s", string(data))
	}

	return creds, nil
}

// RemoteSigner делегирует подпись signer-сайдкару (env POLYMARKET_SIGNER_URL).
// Сайдкар держит приватный ключ у себя и возвращает адрес + подпись.
type RemoteSigner struct {
	url  string
	http *http.Client
}

func NewRemoteSigner(cfg *config.Config) *RemoteSigner {
	return &RemoteSigner{
		url:  cfg.SignerURL,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *RemoteSigner) SignAuthMessage(ctx context.Context, timestamp string, nonce uint64) (string, string, error) {
	if s.url == "" {
		return "", "", errors.New("signer url is not configured")
	}

	payload, err := sonic.Marshal(map[string]any{
		"timestamp": timestamp,
		"nonce":     nonce,
	})
	if err != nil {
		return "", "", errors.Wrap(err, "marshal sign request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return "", "", errors.Wrap(err, "new request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return "", "", errors.Wrap(err, "sign request")
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode/100 != 2 {
		return "", "", errors.Errorf("signer http %d: %s", resp.StatusCode, string(data))
	}

	var r struct {
		Address   string `json:"address"`
		Signature string `json:"signature"`
	}
	if err := sonic.Unmarshal(data, &r); err != nil {
		return "", "", errors.Wrapf(err, "signer decode: %s", string(data))
	}
	if r.Address == "" || r.Signature == "" {
		return "", "", errors.Errorf("signer returned empty address/signature: %s", string(data))
	}

	return r.Address, r.Signature, nil
}
