package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"clob_trader/internal/models"
)

// signPayload — HMAC-SHA256 поверх канонической строки
// timestamp + UPPER(method) + path + body. Чистая функция.
func signPayload(secret, timestamp, method, path, body, encoding string) (string, error) {
	payload := timestamp + strings.ToUpper(method) + path + body
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(payload))
	sum := h.Sum(nil)

	switch encoding {
	case "hex":
		return hex.EncodeToString(sum), nil
	case "base64":
		return base64.StdEncoding.EncodeToString(sum), nil
	default:
		return "", fmt.Errorf("unsupported signature encoding %q", encoding)
	}
}

// authTimestamp — unix-время в секундах или миллисекундах, строго по политике.
// Единица зафиксирована на процесс: подпись и заголовок обязаны совпасть бит в бит.
func authTimestamp(now time.Time, unit string) string {
	if unit == "ms" {
		return strconv.FormatInt(now.UnixMilli(), 10)
	}
	return strconv.FormatInt(now.Unix(), 10)
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}

// authHeaders собирает полный набор заголовков для подписанного запроса.
func authHeaders(
	creds models.Credentials,
	now time.Time,
	method, path, body, encoding, timestampUnit string,
) (map[string]string, error) {
	ts := authTimestamp(now, timestampUnit)
	sign, err := signPayload(creds.APISecret, ts, method, path, body, encoding)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"X-API-KEY":        creds.APIKey,
		"X-API-PASSPHRASE": creds.APIPassphrase,
		"X-API-TIMESTAMP":  ts,
		"X-API-SIGNATURE":  sign,
		"Content-Type":     "application/json",
	}, nil
}
