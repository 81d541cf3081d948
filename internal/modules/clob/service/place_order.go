package service

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"clob_trader/internal/models"
	"clob_trader/pkg/logger"
)

// PlaceOrder сериализует интент, подписывает запрос и классифицирует ответ.
// Ошибки: ErrMissingPrivateKey / *DerivationError (креды),
// *AuthRejectedError (401), *GatewayError (любой другой не-2xx).
func (c *Client) PlaceOrder(ctx context.Context, intent models.OrderIntent) (*models.OrderResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "clob.place_order")
	defer span.Finish()

	reqID := uuid.NewString()
	span.SetTag("request_id", reqID)
	span.SetTag("token_id", intent.TokenID)

	creds, err := c.creds.Credentials(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := sonic.Marshal(intent)
	if err != nil {
		return nil, errors.Wrap(err, "marshal order")
	}

	requestPath := normalizePath(c.cfg.Trading.OrderPath)
	headers, err := authHeaders(
		creds,
		c.now(),
		http.MethodPost,
		requestPath,
		string(payload),
		c.cfg.Trading.SignatureEncoding,
		c.cfg.Trading.TimestampUnit,
	)
	if err != nil {
		return nil, err
	}

	target, err := c.requestURL(requestPath)
	if err != nil {
		return nil, errors.Wrap(err, "resolve order url")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	logger.Info("CLOB order submit request_id=%s token=%s side=%s price=%.2f size=%.4f",
		reqID, intent.TokenID, intent.Side, intent.Price, intent.Size)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "CLOB order request")
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized {
			return nil, &AuthRejectedError{Status: resp.StatusCode, Body: string(data)}
		}
		return nil, &GatewayError{Status: resp.StatusCode, Body: string(data)}
	}

	var result models.OrderResult
	if err := sonic.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrapf(err, "decode order ack: %s", string(data))
	}

	logger.Info("CLOB order accepted request_id=%s order_id=%s status=%s", reqID, result.Ref(), result.Status)
	return &result, nil
}
