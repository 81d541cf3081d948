package service

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrMissingPrivateKey — нет ни статических кред, ни приватного ключа.
var ErrMissingPrivateKey = errors.New("missing private key for CLOB authentication")

var errIncompleteTriple = errors.New("missing CLOB API credentials after derivation")

// DerivationError — внешняя деривация кред упала или вернула неполную тройку.
type DerivationError struct {
	Err error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("derive CLOB API credentials: %v", e.Err)
}

func (e *DerivationError) Unwrap() error { return e.Err }

// AuthRejectedError — 401 от биржи. У Polymarket два несовместимых класса
// ключей: builder-ключи со страницы настроек не проходят аутентификацию
// ордеров, поэтому в текст ошибки сразу кладём подсказку.
type AuthRejectedError struct {
	Status int
	Body   string
}

func (e *AuthRejectedError) Error() string {
	return fmt.Sprintf(
		"CLOB order error: %d %s "+
			"(Check that you are using user API credentials derived from your private key; "+
			"builder API keys from the Polymarket settings page cannot authenticate orders.)",
		e.Status, e.Body,
	)
}

// GatewayError — любой другой не-2xx ответ, тело отдаём как есть.
type GatewayError struct {
	Status int
	Body   string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("CLOB order error: %d %s", e.Status, e.Body)
}
