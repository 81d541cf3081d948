package service

import (
	"net/http"
	"net/url"
	"time"

	"clob_trader/internal/modules/config"
)

// Client — подписанный HTTP-доступ к CLOB.
type Client struct {
	cfg   *config.Config
	http  *http.Client
	creds *CredentialProvider

	now func() time.Time
}

func NewClient(cfg *config.Config, creds *CredentialProvider) *Client {
	return &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: 10 * time.Second},
		creds: creds,
		now:   time.Now,
	}
}

// requestURL резолвит путь относительно базового URL биржи.
func (c *Client) requestURL(requestPath string) (string, error) {
	base, err := url.Parse(c.cfg.ClobBaseURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(requestPath)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
