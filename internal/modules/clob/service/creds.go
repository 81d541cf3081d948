package service

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"clob_trader/internal/models"
	"clob_trader/internal/modules/config"
	"clob_trader/pkg/logger"
)

// Deriver — внешняя способность получить тройку кред из приватного ключа.
type Deriver interface {
	Derive(ctx context.Context) (models.Credentials, error)
}

// CredentialProvider отдаёт креды для подписи. Статические — как есть;
// иначе деривация ровно один раз на процесс: конкурентные вызовы
// присоединяются к одной in-flight деривации (single-flight), результат —
// включая ошибку — кэшируется навсегда.
type CredentialProvider struct {
	cfg     *config.Config
	deriver Deriver

	sf singleflight.Group

	mu        sync.RWMutex
	resolved  bool
	derived   models.Credentials
	deriveErr error
}

func NewCredentialProvider(cfg *config.Config, deriver Deriver) *CredentialProvider {
	return &CredentialProvider{
		cfg:     cfg,
		deriver: deriver,
	}
}

func (p *CredentialProvider) Credentials(ctx context.Context) (models.Credentials, error) {
	static := models.Credentials{
		APIKey:        p.cfg.Trading.APIKey,
		APISecret:     p.cfg.Trading.APISecret,
		APIPassphrase: p.cfg.Trading.APIPassphrase,
	}
	if static.Complete() {
		return static, nil
	}

	if p.cfg.Trading.PrivateKey == "" {
		return models.Credentials{}, ErrMissingPrivateKey
	}

	p.mu.RLock()
	if p.resolved {
		defer p.mu.RUnlock()
		return p.derived, p.deriveErr
	}
	p.mu.RUnlock()

	v, err, _ := p.sf.Do("derive", func() (interface{}, error) {
		creds, derr := p.deriver.Derive(ctx)
		if derr == nil && !creds.Complete() {
			derr = &DerivationError{Err: errIncompleteTriple}
		} else if derr != nil {
			derr = &DerivationError{Err: derr}
		}

		p.mu.Lock()
		p.resolved = true
		p.derived = creds
		p.deriveErr = derr
		p.mu.Unlock()

		if derr != nil {
			logger.Error("CLOB creds derivation failed: %v", derr)
			return models.Credentials{}, derr
		}
		logger.Info("CLOB creds derived (apiKey=%s...)", shortKey(creds.APIKey))
		return creds, nil
	})
	if err != nil {
		return models.Credentials{}, err
	}

	return v.(models.Credentials), nil
}

func shortKey(k string) string {
	if len(k) <= 6 {
		return k
	}
	return k[:6]
}
