package service

import (
	"sync"

	"clob_trader/internal/models"
)

// TokenIDs — единственная мутабельная часть торговой политики: идентификаторы
// токенов исходов приезжают из маркет-дискавери уже после старта. Обновление
// только через узкий сеттер, никакого шаринга полей конфига.
type TokenIDs struct {
	mu   sync.RWMutex
	up   string
	down string
}

// Update: пустое значение не затирает уже известный id.
func (t *TokenIDs) Update(up, down string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if up != "" {
		t.up = up
	}
	if down != "" {
		t.down = down
	}
}

func (t *TokenIDs) ForSide(side models.Side) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	switch side {
	case models.SideUp:
		return t.up
	case models.SideDown:
		return t.down
	default:
		return ""
	}
}
