package models

// OrderIntent — то, что уходит на биржу (поля соответствуют wire-формату).
type OrderIntent struct {
	TokenID     string  `json:"token_id"`
	Side        string  `json:"side"`
	Price       float64 `json:"price"`
	Size        float64 `json:"size"`
	Type        string  `json:"type"`
	TimeInForce string  `json:"time_in_force"`
}

// OrderResult — ack биржи. Разные эндпоинты отдают id по-разному,
// поэтому держим оба поля и нормализуем через Ref().
type OrderResult struct {
	OrderID string `json:"order_id"`
	ID      string `json:"id"`
	Status  string `json:"status"`
}

func (r OrderResult) Ref() string {
	if r.OrderID != "" {
		return r.OrderID
	}
	return r.ID
}

// Credentials — тройка для подписи запросов. Либо статическая из конфига,
// либо однократно деривится из приватного ключа кошелька.
type Credentials struct {
	APIKey        string `json:"apiKey"`
	APISecret     string `json:"secret"`
	APIPassphrase string `json:"passphrase"`
}

func (c Credentials) Complete() bool {
	return c.APIKey != "" && c.APISecret != "" && c.APIPassphrase != ""
}
