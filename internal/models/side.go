package models

// Side — направление исхода рынка ("цена вырастет" / "цена упадёт").
// Раньше это были голые строки "UP"/"DOWN" по всему коду — теперь явный тип.
type Side string

const (
	SideNone Side = ""
	SideUp   Side = "UP"
	SideDown Side = "DOWN"
)

// ExchangeSide переводит сторону в словарь биржи.
// В обоих случаях мы ПОКУПАЕМ токен выбранного исхода, поэтому всегда "buy".
func (s Side) ExchangeSide() string {
	switch s {
	case SideUp, SideDown:
		return "buy"
	default:
		return ""
	}
}

// ExpectedHeikenColor — какой цвет подтверждающей свечи ожидаем для стороны.
func (s Side) ExpectedHeikenColor() string {
	switch s {
	case SideUp:
		return "green"
	case SideDown:
		return "red"
	default:
		return ""
	}
}

func (s Side) Valid() bool { return s == SideUp || s == SideDown }
