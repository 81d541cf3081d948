package helper

import "math"

// Finite — аналог Number.isFinite: NaN и ±Inf считаем отсутствующим значением.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Round округляет до places знаков после запятой.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// CentsFromPrice приводит цену исхода к центам. unit: "cents" | "dollars".
func CentsFromPrice(price float64, unit string) (float64, bool) {
	if !Finite(price) {
		return 0, false
	}
	if unit == "dollars" {
		return price * 100, true
	}
	return price, true
}

// SharesFromUSD — размер позиции в токенах: notional / цена в долларах.
func SharesFromUSD(usd, priceCents float64) (float64, bool) {
	if !Finite(priceCents) || priceCents <= 0 {
		return 0, false
	}
	return usd / (priceCents / 100), true
}
