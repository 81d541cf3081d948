package models

import "math"

// MarketSnapshot — плоский срез уже посчитанных сигналов на один тик.
// Индикаторы считает внешний коллектор; движок сам ничего не вычисляет.
// Отсутствующие числовые значения кодируются NaN (см. Missing).
type MarketSnapshot struct {
	MarketSlug  string
	TimeLeftMin float64 // минут до резолва рынка

	// Вероятности обоих направлений (0..1), взаимоисключающие кандидаты.
	PLong  float64
	PShort float64

	// Подтверждающий индикатор (heiken-ashi): цвет и сколько свечей подряд.
	HeikenColor string
	HeikenCount int

	// Текущие цены токенов исходов (в центах или долларах — по policy.PriceUnit).
	MarketUp   float64
	MarketDown float64

	PriceToBeat  float64 // референсная цена, которую нужно "побить"
	CurrentPrice float64 // живая цена базового актива

	Regime string // тег волатильности от коллектора, "TREND*" => волатильный

	// Прозрачные метки, прокидываются только в аудит.
	Signal         string
	Recommendation string
}

// Missing — каноническое "значения нет" для числовых полей снапшота.
func Missing() float64 { return math.NaN() }
