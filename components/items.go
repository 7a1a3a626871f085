package components

// Seed is one entry of the player's seed stock.
type Seed struct {
	Strain  string  `json:"strain" csv:"strain"`
	Gender  Gender  `json:"gender" csv:"gender"`
	Quality float64 `json:"quality" csv:"quality"` // [0, 1], parent health at collection
}

// HarvestLot is sellable flower from a female harvest.
type HarvestLot struct {
	Strain       string  `json:"strain" csv:"strain"`
	AmountGrams  float64 `json:"amount_grams" csv:"amount_grams"`
	QualityPct   int     `json:"quality_pct" csv:"quality_pct"`
	PricePerGram float64 `json:"price_per_gram" csv:"price_per_gram"`
}

// Value returns what the lot sells for.
func (l HarvestLot) Value() float64 {
	return l.AmountGrams * l.PricePerGram
}
