package maps

// Fixed price level table. The provider reports the level either as an
// enum name or as a legacy integer 0-4; both map to the same symbols.
var priceSymbols = map[string]string{
	"PRICE_LEVEL_FREE":           "",
	"PRICE_LEVEL_INEXPENSIVE":    "¥",
	"PRICE_LEVEL_MODERATE":       "¥¥",
	"PRICE_LEVEL_EXPENSIVE":      "¥¥¥",
	"PRICE_LEVEL_VERY_EXPENSIVE": "¥¥¥¥",
}

var priceLevelNames = [...]string{
	"PRICE_LEVEL_FREE",
	"PRICE_LEVEL_INEXPENSIVE",
	"PRICE_LEVEL_MODERATE",
	"PRICE_LEVEL_EXPENSIVE",
	"PRICE_LEVEL_VERY_EXPENSIVE",
}

// PriceSymbol maps a price level enum name to its display symbol.
// Unknown levels map to nil, never an error.
func PriceSymbol(level string) *string {
	s, ok := priceSymbols[level]
	if !ok {
		return nil
	}
	return &s
}

// PriceSymbolFromLevel maps a legacy integer price level (0-4) to its
// display symbol. Out-of-range levels map to nil.
func PriceSymbolFromLevel(level int) *string {
	if level < 0 || level >= len(priceLevelNames) {
		return nil
	}
	return PriceSymbol(priceLevelNames[level])
}

// priceSymbol prefers the enum name when the payload carries one.
func priceSymbol(name string, level *int) *string {
	if name != "" {
		return PriceSymbol(name)
	}
	if level != nil {
		return PriceSymbolFromLevel(*level)
	}
	return nil
}
