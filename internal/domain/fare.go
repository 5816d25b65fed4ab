package domain

import "fmt"

type FareClass string

const (
	FareClassEconomy  FareClass = "economy"
	FareClassBusiness FareClass = "business"
	FareClassFirst    FareClass = "first"
)

// Multipliers are kept in tenths so pricing stays in exact integer cents:
// economy x1, business x2.5, first x4.
var fareMultiplierTenths = map[FareClass]int64{
	FareClassEconomy:  10,
	FareClassBusiness: 25,
	FareClassFirst:    40,
}

// ParseFareClass maps a request string to a fare class. An empty value
// means economy, matching the public search form's default.
func ParseFareClass(s string) (FareClass, error) {
	if s == "" {
		return FareClassEconomy, nil
	}
	c := FareClass(s)
	if _, ok := fareMultiplierTenths[c]; !ok {
		return "", fmt.Errorf("unknown fare class %q", s)
	}
	return c, nil
}

func (c FareClass) Label() string {
	switch c {
	case FareClassBusiness:
		return "Business Class"
	case FareClassFirst:
		return "First Class"
	default:
		return "Economy Class"
	}
}

// UnitPriceCents applies the class multiplier to a base price, rounding
// half cents up.
func (c FareClass) UnitPriceCents(baseCents int64) int64 {
	tenths, ok := fareMultiplierTenths[c]
	if !ok {
		tenths = 10
	}
	return (baseCents*tenths + 5) / 10
}

// FormatCents renders an amount of minor units as a 2-decimal string,
// e.g. 75000 -> "750.00".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
