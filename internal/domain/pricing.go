package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// PricingPolicy maps a seat type to its price for a showtime: the
// showtime's base price plus a per-type extra. It is pure so inventory
// and selection code never hardcode prices.
type PricingPolicy struct {
	extras map[SeatType]decimal.Decimal
}

func NewPricingPolicy(extras map[SeatType]decimal.Decimal) PricingPolicy {
	return PricingPolicy{extras: extras}
}

func DefaultPricingPolicy() PricingPolicy {
	return NewPricingPolicy(map[SeatType]decimal.Decimal{
		SeatTypeStandard:   decimal.Zero,
		SeatTypeVIP:        decimal.NewFromInt(5),
		SeatTypeAccessible: decimal.Zero,
	})
}

func (p PricingPolicy) Price(seatType SeatType, showtime *Showtime) (decimal.Decimal, error) {
	extra, ok := p.extras[seatType]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown seat type: %q", seatType)
	}

	return showtime.BasePrice.Add(extra), nil
}
