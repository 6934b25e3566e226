package store

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// UnitPricePlaces is the number of fractional digits kept for unit prices
const UnitPricePlaces = 10

// ErrInvalidQuantity is returned when a valuation divides by a non-positive quantity
var ErrInvalidQuantity = errors.New("quantity must be positive")

// Valuations holds the unit price of each item, in Credits
type Valuations struct {
	prices map[string]decimal.Decimal
}

// NewValuations creates an empty price table
func NewValuations() *Valuations {
	return &Valuations{
		prices: make(map[string]decimal.Decimal),
	}
}

// Appraise records the unit price of item given that quantity units cost
// credits in total. The price is rounded half-to-even to UnitPricePlaces digits.
func (v *Valuations) Appraise(item string, credits int, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}

	price := UnitPrice(credits, quantity)
	v.prices[item] = price
	return price, nil
}

// UnitPrice divides credits by quantity, rounded half-to-even to UnitPricePlaces digits
func UnitPrice(credits int, quantity int) decimal.Decimal {
	// Divide with spare digits so the banker's rounding step sees the true tie
	return decimal.NewFromInt(int64(credits)).
		DivRound(decimal.NewFromInt(int64(quantity)), 2*UnitPricePlaces).
		RoundBank(UnitPricePlaces)
}

// Put sets the unit price of item directly
func (v *Valuations) Put(item string, price decimal.Decimal) {
	v.prices[item] = price
}

// Get returns the unit price of item
func (v *Valuations) Get(item string) (decimal.Decimal, bool) {
	p, ok := v.prices[item]
	return p, ok
}

// HasItem reports whether item has a unit price
func (v *Valuations) HasItem(item string) bool {
	_, ok := v.prices[item]
	return ok
}

// Len returns the number of priced items
func (v *Valuations) Len() int {
	return len(v.prices)
}
