// Package currency holds the three currencies the school operates in and a
// fixed-rate converter between them.
//
// The exchange-rate table is a deliberately static approximation maintained
// by the bursar's office; it is NOT sourced from a live feed and the rates
// must not be read as real market rates.
package currency

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidCurrency is returned when a currency code outside the supported
// set is passed to any conversion or parsing function.
var ErrInvalidCurrency = errors.New("invalid currency code")

// Code is a currency code. Exactly three are supported.
type Code string

const (
	// USD is the United States dollar, the reference currency.
	USD Code = "USD"
	// ZAR is the South African rand.
	ZAR Code = "ZAR"
	// ZIG is the Zimbabwe Gold currency. The wire spelling is "ZiG".
	ZIG Code = "ZiG"
)

// rates maps each currency to units per 1 USD.
var rates = map[Code]decimal.Decimal{
	USD: decimal.NewFromInt(1),
	ZAR: decimal.RequireFromString("17.5"),
	ZIG: decimal.NewFromInt(34),
}

// Codes lists the supported currency codes in a stable order.
func Codes() []Code {
	return []Code{USD, ZAR, ZIG}
}

// IsValid reports whether c is one of the supported currency codes.
func (c Code) IsValid() bool {
	_, ok := rates[c]
	return ok
}

// String returns the wire representation of the code.
func (c Code) String() string { return string(c) }

// Symbol returns the display symbol used on receipts and dashboards.
func (c Code) Symbol() string {
	switch c {
	case USD:
		return "$"
	case ZAR:
		return "R"
	case ZIG:
		return "ZiG"
	default:
		return ""
	}
}

// ParseCode validates a wire string as a supported currency code.
func ParseCode(s string) (Code, error) {
	c := Code(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, s)
	}
	return c, nil
}

// Rate returns how many units of c make up 1 USD.
func Rate(c Code) (decimal.Decimal, error) {
	r, ok := rates[c]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidCurrency, c)
	}
	return r, nil
}

// Convert converts amount from one currency to another using the static
// table: amount / rate[from] * rate[to], with rates expressed as units per
// 1 USD. No rounding is applied; callers format for display.
func Convert(amount decimal.Decimal, from, to Code) (decimal.Decimal, error) {
	fromRate, err := Rate(from)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := Rate(to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Div(fromRate).Mul(toRate), nil
}

// ToUSD converts amount to its USD equivalent, used for single-figure
// dashboard aggregates and student balance bookkeeping.
func ToUSD(amount decimal.Decimal, from Code) (decimal.Decimal, error) {
	return Convert(amount, from, USD)
}
