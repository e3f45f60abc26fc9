// Package currency normalizes monetary amounts between INR and USD.
//
// The package performs no I/O: callers supply a Rate they fetched or cached
// earlier. When no rate is known, conversion is refused rather than guessed
// and the amount is surfaced in its original currency.
package currency

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Code is an ISO 4217 currency code supported by the valuation engine.
type Code string

const (
	INR Code = "INR"
	USD Code = "USD"
)

var (
	// ErrNoRate is returned when a conversion needs a rate and none is available.
	ErrNoRate = errors.New("currency: no exchange rate available")
	// ErrUnsupported is returned for currencies other than INR and USD.
	ErrUnsupported = errors.New("currency: unsupported currency")
	// ErrInvalidRate is returned when building a Rate from a non-positive value.
	ErrInvalidRate = errors.New("currency: rate must be greater than zero")
)

// ParseCode parses a currency code case-insensitively.
func ParseCode(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, s)
	}
	return c, nil
}

// Valid reports whether c is INR or USD.
func (c Code) Valid() bool {
	switch c {
	case INR, USD:
		return true
	}
	return false
}

// Rate is a USD→INR exchange rate observed at a point in time.
// The zero Rate means "no rate known".
type Rate struct {
	usdINR decimal.Decimal
	asOf   time.Time
}

// NewRate builds a Rate. usdINR is the number of rupees per dollar.
func NewRate(usdINR decimal.Decimal, asOf time.Time) (Rate, error) {
	if !usdINR.IsPositive() {
		return Rate{}, fmt.Errorf("%w: got %s", ErrInvalidRate, usdINR)
	}
	return Rate{usdINR: usdINR, asOf: asOf}, nil
}

// IsZero reports whether the rate is absent.
func (r Rate) IsZero() bool { return !r.usdINR.IsPositive() }

// Value returns rupees per dollar.
func (r Rate) Value() decimal.Decimal { return r.usdINR }

// AsOf returns when the rate was observed.
func (r Rate) AsOf() time.Time { return r.asOf }

// ToINR converts a dollar amount to rupees.
func ToINR(amountUSD decimal.Decimal, r Rate) (decimal.Decimal, error) {
	if r.IsZero() {
		return decimal.Zero, ErrNoRate
	}
	return amountUSD.Mul(r.usdINR), nil
}

// ToUSD converts a rupee amount to dollars.
func ToUSD(amountINR decimal.Decimal, r Rate) (decimal.Decimal, error) {
	if r.IsZero() {
		return decimal.Zero, ErrNoRate
	}
	return amountINR.Div(r.usdINR), nil
}
