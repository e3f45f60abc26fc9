package currency

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money is an amount tagged with its currency.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Code            `json:"currency"`
}

// New returns Money in the given currency.
func New(amount decimal.Decimal, c Code) Money {
	return Money{Amount: amount, Currency: c}
}

// Zero returns a zero amount in c.
func Zero(c Code) Money {
	return Money{Amount: decimal.Zero, Currency: c}
}

// Add sums two amounts of the same currency.
func (m Money) Add(n Money) (Money, error) {
	if m.Currency != n.Currency {
		return Money{}, fmt.Errorf("currency: cannot add %s to %s", n.Currency, m.Currency)
	}
	return Money{Amount: m.Amount.Add(n.Amount), Currency: m.Currency}, nil
}

// Convert expresses m in target using r.
func (m Money) Convert(target Code, r Rate) (Money, error) {
	switch m.Currency {
	case INR:
		switch target {
		case INR:
			return m, nil
		case USD:
			amt, err := ToUSD(m.Amount, r)
			if err != nil {
				return Money{}, err
			}
			return New(amt, USD), nil
		}
	case USD:
		switch target {
		case USD:
			return m, nil
		case INR:
			amt, err := ToINR(m.Amount, r)
			if err != nil {
				return Money{}, err
			}
			return New(amt, INR), nil
		}
	}
	return Money{}, fmt.Errorf("%w: %s to %s", ErrUnsupported, m.Currency, target)
}

// String renders the amount with its currency symbol, e.g. "₹50,000.00".
func (m Money) String() string {
	return Format(m)
}

// Format renders m using the currency's symbol, grouping and fraction digits.
func Format(m Money) string {
	cur := money.GetCurrency(string(m.Currency))
	if cur == nil {
		return m.Amount.StringFixed(2) + " " + string(m.Currency)
	}
	minor := m.Amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

// Normalizer converts amounts into a single display currency.
type Normalizer struct {
	target Code
	rate   Rate
}

// NewNormalizer returns a Normalizer targeting c. rate may be the zero Rate.
func NewNormalizer(target Code, rate Rate) Normalizer {
	return Normalizer{target: target, rate: rate}
}

// Target returns the display currency.
func (n Normalizer) Target() Code { return n.target }

// Rate returns the rate used for conversions.
func (n Normalizer) Rate() Rate { return n.rate }

// Normalize converts m into the target currency. ok is false when m needs a
// rate that is not available; m is then returned unchanged so the caller can
// show it in its original currency.
func (n Normalizer) Normalize(m Money) (Money, bool) {
	out, err := m.Convert(n.target, n.rate)
	if err != nil {
		return m, false
	}
	return out, true
}
