// Package valuation aggregates already-materialized holdings into grouped,
// category and type level views with consistent running totals.
//
// Every function here is pure and synchronous. Inputs are never mutated;
// derived values are rebuilt on each call.
package valuation

import (
	"time"

	"github.com/shopspring/decimal"

	"nivesh/internal/currency"
)

// AccountKind identifies the kind of account a holding or cash balance belongs to.
type AccountKind string

const (
	AccountBank   AccountKind = "bank"
	AccountDemat  AccountKind = "demat"
	AccountCrypto AccountKind = "crypto"
)

// AccountKinds lists every kind in a fixed order.
var AccountKinds = []AccountKind{AccountBank, AccountDemat, AccountCrypto}

// Valid reports whether k is a known account kind.
func (k AccountKind) Valid() bool {
	switch k {
	case AccountBank, AccountDemat, AccountCrypto:
		return true
	}
	return false
}

// AccountLink ties a holding to the account that owns it.
type AccountLink struct {
	Kind AccountKind `json:"kind"`
	ID   string      `json:"id"`
}

// PriceHealth carries the outcome of the last price refresh for a holding.
type PriceHealth struct {
	UpdateFailed bool       `json:"price_update_failed"`
	LastUpdate   *time.Time `json:"last_price_update,omitempty"`
	Error        string     `json:"price_update_error,omitempty"`
}

// AssetInstance is one concrete holding record. CurrentValue and
// TotalInvested are denominated in Currency.
type AssetInstance struct {
	ID            string          `json:"id"`
	Symbol        string          `json:"symbol,omitempty"`
	Name          string          `json:"name"`
	AssetType     string          `json:"asset_type"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	TotalInvested decimal.Decimal `json:"total_invested"`
	CurrentValue  decimal.Decimal `json:"current_value"`
	Currency      currency.Code   `json:"currency"`
	Account       *AccountLink    `json:"account,omitempty"`
	PortfolioID   *string         `json:"portfolio_id,omitempty"`
	PriceHealth
}

// Value returns the current value as Money.
func (a AssetInstance) Value() currency.Money {
	return currency.New(a.CurrentValue, a.Currency)
}

// Invested returns the invested amount as Money.
func (a AssetInstance) Invested() currency.Money {
	return currency.New(a.TotalInvested, a.Currency)
}

// AccountBalance is a cash position held outside any asset: bank balance,
// demat cash or crypto exchange cash.
type AccountBalance struct {
	AccountID   string          `json:"account_id"`
	Kind        AccountKind     `json:"kind"`
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
	Currency    currency.Code   `json:"currency"`
	IsActive    bool            `json:"is_active"`
	PortfolioID *string         `json:"portfolio_id,omitempty"`
}

// Money returns the balance as Money.
func (b AccountBalance) Money() currency.Money {
	return currency.New(b.Balance, b.Currency)
}

var hundred = decimal.NewFromInt(100)

// percentOf returns part/whole*100, or 0 when whole is not positive.
func percentOf(part, whole decimal.Decimal) float64 {
	if !whole.IsPositive() {
		return 0
	}
	return part.Div(whole).Mul(hundred).InexactFloat64()
}
