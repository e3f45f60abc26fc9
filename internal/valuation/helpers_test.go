package valuation

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"nivesh/internal/currency"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func testRate(t *testing.T, v string) currency.Rate {
	t.Helper()
	r, err := currency.NewRate(d(v), time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("building rate: %v", err)
	}
	return r
}

func inrNormalizer() currency.Normalizer {
	return currency.NewNormalizer(currency.INR, currency.Rate{})
}

func instance(id, symbol, assetType, qty, invested, value string, cur currency.Code) AssetInstance {
	return AssetInstance{
		ID:            id,
		Symbol:        symbol,
		Name:          symbol,
		AssetType:     assetType,
		Quantity:      d(qty),
		TotalInvested: d(invested),
		CurrentValue:  d(value),
		Currency:      cur,
	}
}

func balance(id string, kind AccountKind, amount string, active bool) AccountBalance {
	return AccountBalance{
		AccountID: id,
		Kind:      kind,
		Name:      id,
		Balance:   d(amount),
		Currency:  currency.INR,
		IsActive:  active,
	}
}

func defaultTaxonomy() Taxonomy {
	return NewTaxonomy([]TypeInfo{
		{Name: "stock", Category: "Equity", DisplayLabel: "Stocks"},
		{Name: "mutual_fund", Category: "Equity", DisplayLabel: "Mutual Funds"},
		{Name: "crypto", Category: "Crypto", DisplayLabel: "Crypto"},
		{Name: "fd", Category: "Fixed Income", DisplayLabel: "Fixed Deposits"},
		{Name: "gold", Category: "Commodities", DisplayLabel: "Gold"},
	})
}

func assertDecimal(t *testing.T, what string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Errorf("expected %s %s, got %s", what, want, got)
	}
}
