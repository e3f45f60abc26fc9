package valuation

import (
	"testing"

	"nivesh/internal/currency"
)

func TestFilterScope(t *testing.T) {
	a := instance("1", "TCS", "stock", "1", "1", "1", currency.INR)
	a.PortfolioID = strPtr("p1")
	b := instance("2", "INFY", "stock", "1", "1", "1", currency.INR)
	b.PortfolioID = strPtr("p2")
	c := instance("3", "BTC", "crypto", "1", "1", "1", currency.INR)

	bank := balance("hdfc", AccountBank, "10", true)
	bank.PortfolioID = strPtr("p1")
	loose := balance("sbi", AccountBank, "10", true)

	instances := []AssetInstance{a, b, c}
	balances := []AccountBalance{bank, loose}

	t.Run("all", func(t *testing.T) {
		gotI, gotB := FilterScope(instances, balances, AllPortfolios())
		if len(gotI) != 3 || len(gotB) != 2 {
			t.Errorf("expected 3 instances and 2 balances, got %d and %d", len(gotI), len(gotB))
		}
		gotI[0].Symbol = "CHANGED"
		if instances[0].Symbol != "TCS" {
			t.Error("expected a copy, input was modified")
		}
	})

	t.Run("single", func(t *testing.T) {
		gotI, gotB := FilterScope(instances, balances, SinglePortfolio("p1"))
		if len(gotI) != 1 || gotI[0].ID != "1" {
			t.Errorf("expected only instance 1, got %v", gotI)
		}
		if len(gotB) != 1 || gotB[0].AccountID != "hdfc" {
			t.Errorf("expected only hdfc, got %v", gotB)
		}
	})

	t.Run("unknown_portfolio", func(t *testing.T) {
		gotI, gotB := FilterScope(instances, balances, SinglePortfolio("nope"))
		if len(gotI) != 0 || len(gotB) != 0 {
			t.Errorf("expected empty results, got %d and %d", len(gotI), len(gotB))
		}
	})
}

func TestScopeFor(t *testing.T) {
	if !ScopeFor(nil).IsAll() {
		t.Error("expected nil id to mean all portfolios")
	}
	if !ScopeFor(strPtr("")).IsAll() {
		t.Error("expected empty id to mean all portfolios")
	}
	s := ScopeFor(strPtr("p9"))
	if id, ok := s.PortfolioID(); !ok || id != "p9" {
		t.Errorf("expected p9, got %q", id)
	}
	if s.String() != "portfolio:p9" {
		t.Errorf("unexpected string %s", s)
	}
	if AllPortfolios() != ScopeFor(nil) {
		t.Error("expected scopes to be comparable")
	}
}
