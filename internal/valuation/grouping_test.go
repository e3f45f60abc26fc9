package valuation

import (
	"errors"
	"testing"
	"time"

	"nivesh/internal/currency"
)

func TestGroup(t *testing.T) {
	t.Run("btc_across_accounts", func(t *testing.T) {
		instances := []AssetInstance{
			instance("a1", "BTC", "crypto", "0.5", "1000000", "1500000", currency.INR),
			instance("a2", "btc ", "crypto", "0.25", "600000", "750000", currency.INR),
		}
		instances[0].CurrentPrice = d("3000000")
		instances[1].CurrentPrice = d("3100000")

		groups, err := Group(instances)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 1 {
			t.Fatalf("expected 1 group, got %d", len(groups))
		}
		g := groups[0]
		if g.Key != "BTC" {
			t.Errorf("expected key BTC, got %s", g.Key)
		}
		assertDecimal(t, "quantity", g.TotalQuantity, "0.75")
		assertDecimal(t, "invested", g.TotalInvested, "1600000")
		assertDecimal(t, "value", g.TotalCurrentValue, "2250000")
		assertDecimal(t, "gain", g.GainLoss, "650000")
		assertDecimal(t, "display price", g.CurrentPrice, "3000000")
		if g.GainLossPercentage != 40.625 {
			t.Errorf("expected gain percentage 40.625, got %v", g.GainLossPercentage)
		}
		if len(g.Instances) != 2 {
			t.Errorf("expected 2 instances, got %d", len(g.Instances))
		}
	})

	t.Run("symbol_less_records_stay_apart", func(t *testing.T) {
		groups, err := Group([]AssetInstance{
			instance("fd-1", "", "fd", "1", "100000", "107000", currency.INR),
			instance("fd-2", "", "fd", "1", "50000", "52000", currency.INR),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(groups))
		}
		if groups[0].Key != "instance:fd-1" || groups[1].Key != "instance:fd-2" {
			t.Errorf("unexpected keys %s, %s", groups[0].Key, groups[1].Key)
		}
	})

	t.Run("first_seen_order", func(t *testing.T) {
		groups, err := Group([]AssetInstance{
			instance("1", "TCS", "stock", "1", "1", "1", currency.INR),
			instance("2", "INFY", "stock", "1", "1", "1", currency.INR),
			instance("3", "TCS", "stock", "1", "1", "1", currency.INR),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 2 || groups[0].Key != "TCS" || groups[1].Key != "INFY" {
			t.Errorf("expected [TCS INFY], got %v", keys(groups))
		}
	})

	t.Run("currency_sibling_group", func(t *testing.T) {
		groups, err := Group([]AssetInstance{
			instance("1", "BTC", "crypto", "1", "100", "200", currency.INR),
			instance("2", "BTC", "crypto", "1", "10", "20", currency.USD),
			instance("3", "BTC", "crypto", "1", "10", "30", currency.USD),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(groups))
		}
		if groups[1].Key != "BTC@USD" {
			t.Errorf("expected sibling key BTC@USD, got %s", groups[1].Key)
		}
		assertDecimal(t, "usd value", groups[1].TotalCurrentValue, "50")
	})

	t.Run("empty_input", func(t *testing.T) {
		groups, err := Group(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 0 {
			t.Errorf("expected no groups, got %d", len(groups))
		}
	})

	t.Run("missing_identifier", func(t *testing.T) {
		_, err := Group([]AssetInstance{instance("", "", "stock", "1", "1", "1", currency.INR)})
		if !errors.Is(err, ErrMissingIdentifier) {
			t.Errorf("expected ErrMissingIdentifier, got %v", err)
		}
	})

	t.Run("zero_invested", func(t *testing.T) {
		groups, err := Group([]AssetInstance{instance("1", "GIFT", "stock", "1", "0", "500", currency.INR)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if groups[0].GainLossPercentage != 0 {
			t.Errorf("expected 0 gain percentage, got %v", groups[0].GainLossPercentage)
		}
	})

	t.Run("price_health", func(t *testing.T) {
		older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		newer := older.Add(48 * time.Hour)
		a := instance("1", "TCS", "stock", "1", "1", "1", currency.INR)
		a.LastUpdate = &newer
		b := instance("2", "TCS", "stock", "1", "1", "1", currency.INR)
		b.LastUpdate = &older
		b.UpdateFailed = true

		groups, err := Group([]AssetInstance{a, b})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !groups[0].PriceUpdateFailed {
			t.Error("expected price_update_failed to propagate")
		}
		if groups[0].LastPriceUpdate == nil || !groups[0].LastPriceUpdate.Equal(older) {
			t.Errorf("expected oldest update %v, got %v", older, groups[0].LastPriceUpdate)
		}
	})
}

func TestGroupIdempotence(t *testing.T) {
	instances := []AssetInstance{
		instance("1", "TCS", "stock", "2", "200", "300", currency.INR),
		instance("2", "", "fd", "1", "1000", "1100", currency.INR),
		instance("3", "tcs", "stock", "3", "300", "450", currency.INR),
		instance("4", "AAPL", "stock", "1", "150", "180", currency.USD),
	}
	first, err := Group(instances)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var flattened []AssetInstance
	for _, g := range first {
		flattened = append(flattened, g.Instances...)
	}
	second, err := Group(flattened)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("expected %d groups, got %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Key != second[i].Key {
			t.Errorf("group %d: expected key %s, got %s", i, first[i].Key, second[i].Key)
		}
		if !first[i].TotalCurrentValue.Equal(second[i].TotalCurrentValue) {
			t.Errorf("group %s: value changed from %s to %s", first[i].Key, first[i].TotalCurrentValue, second[i].TotalCurrentValue)
		}
		if !first[i].TotalQuantity.Equal(second[i].TotalQuantity) {
			t.Errorf("group %s: quantity changed", first[i].Key)
		}
	}
}

func TestSortHoldings(t *testing.T) {
	groups, err := Group([]AssetInstance{
		instance("1", "ZEE", "stock", "1", "100", "300", currency.INR),
		instance("2", "ABB", "stock", "1", "100", "100", currency.INR),
		instance("3", "MRF", "stock", "1", "500", "300", currency.INR),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("value", func(t *testing.T) {
		got := keys(SortHoldings(groups, SortByValue))
		want := []string{"MRF", "ZEE", "ABB"}
		assertKeys(t, got, want)
	})

	t.Run("gain", func(t *testing.T) {
		got := keys(SortHoldings(groups, SortByGain))
		want := []string{"ZEE", "ABB", "MRF"}
		assertKeys(t, got, want)
	})

	t.Run("name", func(t *testing.T) {
		got := keys(SortHoldings(groups, ParseSortOrder("NAME")))
		want := []string{"ABB", "MRF", "ZEE"}
		assertKeys(t, got, want)
	})

	t.Run("input_untouched", func(t *testing.T) {
		_ = SortHoldings(groups, SortByName)
		if groups[0].Key != "ZEE" {
			t.Errorf("expected input order preserved, got %v", keys(groups))
		}
	})

	t.Run("unknown_order_defaults_to_value", func(t *testing.T) {
		if ParseSortOrder("bogus") != SortByValue {
			t.Error("expected SortByValue")
		}
	})
}

func keys(groups []GroupedHolding) []string {
	out := make([]string, len(groups))
	for i, g := range groups {
		out[i] = g.Key
	}
	return out
}

func assertKeys(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
