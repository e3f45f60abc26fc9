package valuation

import (
	"cmp"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"nivesh/internal/currency"
)

// ErrMissingIdentifier is returned for an instance with neither a symbol nor an id.
var ErrMissingIdentifier = errors.New("valuation: asset instance has neither symbol nor id")

// GroupedHolding sums every instance that shares a grouping key.
type GroupedHolding struct {
	Key       string        `json:"key"`
	Symbol    string        `json:"symbol,omitempty"`
	Name      string        `json:"name"`
	AssetType string        `json:"asset_type"`
	Currency  currency.Code `json:"currency"`

	// Display only; taken from the first instance and never used in totals.
	CurrentPrice  decimal.Decimal `json:"current_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`

	TotalQuantity      decimal.Decimal `json:"total_quantity"`
	TotalInvested      decimal.Decimal `json:"total_invested"`
	TotalCurrentValue  decimal.Decimal `json:"total_current_value"`
	GainLoss           decimal.Decimal `json:"gain_loss"`
	GainLossPercentage float64         `json:"gain_loss_percentage"`

	// Totals in the display currency; nil when no rate was available.
	DisplayValue    *currency.Money `json:"display_value,omitempty"`
	DisplayInvested *currency.Money `json:"display_invested,omitempty"`

	PriceUpdateFailed bool       `json:"price_update_failed"`
	LastPriceUpdate   *time.Time `json:"last_price_update,omitempty"`

	Instances []AssetInstance `json:"instances"`
}

const instanceKeyPrefix = "instance:"

func baseKey(inst AssetInstance) (key string, bySymbol bool, err error) {
	if sym := strings.ToUpper(strings.TrimSpace(inst.Symbol)); sym != "" {
		return sym, true, nil
	}
	if inst.ID == "" {
		return "", false, ErrMissingIdentifier
	}
	return instanceKeyPrefix + inst.ID, false, nil
}

// Group collapses instances into holdings keyed by symbol, or by instance id
// for symbol-less records. Groups come back in first-seen order.
//
// A symbol seen again in a different currency than its first occurrence lands
// in a sibling group keyed "SYMBOL@CUR" so native amounts are never mixed.
func Group(instances []AssetInstance) ([]GroupedHolding, error) {
	groups := make([]GroupedHolding, 0, len(instances))
	index := make(map[string]int, len(instances))
	symbolCurrency := make(map[string]currency.Code)

	for _, inst := range instances {
		key, bySymbol, err := baseKey(inst)
		if err != nil {
			return nil, err
		}
		if bySymbol {
			if first, seen := symbolCurrency[key]; !seen {
				symbolCurrency[key] = inst.Currency
			} else if first != inst.Currency {
				key = key + "@" + string(inst.Currency)
			}
		}

		i, ok := index[key]
		if !ok {
			groups = append(groups, newGroup(key, inst))
			i = len(groups) - 1
			index[key] = i
		}
		groups[i].add(inst)
	}

	for i := range groups {
		groups[i].GainLoss = groups[i].TotalCurrentValue.Sub(groups[i].TotalInvested)
		groups[i].GainLossPercentage = percentOf(groups[i].GainLoss, groups[i].TotalInvested)
	}
	return groups, nil
}

func newGroup(key string, first AssetInstance) GroupedHolding {
	return GroupedHolding{
		Key:               key,
		Symbol:            strings.TrimSpace(first.Symbol),
		Name:              first.Name,
		AssetType:         first.AssetType,
		Currency:          first.Currency,
		CurrentPrice:      first.CurrentPrice,
		PurchasePrice:     first.PurchasePrice,
		TotalQuantity:     decimal.Zero,
		TotalInvested:     decimal.Zero,
		TotalCurrentValue: decimal.Zero,
	}
}

func (g *GroupedHolding) add(inst AssetInstance) {
	g.TotalQuantity = g.TotalQuantity.Add(inst.Quantity)
	g.TotalInvested = g.TotalInvested.Add(inst.TotalInvested)
	g.TotalCurrentValue = g.TotalCurrentValue.Add(inst.CurrentValue)
	g.Instances = append(g.Instances, inst)

	if inst.UpdateFailed {
		g.PriceUpdateFailed = true
	}
	// Oldest successful refresh, so one stale lot marks the whole holding stale.
	if inst.LastUpdate != nil && (g.LastPriceUpdate == nil || inst.LastUpdate.Before(*g.LastPriceUpdate)) {
		t := *inst.LastUpdate
		g.LastPriceUpdate = &t
	}
}

// normalize fills the display-currency totals when n can convert them.
func (g *GroupedHolding) normalize(n currency.Normalizer) {
	value, okValue := n.Normalize(currency.New(g.TotalCurrentValue, g.Currency))
	invested, okInvested := n.Normalize(currency.New(g.TotalInvested, g.Currency))
	if okValue && okInvested {
		g.DisplayValue = &value
		g.DisplayInvested = &invested
	}
}

// SortOrder is a presentation order for grouped holdings.
type SortOrder string

const (
	SortByValue SortOrder = "value"
	SortByGain  SortOrder = "gain"
	SortByName  SortOrder = "name"
)

// ParseSortOrder returns the order named s, defaulting to SortByValue.
func ParseSortOrder(s string) SortOrder {
	switch SortOrder(strings.ToLower(s)) {
	case SortByGain:
		return SortByGain
	case SortByName:
		return SortByName
	}
	return SortByValue
}

// sortValue prefers the display-currency amount so mixed-currency holdings compare fairly.
func (g GroupedHolding) sortValue() decimal.Decimal {
	if g.DisplayValue != nil {
		return g.DisplayValue.Amount
	}
	return g.TotalCurrentValue
}

func (g GroupedHolding) sortGain() decimal.Decimal {
	if g.DisplayValue != nil && g.DisplayInvested != nil {
		return g.DisplayValue.Amount.Sub(g.DisplayInvested.Amount)
	}
	return g.GainLoss
}

// SortHoldings returns a sorted copy of groups. Ties fall back to the key.
func SortHoldings(groups []GroupedHolding, by SortOrder) []GroupedHolding {
	out := slices.Clone(groups)
	slices.SortStableFunc(out, func(a, b GroupedHolding) int {
		var c int
		switch by {
		case SortByName:
			c = cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		case SortByGain:
			c = b.sortGain().Cmp(a.sortGain())
		default:
			c = b.sortValue().Cmp(a.sortValue())
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}
