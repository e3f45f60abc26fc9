package valuation

import (
	"time"

	"nivesh/internal/currency"
)

// Inputs is everything one dashboard computation needs.
type Inputs struct {
	Instances       []AssetInstance
	Balances        []AccountBalance
	Taxonomy        Taxonomy
	Rate            currency.Rate
	DisplayCurrency currency.Code
	Scope           Scope
	Policy          CashPolicy
	Sort            SortOrder
}

func (in Inputs) displayCurrency() currency.Code {
	if in.DisplayCurrency == "" {
		return currency.INR
	}
	return in.DisplayCurrency
}

func (in Inputs) policy() CashPolicy {
	if in.Policy.name == "" {
		return SeparateCashPolicy
	}
	return in.Policy
}

// Result is a computed dashboard. Results may be shared through a Memo and
// must be treated as read only.
type Result struct {
	Scope         string           `json:"scope"`
	Currency      currency.Code    `json:"currency"`
	Policy        string           `json:"cash_policy"`
	RateAsOf      *time.Time       `json:"rate_as_of,omitempty"`
	Holdings      []GroupedHolding `json:"holdings"`
	Allocation    *Allocation      `json:"allocation"`
	StaleHoldings int              `json:"stale_holdings"`
}

// Run filters, groups, normalizes and aggregates in.
func Run(in Inputs) (*Result, error) {
	instances, balances := FilterScope(in.Instances, in.Balances, in.Scope)

	groups, err := Group(instances)
	if err != nil {
		return nil, err
	}

	norm := currency.NewNormalizer(in.displayCurrency(), in.Rate)
	stale := 0
	for i := range groups {
		groups[i].normalize(norm)
		if groups[i].PriceUpdateFailed {
			stale++
		}
	}

	policy := in.policy()
	res := &Result{
		Scope:         in.Scope.String(),
		Currency:      norm.Target(),
		Policy:        policy.Name(),
		Holdings:      SortHoldings(groups, in.Sort),
		Allocation:    Aggregate(groups, balances, in.Taxonomy, policy, norm),
		StaleHoldings: stale,
	}
	if !in.Rate.IsZero() {
		asOf := in.Rate.AsOf()
		res.RateAsOf = &asOf
	}
	return res, nil
}
