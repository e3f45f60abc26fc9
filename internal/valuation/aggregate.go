package valuation

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"nivesh/internal/currency"
)

// Bucket is one row of an allocation level.
type Bucket struct {
	Key                string          `json:"key"`
	DisplayName        string          `json:"display_name"`
	Value              decimal.Decimal `json:"value"`
	Invested           decimal.Decimal `json:"invested"`
	Count              int             `json:"count"`
	Percentage         float64         `json:"percentage"`
	GainLoss           decimal.Decimal `json:"gain_loss"`
	GainLossPercentage float64         `json:"gain_loss_percentage"`
}

func newBucket(key, display string) Bucket {
	return Bucket{Key: key, DisplayName: display, Value: decimal.Zero, Invested: decimal.Zero}
}

func (b *Bucket) addAmounts(value, invested decimal.Decimal) {
	b.Value = b.Value.Add(value)
	b.Invested = b.Invested.Add(invested)
	b.Count++
}

func (b *Bucket) finish(levelTotal decimal.Decimal) {
	b.Percentage = percentOf(b.Value, levelTotal)
	b.GainLoss = b.Value.Sub(b.Invested)
	b.GainLossPercentage = percentOf(b.GainLoss, b.Invested)
}

// CategoryBucket is a top-level allocation row. CashValue is the part of
// Value that came from merged account balances.
type CategoryBucket struct {
	Bucket
	Category  Category        `json:"-"`
	Kind      string          `json:"kind"`
	CashValue decimal.Decimal `json:"cash_value"`
	Drillable bool            `json:"drillable"`
}

// TypeBucket is an asset type row inside one category.
type TypeBucket struct {
	Bucket
	Category string `json:"category"`
}

// Allocation is the category and type breakdown of a set of holdings, with
// every amount expressed in Currency.
type Allocation struct {
	Currency           currency.Code                    `json:"currency"`
	Total              decimal.Decimal                  `json:"total"`
	TotalInvested      decimal.Decimal                  `json:"total_invested"`
	GainLoss           decimal.Decimal                  `json:"gain_loss"`
	GainLossPercentage float64                          `json:"gain_loss_percentage"`
	Categories         map[string]CategoryBucket        `json:"categories"`
	Types              map[string]map[string]TypeBucket `json:"types"`

	// Amounts left out of every bucket because no rate could convert them.
	Unconverted []UnconvertedAmount `json:"unconverted,omitempty"`
}

// UnconvertedAmount is the value and cost basis, in their own currency, of
// everything a normalizer could not convert.
type UnconvertedAmount struct {
	Currency currency.Code   `json:"currency"`
	Value    decimal.Decimal `json:"value"`
	Invested decimal.Decimal `json:"invested"`
}

// Category returns the bucket for name.
func (a *Allocation) Category(name string) (CategoryBucket, bool) {
	if a == nil {
		return CategoryBucket{}, false
	}
	c, ok := a.Categories[name]
	return c, ok
}

// CategoryRows returns the category buckets sorted by value descending.
func (a *Allocation) CategoryRows() []CategoryBucket {
	if a == nil {
		return nil
	}
	rows := make([]CategoryBucket, 0, len(a.Categories))
	for _, c := range a.Categories {
		rows = append(rows, c)
	}
	slices.SortFunc(rows, func(x, y CategoryBucket) int { return byValue(x.Bucket, y.Bucket) })
	return rows
}

// TypeRows returns the type buckets of category sorted by value descending.
func (a *Allocation) TypeRows(category string) []TypeBucket {
	if a == nil {
		return nil
	}
	types := a.Types[category]
	rows := make([]TypeBucket, 0, len(types))
	for _, t := range types {
		rows = append(rows, t)
	}
	slices.SortFunc(rows, func(x, y TypeBucket) int { return byValue(x.Bucket, y.Bucket) })
	return rows
}

func byValue(x, y Bucket) int {
	if c := y.Value.Cmp(x.Value); c != 0 {
		return c
	}
	return cmp.Compare(x.Key, y.Key)
}

type aggregator struct {
	tax    Taxonomy
	policy CashPolicy
	norm   currency.Normalizer

	alloc       *Allocation
	unconverted map[currency.Code]*UnconvertedAmount
}

// Aggregate buckets every instance of groups by its own asset type and merges
// active balances into the category policy assigns to their kind.
//
// Amounts norm cannot convert are excluded from all buckets and listed in
// Unconverted. Aggregate never fails; a missing taxonomy puts everything in
// OtherCategory.
func Aggregate(groups []GroupedHolding, balances []AccountBalance, tax Taxonomy, policy CashPolicy, norm currency.Normalizer) *Allocation {
	ag := &aggregator{
		tax:    tax,
		policy: policy,
		norm:   norm,
		alloc: &Allocation{
			Currency:   norm.Target(),
			Categories: make(map[string]CategoryBucket),
			Types:      make(map[string]map[string]TypeBucket),
		},
		unconverted: make(map[currency.Code]*UnconvertedAmount),
	}

	for _, g := range groups {
		for _, inst := range g.Instances {
			ag.addInstance(inst)
		}
	}
	for _, b := range balances {
		if b.IsActive {
			ag.addBalance(b)
		}
	}
	return ag.finish()
}

// AggregateInstances groups instances and aggregates them in one step.
func AggregateInstances(instances []AssetInstance, balances []AccountBalance, tax Taxonomy, policy CashPolicy, norm currency.Normalizer) (*Allocation, error) {
	groups, err := Group(instances)
	if err != nil {
		return nil, err
	}
	return Aggregate(groups, balances, tax, policy, norm), nil
}

func (ag *aggregator) convert(value, invested currency.Money) (decimal.Decimal, decimal.Decimal, bool) {
	v, okValue := ag.norm.Normalize(value)
	i, okInvested := ag.norm.Normalize(invested)
	if !okValue || !okInvested {
		u, ok := ag.unconverted[value.Currency]
		if !ok {
			u = &UnconvertedAmount{Currency: value.Currency, Value: decimal.Zero, Invested: decimal.Zero}
			ag.unconverted[value.Currency] = u
		}
		u.Value = u.Value.Add(value.Amount)
		u.Invested = u.Invested.Add(invested.Amount)
		return decimal.Zero, decimal.Zero, false
	}
	return v.Amount, i.Amount, true
}

func (ag *aggregator) category(cat Category) CategoryBucket {
	cb, ok := ag.alloc.Categories[cat.Name()]
	if !ok {
		return CategoryBucket{
			Bucket:    newBucket(cat.Name(), cat.Name()),
			Category:  cat,
			CashValue: decimal.Zero,
		}
	}
	// Anything real landing in a cash-only bucket makes it drillable.
	if cat.Drillable() && !cb.Category.Drillable() {
		cb.Category = Real(cat.Name())
	}
	return cb
}

func (ag *aggregator) addInstance(inst AssetInstance) {
	value, invested, ok := ag.convert(inst.Value(), inst.Invested())
	if !ok {
		return
	}
	info := ag.tax.Resolve(inst.AssetType)

	cb := ag.category(Real(info.Category))
	cb.addAmounts(value, invested)
	ag.alloc.Categories[info.Category] = cb

	types, ok := ag.alloc.Types[info.Category]
	if !ok {
		types = make(map[string]TypeBucket)
		ag.alloc.Types[info.Category] = types
	}
	tb, ok := types[info.Name]
	if !ok {
		tb = TypeBucket{Bucket: newBucket(info.Name, info.DisplayLabel), Category: info.Category}
	}
	tb.addAmounts(value, invested)
	types[info.Name] = tb
}

// addBalance merges cash as a zero gain position: value and invested grow alike.
func (ag *aggregator) addBalance(b AccountBalance) {
	m := b.Money()
	value, _, ok := ag.convert(m, m)
	if !ok {
		return
	}
	cat := ag.policy.CategoryFor(b.Kind)
	cb := ag.category(cat)
	cb.addAmounts(value, value)
	cb.CashValue = cb.CashValue.Add(value)
	ag.alloc.Categories[cat.Name()] = cb
}

func (ag *aggregator) finish() *Allocation {
	alloc := ag.alloc
	alloc.Total = decimal.Zero
	alloc.TotalInvested = decimal.Zero
	for _, cb := range alloc.Categories {
		alloc.Total = alloc.Total.Add(cb.Value)
		alloc.TotalInvested = alloc.TotalInvested.Add(cb.Invested)
	}
	alloc.GainLoss = alloc.Total.Sub(alloc.TotalInvested)
	alloc.GainLossPercentage = percentOf(alloc.GainLoss, alloc.TotalInvested)

	for name, cb := range alloc.Categories {
		cb.finish(alloc.Total)
		cb.Kind = cb.Category.Kind().String()
		// Merged cash alone leaves no type rows to open.
		cb.Drillable = cb.Category.Drillable() && len(alloc.Types[name]) > 0
		alloc.Categories[name] = cb

		types := alloc.Types[name]
		typeTotal := decimal.Zero
		for _, tb := range types {
			typeTotal = typeTotal.Add(tb.Value)
		}
		for key, tb := range types {
			tb.finish(typeTotal)
			types[key] = tb
		}
	}

	if len(ag.unconverted) > 0 {
		codes := make([]currency.Code, 0, len(ag.unconverted))
		for c := range ag.unconverted {
			codes = append(codes, c)
		}
		slices.Sort(codes)
		for _, c := range codes {
			alloc.Unconverted = append(alloc.Unconverted, *ag.unconverted[c])
		}
	}
	return alloc
}
