package valuation

import (
	"github.com/shopspring/decimal"

	"nivesh/internal/currency"
)

// Level is the depth of the drill-down view.
type Level string

const (
	LevelCategories Level = "categories"
	LevelTypes      Level = "types"
)

// Navigator tracks which allocation level is on screen. The zero value
// starts at the category level. It is not safe for concurrent use.
type Navigator struct {
	selected string
	inTypes  bool
}

// NewNavigator returns a navigator at the category level.
func NewNavigator() *Navigator { return &Navigator{} }

// Level returns the current level.
func (n *Navigator) Level() Level {
	if n.inTypes {
		return LevelTypes
	}
	return LevelCategories
}

// Selected returns the category being drilled into, if any.
func (n *Navigator) Selected() (string, bool) { return n.selected, n.inTypes }

// SelectCategory drills into name. It does nothing and returns false when
// already at the type level or when name is unknown or cash only.
func (n *Navigator) SelectCategory(alloc *Allocation, name string) bool {
	if n.inTypes {
		return false
	}
	cb, ok := alloc.Category(name)
	if !ok || !cb.Drillable {
		return false
	}
	n.selected, n.inTypes = name, true
	return true
}

// Back returns to the category level.
func (n *Navigator) Back() {
	n.selected, n.inTypes = "", false
}

// Reset is Back under another name; called when the portfolio scope changes.
func (n *Navigator) Reset() { n.Back() }

// Row is one line of a navigator view.
type Row struct {
	Key                string          `json:"key"`
	DisplayName        string          `json:"display_name"`
	Value              decimal.Decimal `json:"value"`
	FormattedValue     string          `json:"formatted_value"`
	Invested           decimal.Decimal `json:"invested"`
	Count              int             `json:"count"`
	Percentage         float64         `json:"percentage"`
	GainLoss           decimal.Decimal `json:"gain_loss"`
	GainLossPercentage float64         `json:"gain_loss_percentage"`
	Drillable          bool            `json:"drillable"`
}

// ViewState is what the navigator shows for an allocation.
type ViewState struct {
	Level            Level         `json:"level"`
	SelectedCategory string        `json:"selected_category,omitempty"`
	CanGoBack        bool          `json:"can_go_back"`
	Currency         currency.Code `json:"currency"`
	Rows             []Row         `json:"rows"`
}

func rowFrom(b Bucket, c currency.Code, drillable bool) Row {
	return Row{
		Key:                b.Key,
		DisplayName:        b.DisplayName,
		Value:              b.Value,
		FormattedValue:     currency.Format(currency.New(b.Value, c)),
		Invested:           b.Invested,
		Count:              b.Count,
		Percentage:         b.Percentage,
		GainLoss:           b.GainLoss,
		GainLossPercentage: b.GainLossPercentage,
		Drillable:          drillable,
	}
}

// View renders the current level of alloc. A selected category that is
// missing from alloc yields no rows but still allows going back.
func (n *Navigator) View(alloc *Allocation) ViewState {
	var c currency.Code
	if alloc != nil {
		c = alloc.Currency
	}
	state := ViewState{Level: n.Level(), Currency: c, Rows: []Row{}}

	if !n.inTypes {
		for _, cb := range alloc.CategoryRows() {
			state.Rows = append(state.Rows, rowFrom(cb.Bucket, c, cb.Drillable))
		}
		return state
	}

	state.SelectedCategory = n.selected
	state.CanGoBack = true
	for _, tb := range alloc.TypeRows(n.selected) {
		state.Rows = append(state.Rows, rowFrom(tb.Bucket, c, false))
	}
	return state
}
