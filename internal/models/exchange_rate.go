package models

import (
	"time"

	"github.com/shopspring/decimal"

	"nivesh/internal/currency"
)

// Rate sources.
const (
	RateSourceForex    = "yahoo"
	RateSourcePipeline = "pipeline"
)

// ExchangeRate is one observed quote of From in units of To.
type ExchangeRate struct {
	Base
	From   currency.Code   `gorm:"column:base;type:char(3);not null;index:idx_exchange_rates_pair_as_of,priority:1" json:"base"`
	To     currency.Code   `gorm:"column:quote;type:char(3);not null;index:idx_exchange_rates_pair_as_of,priority:2" json:"quote"`
	Rate   decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"rate"`
	AsOf   time.Time       `gorm:"not null;index:idx_exchange_rates_pair_as_of,priority:3" json:"as_of"`
	Source string          `gorm:"not null" json:"source"`
}

// ToRate converts a USD/INR row into a currency.Rate.
func (r *ExchangeRate) ToRate() (currency.Rate, error) {
	return currency.NewRate(r.Rate, r.AsOf)
}
