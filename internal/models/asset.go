package models

import (
	"time"

	"github.com/shopspring/decimal"

	"nivesh/internal/currency"
	"nivesh/internal/valuation"
)

// Asset is one holding lot. Amounts are in Currency.
type Asset struct {
	Base
	UserID      string                 `gorm:"not null;index" json:"user_id"`
	PortfolioID *string                `gorm:"type:uuid;index" json:"portfolio_id,omitempty"`
	AccountID   *string                `gorm:"type:uuid" json:"account_id,omitempty"`
	AccountKind *valuation.AccountKind `json:"account_kind,omitempty"`

	Symbol    string `json:"symbol"`
	Name      string `gorm:"not null" json:"name"`
	AssetType string `gorm:"not null" json:"asset_type"`

	Quantity      decimal.Decimal `gorm:"type:numeric(28,10);not null;default:0" json:"quantity"`
	PurchasePrice decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"purchase_price"`
	CurrentPrice  decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"current_price"`
	TotalInvested decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"total_invested"`
	CurrentValue  decimal.Decimal `gorm:"type:numeric(20,4);not null;default:0" json:"current_value"`
	Currency      currency.Code   `gorm:"type:char(3);not null;default:'INR'" json:"currency"`

	PriceUpdateFailed bool       `gorm:"not null;default:false" json:"price_update_failed"`
	LastPriceUpdate   *time.Time `json:"last_price_update,omitempty"`
	PriceUpdateError  string     `json:"price_update_error,omitempty"`
}

// Instance converts the row into the valuation input record.
func (a *Asset) Instance() valuation.AssetInstance {
	inst := valuation.AssetInstance{
		ID:            a.ID,
		Symbol:        a.Symbol,
		Name:          a.Name,
		AssetType:     a.AssetType,
		Quantity:      a.Quantity,
		PurchasePrice: a.PurchasePrice,
		CurrentPrice:  a.CurrentPrice,
		TotalInvested: a.TotalInvested,
		CurrentValue:  a.CurrentValue,
		Currency:      a.Currency,
		PortfolioID:   a.PortfolioID,
		PriceHealth: valuation.PriceHealth{
			UpdateFailed: a.PriceUpdateFailed,
			LastUpdate:   a.LastPriceUpdate,
			Error:        a.PriceUpdateError,
		},
	}
	if a.AccountID != nil && a.AccountKind != nil {
		inst.Account = &valuation.AccountLink{Kind: *a.AccountKind, ID: *a.AccountID}
	}
	return inst
}
