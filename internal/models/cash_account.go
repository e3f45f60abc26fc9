package models

import (
	"github.com/shopspring/decimal"

	"nivesh/internal/currency"
	"nivesh/internal/valuation"
)

// CashAccount is a bank, demat or crypto exchange account holding cash.
type CashAccount struct {
	Base
	UserID      string                `gorm:"not null;index" json:"user_id"`
	PortfolioID *string               `gorm:"type:uuid" json:"portfolio_id,omitempty"`
	Kind        valuation.AccountKind `gorm:"not null" json:"kind"`
	Name        string                `gorm:"not null" json:"name"`
	Balance     decimal.Decimal       `gorm:"type:numeric(20,4);not null;default:0" json:"balance"`
	Currency    currency.Code         `gorm:"type:char(3);not null;default:'INR'" json:"currency"`
	IsActive    bool                  `gorm:"not null;default:true" json:"is_active"`
}

// ToBalance converts the row into the valuation input record.
func (a *CashAccount) ToBalance() valuation.AccountBalance {
	return valuation.AccountBalance{
		AccountID:   a.ID,
		Kind:        a.Kind,
		Name:        a.Name,
		Balance:     a.Balance,
		Currency:    a.Currency,
		IsActive:    a.IsActive,
		PortfolioID: a.PortfolioID,
	}
}
