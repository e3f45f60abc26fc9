package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"nivesh/internal/currency"
	"nivesh/internal/models"
	"nivesh/internal/valuation"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// NewUserID returns a unique user id; users live in the identity service, not here.
func NewUserID() string {
	return fmt.Sprintf("user-%d", nextID())
}

// Dec parses a decimal literal, panicking on bad input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// CreateTestPortfolio creates a portfolio owned by userID.
func CreateTestPortfolio(t *testing.T, db *gorm.DB, userID string) *models.Portfolio {
	t.Helper()

	p := &models.Portfolio{
		UserID: userID,
		Name:   fmt.Sprintf("Test Portfolio %d", nextID()),
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return p
}

// AssetOption adjusts a fixture asset before it is saved.
type AssetOption func(*models.Asset)

// InPortfolio places the asset in portfolio id.
func InPortfolio(id string) AssetOption {
	return func(a *models.Asset) { a.PortfolioID = &id }
}

// WithCurrency sets the asset currency.
func WithCurrency(c currency.Code) AssetOption {
	return func(a *models.Asset) { a.Currency = c }
}

// WithPriceFailure marks the last price refresh as failed.
func WithPriceFailure(msg string) AssetOption {
	return func(a *models.Asset) {
		a.PriceUpdateFailed = true
		a.PriceUpdateError = msg
	}
}

// CreateTestAsset creates an asset lot with the given symbol, type, invested amount and value.
func CreateTestAsset(t *testing.T, db *gorm.DB, userID, symbol, assetType, invested, value string, opts ...AssetOption) *models.Asset {
	t.Helper()

	now := time.Now().UTC()
	a := &models.Asset{
		UserID:          userID,
		Symbol:          symbol,
		Name:            fmt.Sprintf("Test %s %d", assetType, nextID()),
		AssetType:       assetType,
		Quantity:        decimal.NewFromInt(1),
		PurchasePrice:   Dec(invested),
		CurrentPrice:    Dec(value),
		TotalInvested:   Dec(invested),
		CurrentValue:    Dec(value),
		Currency:        currency.INR,
		LastPriceUpdate: &now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := db.Create(a).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return a
}

// CreateTestCashAccount creates an active INR account of kind with balance.
func CreateTestCashAccount(t *testing.T, db *gorm.DB, userID string, kind valuation.AccountKind, balance string) *models.CashAccount {
	t.Helper()

	acc := &models.CashAccount{
		UserID:   userID,
		Kind:     kind,
		Name:     fmt.Sprintf("Test %s %d", kind, nextID()),
		Balance:  Dec(balance),
		Currency: currency.INR,
		IsActive: true,
	}
	if err := db.Create(acc).Error; err != nil {
		t.Fatalf("failed to create test cash account: %v", err)
	}
	return acc
}

// DeactivateAccount marks acc inactive.
func DeactivateAccount(t *testing.T, db *gorm.DB, acc *models.CashAccount) {
	t.Helper()
	if err := db.Model(acc).Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate account: %v", err)
	}
	acc.IsActive = false
}

// SeedAssetTypes inserts a small taxonomy.
func SeedAssetTypes(t *testing.T, db *gorm.DB) []models.AssetType {
	t.Helper()

	types := []models.AssetType{
		{Name: "stock", Category: "Equity", DisplayLabel: "Stocks"},
		{Name: "mutual_fund", Category: "Equity", DisplayLabel: "Mutual Funds"},
		{Name: "crypto", Category: "Crypto", DisplayLabel: "Crypto"},
		{Name: "fd", Category: "Fixed Income", DisplayLabel: "Fixed Deposits"},
		{Name: "gold", Category: "Commodities", DisplayLabel: "Gold"},
	}
	if err := db.Create(&types).Error; err != nil {
		t.Fatalf("failed to seed asset types: %v", err)
	}
	return types
}

// CreateTestRate stores a USD/INR rate observed at asOf.
func CreateTestRate(t *testing.T, db *gorm.DB, rate string, asOf time.Time) *models.ExchangeRate {
	t.Helper()

	r := &models.ExchangeRate{
		From:   currency.USD,
		To:     currency.INR,
		Rate:   Dec(rate),
		AsOf:   asOf,
		Source: models.RateSourcePipeline,
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("failed to create test rate: %v", err)
	}
	return r
}
