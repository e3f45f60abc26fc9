package services

import (
	"context"

	"github.com/shopspring/decimal"

	"nivesh/internal/currency"
	"nivesh/internal/models"
	"nivesh/internal/pagination"
	"nivesh/internal/valuation"
)

// PortfolioServicer defines the contract for portfolio management.
type PortfolioServicer interface {
	CreatePortfolio(ctx context.Context, userID, name, description string) (*models.Portfolio, error)
	ListPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error)
	GetPortfolio(ctx context.Context, userID, portfolioID string) (*models.Portfolio, error)
}

// AssetInput holds the fields accepted when recording an asset lot.
type AssetInput struct {
	PortfolioID   *string
	AccountID     *string
	Symbol        string
	Name          string
	AssetType     string
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
	CurrentPrice  decimal.Decimal
	TotalInvested *decimal.Decimal
	CurrentValue  *decimal.Decimal
	Currency      currency.Code
}

// AssetServicer defines the contract for asset records.
type AssetServicer interface {
	CreateAsset(ctx context.Context, userID string, in AssetInput) (*models.Asset, error)
	ListAssets(ctx context.Context, userID string, portfolioID *string, page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error)
	GetAsset(ctx context.Context, userID, assetID string) (*models.Asset, error)
	DeleteAsset(ctx context.Context, userID, assetID string) error
	ListInstances(ctx context.Context, userID string, portfolioID *string) ([]valuation.AssetInstance, error)
}

// CashAccountInput holds the fields accepted when opening a cash account.
type CashAccountInput struct {
	PortfolioID *string
	Kind        valuation.AccountKind
	Name        string
	Balance     decimal.Decimal
	Currency    currency.Code
}

// CashAccountServicer defines the contract for bank, demat and crypto cash accounts.
type CashAccountServicer interface {
	CreateAccount(ctx context.Context, userID string, in CashAccountInput) (*models.CashAccount, error)
	ListAccounts(ctx context.Context, userID string, kind *valuation.AccountKind) ([]models.CashAccount, error)
	UpdateBalance(ctx context.Context, userID, accountID string, balance decimal.Decimal) (*models.CashAccount, error)
	ListBalances(ctx context.Context, userID string, kind valuation.AccountKind) ([]valuation.AccountBalance, error)
}

// TaxonomyServicer defines the contract for the asset type taxonomy.
type TaxonomyServicer interface {
	ListAssetTypes(ctx context.Context) ([]models.AssetType, error)
	UpsertAssetType(ctx context.Context, name, category, displayLabel string) (*models.AssetType, error)
	Taxonomy(ctx context.Context) (valuation.Taxonomy, error)
}

// RateFetcher fetches a live USD/INR rate.
type RateFetcher interface {
	FetchUSDINR(ctx context.Context) (currency.Rate, error)
}

// RateServicer defines the contract for the USD/INR exchange rate.
type RateServicer interface {
	CurrentRate(ctx context.Context) (currency.Rate, error)
	Refresh(ctx context.Context) (currency.Rate, error)
	RecordRate(ctx context.Context, rate currency.Rate, source string) (*models.ExchangeRate, error)
}

// DashboardQuery selects what a dashboard computation covers and how it is presented.
type DashboardQuery struct {
	PortfolioID *string
	Currency    currency.Code
	Policy      *valuation.CashPolicy
	Sort        valuation.SortOrder
}

// DashboardServicer defines the contract for computing the valuation dashboard.
type DashboardServicer interface {
	Compute(ctx context.Context, userID string, q DashboardQuery) (*valuation.Result, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
	ListEntries(ctx context.Context, userID string, resourceType *string, page pagination.PageRequest) (*pagination.PageResponse[models.AuditLog], error)
}
