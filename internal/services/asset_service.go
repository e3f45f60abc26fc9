package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"nivesh/internal/currency"
	apperrors "nivesh/internal/errors"
	"nivesh/internal/models"
	"nivesh/internal/pagination"
	"nivesh/internal/valuation"
)

type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

// CreateAsset records one holding lot. Missing totals are derived from
// quantity and prices. A referenced portfolio or account must belong to userID.
func (s *assetService) CreateAsset(ctx context.Context, userID string, in AssetInput) (*models.Asset, error) {
	name := strings.TrimSpace(in.Name)
	symbol := strings.TrimSpace(in.Symbol)
	if name == "" {
		name = symbol
	}
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name or symbol is required")
	}
	assetType := strings.ToLower(strings.TrimSpace(in.AssetType))
	if assetType == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset type is required")
	}
	if in.Quantity.IsNegative() || in.PurchasePrice.IsNegative() || in.CurrentPrice.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity and prices must not be negative")
	}

	cur := in.Currency
	if cur == "" {
		cur = currency.INR
	}
	if !cur.Valid() {
		return nil, apperrors.ErrInvalidCurrency
	}

	invested := in.Quantity.Mul(in.PurchasePrice)
	if in.TotalInvested != nil {
		invested = *in.TotalInvested
	}
	value := in.Quantity.Mul(in.CurrentPrice)
	if in.CurrentValue != nil {
		value = *in.CurrentValue
	}
	if invested.IsNegative() || value.IsNegative() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invested amount and value must not be negative")
	}

	db := s.db.WithContext(ctx)
	asset := &models.Asset{
		UserID:        userID,
		PortfolioID:   in.PortfolioID,
		Symbol:        symbol,
		Name:          name,
		AssetType:     assetType,
		Quantity:      in.Quantity,
		PurchasePrice: in.PurchasePrice,
		CurrentPrice:  in.CurrentPrice,
		TotalInvested: invested,
		CurrentValue:  value,
		Currency:      cur,
	}
	if !in.CurrentPrice.IsZero() {
		now := time.Now().UTC()
		asset.LastPriceUpdate = &now
	}

	if in.PortfolioID != nil {
		var count int64
		if err := db.Model(&models.Portfolio{}).
			Where("id = ? AND user_id = ?", *in.PortfolioID, userID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return nil, apperrors.ErrPortfolioNotFound
		}
	}

	if in.AccountID != nil {
		var acc models.CashAccount
		if err := db.Where("id = ? AND user_id = ?", *in.AccountID, userID).First(&acc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrAccountNotFound
			}
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		kind := acc.Kind
		asset.AccountID = &acc.ID
		asset.AccountKind = &kind
	}

	if err := db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return asset, nil
}

func (s *assetService) scoped(ctx context.Context, userID string, portfolioID *string) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&models.Asset{}).Where("user_id = ?", userID)
	if portfolioID != nil && *portfolioID != "" {
		q = q.Where("portfolio_id = ?", *portfolioID)
	}
	return q
}

// ListAssets returns a page of userID's assets, optionally limited to one portfolio.
func (s *assetService) ListAssets(ctx context.Context, userID string, portfolioID *string, page pagination.PageRequest) (*pagination.PageResponse[models.Asset], error) {
	page.Defaults()

	var total int64
	if err := s.scoped(ctx, userID, portfolioID).Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.Asset
	if err := s.scoped(ctx, userID, portfolioID).
		Order("created_at DESC").Order("id DESC").
		Scopes(pagination.Paginate(page)).
		Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(assets, page.Page, page.PageSize, total)
	return &result, nil
}

// GetAsset returns one asset owned by userID.
func (s *assetService) GetAsset(ctx context.Context, userID, assetID string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", assetID, userID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// DeleteAsset soft-deletes one asset owned by userID.
func (s *assetService) DeleteAsset(ctx context.Context, userID, assetID string) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", assetID, userID).Delete(&models.Asset{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}

// ListInstances loads every asset of userID as valuation input, optionally
// filtered to one portfolio at the database.
func (s *assetService) ListInstances(ctx context.Context, userID string, portfolioID *string) ([]valuation.AssetInstance, error) {
	var assets []models.Asset
	if err := s.scoped(ctx, userID, portfolioID).Order("id").Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	out := make([]valuation.AssetInstance, len(assets))
	for i := range assets {
		out[i] = assets[i].Instance()
	}
	return out, nil
}
