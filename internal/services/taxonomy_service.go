package services

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/models"
	"nivesh/internal/valuation"
)

type taxonomyService struct {
	db *gorm.DB
}

// NewTaxonomyService creates a new TaxonomyServicer.
func NewTaxonomyService(db *gorm.DB) TaxonomyServicer {
	return &taxonomyService{db: db}
}

// ListAssetTypes returns every asset type ordered by name.
func (s *taxonomyService) ListAssetTypes(ctx context.Context) ([]models.AssetType, error) {
	var out []models.AssetType
	if err := s.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return out, nil
}

// UpsertAssetType creates or replaces the taxonomy entry for name.
func (s *taxonomyService) UpsertAssetType(ctx context.Context, name, category, displayLabel string) (*models.AssetType, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	category = strings.TrimSpace(category)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "asset type name is required")
	}
	if category == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if displayLabel = strings.TrimSpace(displayLabel); displayLabel == "" {
		displayLabel = name
	}

	t := &models.AssetType{Name: name, Category: category, DisplayLabel: displayLabel}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"category", "display_label", "updated_at"}),
	}).Create(t).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return t, nil
}

// Taxonomy builds the lookup table used by the aggregator.
func (s *taxonomyService) Taxonomy(ctx context.Context) (valuation.Taxonomy, error) {
	types, err := s.ListAssetTypes(ctx)
	if err != nil {
		return valuation.Taxonomy{}, err
	}
	defs := make([]valuation.TypeInfo, len(types))
	for i := range types {
		defs[i] = types[i].Info()
	}
	return valuation.NewTaxonomy(defs), nil
}
