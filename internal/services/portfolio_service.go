package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "nivesh/internal/errors"
	"nivesh/internal/models"
)

type portfolioService struct {
	db *gorm.DB
}

// NewPortfolioService creates a new PortfolioServicer.
func NewPortfolioService(db *gorm.DB) PortfolioServicer {
	return &portfolioService{db: db}
}

// CreatePortfolio creates a named portfolio for userID.
func (s *portfolioService) CreatePortfolio(ctx context.Context, userID, name, description string) (*models.Portfolio, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "portfolio name is required")
	}

	p := &models.Portfolio{UserID: userID, Name: name, Description: description}
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return p, nil
}

// ListPortfolios returns every portfolio of userID ordered by name.
func (s *portfolioService) ListPortfolios(ctx context.Context, userID string) ([]models.Portfolio, error) {
	var out []models.Portfolio
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("name").Find(&out).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return out, nil
}

// GetPortfolio returns one portfolio owned by userID.
func (s *portfolioService) GetPortfolio(ctx context.Context, userID, portfolioID string) (*models.Portfolio, error) {
	var p models.Portfolio
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", portfolioID, userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPortfolioNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &p, nil
}
