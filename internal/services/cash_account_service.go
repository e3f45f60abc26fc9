package services

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"nivesh/internal/currency"
	apperrors "nivesh/internal/errors"
	"nivesh/internal/models"
	"nivesh/internal/valuation"
)

type cashAccountService struct {
	db *gorm.DB
}

// NewCashAccountService creates a new CashAccountServicer.
func NewCashAccountService(db *gorm.DB) CashAccountServicer {
	return &cashAccountService{db: db}
}

// CreateAccount opens a bank, demat or crypto cash account.
func (s *cashAccountService) CreateAccount(ctx context.Context, userID string, in CashAccountInput) (*models.CashAccount, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}
	if !in.Kind.Valid() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account kind must be bank, demat or crypto")
	}
	cur := in.Currency
	if cur == "" {
		cur = currency.INR
	}
	if !cur.Valid() {
		return nil, apperrors.ErrInvalidCurrency
	}

	db := s.db.WithContext(ctx)
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

	acc := &models.CashAccount{
		UserID:      userID,
		PortfolioID: in.PortfolioID,
		Kind:        in.Kind,
		Name:        name,
		Balance:     in.Balance,
		Currency:    cur,
		IsActive:    true,
	}
	if err := db.Create(acc).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return acc, nil
}

// ListAccounts returns userID's accounts, optionally of one kind. Inactive
// accounts are included so they can be shown and reactivated.
func (s *cashAccountService) ListAccounts(ctx context.Context, userID string, kind *valuation.AccountKind) ([]models.CashAccount, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if kind != nil {
		q = q.Where("kind = ?", *kind)
	}

	var out []models.CashAccount
	if err := q.Order("kind").Order("name").Find(&out).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return out, nil
}

// UpdateBalance replaces the balance of one account owned by userID.
func (s *cashAccountService) UpdateBalance(ctx context.Context, userID, accountID string, balance decimal.Decimal) (*models.CashAccount, error) {
	var acc models.CashAccount
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", accountID, userID).First(&acc).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrAccountNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(&acc).Update("balance", balance).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	acc.Balance = balance
	return &acc, nil
}

// ListBalances loads userID's accounts of kind as valuation input. Inactive
// accounts are returned too; the aggregator skips them.
func (s *cashAccountService) ListBalances(ctx context.Context, userID string, kind valuation.AccountKind) ([]valuation.AccountBalance, error) {
	accounts, err := s.ListAccounts(ctx, userID, &kind)
	if err != nil {
		return nil, err
	}
	out := make([]valuation.AccountBalance, len(accounts))
	for i := range accounts {
		out[i] = accounts[i].ToBalance()
	}
	return out, nil
}
