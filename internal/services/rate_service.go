package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"nivesh/internal/currency"
	apperrors "nivesh/internal/errors"
	"nivesh/internal/logger"
	"nivesh/internal/models"
)

type rateService struct {
	db      *gorm.DB
	fetcher RateFetcher
	maxAge  time.Duration
	now     func() time.Time
	flight  singleflight.Group
}

// NewRateService creates a new RateServicer. fetcher may be nil, in which
// case only stored rates are served. A maxAge <= 0 never expires a stored rate.
func NewRateService(db *gorm.DB, fetcher RateFetcher, maxAge time.Duration) RateServicer {
	return &rateService{db: db, fetcher: fetcher, maxAge: maxAge, now: time.Now}
}

func (s *rateService) latest(ctx context.Context) (*models.ExchangeRate, error) {
	var row models.ExchangeRate
	err := s.db.WithContext(ctx).
		Where("base = ? AND quote = ?", currency.USD, currency.INR).
		Order("as_of DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &row, nil
}

func (s *rateService) fresh(row *models.ExchangeRate) bool {
	return s.maxAge <= 0 || s.now().Sub(row.AsOf) <= s.maxAge
}

// CurrentRate returns the newest stored rate while it is younger than the
// max age. Otherwise it fetches a new one, falling back to the stored rate
// of any age when the fetch fails.
func (s *rateService) CurrentRate(ctx context.Context) (currency.Rate, error) {
	stored, err := s.latest(ctx)
	if err != nil {
		return currency.Rate{}, err
	}
	if stored != nil && s.fresh(stored) {
		return stored.ToRate()
	}

	rate, fetchErr := s.Refresh(ctx)
	if fetchErr == nil {
		return rate, nil
	}
	if stored != nil {
		logger.Get().Warnw("exchange rate refresh failed, serving stored rate",
			"error", fetchErr,
			"as_of", stored.AsOf,
		)
		return stored.ToRate()
	}
	return currency.Rate{}, fetchErr
}

// Refresh fetches a live rate and stores it. Concurrent callers share one fetch.
func (s *rateService) Refresh(ctx context.Context) (currency.Rate, error) {
	if s.fetcher == nil {
		return currency.Rate{}, apperrors.ErrRateUnavailable
	}

	v, err, _ := s.flight.Do("usd-inr", func() (any, error) {
		rate, err := s.fetcher.FetchUSDINR(ctx)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrRateUnavailable, err)
		}
		row, err := s.RecordRate(ctx, rate, models.RateSourceForex)
		if err != nil {
			return nil, err
		}
		return row.ToRate()
	})
	if err != nil {
		return currency.Rate{}, err
	}
	return v.(currency.Rate), nil
}

// RecordRate stores an observed USD/INR rate.
func (s *rateService) RecordRate(ctx context.Context, rate currency.Rate, source string) (*models.ExchangeRate, error) {
	if rate.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "rate must be greater than zero")
	}
	asOf := rate.AsOf()
	if asOf.IsZero() {
		asOf = s.now()
	}

	row := &models.ExchangeRate{
		From:   currency.USD,
		To:     currency.INR,
		Rate:   rate.Value(),
		AsOf:   asOf.UTC(),
		Source: source,
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return row, nil
}
