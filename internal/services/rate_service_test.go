package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"nivesh/internal/currency"
	"nivesh/internal/models"
	"nivesh/internal/testutil"
)

type stubFetcher struct {
	calls atomic.Int32
	rate  string
	err   error
	asOf  time.Time
}

func (f *stubFetcher) FetchUSDINR(context.Context) (currency.Rate, error) {
	f.calls.Add(1)
	if f.err != nil {
		return currency.Rate{}, f.err
	}
	return currency.NewRate(testutil.Dec(f.rate), f.asOf)
}

func TestCurrentRate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("fresh_stored_rate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fetcher := &stubFetcher{rate: "90"}
		svc := NewRateService(db, fetcher, 6*time.Hour).(*rateService)
		svc.now = func() time.Time { return now }
		testutil.CreateTestRate(t, db, "83.25", now.Add(-time.Hour))

		r, err := svc.CurrentRate(ctx)
		testutil.AssertNoError(t, err)
		if !r.Value().Equal(testutil.Dec("83.25")) {
			t.Errorf("expected 83.25, got %s", r.Value())
		}
		if fetcher.calls.Load() != 0 {
			t.Errorf("expected no fetch, got %d", fetcher.calls.Load())
		}
	})

	t.Run("expired_rate_refetched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fetcher := &stubFetcher{rate: "84.10", asOf: now}
		svc := NewRateService(db, fetcher, 6*time.Hour).(*rateService)
		svc.now = func() time.Time { return now }
		testutil.CreateTestRate(t, db, "83.25", now.Add(-7*time.Hour))

		r, err := svc.CurrentRate(ctx)
		testutil.AssertNoError(t, err)
		if !r.Value().Equal(testutil.Dec("84.10")) {
			t.Errorf("expected 84.10, got %s", r.Value())
		}

		var count int64
		db.Model(&models.ExchangeRate{}).Where("source = ?", models.RateSourceForex).Count(&count)
		if count != 1 {
			t.Errorf("expected fetched rate to be stored, got %d rows", count)
		}
	})

	t.Run("fetch_failure_serves_stale", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fetcher := &stubFetcher{err: errors.New("upstream down")}
		svc := NewRateService(db, fetcher, time.Hour).(*rateService)
		svc.now = func() time.Time { return now }
		testutil.CreateTestRate(t, db, "82", now.Add(-48*time.Hour))

		r, err := svc.CurrentRate(ctx)
		testutil.AssertNoError(t, err)
		if !r.Value().Equal(testutil.Dec("82")) {
			t.Errorf("expected stale rate 82, got %s", r.Value())
		}
	})

	t.Run("nothing_available", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRateService(db, &stubFetcher{err: errors.New("upstream down")}, time.Hour)

		_, err := svc.CurrentRate(ctx)
		testutil.AssertAppError(t, err, "RATE_UNAVAILABLE")
	})

	t.Run("no_fetcher", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewRateService(db, nil, time.Hour)

		_, err := svc.CurrentRate(ctx)
		testutil.AssertAppError(t, err, "RATE_UNAVAILABLE")
	})
}

func TestRecordRate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewRateService(db, nil, 0)
	ctx := context.Background()

	t.Run("zero_rate", func(t *testing.T) {
		_, err := svc.RecordRate(ctx, currency.Rate{}, models.RateSourcePipeline)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("stored_and_served", func(t *testing.T) {
		asOf := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		rate, err := currency.NewRate(testutil.Dec("71.5"), asOf)
		testutil.AssertNoError(t, err)

		row, err := svc.RecordRate(ctx, rate, models.RateSourcePipeline)
		testutil.AssertNoError(t, err)
		if row.Source != models.RateSourcePipeline {
			t.Errorf("expected source pipeline, got %s", row.Source)
		}

		// A zero max age never expires the stored rate.
		got, err := svc.CurrentRate(ctx)
		testutil.AssertNoError(t, err)
		if !got.Value().Equal(testutil.Dec("71.5")) {
			t.Errorf("expected 71.5, got %s", got.Value())
		}
	})
}
