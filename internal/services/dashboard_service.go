package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"nivesh/internal/currency"
	apperrors "nivesh/internal/errors"
	"nivesh/internal/logger"
	"nivesh/internal/valuation"
)

// DashboardConfig holds the defaults applied when a query leaves them unset.
type DashboardConfig struct {
	DisplayCurrency currency.Code
	Policy          valuation.CashPolicy
	MemoSize        int
	SessionIdle     time.Duration
}

type dashboardService struct {
	assets   AssetServicer
	accounts CashAccountServicer
	taxonomy TaxonomyServicer
	rates    RateServicer

	cfg      DashboardConfig
	memo     *valuation.Memo
	sessions *valuation.Sessions
}

// NewDashboardService creates a new DashboardServicer over the given sources.
// rates may be nil, in which case nothing is converted.
func NewDashboardService(assets AssetServicer, accounts CashAccountServicer, taxonomy TaxonomyServicer, rates RateServicer, cfg DashboardConfig) DashboardServicer {
	if cfg.DisplayCurrency == "" {
		cfg.DisplayCurrency = currency.INR
	}
	if cfg.Policy.Name() == "" {
		cfg.Policy = valuation.SeparateCashPolicy
	}
	return &dashboardService{
		assets:   assets,
		accounts: accounts,
		taxonomy: taxonomy,
		rates:    rates,
		cfg:      cfg,
		memo:     valuation.NewMemo(cfg.MemoSize),
		sessions: valuation.NewSessions(cfg.SessionIdle),
	}
}

// Compute loads userID's holdings, cash accounts, taxonomy and exchange rate
// concurrently and runs the valuation pipeline over them. Only the asset load
// is required; every other input degrades to an empty value with a warning.
//
// Starting a computation for a different portfolio cancels any computation
// still running for the user's previous selection; the superseded call
// returns STALE_SCOPE.
func (s *dashboardService) Compute(ctx context.Context, userID string, q DashboardQuery) (*valuation.Result, error) {
	display := q.Currency
	if display == "" {
		display = s.cfg.DisplayCurrency
	}
	if !display.Valid() {
		return nil, apperrors.ErrInvalidCurrency
	}
	policy := s.cfg.Policy
	if q.Policy != nil {
		policy = *q.Policy
	}

	scope := valuation.ScopeFor(q.PortfolioID)
	session := s.sessions.Get(userID)
	ctx, ticket, release := session.Begin(ctx, scope)
	defer release()

	log := logger.Get().With("user_id", userID, "scope", scope.String())

	var (
		instances []valuation.AssetInstance
		balances  = make([][]valuation.AccountBalance, len(valuation.AccountKinds))
		tax       valuation.Taxonomy
		rate      currency.Rate
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		instances, err = s.assets.ListInstances(gctx, userID, q.PortfolioID)
		return err
	})
	for i, kind := range valuation.AccountKinds {
		g.Go(func() error {
			b, err := s.accounts.ListBalances(gctx, userID, kind)
			if err != nil {
				log.Warnw("cash accounts unavailable, treating as empty", "kind", kind, "error", err)
				return nil
			}
			balances[i] = b
			return nil
		})
	}
	g.Go(func() error {
		t, err := s.taxonomy.Taxonomy(gctx)
		if err != nil {
			log.Warnw("taxonomy unavailable, all assets fall into Other", "error", err)
			return nil
		}
		tax = t
		return nil
	})
	if s.rates != nil {
		g.Go(func() error {
			r, err := s.rates.CurrentRate(gctx)
			if err != nil {
				log.Warnw("exchange rate unavailable, amounts stay in their own currency", "error", err)
				return nil
			}
			rate = r
			return nil
		})
	}

	loadErr := g.Wait()
	if err := session.Commit(ticket); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStaleScope, err)
	}
	if loadErr != nil {
		return nil, loadErr
	}

	var all []valuation.AccountBalance
	for _, b := range balances {
		all = append(all, b...)
	}

	res, hit, err := s.memo.Run(valuation.Inputs{
		Instances:       instances,
		Balances:        all,
		Taxonomy:        tax,
		Rate:            rate,
		DisplayCurrency: display,
		Scope:           scope,
		Policy:          policy,
		Sort:            q.Sort,
	})
	if err != nil {
		if errors.Is(err, valuation.ErrMissingIdentifier) {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := session.Commit(ticket); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStaleScope, err)
	}

	log.Debugw("dashboard computed",
		"holdings", len(res.Holdings),
		"categories", len(res.Allocation.Categories),
		"memo_hit", hit,
	)
	return res, nil
}
