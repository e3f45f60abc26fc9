package services

import (
	"context"
	"testing"

	"nivesh/internal/testutil"
)

func TestCreatePortfolio(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db)
		userID := testutil.NewUserID()

		p, err := svc.CreatePortfolio(ctx, userID, "  Retirement ", "long term")
		testutil.AssertNoError(t, err)

		if p.ID == "" {
			t.Fatal("expected portfolio ID to be assigned")
		}
		if p.Name != "Retirement" {
			t.Errorf("expected name Retirement, got %q", p.Name)
		}
		if p.UserID != userID {
			t.Errorf("expected user %s, got %s", userID, p.UserID)
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db)

		_, err := svc.CreatePortfolio(ctx, testutil.NewUserID(), "   ", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListPortfolios(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPortfolioService(db)
	ctx := context.Background()

	userID := testutil.NewUserID()
	_, _ = svc.CreatePortfolio(ctx, userID, "Zeta", "")
	_, _ = svc.CreatePortfolio(ctx, userID, "Alpha", "")
	testutil.CreateTestPortfolio(t, db, testutil.NewUserID())

	list, err := svc.ListPortfolios(ctx, userID)
	testutil.AssertNoError(t, err)

	if len(list) != 2 {
		t.Fatalf("expected 2 portfolios, got %d", len(list))
	}
	if list[0].Name != "Alpha" || list[1].Name != "Zeta" {
		t.Errorf("expected portfolios ordered by name, got %s, %s", list[0].Name, list[1].Name)
	}
}

func TestGetPortfolio(t *testing.T) {
	ctx := context.Background()

	t.Run("owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db)
		userID := testutil.NewUserID()
		p := testutil.CreateTestPortfolio(t, db, userID)

		got, err := svc.GetPortfolio(ctx, userID, p.ID)
		testutil.AssertNoError(t, err)
		if got.ID != p.ID {
			t.Errorf("expected portfolio %s, got %s", p.ID, got.ID)
		}
	})

	t.Run("other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPortfolioService(db)
		p := testutil.CreateTestPortfolio(t, db, testutil.NewUserID())

		_, err := svc.GetPortfolio(ctx, testutil.NewUserID(), p.ID)
		testutil.AssertAppError(t, err, "PORTFOLIO_NOT_FOUND")
	})
}
