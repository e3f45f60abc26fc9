package services

import (
	"context"
	"testing"

	"nivesh/internal/currency"
	"nivesh/internal/testutil"
	"nivesh/internal/valuation"
)

func TestCreateCashAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashAccountService(db)

		acc, err := svc.CreateAccount(ctx, testutil.NewUserID(), CashAccountInput{
			Kind:    valuation.AccountBank,
			Name:    "HDFC Savings",
			Balance: testutil.Dec("60000"),
		})
		testutil.AssertNoError(t, err)

		if !acc.IsActive {
			t.Error("expected account to be active")
		}
		if acc.Currency != currency.INR {
			t.Errorf("expected currency INR, got %s", acc.Currency)
		}
		testutil.AssertDecimal(t, "balance", acc.Balance, "60000")
	})

	t.Run("unknown_kind", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashAccountService(db)

		_, err := svc.CreateAccount(ctx, testutil.NewUserID(), CashAccountInput{Kind: "wallet", Name: "x"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashAccountService(db)

		_, err := svc.CreateAccount(ctx, testutil.NewUserID(), CashAccountInput{Kind: valuation.AccountBank})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("foreign_portfolio", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashAccountService(db)
		p := testutil.CreateTestPortfolio(t, db, testutil.NewUserID())

		_, err := svc.CreateAccount(ctx, testutil.NewUserID(), CashAccountInput{
			Kind: valuation.AccountBank, Name: "x", PortfolioID: &p.ID,
		})
		testutil.AssertAppError(t, err, "PORTFOLIO_NOT_FOUND")
	})
}

func TestListCashAccounts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCashAccountService(db)
	ctx := context.Background()

	userID := testutil.NewUserID()
	testutil.CreateTestCashAccount(t, db, userID, valuation.AccountBank, "100")
	inactive := testutil.CreateTestCashAccount(t, db, userID, valuation.AccountBank, "200")
	testutil.DeactivateAccount(t, db, inactive)
	testutil.CreateTestCashAccount(t, db, userID, valuation.AccountDemat, "300")
	testutil.CreateTestCashAccount(t, db, testutil.NewUserID(), valuation.AccountBank, "400")

	t.Run("all_kinds", func(t *testing.T) {
		list, err := svc.ListAccounts(ctx, userID, nil)
		testutil.AssertNoError(t, err)
		if len(list) != 3 {
			t.Errorf("expected 3 accounts, got %d", len(list))
		}
	})

	t.Run("balances_keep_inactive_flag", func(t *testing.T) {
		balances, err := svc.ListBalances(ctx, userID, valuation.AccountBank)
		testutil.AssertNoError(t, err)
		if len(balances) != 2 {
			t.Fatalf("expected 2 bank balances, got %d", len(balances))
		}
		var active int
		for _, b := range balances {
			if b.Kind != valuation.AccountBank {
				t.Errorf("expected kind bank, got %s", b.Kind)
			}
			if b.IsActive {
				active++
			}
		}
		if active != 1 {
			t.Errorf("expected 1 active balance, got %d", active)
		}
	})
}

func TestUpdateCashBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashAccountService(db)
		userID := testutil.NewUserID()
		acc := testutil.CreateTestCashAccount(t, db, userID, valuation.AccountBank, "100")

		updated, err := svc.UpdateBalance(ctx, userID, acc.ID, testutil.Dec("2500.50"))
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "balance", updated.Balance, "2500.50")

		balances, err := svc.ListBalances(ctx, userID, valuation.AccountBank)
		testutil.AssertNoError(t, err)
		testutil.AssertDecimal(t, "stored balance", balances[0].Balance, "2500.50")
	})

	t.Run("other_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCashAccountService(db)
		acc := testutil.CreateTestCashAccount(t, db, testutil.NewUserID(), valuation.AccountBank, "100")

		_, err := svc.UpdateBalance(ctx, testutil.NewUserID(), acc.ID, testutil.Dec("1"))
		testutil.AssertAppError(t, err, "ACCOUNT_NOT_FOUND")
	})
}
