package services

import (
	"context"
	"testing"

	"nivesh/internal/testutil"
)

func TestUpsertAssetType(t *testing.T) {
	ctx := context.Background()

	t.Run("insert_then_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTaxonomyService(db)

		_, err := svc.UpsertAssetType(ctx, "REIT", "Real Estate", "")
		testutil.AssertNoError(t, err)
		_, err = svc.UpsertAssetType(ctx, "reit", "Equity", "REITs")
		testutil.AssertNoError(t, err)

		types, err := svc.ListAssetTypes(ctx)
		testutil.AssertNoError(t, err)
		if len(types) != 1 {
			t.Fatalf("expected 1 asset type, got %d", len(types))
		}
		if types[0].Category != "Equity" {
			t.Errorf("expected category Equity, got %s", types[0].Category)
		}
		if types[0].DisplayLabel != "REITs" {
			t.Errorf("expected label REITs, got %s", types[0].DisplayLabel)
		}
	})

	t.Run("label_defaults_to_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTaxonomyService(db)

		at, err := svc.UpsertAssetType(ctx, "bond", "Fixed Income", " ")
		testutil.AssertNoError(t, err)
		if at.DisplayLabel != "bond" {
			t.Errorf("expected label bond, got %s", at.DisplayLabel)
		}
	})

	t.Run("missing_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewTaxonomyService(db)

		_, err := svc.UpsertAssetType(ctx, "bond", "", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestTaxonomyLookup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewTaxonomyService(db)
	testutil.SeedAssetTypes(t, db)

	tax, err := svc.Taxonomy(context.Background())
	testutil.AssertNoError(t, err)

	if tax.Len() != 5 {
		t.Errorf("expected 5 types, got %d", tax.Len())
	}
	if got := tax.Resolve("Mutual_Fund"); got.Category != "Equity" {
		t.Errorf("expected mutual_fund in Equity, got %s", got.Category)
	}
	if got := tax.Resolve("art"); got.Category != "Other" {
		t.Errorf("expected unknown type in Other, got %s", got.Category)
	}
}
