package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"tokenradar/internal/domain"
	"tokenradar/internal/storage"
)

func testToken(mint string, overall int) *domain.Token {
	t := &domain.Token{
		MintAddress: mint,
		Symbol:      "TST",
		Name:        "Test Token",
	}
	t.Analytics.Scores.Overall = overall
	t.Liquidity.TotalUSD = 50000
	t.System.Status = domain.TokenStatusActive
	t.System.FirstSeenAt = time.Unix(1000, 0).UTC()
	t.System.UpdateCount = 1
	t.Market.Peak.Price = 1.0
	t.Launch.Initial.Price = 0.5
	return t
}

func TestTokenStore_UpsertAndGet(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	if err := store.Upsert(ctx, testToken("mint1", 70)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := store.GetByMint(ctx, "mint1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.MintAddress != "mint1" || got.Analytics.Scores.Overall != 70 {
		t.Errorf("got %+v", got)
	}

	if _, err := store.GetByMint(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("missing mint: err = %v, want ErrNotFound", err)
	}
}

func TestTokenStore_UpsertNilOrEmpty(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	if err := store.Upsert(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("nil token: err = %v, want ErrInvalidInput", err)
	}
	if err := store.Upsert(ctx, &domain.Token{}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("empty mint: err = %v, want ErrInvalidInput", err)
	}
}

func TestTokenStore_UpsertMergesVersions(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	first := testToken("mint1", 70)
	if err := store.Upsert(ctx, first); err != nil {
		t.Fatalf("upsert v1: %v", err)
	}

	// The fresh normalization looks like a first sighting: its launch
	// snapshot and peak both reflect the current price, which has dropped
	// well below the stored initial.
	second := testToken("mint1", 80)
	second.System.FirstSeenAt = time.Unix(2000, 0).UTC()
	second.Launch.Initial.Price = 0.1
	second.Market.Peak.Price = 0.1

	if err := store.Upsert(ctx, second); err != nil {
		t.Fatalf("upsert v2: %v", err)
	}

	got, err := store.GetByMint(ctx, "mint1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if !got.System.FirstSeenAt.Equal(time.Unix(1000, 0).UTC()) {
		t.Errorf("firstSeenAt = %v, want earliest sighting preserved", got.System.FirstSeenAt)
	}
	if got.System.UpdateCount != 2 {
		t.Errorf("updateCount = %d, want 2", got.System.UpdateCount)
	}
	if got.Market.Peak.Price != 1.0 {
		t.Errorf("peak price = %v, want ratcheted 1.0", got.Market.Peak.Price)
	}
	if got.Launch.Initial.Price != 0.5 {
		t.Errorf("initial price = %v, launch snapshot must stay immutable", got.Launch.Initial.Price)
	}
	// Ratcheted peak 1.0 over the stored initial 0.5, not the fresh 0.1.
	if got.Market.Peak.MultiplierFromLaunch != 2.0 {
		t.Errorf("multiplierFromLaunch = %v, want 2.0", got.Market.Peak.MultiplierFromLaunch)
	}
	if got.Analytics.Scores.Overall != 80 {
		t.Errorf("overall = %d, fresh score must win", got.Analytics.Scores.Overall)
	}
}

func TestTokenStore_ListFilterAndOrder(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	a := testToken("a", 90)
	b := testToken("b", 90)
	c := testToken("c", 40)
	c.System.Status = domain.TokenStatusRugged
	d := testToken("d", 95)
	d.Risk.Overall.Score = 9

	for _, tok := range []*domain.Token{a, b, c, d} {
		if err := store.Upsert(ctx, tok); err != nil {
			t.Fatalf("upsert %s: %v", tok.MintAddress, err)
		}
	}

	list, err := store.List(ctx, storage.TokenFilter{
		Status:       domain.TokenStatusActive,
		MaxRiskScore: 5,
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	// c filtered by status, d by risk; ties broken by mint ASC.
	if len(list) != 2 || list[0].MintAddress != "a" || list[1].MintAddress != "b" {
		mints := make([]string, len(list))
		for i, tok := range list {
			mints[i] = tok.MintAddress
		}
		t.Errorf("list = %v, want [a b]", mints)
	}

	limited, err := store.List(ctx, storage.TokenFilter{Limit: 1})
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 || limited[0].MintAddress != "d" {
		t.Errorf("limited list head = %+v, want highest score d", limited)
	}
}

func TestTokenStore_Delete(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	if err := store.Delete(ctx, "mint1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("delete missing: err = %v, want ErrNotFound", err)
	}

	if err := store.Upsert(ctx, testToken("mint1", 50)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.Delete(ctx, "mint1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByMint(ctx, "mint1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("get after delete: err = %v, want ErrNotFound", err)
	}
}

func TestTokenStore_ReturnsCopies(t *testing.T) {
	store := NewTokenStore()
	ctx := context.Background()

	tok := testToken("mint1", 50)
	tok.Risk.Warnings = []string{"w1"}
	if err := store.Upsert(ctx, tok); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// Mutating the inserted value or a read result must not leak into the
	// stored version.
	tok.Symbol = "HACKED"
	tok.Risk.Warnings[0] = "hacked"

	got, err := store.GetByMint(ctx, "mint1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Symbol != "TST" || got.Risk.Warnings[0] != "w1" {
		t.Errorf("stored token mutated externally: %+v", got)
	}

	got.Name = "also hacked"
	again, _ := store.GetByMint(ctx, "mint1")
	if again.Name != "Test Token" {
		t.Error("read result mutation leaked into store")
	}
}
