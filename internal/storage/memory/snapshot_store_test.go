package memory

import (
	"context"
	"errors"
	"testing"

	"tokenradar/internal/domain"
	"tokenradar/internal/storage"
)

func snapshot(mint string, ts int64, price float64) *domain.TokenSnapshot {
	return &domain.TokenSnapshot{
		MintAddress: mint,
		TimestampMs: ts,
		PriceUSD:    price,
	}
}

func TestSnapshotStore_InsertBulkAndQuery(t *testing.T) {
	store := NewTokenSnapshotStore()
	ctx := context.Background()

	rows := []*domain.TokenSnapshot{
		snapshot("m1", 3000, 0.3),
		snapshot("m1", 1000, 0.1),
		snapshot("m1", 2000, 0.2),
		snapshot("m2", 1500, 9.9),
	}
	if err := store.InsertBulk(ctx, rows); err != nil {
		t.Fatalf("insert bulk: %v", err)
	}

	got, err := store.GetByMint(ctx, "m1")
	if err != nil {
		t.Fatalf("get by mint: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d snapshots, want 3", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].TimestampMs >= got[i].TimestampMs {
			t.Fatal("snapshots not ordered by timestamp ASC")
		}
	}

	ranged, err := store.GetByTimeRange(ctx, "m1", 1000, 2000)
	if err != nil {
		t.Fatalf("get by range: %v", err)
	}
	if len(ranged) != 2 { // bounds are inclusive
		t.Errorf("range [1000,2000] returned %d rows, want 2", len(ranged))
	}
}

func TestSnapshotStore_DuplicateFailsWholeBatch(t *testing.T) {
	store := NewTokenSnapshotStore()
	ctx := context.Background()

	if err := store.InsertBulk(ctx, []*domain.TokenSnapshot{snapshot("m1", 1000, 0.1)}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := store.InsertBulk(ctx, []*domain.TokenSnapshot{
		snapshot("m1", 2000, 0.2),
		snapshot("m1", 1000, 0.1), // duplicate key
	})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("err = %v, want ErrDuplicateKey", err)
	}

	// The non-duplicate row must not have been written.
	got, err := store.GetByMint(ctx, "m1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("store has %d rows, want only the seed row", len(got))
	}
}

func TestSnapshotStore_DuplicateWithinBatch(t *testing.T) {
	store := NewTokenSnapshotStore()
	ctx := context.Background()

	err := store.InsertBulk(ctx, []*domain.TokenSnapshot{
		snapshot("m1", 1000, 0.1),
		snapshot("m1", 1000, 0.2),
	})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("err = %v, want ErrDuplicateKey for in-batch duplicate", err)
	}
}

func TestSnapshotStore_InvalidRow(t *testing.T) {
	store := NewTokenSnapshotStore()
	ctx := context.Background()

	if err := store.InsertBulk(ctx, []*domain.TokenSnapshot{nil}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("nil row: err = %v, want ErrInvalidInput", err)
	}
	if err := store.InsertBulk(ctx, []*domain.TokenSnapshot{snapshot("", 1000, 1)}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("empty mint: err = %v, want ErrInvalidInput", err)
	}
}
