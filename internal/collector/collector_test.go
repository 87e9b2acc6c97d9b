package collector

import (
	"context"
	"sync"
	"testing"
	"time"

	"tokenradar/internal/domain"
	"tokenradar/internal/storage/memory"
	"tokenradar/internal/tracker"
	"tokenradar/internal/tracker/stub"
)

const (
	testMint   = "So11111111111111111111111111111111111111112"
	testMint2  = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	testWallet = "11111111111111111111111111111111"
)

type fakeCache struct {
	mu      sync.Mutex
	tokens  []domain.TokenPreview
	wallets []domain.WalletPreview
	sets    int
}

func (f *fakeCache) SetTokenRanking(_ context.Context, previews []domain.TokenPreview) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = previews
	f.sets++
	return nil
}

func (f *fakeCache) SetWalletRanking(_ context.Context, previews []domain.WalletPreview) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wallets = previews
	return nil
}

func rawToken(mint, symbol string, volume24h float64) tracker.Token {
	vol := volume24h
	return tracker.Token{
		Mint:         mint,
		Symbol:       symbol,
		Name:         symbol + " Token",
		Market:       "raydium",
		LiquidityUSD: 50_000,
		MarketCapUSD: 200_000,
		PriceUSD:     0.002,
		Volume24h:    &vol,
		Buys:         600,
		Sells:        400,
		Holders:      300,
		LpBurn:       100,
		Top10:        20,
		Dev:          5,
		CreatedAt:    1756300000000,
		LastUpdated:  1756400000000,
	}
}

func rawTrader(address string, pnl float64) tracker.TopTrader {
	return tracker.TopTrader{
		Address:     address,
		TotalPnl:    pnl,
		ROI:         80,
		WinRate:     82,
		TotalTrades: 150,
	}
}

func newTestCollector(t *testing.T, client tracker.Client, c RankingCache) (*Collector, *memory.TokenStore, *memory.WalletStore, *memory.TokenSnapshotStore) {
	t.Helper()

	tokens := memory.NewTokenStore()
	wallets := memory.NewWalletStore()
	snapshots := memory.NewTokenSnapshotStore()

	col, err := New(Options{
		Client:        client,
		TokenStore:    tokens,
		WalletStore:   wallets,
		SnapshotStore: snapshots,
		Cache:         c,
		Concurrency:   2,
	})
	if err != nil {
		t.Fatalf("new collector: %v", err)
	}
	col.now = func() time.Time { return time.UnixMilli(1756400000000).UTC() }
	return col, tokens, wallets, snapshots
}

func TestNew_RequiresCollaborators(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected error without client")
	}
	if _, err := New(Options{Client: stub.NewClient()}); err == nil {
		t.Fatal("expected error without stores")
	}
}

func TestCollector_RunOnce(t *testing.T) {
	client := stub.NewClient()
	client.Tokens = []tracker.Token{
		rawToken(testMint, "AAA", 30_000),
		rawToken(testMint2, "BBB", 500_000),
		rawToken(testMint, "", 0), // rejected: missing symbol
	}
	client.Traders = []tracker.TopTrader{
		rawTrader(testWallet, 600),
		rawTrader(testMint2, 50),
	}

	cache := &fakeCache{}
	col, tokens, wallets, snapshots := newTestCollector(t, client, cache)

	result, err := col.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run once: %v", err)
	}

	if result.TokensProcessed != 2 {
		t.Errorf("tokens processed = %d, want 2", result.TokensProcessed)
	}
	if result.WalletsProcessed != 2 {
		t.Errorf("wallets processed = %d, want 2", result.WalletsProcessed)
	}
	if result.SnapshotsInserted != 2 {
		t.Errorf("snapshots inserted = %d, want 2", result.SnapshotsInserted)
	}
	if len(result.Errors) != 1 {
		t.Errorf("record errors = %v, want exactly the invalid-symbol one", result.Errors)
	}

	if _, err := tokens.GetByMint(context.Background(), testMint); err != nil {
		t.Errorf("token %s not stored: %v", testMint, err)
	}
	if _, err := wallets.GetByAddress(context.Background(), testWallet); err != nil {
		t.Errorf("wallet %s not stored: %v", testWallet, err)
	}

	rows, err := snapshots.GetByMint(context.Background(), testMint2)
	if err != nil {
		t.Fatalf("get snapshots: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d snapshots for %s, want 1", len(rows), testMint2)
	}
	if rows[0].TimestampMs != 1756400000000 {
		t.Errorf("snapshot timestamp = %d", rows[0].TimestampMs)
	}

	// Rankings published through the cache.
	if cache.sets != 1 {
		t.Fatalf("cache set %d times, want 1", cache.sets)
	}
	if len(cache.tokens) != 2 || len(cache.wallets) != 2 {
		t.Fatalf("cached %d tokens / %d wallets", len(cache.tokens), len(cache.wallets))
	}
	if cache.wallets[0].TotalPnl < cache.wallets[1].TotalPnl {
		t.Error("wallet ranking not ordered by PnL DESC")
	}
	if cache.wallets[0].Rank == nil || *cache.wallets[0].Rank != 1 {
		t.Error("top wallet should carry rank 1")
	}
}

func TestCollector_RunOnce_NilOptionalCollaborators(t *testing.T) {
	client := stub.NewClient()
	client.Tokens = []tracker.Token{rawToken(testMint, "AAA", 30_000)}

	col, err := New(Options{
		Client:      client,
		TokenStore:  memory.NewTokenStore(),
		WalletStore: memory.NewWalletStore(),
	})
	if err != nil {
		t.Fatalf("new collector: %v", err)
	}

	result, err := col.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("run once without cache/snapshots: %v", err)
	}
	if result.TokensProcessed != 1 || result.SnapshotsInserted != 0 {
		t.Errorf("result = %+v", result)
	}
}

func TestCollector_MergesAcrossTicks(t *testing.T) {
	client := stub.NewClient()
	client.Tokens = []tracker.Token{rawToken(testMint, "AAA", 30_000)}

	col, tokens, _, _ := newTestCollector(t, client, nil)
	ctx := context.Background()

	if _, err := col.RunOnce(ctx); err != nil {
		t.Fatalf("tick 1: %v", err)
	}
	// Second tick re-normalizes the same mint; the stored version must merge,
	// not reset.
	col.now = func() time.Time { return time.UnixMilli(1756400060000).UTC() }
	if _, err := col.RunOnce(ctx); err != nil {
		t.Fatalf("tick 2: %v", err)
	}

	got, err := tokens.GetByMint(ctx, testMint)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.System.UpdateCount != 2 {
		t.Errorf("update count = %d, want 2", got.System.UpdateCount)
	}
}

func TestCollector_Run_StopsOnContextCancel(t *testing.T) {
	client := stub.NewClient()
	col, _, _, _ := newTestCollector(t, client, nil)
	col.interval = 10 * time.Millisecond
	col.now = time.Now

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- col.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}

func TestRankTokens_Ordering(t *testing.T) {
	a := &domain.Token{MintAddress: "a"}
	a.Analytics.Scores.Overall = 80
	b := &domain.Token{MintAddress: "b"}
	b.Analytics.Scores.Overall = 80
	c := &domain.Token{MintAddress: "c"}
	c.Analytics.Scores.Overall = 95

	previews := RankTokens([]*domain.Token{b, a, c})
	want := []string{"c", "a", "b"}
	for i, mint := range want {
		if previews[i].MintAddress != mint {
			t.Fatalf("position %d = %s, want %s", i, previews[i].MintAddress, mint)
		}
	}
}

func TestRankWallets_AssignsRanks(t *testing.T) {
	low := &domain.Wallet{Address: "low"}
	low.Performance.Pnl.TotalSol = 10
	high := &domain.Wallet{Address: "high"}
	high.Performance.Pnl.TotalSol = 900

	previews := RankWallets([]*domain.Wallet{low, high})
	if previews[0].Address != "high" || previews[1].Address != "low" {
		t.Fatalf("order = %s, %s", previews[0].Address, previews[1].Address)
	}
	for i, p := range previews {
		if p.Rank == nil || *p.Rank != i+1 {
			t.Errorf("rank at %d = %v", i, p.Rank)
		}
	}
}
