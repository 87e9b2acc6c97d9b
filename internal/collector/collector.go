// Package collector drives the periodic fetch → normalize → store → rank
// cycle. It coordinates the provider client, the entity stores, the snapshot
// store and the ranking cache; all heavy lifting stays in internal/normalize.
package collector

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"tokenradar/internal/domain"
	"tokenradar/internal/normalize"
	"tokenradar/internal/observability"
	"tokenradar/internal/storage"
	"tokenradar/internal/tracker"
)

const (
	defaultConcurrency = 8
	defaultTokenLimit  = 100
	defaultTraderPages = 1
	defaultInterval    = 2 * time.Minute
)

// RankingCache is the slice of the cache the collector needs. A nil cache
// disables ranking publication.
type RankingCache interface {
	SetTokenRanking(ctx context.Context, previews []domain.TokenPreview) error
	SetWalletRanking(ctx context.Context, previews []domain.WalletPreview) error
}

// Collector runs the normalization cycle.
type Collector struct {
	client    tracker.Client
	tokens    storage.TokenStore
	wallets   storage.WalletStore
	snapshots storage.TokenSnapshotStore
	cache     RankingCache
	watcher   *Watcher

	logger  *zap.Logger
	metrics *observability.Metrics

	interval    time.Duration
	concurrency int
	tokenLimit  int
	traderPages int
	watchLimit  int

	now func() time.Time
}

// Options for creating a Collector. Client, TokenStore and WalletStore are
// required; the rest are optional collaborators.
type Options struct {
	Client        tracker.Client
	TokenStore    storage.TokenStore
	WalletStore   storage.WalletStore
	SnapshotStore storage.TokenSnapshotStore
	Cache         RankingCache

	// Watcher keeps live-stream subscriptions on the top-ranked mints between
	// ticks. Optional.
	Watcher *Watcher

	Logger  *zap.Logger
	Metrics *observability.Metrics

	Interval    time.Duration
	Concurrency int
	TokenLimit  int
	TraderPages int
	WatchLimit  int
}

// New creates a new Collector.
func New(opts Options) (*Collector, error) {
	if opts.Client == nil {
		return nil, fmt.Errorf("collector: client is required")
	}
	if opts.TokenStore == nil || opts.WalletStore == nil {
		return nil, fmt.Errorf("collector: token and wallet stores are required")
	}

	c := &Collector{
		client:      opts.Client,
		tokens:      opts.TokenStore,
		wallets:     opts.WalletStore,
		snapshots:   opts.SnapshotStore,
		cache:       opts.Cache,
		watcher:     opts.Watcher,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
		interval:    opts.Interval,
		concurrency: opts.Concurrency,
		tokenLimit:  opts.TokenLimit,
		traderPages: opts.TraderPages,
		watchLimit:  opts.WatchLimit,
		now:         time.Now,
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.interval <= 0 {
		c.interval = defaultInterval
	}
	if c.concurrency <= 0 {
		c.concurrency = defaultConcurrency
	}
	if c.tokenLimit <= 0 {
		c.tokenLimit = defaultTokenLimit
	}
	if c.traderPages <= 0 {
		c.traderPages = defaultTraderPages
	}
	if c.watchLimit <= 0 {
		c.watchLimit = defaultWatchLimit
	}
	return c, nil
}

// RunResult summarizes one tick. Per-record failures are collected here, not
// returned as errors; only infrastructure failures abort a tick.
type RunResult struct {
	TokensProcessed   int
	WalletsProcessed  int
	SnapshotsInserted int
	TokenPreviews     []domain.TokenPreview
	WalletPreviews    []domain.WalletPreview
	Errors            []string
}

// Run invokes RunOnce on every tick until ctx is done. The first tick fires
// immediately. Tick failures are logged, never fatal.
func (c *Collector) Run(ctx context.Context) error {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		start := c.now()
		result, err := c.RunOnce(ctx)
		elapsed := c.now().Sub(start)

		if c.metrics != nil {
			c.metrics.TickDuration.Observe(elapsed.Seconds())
		}
		if err != nil {
			if c.metrics != nil {
				c.metrics.TicksTotal.WithLabelValues("error").Inc()
			}
			c.logger.Error("collector tick failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		} else {
			if c.metrics != nil {
				c.metrics.TicksTotal.WithLabelValues("ok").Inc()
				c.metrics.LastSuccessfulTick.SetToCurrentTime()
			}
			c.logger.Info("collector tick complete",
				zap.Int("tokens", result.TokensProcessed),
				zap.Int("wallets", result.WalletsProcessed),
				zap.Int("snapshots", result.SnapshotsInserted),
				zap.Int("recordErrors", len(result.Errors)),
				zap.Duration("elapsed", elapsed),
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce executes a single collection cycle.
func (c *Collector) RunOnce(ctx context.Context) (*RunResult, error) {
	result := &RunResult{}
	now := c.now()

	tokens, err := c.collectTokens(ctx, now, result)
	if err != nil {
		return nil, err
	}

	wallets, err := c.collectWallets(ctx, now, result)
	if err != nil {
		return nil, err
	}

	c.publishRankings(ctx, tokens, wallets, result)
	c.syncWatcher(ctx, result.TokenPreviews)
	return result, nil
}

// syncWatcher points the live-stream watcher at the top-ranked mints.
func (c *Collector) syncWatcher(ctx context.Context, previews []domain.TokenPreview) {
	if c.watcher == nil {
		return
	}
	limit := c.watchLimit
	if limit > len(previews) {
		limit = len(previews)
	}
	mints := make([]string, 0, limit)
	for _, p := range previews[:limit] {
		mints = append(mints, p.MintAddress)
	}
	c.watcher.SetMints(ctx, mints)
}

// collectTokens fetches the token batch, normalizes it concurrently, upserts
// entities and appends one snapshot per token.
func (c *Collector) collectTokens(ctx context.Context, now time.Time, result *RunResult) ([]*domain.Token, error) {
	raw, err := c.searchTokens(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch tokens: %w", err)
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		sem       = make(chan struct{}, c.concurrency)
		tokens    []*domain.Token
		snapshots []*domain.TokenSnapshot
	)

	for _, rawToken := range raw {
		rawToken := rawToken
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			// Risk assessment is best-effort; the normalizer falls back to
			// its heuristic when absent.
			risk, err := c.tokenRisk(ctx, rawToken.Mint)
			if err != nil {
				c.logger.Debug("risk fetch failed, using heuristic",
					zap.String("mint", rawToken.Mint), zap.Error(err))
			}

			token, err := normalize.TokenAt(rawToken, risk, now)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if c.metrics != nil {
					c.metrics.NormalizeErrors.WithLabelValues("token").Inc()
				}
				result.Errors = append(result.Errors, fmt.Sprintf("normalize token %s: %v", rawToken.Mint, err))
				return
			}
			if c.metrics != nil {
				c.metrics.TokensNormalized.Inc()
			}
			tokens = append(tokens, token)
			snapshots = append(snapshots, snapshotOf(token, now))
		}()
	}
	wg.Wait()

	for _, token := range tokens {
		if err := c.tokens.Upsert(ctx, token); err != nil {
			return nil, fmt.Errorf("upsert token %s: %w", token.MintAddress, err)
		}
		if c.metrics != nil {
			c.metrics.EntitiesUpserted.WithLabelValues("token").Inc()
		}
	}
	result.TokensProcessed = len(tokens)

	if c.snapshots != nil && len(snapshots) > 0 {
		if err := c.snapshots.InsertBulk(ctx, snapshots); err != nil {
			// Snapshots are an append-only side channel; losing one tick's
			// rows must not lose the entities.
			result.Errors = append(result.Errors, fmt.Sprintf("insert snapshots: %v", err))
			if c.metrics != nil {
				c.metrics.StoreErrors.WithLabelValues("clickhouse").Inc()
			}
		} else {
			result.SnapshotsInserted = len(snapshots)
			if c.metrics != nil {
				c.metrics.SnapshotsInserted.Add(float64(len(snapshots)))
			}
		}
	}

	return tokens, nil
}

// collectWallets fetches top-trader pages, enriches each with PnL and
// portfolio data best-effort, normalizes concurrently and upserts.
func (c *Collector) collectWallets(ctx context.Context, now time.Time, result *RunResult) ([]*domain.Wallet, error) {
	var raw []tracker.TopTrader
	for page := 1; page <= c.traderPages; page++ {
		traders, err := c.topTraders(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("fetch top traders page %d: %w", page, err)
		}
		if len(traders) == 0 {
			break
		}
		raw = append(raw, traders...)
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		sem     = make(chan struct{}, c.concurrency)
		wallets []*domain.Wallet
	)

	for _, trader := range raw {
		trader := trader
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()

			pnl, err := c.walletPnL(ctx, trader.Address)
			if err != nil {
				c.logger.Debug("pnl fetch failed",
					zap.String("address", trader.Address), zap.Error(err))
			}
			portfolio, err := c.walletInfo(ctx, trader.Address)
			if err != nil {
				c.logger.Debug("portfolio fetch failed",
					zap.String("address", trader.Address), zap.Error(err))
			}

			wallet, err := normalize.WalletFromTopTraderAt(trader, pnl, portfolio, now)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if c.metrics != nil {
					c.metrics.NormalizeErrors.WithLabelValues("wallet").Inc()
				}
				result.Errors = append(result.Errors, fmt.Sprintf("normalize wallet %s: %v", trader.Address, err))
				return
			}
			if c.metrics != nil {
				c.metrics.WalletsNormalized.Inc()
			}
			wallets = append(wallets, wallet)
		}()
	}
	wg.Wait()

	for _, wallet := range wallets {
		if err := c.wallets.Upsert(ctx, wallet); err != nil {
			return nil, fmt.Errorf("upsert wallet %s: %w", wallet.Address, err)
		}
		if c.metrics != nil {
			c.metrics.EntitiesUpserted.WithLabelValues("wallet").Inc()
		}
	}
	result.WalletsProcessed = len(wallets)

	return wallets, nil
}

// publishRankings projects previews, orders them deterministically and pushes
// them to the cache when one is configured.
func (c *Collector) publishRankings(ctx context.Context, tokens []*domain.Token, wallets []*domain.Wallet, result *RunResult) {
	result.TokenPreviews = RankTokens(tokens)
	result.WalletPreviews = RankWallets(wallets)

	if c.cache == nil {
		return
	}
	if err := c.cache.SetTokenRanking(ctx, result.TokenPreviews); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cache token ranking: %v", err))
	}
	if err := c.cache.SetWalletRanking(ctx, result.WalletPreviews); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("cache wallet ranking: %v", err))
	}
}

// RankTokens projects tokens to previews ordered by overall score DESC,
// mint ASC.
func RankTokens(tokens []*domain.Token) []domain.TokenPreview {
	previews := make([]domain.TokenPreview, 0, len(tokens))
	for _, t := range tokens {
		previews = append(previews, normalize.TokenPreview(t))
	}
	sort.Slice(previews, func(i, j int) bool {
		if previews[i].OverallScore != previews[j].OverallScore {
			return previews[i].OverallScore > previews[j].OverallScore
		}
		return previews[i].MintAddress < previews[j].MintAddress
	})
	return previews
}

// RankWallets projects wallets to previews ordered by total PnL DESC,
// address ASC, with 1-based ranks assigned after sorting.
func RankWallets(wallets []*domain.Wallet) []domain.WalletPreview {
	ordered := make([]*domain.Wallet, len(wallets))
	copy(ordered, wallets)
	sort.Slice(ordered, func(i, j int) bool {
		pi, pj := ordered[i].Performance.Pnl.TotalSol, ordered[j].Performance.Pnl.TotalSol
		if pi != pj {
			return pi > pj
		}
		return ordered[i].Address < ordered[j].Address
	})

	previews := make([]domain.WalletPreview, 0, len(ordered))
	for i, w := range ordered {
		rank := i + 1
		previews = append(previews, normalize.WalletPreview(w, &rank))
	}
	return previews
}

// snapshotOf projects the compact per-tick observation of a token.
func snapshotOf(t *domain.Token, now time.Time) *domain.TokenSnapshot {
	return &domain.TokenSnapshot{
		MintAddress:  t.MintAddress,
		TimestampMs:  now.UnixMilli(),
		PriceUSD:     t.Market.Price.USD,
		MarketCap:    t.Market.MarketCap,
		LiquidityUSD: t.Liquidity.TotalUSD,
		Volume24h:    t.Activity.Volume.H24,
		HolderCount:  t.Holders.Total,
		RiskScore:    t.Risk.Overall.Score,
		OverallScore: t.Analytics.Scores.Overall,
		Status:       string(t.System.Status),
	}
}

func (c *Collector) searchTokens(ctx context.Context) ([]tracker.Token, error) {
	start := c.now()
	tokens, err := c.client.SearchTokens(ctx, tracker.SearchParams{
		Limit:     c.tokenLimit,
		SortBy:    "volume_24h",
		SortOrder: "desc",
	})
	c.observeCall("search_tokens", start, err)
	return tokens, err
}

func (c *Collector) tokenRisk(ctx context.Context, mint string) (*tracker.RiskData, error) {
	start := c.now()
	risk, err := c.client.TokenRisk(ctx, mint)
	c.observeCall("token_risk", start, err)
	return risk, err
}

func (c *Collector) topTraders(ctx context.Context, page int) ([]tracker.TopTrader, error) {
	start := c.now()
	traders, err := c.client.TopTraders(ctx, page)
	c.observeCall("top_traders", start, err)
	return traders, err
}

func (c *Collector) walletPnL(ctx context.Context, address string) (*tracker.WalletPnL, error) {
	start := c.now()
	pnl, err := c.client.WalletPnL(ctx, address)
	c.observeCall("wallet_pnl", start, err)
	return pnl, err
}

func (c *Collector) walletInfo(ctx context.Context, address string) (*tracker.WalletInfo, error) {
	start := c.now()
	info, err := c.client.Wallet(ctx, address)
	c.observeCall("wallet", start, err)
	return info, err
}

func (c *Collector) observeCall(method string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.ProviderCallLatency.WithLabelValues(method).Observe(c.now().Sub(start).Seconds())
	if err != nil {
		c.metrics.ProviderCallErrors.WithLabelValues(method).Inc()
	}
}
