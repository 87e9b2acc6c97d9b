package collector

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tokenradar/internal/domain"
	"tokenradar/internal/observability"
	"tokenradar/internal/storage"
	"tokenradar/internal/tracker"
)

const defaultWatchLimit = 20

// StreamSource is the slice of the datastream client the watcher needs.
type StreamSource interface {
	Subscribe(mint string) (<-chan tracker.TokenStatsUpdate, error)
	Unsubscribe(mint string) error
}

// Watcher keeps live statistics subscriptions open for a set of mints and
// appends a snapshot row for every update frame. The collector reconciles
// the watched set to the top-ranked mints after each tick, so between ticks
// the snapshot timeseries keeps moving for the tokens that matter most.
type Watcher struct {
	source    StreamSource
	snapshots storage.TokenSnapshotStore
	logger    *zap.Logger
	metrics   *observability.Metrics

	mu     sync.Mutex
	subs   map[string]struct{}
	closed bool
	wg     sync.WaitGroup
}

// NewWatcher creates a Watcher over a datastream source and a snapshot store.
func NewWatcher(source StreamSource, snapshots storage.TokenSnapshotStore, logger *zap.Logger, metrics *observability.Metrics) (*Watcher, error) {
	if source == nil {
		return nil, fmt.Errorf("collector: watcher stream source is required")
	}
	if snapshots == nil {
		return nil, fmt.Errorf("collector: watcher snapshot store is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		source:    source,
		snapshots: snapshots,
		logger:    logger,
		metrics:   metrics,
		subs:      make(map[string]struct{}),
	}, nil
}

// SetMints reconciles the active subscription set against mints: new mints
// are subscribed, mints no longer listed are unsubscribed. Update pumps for
// new subscriptions run until their channel closes or ctx is done.
func (w *Watcher) SetMints(ctx context.Context, mints []string) {
	want := make(map[string]struct{}, len(mints))
	for _, mint := range mints {
		if mint != "" {
			want[mint] = struct{}{}
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}

	for mint := range w.subs {
		if _, keep := want[mint]; keep {
			continue
		}
		if err := w.source.Unsubscribe(mint); err != nil {
			w.logger.Debug("unsubscribe failed", zap.String("mint", mint), zap.Error(err))
		}
		delete(w.subs, mint)
	}

	for mint := range want {
		if _, ok := w.subs[mint]; ok {
			continue
		}
		ch, err := w.source.Subscribe(mint)
		if err != nil {
			w.logger.Warn("subscribe failed", zap.String("mint", mint), zap.Error(err))
			continue
		}
		w.subs[mint] = struct{}{}
		w.wg.Add(1)
		go w.pump(ctx, mint, ch)
	}
}

// Close unsubscribes everything and waits for the pumps to drain.
func (w *Watcher) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	for mint := range w.subs {
		if err := w.source.Unsubscribe(mint); err != nil {
			w.logger.Debug("unsubscribe failed", zap.String("mint", mint), zap.Error(err))
		}
		delete(w.subs, mint)
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *Watcher) pump(ctx context.Context, mint string, ch <-chan tracker.TokenStatsUpdate) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-ch:
			if !ok {
				return
			}
			if update.Mint == "" {
				update.Mint = mint
			}
			w.record(ctx, update)
		}
	}
}

// record appends one snapshot for an update frame. Replayed frames hit the
// (mint, timestamp) duplicate check and are silently skipped.
func (w *Watcher) record(ctx context.Context, update tracker.TokenStatsUpdate) {
	snap := &domain.TokenSnapshot{
		MintAddress:  update.Mint,
		TimestampMs:  update.Timestamp,
		PriceUSD:     update.Price,
		MarketCap:    update.MarketCap,
		LiquidityUSD: update.Liquidity,
		Volume24h:    update.Volume24h,
		HolderCount:  update.Holders,
	}

	if err := w.snapshots.InsertBulk(ctx, []*domain.TokenSnapshot{snap}); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return
		}
		w.logger.Debug("live snapshot insert failed",
			zap.String("mint", update.Mint), zap.Error(err))
		if w.metrics != nil {
			w.metrics.StoreErrors.WithLabelValues("clickhouse").Inc()
		}
		return
	}
	if w.metrics != nil {
		w.metrics.SnapshotsInserted.Inc()
	}
}
