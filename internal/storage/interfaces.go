package storage

import (
	"context"

	"tokenradar/internal/domain"
)

// TokenStore provides access to canonical token storage. Tokens are
// re-normalized on every collector tick, so the store upserts by mint and
// carries monitoring counters across versions (see MergeToken).
type TokenStore interface {
	// Upsert inserts the token or replaces the stored version, merging
	// cross-version bookkeeping. Returns ErrInvalidInput on an empty mint.
	Upsert(ctx context.Context, t *domain.Token) error

	// GetByMint retrieves a token by mint address. Returns ErrNotFound if
	// not exists.
	GetByMint(ctx context.Context, mint string) (*domain.Token, error)

	// List retrieves tokens matching the filter, ordered by overall score
	// DESC, mint ASC.
	List(ctx context.Context, f TokenFilter) ([]*domain.Token, error)

	// Delete removes a token. Returns ErrNotFound if not exists.
	Delete(ctx context.Context, mint string) error
}

// TokenFilter narrows List results. Zero values mean no constraint.
type TokenFilter struct {
	Status          domain.TokenStatus
	MinOverallScore int
	MaxRiskScore    float64 // 0 means no cap
	MinLiquidityUSD float64
	Limit           int // 0 means no limit
}

// WalletStore provides access to canonical wallet storage, upserted by
// address the same way TokenStore upserts by mint.
type WalletStore interface {
	// Upsert inserts the wallet or replaces the stored version, merging
	// cross-version bookkeeping. Returns ErrInvalidInput on an empty address.
	Upsert(ctx context.Context, w *domain.Wallet) error

	// GetByAddress retrieves a wallet by address. Returns ErrNotFound if
	// not exists.
	GetByAddress(ctx context.Context, address string) (*domain.Wallet, error)

	// List retrieves wallets matching the filter, ordered by total PnL
	// DESC, address ASC.
	List(ctx context.Context, f WalletFilter) ([]*domain.Wallet, error)

	// Delete removes a wallet. Returns ErrNotFound if not exists.
	Delete(ctx context.Context, address string) error
}

// WalletFilter narrows List results. Zero values mean no constraint.
type WalletFilter struct {
	MinTier    domain.TraderTier // wallets at or above this tier
	ActiveOnly bool
	MinWinRate float64
	Limit      int // 0 means no limit
}

// TokenSnapshotStore provides access to the token timeseries. Snapshots are
// insert-only; duplicates on (mint, timestamp) fail the batch.
type TokenSnapshotStore interface {
	// InsertBulk adds multiple snapshots. Fails the entire batch on any
	// duplicate (mint_address, timestamp_ms).
	InsertBulk(ctx context.Context, rows []*domain.TokenSnapshot) error

	// GetByMint retrieves all snapshots for a mint, ordered by timestamp ASC.
	GetByMint(ctx context.Context, mint string) ([]*domain.TokenSnapshot, error)

	// GetByTimeRange retrieves snapshots for a mint within [start, end]
	// (inclusive, Unix milliseconds), ordered by timestamp ASC.
	GetByTimeRange(ctx context.Context, mint string, start, end int64) ([]*domain.TokenSnapshot, error)
}
