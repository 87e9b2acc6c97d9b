package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"tokenradar/internal/domain"
	"tokenradar/internal/storage"
)

// WalletStore implements storage.WalletStore using PostgreSQL, with the same
// JSONB document plus filter column layout as TokenStore.
type WalletStore struct {
	pool *Pool
}

// NewWalletStore creates a new WalletStore.
func NewWalletStore(pool *Pool) *WalletStore {
	return &WalletStore{pool: pool}
}

// Compile-time interface check.
var _ storage.WalletStore = (*WalletStore)(nil)

// Upsert inserts the wallet or replaces the stored version, merging
// cross-version bookkeeping under a row lock.
func (s *WalletStore) Upsert(ctx context.Context, w *domain.Wallet) error {
	if w == nil || w.Address == "" {
		return storage.ErrInvalidInput
	}

	next := w.Clone()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin wallet upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	var doc []byte
	err = tx.QueryRow(ctx,
		`SELECT doc FROM wallets WHERE address = $1 FOR UPDATE`,
		next.Address,
	).Scan(&doc)
	switch {
	case err == nil:
		var prev domain.Wallet
		if err := json.Unmarshal(doc, &prev); err != nil {
			return fmt.Errorf("decode stored wallet %s: %w", next.Address, err)
		}
		storage.MergeWallet(&prev, next)
	case isNotFoundError(err):
		// first version of this address
	default:
		return fmt.Errorf("lock wallet row: %w", err)
	}

	encoded, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode wallet %s: %w", next.Address, err)
	}

	tier := next.Classification.Reputation.Tier
	_, err = tx.Exec(ctx, `
		INSERT INTO wallets (address, tier, tier_ord, total_pnl_sol, win_rate, is_active, doc)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (address) DO UPDATE SET
			tier          = EXCLUDED.tier,
			tier_ord      = EXCLUDED.tier_ord,
			total_pnl_sol = EXCLUDED.total_pnl_sol,
			win_rate      = EXCLUDED.win_rate,
			is_active     = EXCLUDED.is_active,
			doc           = EXCLUDED.doc,
			updated_at    = now()
	`,
		next.Address,
		string(tier),
		tier.Ord(),
		next.Performance.Pnl.TotalSol,
		next.Performance.Trades.WinRate,
		next.System.IsActive,
		encoded,
	)
	if err != nil {
		return fmt.Errorf("upsert wallet: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit wallet upsert: %w", err)
	}
	return nil
}

// GetByAddress retrieves a wallet by address. Returns ErrNotFound if not exists.
func (s *WalletStore) GetByAddress(ctx context.Context, address string) (*domain.Wallet, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM wallets WHERE address = $1`, address,
	).Scan(&doc)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get wallet by address: %w", err)
	}

	var w domain.Wallet
	if err := json.Unmarshal(doc, &w); err != nil {
		return nil, fmt.Errorf("decode stored wallet %s: %w", address, err)
	}
	return &w, nil
}

// List retrieves wallets matching the filter, ordered by total PnL DESC,
// address ASC.
func (s *WalletStore) List(ctx context.Context, f storage.WalletFilter) ([]*domain.Wallet, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.MinTier != "" {
		conds = append(conds, "tier_ord >= "+arg(f.MinTier.Ord()))
	}
	if f.ActiveOnly {
		conds = append(conds, "is_active")
	}
	if f.MinWinRate > 0 {
		conds = append(conds, "win_rate >= "+arg(f.MinWinRate))
	}

	query := "SELECT doc FROM wallets"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY total_pnl_sol DESC, address ASC"
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	return scanWallets(rows)
}

// Delete removes a wallet. Returns ErrNotFound if not exists.
func (s *WalletStore) Delete(ctx context.Context, address string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM wallets WHERE address = $1`, address)
	if err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// scanWallets decodes the doc column of multiple rows.
func scanWallets(rows pgx.Rows) ([]*domain.Wallet, error) {
	var wallets []*domain.Wallet

	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan wallet row: %w", err)
		}
		var w domain.Wallet
		if err := json.Unmarshal(doc, &w); err != nil {
			return nil, fmt.Errorf("decode stored wallet: %w", err)
		}
		wallets = append(wallets, &w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wallet rows: %w", err)
	}

	return wallets, nil
}
