package clickhouse

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"tokenradar/internal/domain"
	"tokenradar/internal/storage"
)

// TokenSnapshotStore implements storage.TokenSnapshotStore using ClickHouse.
type TokenSnapshotStore struct {
	conn *Conn
}

// NewTokenSnapshotStore creates a new TokenSnapshotStore.
func NewTokenSnapshotStore(conn *Conn) *TokenSnapshotStore {
	return &TokenSnapshotStore{conn: conn}
}

// Compile-time interface check.
var _ storage.TokenSnapshotStore = (*TokenSnapshotStore)(nil)

// InsertBulk adds multiple snapshots. Fails entire batch on duplicate
// (mint_address, timestamp_ms); MergeTree does not enforce uniqueness, so
// duplicates are checked explicitly before the batch is sent.
func (s *TokenSnapshotStore) InsertBulk(ctx context.Context, rows []*domain.TokenSnapshot) error {
	if len(rows) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		mint        string
		timestampMs int64
	}
	seen := make(map[key]struct{})
	for _, r := range rows {
		k := key{r.MintAddress, r.TimestampMs}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, r := range rows {
		exists, err := s.exists(ctx, r.MintAddress, r.TimestampMs)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO token_snapshots (
			mint_address, timestamp_ms, price_usd, market_cap, liquidity_usd,
			volume_24h, holder_count, risk_score, overall_score, status
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range rows {
		err = batch.Append(
			r.MintAddress, uint64(r.TimestampMs),
			r.PriceUSD, r.MarketCap, r.LiquidityUSD, r.Volume24h,
			uint32(r.HolderCount), r.RiskScore, int32(r.OverallScore), r.Status,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByMint retrieves all snapshots for a mint, ordered by timestamp ASC.
func (s *TokenSnapshotStore) GetByMint(ctx context.Context, mint string) ([]*domain.TokenSnapshot, error) {
	query := `
		SELECT mint_address, timestamp_ms, price_usd, market_cap, liquidity_usd,
		       volume_24h, holder_count, risk_score, overall_score, status
		FROM token_snapshots
		WHERE mint_address = ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, mint)
	if err != nil {
		return nil, fmt.Errorf("query by mint: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// GetByTimeRange retrieves snapshots for a mint within [start, end] (inclusive).
func (s *TokenSnapshotStore) GetByTimeRange(ctx context.Context, mint string, start, end int64) ([]*domain.TokenSnapshot, error) {
	query := `
		SELECT mint_address, timestamp_ms, price_usd, market_cap, liquidity_usd,
		       volume_24h, holder_count, risk_score, overall_score, status
		FROM token_snapshots
		WHERE mint_address = ? AND timestamp_ms >= ? AND timestamp_ms <= ?
		ORDER BY timestamp_ms ASC
	`

	rows, err := s.conn.Query(ctx, query, mint, uint64(start), uint64(end))
	if err != nil {
		return nil, fmt.Errorf("query by time range: %w", err)
	}
	defer rows.Close()

	return scanSnapshots(rows)
}

// exists checks if a snapshot with the given key exists.
func (s *TokenSnapshotStore) exists(ctx context.Context, mint string, timestampMs int64) (bool, error) {
	query := `
		SELECT count(*) FROM token_snapshots
		WHERE mint_address = ? AND timestamp_ms = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, mint, uint64(timestampMs)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// scanSnapshots scans multiple rows.
func scanSnapshots(rows driver.Rows) ([]*domain.TokenSnapshot, error) {
	var snapshots []*domain.TokenSnapshot

	for rows.Next() {
		var snap domain.TokenSnapshot
		var timestampMs uint64
		var holderCount uint32
		var overallScore int32

		err := rows.Scan(
			&snap.MintAddress, &timestampMs,
			&snap.PriceUSD, &snap.MarketCap, &snap.LiquidityUSD, &snap.Volume24h,
			&holderCount, &snap.RiskScore, &overallScore, &snap.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}

		snap.TimestampMs = int64(timestampMs)
		snap.HolderCount = int(holderCount)
		snap.OverallScore = int(overallScore)
		snapshots = append(snapshots, &snap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot rows: %w", err)
	}

	return snapshots, nil
}
