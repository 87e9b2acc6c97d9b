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

// TokenStore implements storage.TokenStore using PostgreSQL. The full entity
// is stored as a JSONB document; filter columns are extracted on every
// upsert so List can run entirely in SQL.
type TokenStore struct {
	pool *Pool
}

// NewTokenStore creates a new TokenStore.
func NewTokenStore(pool *Pool) *TokenStore {
	return &TokenStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TokenStore = (*TokenStore)(nil)

// Upsert inserts the token or replaces the stored version, merging
// cross-version bookkeeping. The stored row is locked for the duration of
// the merge so concurrent upserts of the same mint serialize.
func (s *TokenStore) Upsert(ctx context.Context, t *domain.Token) error {
	if t == nil || t.MintAddress == "" {
		return storage.ErrInvalidInput
	}

	next := t.Clone()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin token upsert: %w", err)
	}
	defer tx.Rollback(ctx)

	var doc []byte
	err = tx.QueryRow(ctx,
		`SELECT doc FROM tokens WHERE mint_address = $1 FOR UPDATE`,
		next.MintAddress,
	).Scan(&doc)
	switch {
	case err == nil:
		var prev domain.Token
		if err := json.Unmarshal(doc, &prev); err != nil {
			return fmt.Errorf("decode stored token %s: %w", next.MintAddress, err)
		}
		storage.MergeToken(&prev, next)
	case isNotFoundError(err):
		// first version of this mint
	default:
		return fmt.Errorf("lock token row: %w", err)
	}

	encoded, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode token %s: %w", next.MintAddress, err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO tokens (mint_address, status, overall_score, risk_score, liquidity_usd, doc)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (mint_address) DO UPDATE SET
			status        = EXCLUDED.status,
			overall_score = EXCLUDED.overall_score,
			risk_score    = EXCLUDED.risk_score,
			liquidity_usd = EXCLUDED.liquidity_usd,
			doc           = EXCLUDED.doc,
			updated_at    = now()
	`,
		next.MintAddress,
		string(next.System.Status),
		next.Analytics.Scores.Overall,
		next.Risk.Overall.Score,
		next.Liquidity.TotalUSD,
		encoded,
	)
	if err != nil {
		return fmt.Errorf("upsert token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit token upsert: %w", err)
	}
	return nil
}

// GetByMint retrieves a token by mint address. Returns ErrNotFound if not exists.
func (s *TokenStore) GetByMint(ctx context.Context, mint string) (*domain.Token, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx,
		`SELECT doc FROM tokens WHERE mint_address = $1`, mint,
	).Scan(&doc)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get token by mint: %w", err)
	}

	var t domain.Token
	if err := json.Unmarshal(doc, &t); err != nil {
		return nil, fmt.Errorf("decode stored token %s: %w", mint, err)
	}
	return &t, nil
}

// List retrieves tokens matching the filter, ordered by overall score DESC,
// mint ASC.
func (s *TokenStore) List(ctx context.Context, f storage.TokenFilter) ([]*domain.Token, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Status != "" {
		conds = append(conds, "status = "+arg(string(f.Status)))
	}
	if f.MinOverallScore > 0 {
		conds = append(conds, "overall_score >= "+arg(f.MinOverallScore))
	}
	if f.MaxRiskScore > 0 {
		conds = append(conds, "risk_score <= "+arg(f.MaxRiskScore))
	}
	if f.MinLiquidityUSD > 0 {
		conds = append(conds, "liquidity_usd >= "+arg(f.MinLiquidityUSD))
	}

	query := "SELECT doc FROM tokens"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY overall_score DESC, mint_address ASC"
	if f.Limit > 0 {
		query += " LIMIT " + arg(f.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tokens: %w", err)
	}
	defer rows.Close()

	return scanTokens(rows)
}

// Delete removes a token. Returns ErrNotFound if not exists.
func (s *TokenStore) Delete(ctx context.Context, mint string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tokens WHERE mint_address = $1`, mint)
	if err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// scanTokens decodes the doc column of multiple rows.
func scanTokens(rows pgx.Rows) ([]*domain.Token, error) {
	var tokens []*domain.Token

	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan token row: %w", err)
		}
		var t domain.Token
		if err := json.Unmarshal(doc, &t); err != nil {
			return nil, fmt.Errorf("decode stored token: %w", err)
		}
		tokens = append(tokens, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token rows: %w", err)
	}

	return tokens, nil
}
