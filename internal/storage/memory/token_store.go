package memory

import (
	"context"
	"sort"
	"sync"

	"tokenradar/internal/domain"
	"tokenradar/internal/storage"
)

// TokenStore is an in-memory implementation of storage.TokenStore.
type TokenStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Token // keyed by mint address
}

// NewTokenStore creates a new in-memory token store.
func NewTokenStore() *TokenStore {
	return &TokenStore{
		data: make(map[string]*domain.Token),
	}
}

// Upsert inserts or replaces the token, merging cross-version bookkeeping.
func (s *TokenStore) Upsert(_ context.Context, t *domain.Token) error {
	if t == nil || t.MintAddress == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := t.Clone()
	if prev, exists := s.data[t.MintAddress]; exists {
		storage.MergeToken(prev, next)
	}
	s.data[t.MintAddress] = next
	return nil
}

// GetByMint retrieves a token by mint address. Returns ErrNotFound if not exists.
func (s *TokenStore) GetByMint(_ context.Context, mint string) (*domain.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.data[mint]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return t.Clone(), nil
}

// List retrieves tokens matching the filter, ordered by overall score DESC,
// mint ASC.
func (s *TokenStore) List(_ context.Context, f storage.TokenFilter) ([]*domain.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Token
	for _, t := range s.data {
		if !matchesTokenFilter(t, f) {
			continue
		}
		result = append(result, t.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		si, sj := result[i].Analytics.Scores.Overall, result[j].Analytics.Scores.Overall
		if si != sj {
			return si > sj
		}
		return result[i].MintAddress < result[j].MintAddress
	})

	if f.Limit > 0 && len(result) > f.Limit {
		result = result[:f.Limit]
	}
	return result, nil
}

// Delete removes a token. Returns ErrNotFound if not exists.
func (s *TokenStore) Delete(_ context.Context, mint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[mint]; !exists {
		return storage.ErrNotFound
	}
	delete(s.data, mint)
	return nil
}

func matchesTokenFilter(t *domain.Token, f storage.TokenFilter) bool {
	if f.Status != "" && t.System.Status != f.Status {
		return false
	}
	if t.Analytics.Scores.Overall < f.MinOverallScore {
		return false
	}
	if f.MaxRiskScore > 0 && t.Risk.Overall.Score > f.MaxRiskScore {
		return false
	}
	if t.Liquidity.TotalUSD < f.MinLiquidityUSD {
		return false
	}
	return true
}

// Verify interface compliance at compile time.
var _ storage.TokenStore = (*TokenStore)(nil)
