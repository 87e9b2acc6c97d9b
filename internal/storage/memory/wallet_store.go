package memory

import (
	"context"
	"sort"
	"sync"

	"tokenradar/internal/domain"
	"tokenradar/internal/storage"
)

// WalletStore is an in-memory implementation of storage.WalletStore.
type WalletStore struct {
	mu   sync.RWMutex
	data map[string]*domain.Wallet // keyed by address
}

// NewWalletStore creates a new in-memory wallet store.
func NewWalletStore() *WalletStore {
	return &WalletStore{
		data: make(map[string]*domain.Wallet),
	}
}

// Upsert inserts or replaces the wallet, merging cross-version bookkeeping.
func (s *WalletStore) Upsert(_ context.Context, w *domain.Wallet) error {
	if w == nil || w.Address == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := w.Clone()
	if prev, exists := s.data[w.Address]; exists {
		storage.MergeWallet(prev, next)
	}
	s.data[w.Address] = next
	return nil
}

// GetByAddress retrieves a wallet by address. Returns ErrNotFound if not exists.
func (s *WalletStore) GetByAddress(_ context.Context, address string) (*domain.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, exists := s.data[address]
	if !exists {
		return nil, storage.ErrNotFound
	}
	return w.Clone(), nil
}

// List retrieves wallets matching the filter, ordered by total PnL DESC,
// address ASC.
func (s *WalletStore) List(_ context.Context, f storage.WalletFilter) ([]*domain.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.Wallet
	for _, w := range s.data {
		if !matchesWalletFilter(w, f) {
			continue
		}
		result = append(result, w.Clone())
	}

	sort.Slice(result, func(i, j int) bool {
		pi, pj := result[i].Performance.Pnl.TotalSol, result[j].Performance.Pnl.TotalSol
		if pi != pj {
			return pi > pj
		}
		return result[i].Address < result[j].Address
	})

	if f.Limit > 0 && len(result) > f.Limit {
		result = result[:f.Limit]
	}
	return result, nil
}

// Delete removes a wallet. Returns ErrNotFound if not exists.
func (s *WalletStore) Delete(_ context.Context, address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[address]; !exists {
		return storage.ErrNotFound
	}
	delete(s.data, address)
	return nil
}

func matchesWalletFilter(w *domain.Wallet, f storage.WalletFilter) bool {
	if f.MinTier != "" && w.Classification.Reputation.Tier.Ord() < f.MinTier.Ord() {
		return false
	}
	if f.ActiveOnly && !w.System.IsActive {
		return false
	}
	if w.Performance.Trades.WinRate < f.MinWinRate {
		return false
	}
	return true
}

// Verify interface compliance at compile time.
var _ storage.WalletStore = (*WalletStore)(nil)
