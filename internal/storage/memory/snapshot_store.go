package memory

import (
	"context"
	"sort"
	"sync"

	"tokenradar/internal/domain"
	"tokenradar/internal/storage"
)

type snapshotKey struct {
	mint        string
	timestampMs int64
}

// TokenSnapshotStore is an in-memory implementation of
// storage.TokenSnapshotStore.
type TokenSnapshotStore struct {
	mu   sync.RWMutex
	data map[snapshotKey]*domain.TokenSnapshot
}

// NewTokenSnapshotStore creates a new in-memory snapshot store.
func NewTokenSnapshotStore() *TokenSnapshotStore {
	return &TokenSnapshotStore{
		data: make(map[snapshotKey]*domain.TokenSnapshot),
	}
}

// InsertBulk adds multiple snapshots. Fails the entire batch on any
// duplicate (mint_address, timestamp_ms); nothing is written on failure.
func (s *TokenSnapshotStore) InsertBulk(_ context.Context, rows []*domain.TokenSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before writing anything.
	seen := make(map[snapshotKey]bool, len(rows))
	for _, row := range rows {
		if row == nil || row.MintAddress == "" {
			return storage.ErrInvalidInput
		}
		key := snapshotKey{row.MintAddress, row.TimestampMs}
		if seen[key] {
			return storage.ErrDuplicateKey
		}
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		seen[key] = true
	}

	for _, row := range rows {
		rowCopy := *row
		s.data[snapshotKey{row.MintAddress, row.TimestampMs}] = &rowCopy
	}
	return nil
}

// GetByMint retrieves all snapshots for a mint, ordered by timestamp ASC.
func (s *TokenSnapshotStore) GetByMint(_ context.Context, mint string) ([]*domain.TokenSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.TokenSnapshot
	for key, row := range s.data {
		if key.mint == mint {
			rowCopy := *row
			result = append(result, &rowCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].TimestampMs < result[j].TimestampMs
	})
	return result, nil
}

// GetByTimeRange retrieves snapshots for a mint within [start, end]
// (inclusive), ordered by timestamp ASC.
func (s *TokenSnapshotStore) GetByTimeRange(_ context.Context, mint string, start, end int64) ([]*domain.TokenSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.TokenSnapshot
	for key, row := range s.data {
		if key.mint == mint && key.timestampMs >= start && key.timestampMs <= end {
			rowCopy := *row
			result = append(result, &rowCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].TimestampMs < result[j].TimestampMs
	})
	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.TokenSnapshotStore = (*TokenSnapshotStore)(nil)
