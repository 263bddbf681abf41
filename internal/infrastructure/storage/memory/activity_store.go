package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"nft_staker/internal/app/port"
	"nft_staker/internal/domain/entity"
	"nft_staker/internal/infrastructure/storage"
)

// ActivityStore is an in-memory implementation of port.ActivityStore.
type ActivityStore struct {
	mu   sync.RWMutex
	data map[string]*entity.ActivityRecord // keyed by id
}

// NewActivityStore creates a new in-memory activity store.
func NewActivityStore() *ActivityStore {
	return &ActivityStore{
		data: make(map[string]*entity.ActivityRecord),
	}
}

// Compile-time interface check.
var _ port.ActivityStore = (*ActivityStore)(nil)

// Insert adds a new record. Returns ErrDuplicateKey if the id exists.
func (s *ActivityStore) Insert(_ context.Context, r *entity.ActivityRecord) error {
	if r == nil || r.ID == "" || r.Wallet == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[r.ID]; exists {
		return storage.ErrDuplicateKey
	}

	recordCopy := *r
	s.data[r.ID] = &recordCopy
	return nil
}

// ListByWallet returns the newest records of wallet first.
func (s *ActivityStore) ListByWallet(_ context.Context, wallet string, limit int) ([]*entity.ActivityRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*entity.ActivityRecord
	for _, r := range s.data {
		if strings.EqualFold(r.Wallet, wallet) {
			recordCopy := *r
			result = append(result, &recordCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	if limit = storage.NormalizeLimit(limit); len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
