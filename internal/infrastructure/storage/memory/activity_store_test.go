package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"nft_staker/internal/domain/entity"
	"nft_staker/internal/infrastructure/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wallet = "0x00000000000000000000000000000000000A11cE"

func record(id string, at time.Time) *entity.ActivityRecord {
	return &entity.ActivityRecord{
		ID:        id,
		Wallet:    wallet,
		Action:    entity.ActionStake,
		TokenID:   "7",
		Status:    entity.ActivitySuccess,
		CreatedAt: at,
	}
}

func TestActivityStore_InsertAndList(t *testing.T) {
	store := NewActivityStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		require.NoError(t, store.Insert(ctx, record(fmt.Sprintf("id-%d", i), base.Add(time.Duration(i)*time.Minute))))
	}
	other := record("id-other", base)
	other.Wallet = "0x0000000000000000000000000000000000000b0b"
	require.NoError(t, store.Insert(ctx, other))

	got, err := store.ListByWallet(ctx, "0x00000000000000000000000000000000000a11ce", 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "id-2", got[0].ID)
	assert.Equal(t, "id-0", got[2].ID)

	limited, err := store.ListByWallet(ctx, wallet, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestActivityStore_InsertDuplicate(t *testing.T) {
	store := NewActivityStore()
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, record("dup", time.Now())))
	assert.ErrorIs(t, store.Insert(ctx, record("dup", time.Now())), storage.ErrDuplicateKey)
}

func TestActivityStore_InvalidInput(t *testing.T) {
	store := NewActivityStore()
	ctx := context.Background()

	assert.ErrorIs(t, store.Insert(ctx, nil), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.Insert(ctx, &entity.ActivityRecord{Wallet: wallet}), storage.ErrInvalidInput)
}

func TestActivityStore_ReturnsCopies(t *testing.T) {
	store := NewActivityStore()
	ctx := context.Background()
	r := record("copy", time.Now())
	require.NoError(t, store.Insert(ctx, r))
	r.Status = entity.ActivityFailed

	got, err := store.ListByWallet(ctx, wallet, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entity.ActivitySuccess, got[0].Status)
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, storage.DefaultListLimit, storage.NormalizeLimit(0))
	assert.Equal(t, storage.MaxListLimit, storage.NormalizeLimit(10_000))
	assert.Equal(t, 5, storage.NormalizeLimit(5))
}
