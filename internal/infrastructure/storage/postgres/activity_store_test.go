package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nft_staker/internal/domain/entity"
	"nft_staker/internal/infrastructure/storage"
)

const wallet = "0x00000000000000000000000000000000000A11cE"

func TestActivityStore_InsertAndList(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewActivityStore(pool)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		err := store.Insert(ctx, &entity.ActivityRecord{
			ID:        fmt.Sprintf("act-%d", i),
			Wallet:    wallet,
			Action:    entity.ActionStake,
			TokenID:   fmt.Sprint(i),
			TxHash:    fmt.Sprintf("0x%064d", i),
			Status:    entity.ActivitySuccess,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	require.NoError(t, store.Insert(ctx, &entity.ActivityRecord{
		ID:        "act-failed",
		Wallet:    wallet,
		Action:    entity.ActionClaim,
		Quantity:  2,
		Status:    entity.ActivityFailed,
		Error:     "insufficient funds",
		CreatedAt: base.Add(-time.Hour),
	}))

	got, err := store.ListByWallet(ctx, "0x00000000000000000000000000000000000a11ce", 10)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "act-2", got[0].ID)
	assert.Equal(t, entity.ActionStake, got[0].Action)
	assert.Equal(t, "2", got[0].TokenID)
	assert.True(t, base.Add(2*time.Minute).Equal(got[0].CreatedAt))

	last := got[3]
	assert.Equal(t, "act-failed", last.ID)
	assert.Equal(t, entity.ActivityFailed, last.Status)
	assert.Equal(t, int64(2), last.Quantity)
	assert.Equal(t, "insufficient funds", last.Error)

	limited, err := store.ListByWallet(ctx, wallet, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestActivityStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewActivityStore(pool)
	ctx := context.Background()
	r := &entity.ActivityRecord{
		ID:        "act-dup",
		Wallet:    wallet,
		Action:    entity.ActionWithdraw,
		Status:    entity.ActivitySuccess,
		CreatedAt: time.Now().UTC(),
	}

	require.NoError(t, store.Insert(ctx, r))
	assert.ErrorIs(t, store.Insert(ctx, r), storage.ErrDuplicateKey)
}

func TestActivityStore_InsertInvalid(t *testing.T) {
	store := NewActivityStore(nil)
	assert.ErrorIs(t, store.Insert(context.Background(), &entity.ActivityRecord{}), storage.ErrInvalidInput)
}

func TestIsDuplicateKeyError(t *testing.T) {
	assert.False(t, isDuplicateKeyError(nil))
	assert.False(t, isDuplicateKeyError(errors.New("boom")))
	assert.True(t, isDuplicateKeyError(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isDuplicateKeyError(&pgconn.PgError{Code: "23503"}))
}
