package service

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"nft_staker/internal/domain/entity"
	"nft_staker/internal/infrastructure/storage/memory"
	"nft_staker/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Insert(context.Context, *entity.ActivityRecord) error {
	return errors.New("disk full")
}

func (failingStore) ListByWallet(context.Context, string, int) ([]*entity.ActivityRecord, error) {
	return nil, errors.New("connection refused")
}

func TestActivityService_RecordAndList(t *testing.T) {
	store := memory.NewActivityStore()
	svc := NewActivityService(store, logger.Nop{})
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	svc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	ctx := context.Background()

	svc.Record(ctx, testWallet, entity.ActionClaim, nil, 3, txFor("claim"), nil)
	svc.Record(ctx, testWallet, entity.ActionStake, big.NewInt(7), 0, nil, errors.New("execution reverted"))
	svc.Record(ctx, otherAddress, entity.ActionWithdraw, big.NewInt(1), 0, txFor("withdraw"), nil)

	records, err := svc.List(ctx, testWallet, 10)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, entity.ActionStake, records[0].Action)
	assert.Equal(t, "7", records[0].TokenID)
	assert.Equal(t, entity.ActivityFailed, records[0].Status)
	assert.Equal(t, "execution reverted", records[0].Error)
	assert.Empty(t, records[0].TxHash)

	assert.Equal(t, entity.ActionClaim, records[1].Action)
	assert.Equal(t, int64(3), records[1].Quantity)
	assert.Equal(t, entity.ActivitySuccess, records[1].Status)
	assert.NotEmpty(t, records[1].TxHash)
	assert.Len(t, records[1].ID, 27)
	assert.NotEqual(t, records[0].ID, records[1].ID)
}

func TestActivityService_ListEmptyAndGuards(t *testing.T) {
	svc := NewActivityService(memory.NewActivityStore(), logger.Nop{})

	records, err := svc.List(context.Background(), testWallet, 0)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)

	_, err = svc.List(context.Background(), "", 10)
	assert.ErrorIs(t, err, entity.ErrWalletNotConnected)
}

func TestActivityService_StoreFailures(t *testing.T) {
	svc := NewActivityService(failingStore{}, logger.Nop{})

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), testWallet, entity.ActionClaim, nil, 1, nil, nil)
	})

	_, err := svc.List(context.Background(), testWallet, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
