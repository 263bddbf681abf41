package service

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"nft_staker/internal/app/port"
	"nft_staker/internal/domain/entity"
	"nft_staker/internal/pkg/metrics"

	"github.com/segmentio/ksuid"
)

// ActivityServiceImpl implements port.ActivityService.
type ActivityServiceImpl struct {
	store  port.ActivityStore
	logger port.Logger
	now    func() time.Time
}

// NewActivityService creates a new instance of ActivityServiceImpl.
func NewActivityService(store port.ActivityStore, l port.Logger) *ActivityServiceImpl {
	return &ActivityServiceImpl{
		store:  store,
		logger: l,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Record journals a write operation. A journal failure is logged and never fails the operation itself.
func (s *ActivityServiceImpl) Record(
	ctx context.Context,
	wallet string,
	action entity.ActivityAction,
	tokenID *big.Int,
	quantity int64,
	tx *entity.TxResult,
	opErr error,
) {
	record := &entity.ActivityRecord{
		ID:        ksuid.New().String(),
		Wallet:    wallet,
		Action:    action,
		Quantity:  quantity,
		Status:    entity.ActivitySuccess,
		CreatedAt: s.now(),
	}
	if tokenID != nil {
		record.TokenID = tokenID.String()
	}
	if tx != nil {
		record.TxHash = tx.Hash
	}
	if opErr != nil {
		record.Status = entity.ActivityFailed
		record.Error = opErr.Error()
	}
	metrics.RecordActivity(string(action), string(record.Status))

	if err := s.store.Insert(ctx, record); err != nil {
		s.logger.Warn("Failed to record activity", "id", record.ID, "action", action, "wallet", wallet, "error", err)
		return
	}
	s.logger.Debug("Activity recorded", "id", record.ID, "action", action, "status", record.Status)
}

// List returns the newest journal entries of wallet first.
func (s *ActivityServiceImpl) List(ctx context.Context, wallet string, limit int) ([]*entity.ActivityRecord, error) {
	if wallet == "" {
		return nil, entity.ErrWalletNotConnected
	}
	records, err := s.store.ListByWallet(ctx, wallet, limit)
	if err != nil {
		s.logger.Error("Failed to list activity", "wallet", wallet, "error", err)
		return nil, fmt.Errorf("failed to list activity for %s: %w", wallet, err)
	}
	if records == nil {
		records = []*entity.ActivityRecord{}
	}
	return records, nil
}

var _ port.ActivityService = (*ActivityServiceImpl)(nil)
