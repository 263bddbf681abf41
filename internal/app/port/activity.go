package port

import (
	"context"

	"nft_staker/internal/domain/entity"
)

// ActivityStore persists the activity journal.
type ActivityStore interface {
	Insert(ctx context.Context, record *entity.ActivityRecord) error
	ListByWallet(ctx context.Context, wallet string, limit int) ([]*entity.ActivityRecord, error)
}
