package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"nft_staker/internal/app/port"
	"nft_staker/internal/domain/entity"
	"nft_staker/internal/infrastructure/storage"
)

// ActivityStore implements port.ActivityStore using PostgreSQL.
type ActivityStore struct {
	pool *Pool
}

// NewActivityStore creates a new ActivityStore.
func NewActivityStore(pool *Pool) *ActivityStore {
	return &ActivityStore{pool: pool}
}

// Compile-time interface check.
var _ port.ActivityStore = (*ActivityStore)(nil)

// Insert adds a new record. Returns ErrDuplicateKey if the id exists.
func (s *ActivityStore) Insert(ctx context.Context, r *entity.ActivityRecord) error {
	if r == nil || r.ID == "" || r.Wallet == "" {
		return storage.ErrInvalidInput
	}

	query := `
		INSERT INTO activity_log (
			id, wallet, action, token_id, quantity, tx_hash, status, error, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := s.pool.Exec(ctx, query,
		r.ID,
		r.Wallet,
		string(r.Action),
		r.TokenID,
		r.Quantity,
		r.TxHash,
		string(r.Status),
		r.Error,
		r.CreatedAt,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert activity record: %w", err)
	}
	return nil
}

// ListByWallet returns the newest records of wallet first.
func (s *ActivityStore) ListByWallet(ctx context.Context, wallet string, limit int) ([]*entity.ActivityRecord, error) {
	query := `
		SELECT id, wallet, action, token_id, quantity, tx_hash, status, error, created_at
		FROM activity_log
		WHERE lower(wallet) = lower($1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, wallet, storage.NormalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list activity by wallet: %w", err)
	}
	defer rows.Close()

	return scanActivityRecords(rows)
}

// scanActivityRecords scans multiple rows into a slice of ActivityRecord.
func scanActivityRecords(rows pgx.Rows) ([]*entity.ActivityRecord, error) {
	var records []*entity.ActivityRecord

	for rows.Next() {
		var r entity.ActivityRecord
		var action, status string

		err := rows.Scan(
			&r.ID,
			&r.Wallet,
			&action,
			&r.TokenID,
			&r.Quantity,
			&r.TxHash,
			&status,
			&r.Error,
			&r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan activity row: %w", err)
		}

		r.Action = entity.ActivityAction(action)
		r.Status = entity.ActivityStatus(status)
		records = append(records, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity rows: %w", err)
	}

	return records, nil
}
