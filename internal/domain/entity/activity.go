package entity

import "time"

// ActivityAction names a write operation performed for the wallet.
type ActivityAction string

const (
	ActionClaim        ActivityAction = "claim"
	ActionApprove      ActivityAction = "approve"
	ActionStake        ActivityAction = "stake"
	ActionWithdraw     ActivityAction = "withdraw"
	ActionClaimRewards ActivityAction = "claim_rewards"
)

// ActivityStatus is the outcome of a write operation.
type ActivityStatus string

const (
	ActivitySuccess ActivityStatus = "success"
	ActivityFailed  ActivityStatus = "failed"
)

// ActivityRecord is one journal line for a write operation, successful or not.
type ActivityRecord struct {
	ID        string         `json:"id"`
	Wallet    string         `json:"wallet"`
	Action    ActivityAction `json:"action"`
	TokenID   string         `json:"tokenId,omitempty"`
	Quantity  int64          `json:"quantity,omitempty"`
	TxHash    string         `json:"txHash,omitempty"`
	Status    ActivityStatus `json:"status"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}
