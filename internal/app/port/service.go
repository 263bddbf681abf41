package port

import (
	"context"
	"math/big"

	"nft_staker/internal/domain/entity"
)

// MintView is the state of the mint page.
type MintView struct {
	Wallet entity.WalletState `json:"wallet"`
	// Action is "connect_wallet" when no address is present, otherwise "claim".
	Action string `json:"action"`
}

// ClaimResult is returned after a successful claim. Redirect points at the staking view.
type ClaimResult struct {
	Tx       *entity.TxResult `json:"tx"`
	Quantity int64            `json:"quantity"`
	Redirect string           `json:"redirect"`
}

// StakeView is the state of the staking page.
type StakeView struct {
	Wallet           entity.WalletState   `json:"wallet"`
	ClaimableRewards *big.Int             `json:"claimableRewards,omitempty"`
	RewardsDisplay   string               `json:"rewardsDisplay,omitempty"`
	Balance          *entity.TokenBalance `json:"balance,omitempty"`
	Staked           []entity.NFT         `json:"staked"`
	Unstaked         []entity.NFT         `json:"unstaked"`
}

// MintService drives the claim flow of the drop.
type MintService interface {
	View(ctx context.Context) MintView
	Claim(ctx context.Context, quantity int64) (*ClaimResult, error)
}

// StakeService drives the staking flows.
type StakeService interface {
	View(ctx context.Context) (*StakeView, error)
	Stake(ctx context.Context, tokenID *big.Int) ([]*entity.TxResult, error)
	Withdraw(ctx context.Context, tokenID *big.Int) (*entity.TxResult, error)
	ClaimRewards(ctx context.Context) (*entity.TxResult, error)

	OwnedNFTs(ctx context.Context, owner string) ([]entity.NFT, error)
	StakedNFTs(ctx context.Context, owner string) ([]entity.NFT, error)
	TokenBalance(ctx context.Context, owner string) (*entity.TokenBalance, error)
	AvailableRewards(ctx context.Context, owner string) (*big.Int, error)
}

// ActivityService records and lists write operations.
type ActivityService interface {
	Record(ctx context.Context, wallet string, action entity.ActivityAction, tokenID *big.Int, quantity int64, tx *entity.TxResult, opErr error)
	List(ctx context.Context, wallet string, limit int) ([]*entity.ActivityRecord, error)
}
