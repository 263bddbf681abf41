package port

import (
	"context"
	"math/big"

	"nft_staker/internal/domain/entity"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// NFTDrop is the claimable ERC721 drop contract.
type NFTDrop interface {
	Address() string
	Claim(ctx context.Context, opts *bind.TransactOpts, receiver string, quantity int64) (*entity.TxResult, error)
	TokenURI(ctx context.Context, tokenID *big.Int) (string, error)
	OwnerOf(ctx context.Context, tokenID *big.Int) (string, error)
	NextTokenIDToMint(ctx context.Context) (*big.Int, error)
	IsApprovedForAll(ctx context.Context, owner, operator string) (bool, error)
	SetApprovalForAll(ctx context.Context, opts *bind.TransactOpts, operator string, approved bool) (*entity.TxResult, error)
}

// NFTStaking is the staking contract holding staked drop tokens and accruing rewards.
type NFTStaking interface {
	Address() string
	Stake(ctx context.Context, opts *bind.TransactOpts, tokenID *big.Int) (*entity.TxResult, error)
	Withdraw(ctx context.Context, opts *bind.TransactOpts, tokenID *big.Int) (*entity.TxResult, error)
	ClaimRewards(ctx context.Context, opts *bind.TransactOpts) (*entity.TxResult, error)
	GetStakedTokens(ctx context.Context, staker string) ([]entity.StakedToken, error)
	AvailableRewards(ctx context.Context, staker string) (*big.Int, error)
}

// RewardToken is the ERC20 paid out by the staking contract.
type RewardToken interface {
	Address() string
	BalanceOf(ctx context.Context, owner string) (*big.Int, error)
	Symbol(ctx context.Context) (string, error)
	Name(ctx context.Context) (string, error)
	Decimals(ctx context.Context) (uint8, error)
}

// OwnerScanner resolves owners for ranges of token ids in bulk.
type OwnerScanner interface {
	OwnersOf(ctx context.Context, contractAddress string, tokenIDs []*big.Int) ([]entity.OwnerResultItem, error)
}
