package contract

import (
	"context"
	"math/big"

	"nft_staker/internal/app/port"
	"nft_staker/internal/domain/entity"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// stakedTokenTuple mirrors the StakedToken struct returned by getStakedTokens.
type stakedTokenTuple struct {
	Staker  common.Address
	TokenId *big.Int //nolint:revive // must match the ABI component name
}

// NFTStaking is a binding for the staking contract.
type NFTStaking struct {
	*boundContract
}

// NewNFTStaking creates a binding for the staking contract deployed at address.
func NewNFTStaking(address string, b Backends) (*NFTStaking, error) {
	initParsedABIs()
	bc, err := newBoundContract(address, stakingABI, b)
	if err != nil {
		return nil, err
	}
	return &NFTStaking{boundContract: bc}, nil
}

func (s *NFTStaking) Stake(ctx context.Context, opts *bind.TransactOpts, tokenID *big.Int) (*entity.TxResult, error) {
	return s.transact(ctx, opts, "stake", tokenID)
}

func (s *NFTStaking) Withdraw(ctx context.Context, opts *bind.TransactOpts, tokenID *big.Int) (*entity.TxResult, error) {
	return s.transact(ctx, opts, "withdraw", tokenID)
}

func (s *NFTStaking) ClaimRewards(ctx context.Context, opts *bind.TransactOpts) (*entity.TxResult, error) {
	return s.transact(ctx, opts, "claimRewards")
}

// GetStakedTokens lists the tokens staked by staker.
func (s *NFTStaking) GetStakedTokens(ctx context.Context, staker string) ([]entity.StakedToken, error) {
	out, err := s.call(ctx, "getStakedTokens", common.HexToAddress(staker))
	if err != nil {
		return nil, err
	}
	tuples := *abi.ConvertType(out[0], new([]stakedTokenTuple)).(*[]stakedTokenTuple)

	staked := make([]entity.StakedToken, 0, len(tuples))
	for _, t := range tuples {
		staked = append(staked, entity.StakedToken{
			Staker:  t.Staker.Hex(),
			TokenID: t.TokenId,
		})
	}
	return staked, nil
}

// AvailableRewards returns the raw reward-token amount staker can claim.
func (s *NFTStaking) AvailableRewards(ctx context.Context, staker string) (*big.Int, error) {
	out, err := s.call(ctx, "availableRewards", common.HexToAddress(staker))
	if err != nil {
		return nil, err
	}
	rewards, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.Errorf("unexpected availableRewards result type %T", out[0])
	}
	return rewards, nil
}

var _ port.NFTStaking = (*NFTStaking)(nil)
