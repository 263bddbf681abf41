package contract

import (
	"context"
	"math/big"

	"nft_staker/internal/app/port"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

// RewardToken is a read-only ERC20 binding.
type RewardToken struct {
	*boundContract
}

// NewRewardToken creates a binding for the ERC20 deployed at address.
func NewRewardToken(address string, b Backends) (*RewardToken, error) {
	initParsedABIs()
	bc, err := newBoundContract(address, erc20ABI, b)
	if err != nil {
		return nil, err
	}
	return &RewardToken{boundContract: bc}, nil
}

func (t *RewardToken) BalanceOf(ctx context.Context, owner string) (*big.Int, error) {
	out, err := t.call(ctx, "balanceOf", common.HexToAddress(owner))
	if err != nil {
		return nil, err
	}
	balance, ok := out[0].(*big.Int)
	if !ok {
		return nil, errors.Errorf("unexpected balanceOf result type %T", out[0])
	}
	return balance, nil
}

func (t *RewardToken) Symbol(ctx context.Context) (string, error) {
	return t.callString(ctx, "symbol")
}

func (t *RewardToken) Name(ctx context.Context) (string, error) {
	return t.callString(ctx, "name")
}

func (t *RewardToken) Decimals(ctx context.Context) (uint8, error) {
	out, err := t.call(ctx, "decimals")
	if err != nil {
		return 0, err
	}
	decimals, ok := out[0].(uint8)
	if !ok {
		return 0, errors.Errorf("unexpected decimals result type %T", out[0])
	}
	return decimals, nil
}

func (t *RewardToken) callString(ctx context.Context, method string) (string, error) {
	out, err := t.call(ctx, method)
	if err != nil {
		return "", err
	}
	s, ok := out[0].(string)
	if !ok {
		return "", errors.Errorf("unexpected %s result type %T", method, out[0])
	}
	return s, nil
}

var _ port.RewardToken = (*RewardToken)(nil)
