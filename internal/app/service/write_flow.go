package service

import (
	"context"
	"math/big"

	"nft_staker/internal/app/port"
	"nft_staker/internal/domain/entity"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// beginWrite takes the wallet's write slot and builds signing options for chainID.
// On success the caller must call release once the flow's last transaction is done.
func beginWrite(ctx context.Context, session port.WalletSession, chainID *big.Int) (entity.WalletState, *bind.TransactOpts, func(), error) {
	if !session.State().Connected {
		return entity.WalletState{}, nil, nil, entity.ErrWalletNotConnected
	}
	release, err := session.AcquireWrite(ctx)
	if err != nil {
		return entity.WalletState{}, nil, nil, err
	}

	state := session.State()
	opts, err := session.TransactOpts(ctx, chainID)
	if err != nil {
		release()
		return state, nil, nil, err
	}
	return state, opts, release, nil
}
