package port

import (
	"context"
	"math/big"

	"nft_staker/internal/domain/entity"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// WalletProvider loads the signer that backs the wallet session.
type WalletProvider interface {
	LoadSigner() (Signer, error)
}

// Signer is an unlocked key able to produce transactors for a chain.
type Signer interface {
	Address() string
	Transactor(chainID *big.Int) (*bind.TransactOpts, error)
}

// WalletSession is the connection state of the wallet for the lifetime of the process.
type WalletSession interface {
	State() entity.WalletState
	Connect(ctx context.Context) (entity.WalletState, error)
	Disconnect()
	// TransactOpts returns signing options bound to ctx, or entity.ErrWalletNotConnected.
	TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error)
	// AcquireWrite blocks until no other write flow holds the wallet. The caller must
	// invoke release once its last transaction is mined or has failed.
	AcquireWrite(ctx context.Context) (release func(), err error)
}
