package provider

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"nft_staker/internal/app/port"
	"nft_staker/internal/domain/entity"
	"nft_staker/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"golang.org/x/sync/semaphore"
)

type walletSessionImpl struct {
	walletProvider port.WalletProvider
	logger         port.Logger

	mu     sync.RWMutex
	signer port.Signer

	// writes admits one write flow at a time so concurrent sends never share a pending nonce.
	writes *semaphore.Weighted
}

// NewWalletSession creates a disconnected wallet session backed by walletProvider.
func NewWalletSession(walletProvider port.WalletProvider, logger port.Logger) port.WalletSession {
	return &walletSessionImpl{
		walletProvider: walletProvider,
		logger:         logger,
		writes:         semaphore.NewWeighted(1),
	}
}

// State reports whether a wallet address is present.
func (s *walletSessionImpl) State() entity.WalletState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.signer == nil {
		return entity.WalletState{}
	}
	return entity.WalletState{Connected: true, Address: s.signer.Address()}
}

// Connect unlocks the signer. Connecting an already connected session is a no-op.
func (s *walletSessionImpl) Connect(ctx context.Context) (entity.WalletState, error) {
	if err := ctx.Err(); err != nil {
		return entity.WalletState{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.signer != nil {
		return entity.WalletState{Connected: true, Address: s.signer.Address()}, nil
	}

	s.logger.Debug("Loading wallet signer")
	signer, err := s.walletProvider.LoadSigner()
	if err != nil {
		s.logger.Error("Failed to connect wallet", "error", err)
		return entity.WalletState{}, fmt.Errorf("failed to connect wallet: %w", err)
	}
	s.signer = signer
	metrics.SetWalletConnected(true)
	s.logger.Info("Wallet connected", "address", signer.Address())
	return entity.WalletState{Connected: true, Address: signer.Address()}, nil
}

// Disconnect forgets the signer.
func (s *walletSessionImpl) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.signer == nil {
		return
	}
	s.logger.Info("Wallet disconnected", "address", s.signer.Address())
	s.signer = nil
	metrics.SetWalletConnected(false)
}

// TransactOpts returns signing options for chainID bound to ctx.
func (s *walletSessionImpl) TransactOpts(ctx context.Context, chainID *big.Int) (*bind.TransactOpts, error) {
	s.mu.RLock()
	signer := s.signer
	s.mu.RUnlock()
	if signer == nil {
		return nil, entity.ErrWalletNotConnected
	}
	opts, err := signer.Transactor(chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor for %s: %w", signer.Address(), err)
	}
	opts.Context = ctx
	return opts, nil
}

// AcquireWrite waits for the wallet's write slot or for ctx to be done.
func (s *walletSessionImpl) AcquireWrite(ctx context.Context) (func(), error) {
	if err := s.writes.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for pending wallet transaction: %w", err)
	}
	return func() { s.writes.Release(1) }, nil
}
