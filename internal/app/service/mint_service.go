package service

import (
	"context"
	"fmt"
	"math/big"

	"nft_staker/internal/app/port"
	"nft_staker/internal/domain/entity"
)

const (
	// ActionConnectWallet is offered iff no wallet address is present.
	ActionConnectWallet = "connect_wallet"
	// ActionClaim is offered once a wallet is connected.
	ActionClaim = "claim"
	// StakeRedirect is where a successful claim sends the user.
	StakeRedirect = "/stake"
)

// MintServiceImpl implements port.MintService.
type MintServiceImpl struct {
	session  port.WalletSession
	drop     port.NFTDrop
	activity port.ActivityService
	chainID  *big.Int
	logger   port.Logger
}

// NewMintService creates a new instance of MintServiceImpl.
func NewMintService(
	session port.WalletSession,
	drop port.NFTDrop,
	activity port.ActivityService,
	netDef entity.NetworkDefinition,
	l port.Logger,
) *MintServiceImpl {
	return &MintServiceImpl{
		session:  session,
		drop:     drop,
		activity: activity,
		chainID:  new(big.Int).SetUint64(netDef.ChainID),
		logger:   l,
	}
}

// View returns the mint page state.
func (s *MintServiceImpl) View(_ context.Context) port.MintView {
	state := s.session.State()
	action := ActionClaim
	if !state.Connected {
		action = ActionConnectWallet
	}
	return port.MintView{Wallet: state, Action: action}
}

// Claim mints quantity tokens of the drop to the connected wallet.
func (s *MintServiceImpl) Claim(ctx context.Context, quantity int64) (*port.ClaimResult, error) {
	if quantity < 1 {
		return nil, entity.ErrInvalidQuantity
	}
	state, opts, release, err := beginWrite(ctx, s.session, s.chainID)
	if err != nil {
		return nil, err
	}
	defer release()

	s.logger.Info("Claiming NFT", "wallet", state.Address, "drop", s.drop.Address(), "quantity", quantity)
	tx, err := s.drop.Claim(ctx, opts, state.Address, quantity)
	s.activity.Record(ctx, state.Address, entity.ActionClaim, nil, quantity, tx, err)
	if err != nil {
		s.logger.Error("Claim failed", "wallet", state.Address, "quantity", quantity, "error", err)
		return nil, fmt.Errorf("claim failed: %w", err)
	}

	s.logger.Info("NFT Claimed", "wallet", state.Address, "quantity", quantity, "tx", tx.Hash)
	return &port.ClaimResult{Tx: tx, Quantity: quantity, Redirect: StakeRedirect}, nil
}

var _ port.MintService = (*MintServiceImpl)(nil)
