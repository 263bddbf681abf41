package service

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"nft_staker/internal/app/port"
	"nft_staker/internal/domain/entity"
	"nft_staker/internal/pkg/utils"

	"golang.org/x/sync/errgroup"
)

// StakeContracts groups the contracts the staking flows talk to.
type StakeContracts struct {
	Drop    port.NFTDrop
	Staking port.NFTStaking
	Token   port.RewardToken
	Scanner port.OwnerScanner
}

// StakeOptions bounds the fan-out and the size of the read paths.
type StakeOptions struct {
	MaxConcurrentRoutines int
	// OwnerScanBatchSize is the number of token ids checked per ownerOf batch.
	OwnerScanBatchSize int
	// MaxOwnerScan is the largest minted supply OwnedNFTs will scan.
	MaxOwnerScan int64
}

// StakeServiceImpl implements port.StakeService.
type StakeServiceImpl struct {
	session   port.WalletSession
	contracts StakeContracts
	metadata  port.MetadataFetcher
	activity  port.ActivityService
	chainID   *big.Int
	logger    port.Logger
	opts      StakeOptions
}

// NewStakeService creates a new instance of StakeServiceImpl.
func NewStakeService(
	session port.WalletSession,
	contracts StakeContracts,
	metadata port.MetadataFetcher,
	activity port.ActivityService,
	netDef entity.NetworkDefinition,
	l port.Logger,
	opts StakeOptions,
) *StakeServiceImpl {
	if opts.MaxConcurrentRoutines <= 0 {
		opts.MaxConcurrentRoutines = 1
	}
	if opts.OwnerScanBatchSize <= 0 {
		opts.OwnerScanBatchSize = 100
	}
	if opts.MaxOwnerScan <= 0 {
		opts.MaxOwnerScan = 10000
	}
	return &StakeServiceImpl{
		session:   session,
		contracts: contracts,
		metadata:  metadata,
		activity:  activity,
		chainID:   new(big.Int).SetUint64(netDef.ChainID),
		logger:    l,
		opts:      opts,
	}
}

// View loads everything the staking page shows. A disconnected wallet yields only the wallet state.
func (s *StakeServiceImpl) View(ctx context.Context) (*port.StakeView, error) {
	state := s.session.State()
	view := &port.StakeView{Wallet: state, Staked: []entity.NFT{}, Unstaked: []entity.NFT{}}
	if !state.Connected {
		return view, nil
	}

	var (
		rewards *big.Int
		balance *entity.TokenBalance
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		rewards, err = s.AvailableRewards(egCtx, state.Address)
		return err
	})
	eg.Go(func() error {
		var err error
		balance, err = s.TokenBalance(egCtx, state.Address)
		return err
	})
	eg.Go(func() error {
		staked, err := s.StakedNFTs(egCtx, state.Address)
		view.Staked = staked
		return err
	})
	eg.Go(func() error {
		owned, err := s.OwnedNFTs(egCtx, state.Address)
		view.Unstaked = owned
		return err
	})
	if err := eg.Wait(); err != nil {
		s.logger.Error("Failed to load staking view", "wallet", state.Address, "error", err)
		return nil, err
	}

	view.Balance = balance
	view.ClaimableRewards = rewards
	view.RewardsDisplay = utils.FormatWithSymbol(rewards, balance.Decimals, balance.Symbol)
	s.logger.Debug("Staking view loaded", "wallet", state.Address, "staked", len(view.Staked), "unstaked", len(view.Unstaked))
	return view, nil
}

// Stake approves the staking contract as operator when needed, then stakes tokenID.
// The approval is awaited before staking; it is not rolled back if staking fails.
func (s *StakeServiceImpl) Stake(ctx context.Context, tokenID *big.Int) ([]*entity.TxResult, error) {
	if tokenID == nil || tokenID.Sign() < 0 {
		return nil, entity.ErrInvalidTokenID
	}
	state, opts, release, err := beginWrite(ctx, s.session, s.chainID)
	if err != nil {
		return nil, err
	}
	defer release()
	operator := s.contracts.Staking.Address()

	approved, err := s.contracts.Drop.IsApprovedForAll(ctx, state.Address, operator)
	if err != nil {
		s.logger.Error("Failed to check staking approval", "wallet", state.Address, "operator", operator, "error", err)
		s.activity.Record(ctx, state.Address, entity.ActionStake, tokenID, 0, nil, err)
		return nil, &entity.StakeError{TokenID: tokenID, Err: err}
	}

	txs := make([]*entity.TxResult, 0, 2)
	approvedNow := false
	if !approved {
		s.logger.Info("Approving staking contract", "wallet", state.Address, "operator", operator)
		approveTx, err := s.contracts.Drop.SetApprovalForAll(ctx, opts, operator, true)
		s.activity.Record(ctx, state.Address, entity.ActionApprove, tokenID, 0, approveTx, err)
		if err != nil {
			s.logger.Error("Approval failed", "wallet", state.Address, "operator", operator, "error", err)
			if approveTx != nil {
				txs = append(txs, approveTx)
			}
			return txs, &entity.StakeError{TokenID: tokenID, Err: fmt.Errorf("%w: %w", entity.ErrApprovalFailed, err)}
		}
		txs = append(txs, approveTx)
		approvedNow = true
	}

	stakeTx, err := s.contracts.Staking.Stake(ctx, opts, tokenID)
	s.activity.Record(ctx, state.Address, entity.ActionStake, tokenID, 0, stakeTx, err)
	if err != nil {
		if approvedNow {
			s.logger.Warn("Stake failed after approval succeeded; staking contract remains approved",
				"wallet", state.Address, "token_id", tokenID.String(), "error", err)
		} else {
			s.logger.Error("Stake failed", "wallet", state.Address, "token_id", tokenID.String(), "error", err)
		}
		return txs, &entity.StakeError{TokenID: tokenID, Approved: approvedNow, Err: err}
	}

	s.logger.Info("NFT staked", "wallet", state.Address, "token_id", tokenID.String(), "tx", stakeTx.Hash)
	return append(txs, stakeTx), nil
}

// Withdraw returns a staked token to the connected wallet.
func (s *StakeServiceImpl) Withdraw(ctx context.Context, tokenID *big.Int) (*entity.TxResult, error) {
	if tokenID == nil || tokenID.Sign() < 0 {
		return nil, entity.ErrInvalidTokenID
	}
	state, opts, release, err := beginWrite(ctx, s.session, s.chainID)
	if err != nil {
		return nil, err
	}
	defer release()

	tx, err := s.contracts.Staking.Withdraw(ctx, opts, tokenID)
	s.activity.Record(ctx, state.Address, entity.ActionWithdraw, tokenID, 0, tx, err)
	if err != nil {
		s.logger.Error("Withdraw failed", "wallet", state.Address, "token_id", tokenID.String(), "error", err)
		return nil, fmt.Errorf("withdraw of token %s failed: %w", tokenID, err)
	}
	s.logger.Info("NFT withdrawn", "wallet", state.Address, "token_id", tokenID.String(), "tx", tx.Hash)
	return tx, nil
}

// ClaimRewards claims all rewards accrued by the connected wallet.
func (s *StakeServiceImpl) ClaimRewards(ctx context.Context) (*entity.TxResult, error) {
	state, opts, release, err := beginWrite(ctx, s.session, s.chainID)
	if err != nil {
		return nil, err
	}
	defer release()

	tx, err := s.contracts.Staking.ClaimRewards(ctx, opts)
	s.activity.Record(ctx, state.Address, entity.ActionClaimRewards, nil, 0, tx, err)
	if err != nil {
		s.logger.Error("Claim rewards failed", "wallet", state.Address, "error", err)
		return nil, fmt.Errorf("claim rewards failed: %w", err)
	}
	s.logger.Info("Rewards claimed", "wallet", state.Address, "tx", tx.Hash)
	return tx, nil
}

// OwnedNFTs lists the drop tokens currently held by owner, ordered by token id.
// Ids in [0, nextTokenIdToMint) are checked batch by batch; a supply above MaxOwnerScan is refused.
func (s *StakeServiceImpl) OwnedNFTs(ctx context.Context, owner string) ([]entity.NFT, error) {
	next, err := s.contracts.Drop.NextTokenIDToMint(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read minted supply: %w", err)
	}
	if next.Sign() < 0 || next.Cmp(big.NewInt(s.opts.MaxOwnerScan)) > 0 {
		return nil, fmt.Errorf("%w: %s minted, limit %d", entity.ErrSupplyTooLarge, next, s.opts.MaxOwnerScan)
	}

	total := next.Int64()
	batch := int64(s.opts.OwnerScanBatchSize)
	var ownedIDs []*big.Int
	for start := int64(0); start < total; start += batch {
		end := min(start+batch, total)
		ids := make([]*big.Int, 0, end-start)
		for i := start; i < end; i++ {
			ids = append(ids, big.NewInt(i))
		}

		results, err := s.contracts.Scanner.OwnersOf(ctx, s.contracts.Drop.Address(), ids)
		if err != nil {
			return nil, fmt.Errorf("failed to scan token owners: %w", err)
		}
		for _, r := range results {
			if r.Error != nil {
				s.logger.Debug("Skipping token without owner", "token_id", r.TokenID.String(), "error", r.Error)
				continue
			}
			if strings.EqualFold(r.Owner, owner) {
				ownedIDs = append(ownedIDs, r.TokenID)
			}
		}
	}
	sort.Slice(ownedIDs, func(i, j int) bool { return ownedIDs[i].Cmp(ownedIDs[j]) < 0 })

	return s.loadNFTs(ctx, ownedIDs, owner)
}

// StakedNFTs lists the tokens owner has staked, in the order the staking contract reports them.
func (s *StakeServiceImpl) StakedNFTs(ctx context.Context, owner string) ([]entity.NFT, error) {
	staked, err := s.contracts.Staking.GetStakedTokens(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to read staked tokens: %w", err)
	}
	ids := make([]*big.Int, 0, len(staked))
	for _, st := range staked {
		ids = append(ids, st.TokenID)
	}
	return s.loadNFTs(ctx, ids, s.contracts.Staking.Address())
}

// TokenBalance reads owner's reward token balance. Unknown decimals fall back to 18.
func (s *StakeServiceImpl) TokenBalance(ctx context.Context, owner string) (*entity.TokenBalance, error) {
	token := s.contracts.Token
	value, err := token.BalanceOf(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to read reward token balance: %w", err)
	}

	decimals, err := token.Decimals(ctx)
	if err != nil {
		s.logger.Warn("Failed to read reward token decimals, using default", "token", token.Address(), "default", utils.DefaultTokenDecimals, "error", err)
		decimals = utils.DefaultTokenDecimals
	}
	symbol, err := token.Symbol(ctx)
	if err != nil {
		s.logger.Warn("Failed to read reward token symbol", "token", token.Address(), "error", err)
	}
	name, err := token.Name(ctx)
	if err != nil {
		s.logger.Warn("Failed to read reward token name", "token", token.Address(), "error", err)
	}

	return &entity.TokenBalance{
		TokenAddress: token.Address(),
		Name:         name,
		Symbol:       symbol,
		Decimals:     decimals,
		Value:        value,
		DisplayValue: utils.FormatBigInt(value, decimals),
	}, nil
}

// AvailableRewards reads the claimable reward amount of owner.
func (s *StakeServiceImpl) AvailableRewards(ctx context.Context, owner string) (*big.Int, error) {
	rewards, err := s.contracts.Staking.AvailableRewards(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to read available rewards: %w", err)
	}
	return rewards, nil
}

// loadNFTs resolves metadata for ids concurrently, keeping the input order.
// Unreachable metadata degrades to an id-only record; a failing tokenURI call fails the whole load.
func (s *StakeServiceImpl) loadNFTs(ctx context.Context, ids []*big.Int, owner string) ([]entity.NFT, error) {
	nfts := make([]entity.NFT, len(ids))
	if len(ids) == 0 {
		return nfts, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.opts.MaxConcurrentRoutines)

	for i, id := range ids {
		eg.Go(func() error {
			uri, err := s.contracts.Drop.TokenURI(egCtx, id)
			if err != nil {
				return fmt.Errorf("failed to read tokenURI of %s: %w", id, err)
			}
			md, err := s.metadata.Fetch(egCtx, id, uri)
			if err != nil {
				s.logger.Warn("Failed to fetch token metadata", "token_id", id.String(), "uri", uri, "error", err)
				md = entity.NFTMetadata{ID: id, URI: uri, Name: "#" + id.String()}
			}
			nfts[i] = entity.NFT{Metadata: md, Owner: owner}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return nfts, nil
}

var _ port.StakeService = (*StakeServiceImpl)(nil)
