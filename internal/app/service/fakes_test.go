package service

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"nft_staker/internal/domain/entity"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

const (
	testWallet   = "0x00000000000000000000000000000000000A11cE"
	testDrop     = "0xc4BAC744834115201E64dba0bf723c718Ecde9F8"
	testStaking  = "0x2222222222222222222222222222222222222222"
	testToken    = "0x1111111111111111111111111111111111111111"
	otherAddress = "0x0000000000000000000000000000000000000b0b"
)

type fakeSession struct {
	connected bool
	writeMu   sync.Mutex
}

func (f *fakeSession) State() entity.WalletState {
	if !f.connected {
		return entity.WalletState{}
	}
	return entity.WalletState{Connected: true, Address: testWallet}
}

func (f *fakeSession) Connect(context.Context) (entity.WalletState, error) {
	f.connected = true
	return f.State(), nil
}

func (f *fakeSession) Disconnect() { f.connected = false }

func (f *fakeSession) TransactOpts(ctx context.Context, _ *big.Int) (*bind.TransactOpts, error) {
	if !f.connected {
		return nil, entity.ErrWalletNotConnected
	}
	return &bind.TransactOpts{From: common.HexToAddress(testWallet), Context: ctx}, nil
}

func (f *fakeSession) AcquireWrite(context.Context) (func(), error) {
	f.writeMu.Lock()
	return f.writeMu.Unlock, nil
}

// writeTracker measures how many sends are in flight at once.
type writeTracker struct {
	active atomic.Int32
	peak   atomic.Int32
}

// send marks a transaction as in flight until the returned func runs.
func (w *writeTracker) send() func() {
	if w == nil {
		return func() {}
	}
	n := w.active.Add(1)
	for {
		p := w.peak.Load()
		if n <= p || w.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	return func() { w.active.Add(-1) }
}

// callLog records contract interactions in order.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

func (l *callLog) list() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

func txFor(method string) *entity.TxResult {
	return &entity.TxResult{Method: method, Hash: "0x" + strings.Repeat("ab", 32), Status: entity.TxStatusSuccess}
}

type fakeDrop struct {
	log         *callLog
	writes      *writeTracker
	approved    bool
	approveErr  error
	approveTx   *entity.TxResult
	claimErr    error
	approvedErr error
	uris        map[int64]string
	uriErr      error
	next        int64
}

func (f *fakeDrop) Address() string { return testDrop }

func (f *fakeDrop) Claim(_ context.Context, _ *bind.TransactOpts, receiver string, quantity int64) (*entity.TxResult, error) {
	defer f.writes.send()()
	f.log.add("claim(%s,%d)", receiver, quantity)
	if f.claimErr != nil {
		return nil, f.claimErr
	}
	return txFor("claim"), nil
}

func (f *fakeDrop) TokenURI(_ context.Context, tokenID *big.Int) (string, error) {
	if f.uriErr != nil {
		return "", f.uriErr
	}
	if uri, ok := f.uris[tokenID.Int64()]; ok {
		return uri, nil
	}
	return fmt.Sprintf("ipfs://QmDrop/%s", tokenID), nil
}

func (f *fakeDrop) OwnerOf(context.Context, *big.Int) (string, error) { return testWallet, nil }

func (f *fakeDrop) NextTokenIDToMint(context.Context) (*big.Int, error) {
	return big.NewInt(f.next), nil
}

func (f *fakeDrop) IsApprovedForAll(_ context.Context, owner, operator string) (bool, error) {
	f.log.add("isApprovedForAll(%s,%s)", owner, operator)
	return f.approved, f.approvedErr
}

func (f *fakeDrop) SetApprovalForAll(_ context.Context, _ *bind.TransactOpts, operator string, approved bool) (*entity.TxResult, error) {
	defer f.writes.send()()
	f.log.add("setApprovalForAll(%s,%t)", operator, approved)
	if f.approveErr != nil {
		return f.approveTx, f.approveErr
	}
	f.approved = approved
	return txFor("setApprovalForAll"), nil
}

type fakeStaking struct {
	log        *callLog
	writes     *writeTracker
	stakeErr   error
	staked     []entity.StakedToken
	stakedErr  error
	rewards    *big.Int
	rewardsErr error
}

func (f *fakeStaking) Address() string { return testStaking }

func (f *fakeStaking) Stake(_ context.Context, _ *bind.TransactOpts, tokenID *big.Int) (*entity.TxResult, error) {
	defer f.writes.send()()
	f.log.add("stake(%s)", tokenID)
	if f.stakeErr != nil {
		return nil, f.stakeErr
	}
	return txFor("stake"), nil
}

func (f *fakeStaking) Withdraw(_ context.Context, _ *bind.TransactOpts, tokenID *big.Int) (*entity.TxResult, error) {
	defer f.writes.send()()
	f.log.add("withdraw(%s)", tokenID)
	return txFor("withdraw"), nil
}

func (f *fakeStaking) ClaimRewards(context.Context, *bind.TransactOpts) (*entity.TxResult, error) {
	defer f.writes.send()()
	f.log.add("claimRewards()")
	return txFor("claimRewards"), nil
}

func (f *fakeStaking) GetStakedTokens(context.Context, string) ([]entity.StakedToken, error) {
	return f.staked, f.stakedErr
}

func (f *fakeStaking) AvailableRewards(context.Context, string) (*big.Int, error) {
	return f.rewards, f.rewardsErr
}

type fakeToken struct {
	decimalsErr error
}

func (f *fakeToken) Address() string { return testToken }

func (f *fakeToken) BalanceOf(context.Context, string) (*big.Int, error) {
	v, _ := new(big.Int).SetString("2500000000000000000", 10)
	return v, nil
}

func (f *fakeToken) Symbol(context.Context) (string, error) { return "ADT", nil }
func (f *fakeToken) Name(context.Context) (string, error)   { return "Adventure Token", nil }

func (f *fakeToken) Decimals(context.Context) (uint8, error) {
	if f.decimalsErr != nil {
		return 0, f.decimalsErr
	}
	return 18, nil
}

type fakeScanner struct {
	owners  map[int64]string
	batches []int
}

func (f *fakeScanner) OwnersOf(_ context.Context, _ string, ids []*big.Int) ([]entity.OwnerResultItem, error) {
	f.batches = append(f.batches, len(ids))
	out := make([]entity.OwnerResultItem, 0, len(ids))
	for _, id := range ids {
		item := entity.OwnerResultItem{TokenID: id}
		if owner, ok := f.owners[id.Int64()]; ok {
			item.Owner = owner
		} else {
			item.Error = fmt.Errorf("ownerOf(%s): execution reverted", id)
		}
		out = append(out, item)
	}
	return out, nil
}

type fakeMetadata struct {
	failFor map[int64]bool
}

func (f *fakeMetadata) Fetch(_ context.Context, tokenID *big.Int, uri string) (entity.NFTMetadata, error) {
	if f.failFor[tokenID.Int64()] {
		return entity.NFTMetadata{}, fmt.Errorf("gateway timeout")
	}
	return entity.NFTMetadata{ID: tokenID, URI: uri, Name: "Adventurer #" + tokenID.String()}, nil
}
