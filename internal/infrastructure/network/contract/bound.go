package contract

import (
	"context"
	"time"

	"nft_staker/internal/app/port"
	"nft_staker/internal/domain/entity"
	"nft_staker/internal/pkg/metrics"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/pkg/errors"
)

const defaultTxWaitTimeout = 2 * time.Minute

// Backends is what a binding needs to read state, send transactions and wait for receipts.
type Backends struct {
	Contract      bind.ContractBackend
	Deploy        bind.DeployBackend
	Network       entity.NetworkDefinition
	TxWaitTimeout time.Duration
}

// BackendsFromClient builds Backends on top of a connected blockchain client.
func BackendsFromClient(client port.BlockchainClient, txWaitTimeout time.Duration) Backends {
	return Backends{
		Contract:      client.Backend(),
		Deploy:        client.DeployBackend(),
		Network:       client.Definition(),
		TxWaitTimeout: txWaitTimeout,
	}
}

type boundContract struct {
	address  common.Address
	contract *bind.BoundContract
	backends Backends
}

func newBoundContract(address string, parsed abi.ABI, b Backends) (*boundContract, error) {
	if !common.IsHexAddress(address) {
		return nil, errors.Errorf("invalid contract address %q", address)
	}
	if b.Contract == nil {
		return nil, errors.New("contract backend is required")
	}
	if b.TxWaitTimeout <= 0 {
		b.TxWaitTimeout = defaultTxWaitTimeout
	}
	addr := common.HexToAddress(address)
	return &boundContract{
		address:  addr,
		contract: bind.NewBoundContract(addr, parsed, b.Contract, b.Contract, b.Contract),
		backends: b,
	}, nil
}

func (c *boundContract) Address() string {
	return c.address.Hex()
}

func (c *boundContract) call(ctx context.Context, method string, params ...interface{}) ([]interface{}, error) {
	var out []interface{}
	err := c.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, params...)
	metrics.RecordContractCall(method, err)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to call %s on %s", method, c.address.Hex())
	}
	if len(out) == 0 {
		return nil, errors.Errorf("empty result from %s on %s", method, c.address.Hex())
	}
	return out, nil
}

// transact sends the transaction and blocks until it is mined.
// A reverted receipt yields both the result and an error wrapping entity.ErrTxReverted.
func (c *boundContract) transact(ctx context.Context, opts *bind.TransactOpts, method string, params ...interface{}) (*entity.TxResult, error) {
	if opts == nil {
		return nil, entity.ErrWalletNotConnected
	}
	txOpts := *opts
	txOpts.Context = ctx

	started := time.Now()
	tx, err := c.contract.Transact(&txOpts, method, params...)
	if err != nil {
		metrics.RecordContractCall(method, err)
		return nil, errors.Wrapf(err, "failed to send %s to %s", method, c.address.Hex())
	}

	receipt, err := c.waitMined(ctx, tx)
	if err != nil {
		metrics.RecordContractCall(method, err)
		return nil, errors.Wrapf(err, "failed waiting for %s transaction %s", method, tx.Hash().Hex())
	}
	metrics.RecordTxDuration(method, time.Since(started).Seconds())

	result := &entity.TxResult{
		Method:      method,
		Hash:        tx.Hash().Hex(),
		Status:      entity.TxStatusSuccess,
		GasUsed:     receipt.GasUsed,
		ExplorerURL: c.backends.Network.TxURL(tx.Hash().Hex()),
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		result.Status = entity.TxStatusReverted
		metrics.RecordContractCall(method, entity.ErrTxReverted)
		return result, errors.Wrapf(entity.ErrTxReverted, "%s transaction %s", method, result.Hash)
	}
	metrics.RecordContractCall(method, nil)
	return result, nil
}

func (c *boundContract) waitMined(ctx context.Context, tx *types.Transaction) (*types.Receipt, error) {
	if c.backends.Deploy == nil {
		return nil, errors.New("deploy backend is required to wait for receipts")
	}
	waitCtx, cancel := context.WithTimeout(ctx, c.backends.TxWaitTimeout)
	defer cancel()
	return bind.WaitMined(waitCtx, c.backends.Deploy, tx)
}
