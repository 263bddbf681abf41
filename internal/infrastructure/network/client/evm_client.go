package client

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"nft_staker/internal/app/port"
	"nft_staker/internal/domain/entity"
	"nft_staker/internal/pkg/utils"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/time/rate"
)

// batchCaller is the part of *rpc.Client used for JSON-RPC batches.
type batchCaller interface {
	BatchCallContext(ctx context.Context, b []rpc.BatchElem) error
}

// EVMClient implements the port.BlockchainClient interface for EVM-compatible chains.
type EVMClient struct {
	ethClient      *ethclient.Client
	batch          batchCaller
	netDef         entity.NetworkDefinition
	rpcCallTimeout time.Duration
	batchSize      int
	limiter        *rate.Limiter
}

// ERC721 ABI minimal part for ownerOf
const erc721OwnerOfABI = `[{"inputs":[{"internalType":"uint256","name":"tokenId","type":"uint256"}],"name":"ownerOf","outputs":[{"internalType":"address","name":"","type":"address"}],"stateMutability":"view","type":"function"}]`

var (
	parsedOwnerOfABI  abi.ABI
	parsedOwnerOfOnce sync.Once
)

func initParsedOwnerOfABI() {
	parsedOwnerOfOnce.Do(func() {
		var err error
		parsedOwnerOfABI, err = abi.JSON(strings.NewReader(erc721OwnerOfABI))
		if err != nil {
			panic(fmt.Sprintf("failed to parse ERC721 ownerOf ABI: %v", err))
		}
	})
}

// Options tunes RPC behaviour of a client.
type Options struct {
	ConnectionTimeout time.Duration
	RPCCallTimeout    time.Duration
	BatchSize         int
	RateLimit         float64
	Burst             int
}

// NewEVMClient creates a new EVM client for the given network definition.
// RPC URLs are tried in order; an endpoint reporting a different chain id is skipped.
func NewEVMClient(netDef entity.NetworkDefinition, opts Options) (*EVMClient, error) {
	initParsedOwnerOfABI()
	rpcURLs := append([]string{netDef.PrimaryRPCURL}, netDef.FallbackRPCURLs...)
	var lastErr error

	for _, rpcURL := range rpcURLs {
		if rpcURL == "" {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), opts.ConnectionTimeout)
		rpcClient, err := rpc.DialContext(ctx, rpcURL)
		if err != nil {
			cancel()
			lastErr = fmt.Errorf("failed to connect to RPC %s: %w", rpcURL, err)
			continue
		}
		ethClient := ethclient.NewClient(rpcClient)

		chainID, err := ethClient.ChainID(ctx)
		cancel()
		if err != nil {
			ethClient.Close()
			lastErr = fmt.Errorf("failed to verify chainID for %s: %w", rpcURL, err)
			continue
		}
		if netDef.ChainID != 0 && chainID.Uint64() != netDef.ChainID {
			ethClient.Close()
			lastErr = fmt.Errorf("chainID mismatch for %s: expected %d, got %d", rpcURL, netDef.ChainID, chainID.Uint64())
			continue
		}

		return newEVMClient(ethClient, rpcClient, netDef, opts), nil
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no RPC URLs configured")
	}
	return nil, fmt.Errorf("all RPC connection attempts failed for network %s: %w", netDef.Name, lastErr)
}

func newEVMClient(ethClient *ethclient.Client, batch batchCaller, netDef entity.NetworkDefinition, opts Options) *EVMClient {
	initParsedOwnerOfABI()
	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}
	rpcCallTimeout := opts.RPCCallTimeout
	if rpcCallTimeout <= 0 {
		rpcCallTimeout = 10 * time.Second
	}
	return &EVMClient{
		ethClient:      ethClient,
		batch:          batch,
		netDef:         netDef,
		rpcCallTimeout: rpcCallTimeout,
		batchSize:      opts.BatchSize,
		limiter:        rate.NewLimiter(limit, burst),
	}
}

// Backend returns the contract backend for typed bindings.
func (c *EVMClient) Backend() bind.ContractBackend {
	return c.ethClient
}

// DeployBackend returns the backend used to wait for receipts.
func (c *EVMClient) DeployBackend() bind.DeployBackend {
	return c.ethClient
}

// OwnersOf fetches ownerOf for every token id using JSON-RPC batch requests.
// Per-token failures (e.g. a burned token reverting) are reported in the result item, not as an error.
func (c *EVMClient) OwnersOf(ctx context.Context, contractAddress string, tokenIDs []*big.Int) ([]entity.OwnerResultItem, error) {
	results := make([]entity.OwnerResultItem, 0, len(tokenIDs))
	if len(tokenIDs) == 0 {
		return results, nil
	}
	contract := common.HexToAddress(contractAddress)

	for _, chunk := range utils.Chunk(tokenIDs, c.batchSize) {
		if err := c.limiter.Wait(ctx); err != nil {
			return results, fmt.Errorf("rate limiter wait: %w", err)
		}
		chunkResults, err := c.ownersOfBatch(ctx, contract, chunk)
		if err != nil {
			return results, err
		}
		results = append(results, chunkResults...)
	}
	return results, nil
}

func (c *EVMClient) ownersOfBatch(ctx context.Context, contract common.Address, tokenIDs []*big.Int) ([]entity.OwnerResultItem, error) {
	batchElems := make([]rpc.BatchElem, len(tokenIDs))
	results := make([]entity.OwnerResultItem, len(tokenIDs))

	for i, id := range tokenIDs {
		results[i] = entity.OwnerResultItem{
			RequestID: fmt.Sprintf("%s-%s", contract.Hex(), id.String()),
			TokenID:   id,
		}
		callData, err := parsedOwnerOfABI.Pack("ownerOf", id)
		if err != nil {
			return nil, fmt.Errorf("failed to pack ownerOf(%s): %w", id, err)
		}
		callArgs := map[string]interface{}{
			"to":   contract,
			"data": hexutil.Bytes(callData),
		}
		batchElems[i] = rpc.BatchElem{
			Method: "eth_call",
			Args:   []interface{}{callArgs, "latest"},
			Result: new(hexutil.Bytes),
		}
	}

	rpcCallCtx, cancel := context.WithTimeout(ctx, c.rpcCallTimeout)
	defer cancel()

	if err := c.batch.BatchCallContext(rpcCallCtx, batchElems); err != nil {
		return nil, fmt.Errorf("RPC batch call failed: %w", err)
	}

	for i, elem := range batchElems {
		if elem.Error != nil {
			results[i].Error = fmt.Errorf("ownerOf(%s): %w", tokenIDs[i], elem.Error)
			continue
		}
		raw, ok := elem.Result.(*hexutil.Bytes)
		if !ok || raw == nil || len(*raw) == 0 {
			results[i].Error = fmt.Errorf("ownerOf(%s): empty result", tokenIDs[i])
			continue
		}
		unpacked, err := parsedOwnerOfABI.Unpack("ownerOf", *raw)
		if err != nil || len(unpacked) == 0 {
			results[i].Error = fmt.Errorf("failed to unpack ownerOf(%s) result %s: %v", tokenIDs[i], hexutil.Encode(*raw), err)
			continue
		}
		owner, ok := unpacked[0].(common.Address)
		if !ok {
			results[i].Error = fmt.Errorf("unexpected ownerOf(%s) result type %T", tokenIDs[i], unpacked[0])
			continue
		}
		results[i].Owner = owner.Hex()
	}
	return results, nil
}

// Definition returns the network definition for this client.
func (c *EVMClient) Definition() entity.NetworkDefinition {
	return c.netDef
}

// Close releases the underlying RPC connection.
func (c *EVMClient) Close() {
	if c.ethClient != nil {
		c.ethClient.Close()
	}
}

var _ port.BlockchainClient = (*EVMClient)(nil)
