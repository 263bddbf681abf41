package client

import (
	"fmt"
	"sync"
	"time"

	"nft_staker/internal/app/port"
	"nft_staker/internal/domain/entity"
	"nft_staker/internal/infrastructure/configloader"
)

const (
	defaultProviderConnectionTimeout = 10 * time.Second
)

// evmClientProvider implements the port.BlockchainClientProvider interface.
type evmClientProvider struct {
	clients     map[uint64]port.BlockchainClient
	mu          sync.Mutex
	loggerInfo  func(msg string, args ...any)
	loggerError func(msg string, args ...any)
	opts        Options
	dial        func(entity.NetworkDefinition, Options) (port.BlockchainClient, error)
}

// NewEVMClientProvider creates a new EVMClientProvider.
func NewEVMClientProvider(
	cfg *configloader.Config,
	loggerInfo func(msg string, args ...any),
	loggerError func(msg string, args ...any),
) port.BlockchainClientProvider {
	return &evmClientProvider{
		clients:     make(map[uint64]port.BlockchainClient),
		loggerInfo:  loggerInfo,
		loggerError: loggerError,
		opts: Options{
			ConnectionTimeout: defaultProviderConnectionTimeout,
			RPCCallTimeout:    time.Duration(cfg.Performance.RPCCallTimeoutSeconds) * time.Second,
			BatchSize:         cfg.Performance.OwnerScanBatchSize,
			RateLimit:         cfg.Performance.RPCRateLimit,
			Burst:             cfg.Performance.RPCBurstLimit,
		},
		dial: func(def entity.NetworkDefinition, opts Options) (port.BlockchainClient, error) {
			return NewEVMClient(def, opts)
		},
	}
}

// GetClient retrieves a blockchain client for the given network definition.
// Clients are cached per chain id to avoid reconnecting repeatedly.
func (p *evmClientProvider) GetClient(netDef entity.NetworkDefinition) (port.BlockchainClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if client, exists := p.clients[netDef.ChainID]; exists {
		p.loggerInfo("Returning cached EVM client", "network", netDef.Name)
		return client, nil
	}

	p.loggerInfo("Creating new EVM client", "network", netDef.Name, "rpc_primary", netDef.PrimaryRPCURL)
	newClient, err := p.dial(netDef, p.opts)
	if err != nil {
		p.loggerError("Failed to create EVM client", "network", netDef.Name, "error", err)
		return nil, fmt.Errorf("failed to create EVM client for %s: %w", netDef.Name, err)
	}

	p.clients[netDef.ChainID] = newClient
	p.loggerInfo("Successfully created and cached new EVM client", "network", netDef.Name)
	return newClient, nil
}
