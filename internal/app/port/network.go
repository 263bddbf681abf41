package port

import (
	"context"
	"math/big"

	"nft_staker/internal/domain/entity"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// BlockchainClient defines the interface for interacting with a blockchain network.
type BlockchainClient interface {
	// Backend returns the contract backend used by the typed contract bindings.
	Backend() bind.ContractBackend

	// DeployBackend is what bind.WaitMined needs to poll receipts.
	DeployBackend() bind.DeployBackend

	// OwnersOf resolves ownerOf for many token ids of one ERC721 contract using JSON-RPC batches.
	OwnersOf(ctx context.Context, contractAddress string, tokenIDs []*big.Int) ([]entity.OwnerResultItem, error)

	// Definition returns the network definition associated with this client.
	Definition() entity.NetworkDefinition
}

// NetworkDefinitionProvider defines the interface for providing network definitions.
type NetworkDefinitionProvider interface {
	// GetAllNetworkDefinitions returns all available network definitions as a slice.
	GetAllNetworkDefinitions() []entity.NetworkDefinition

	// GetNetworkDefinitionByName returns a specific network definition by its identifier.
	GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool)
}

// BlockchainClientProvider defines the interface for providing blockchain clients.
type BlockchainClientProvider interface {
	GetClient(networkDefinition entity.NetworkDefinition) (BlockchainClient, error)
}
