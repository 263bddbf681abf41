package networkdefinition

import (
	"fmt"
	"sort"
	"strings"

	"nft_staker/internal/app/port"
	"nft_staker/internal/domain/entity"
)

// NetworkDefinitionProvider provides network definitions.
type NetworkDefinitionProvider struct {
	logger         port.Logger
	allNetworkDefs map[string]entity.NetworkDefinition
}

// Predefined network definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.NetworkDefinition{
		ChainID:          1,
		Name:             "Ethereum Mainnet",
		Identifier:       "ethereum",
		NativeSymbol:     "ETH",
		Decimals:         18,
		PrimaryRPCURL:    "https://ethereum-rpc.publicnode.com",
		FallbackRPCURLs:  []string{"https://rpc.ankr.com/eth", "https://ethereum.publicnode.com"},
		BlockExplorerURL: "https://etherscan.io",
	}
	Sepolia = entity.NetworkDefinition{
		ChainID:          11155111,
		Name:             "Sepolia",
		Identifier:       "sepolia",
		NativeSymbol:     "ETH",
		Decimals:         18,
		PrimaryRPCURL:    "https://ethereum-sepolia-rpc.publicnode.com",
		FallbackRPCURLs:  []string{"https://rpc.sepolia.org", "https://1rpc.io/sepolia"},
		BlockExplorerURL: "https://sepolia.etherscan.io",
		Testnet:          true,
	}
	Polygon = entity.NetworkDefinition{
		ChainID:          137,
		Name:             "Polygon PoS",
		Identifier:       "polygon",
		NativeSymbol:     "POL",
		Decimals:         18,
		PrimaryRPCURL:    "https://polygon-rpc.com/",
		FallbackRPCURLs:  []string{"https://rpc.ankr.com/polygon", "https://polygon.publicnode.com"},
		BlockExplorerURL: "https://polygonscan.com",
	}
	PolygonAmoy = entity.NetworkDefinition{
		ChainID:          80002,
		Name:             "Polygon Amoy",
		Identifier:       "polygon-amoy",
		NativeSymbol:     "POL",
		Decimals:         18,
		PrimaryRPCURL:    "https://rpc-amoy.polygon.technology",
		FallbackRPCURLs:  []string{"https://polygon-amoy-bor-rpc.publicnode.com"},
		BlockExplorerURL: "https://amoy.polygonscan.com",
		Testnet:          true,
	}
	Base = entity.NetworkDefinition{
		ChainID:          8453,
		Name:             "Base",
		Identifier:       "base",
		NativeSymbol:     "ETH",
		Decimals:         18,
		PrimaryRPCURL:    "https://mainnet.base.org",
		FallbackRPCURLs:  []string{"https://base.publicnode.com"},
		BlockExplorerURL: "https://basescan.org",
	}
	BaseSepolia = entity.NetworkDefinition{
		ChainID:          84532,
		Name:             "Base Sepolia",
		Identifier:       "base-sepolia",
		NativeSymbol:     "ETH",
		Decimals:         18,
		PrimaryRPCURL:    "https://sepolia.base.org",
		FallbackRPCURLs:  []string{"https://base-sepolia-rpc.publicnode.com"},
		BlockExplorerURL: "https://sepolia.basescan.org",
		Testnet:          true,
	}
	Arbitrum = entity.NetworkDefinition{
		ChainID:          42161,
		Name:             "Arbitrum One",
		Identifier:       "arbitrum",
		NativeSymbol:     "ETH",
		Decimals:         18,
		PrimaryRPCURL:    "https://arb1.arbitrum.io/rpc",
		FallbackRPCURLs:  []string{"https://arbitrum.llamarpc.com", "https://arbitrum.publicnode.com"},
		BlockExplorerURL: "https://arbiscan.io",
	}
	Optimism = entity.NetworkDefinition{
		ChainID:          10,
		Name:             "OP Mainnet",
		Identifier:       "optimism",
		NativeSymbol:     "ETH",
		Decimals:         18,
		PrimaryRPCURL:    "https://op-pokt.nodies.app",
		FallbackRPCURLs:  []string{"https://optimism.publicnode.com", "https://rpc.ankr.com/optimism"},
		BlockExplorerURL: "https://optimistic.etherscan.io",
	}
	BSC = entity.NetworkDefinition{
		ChainID:          56,
		Name:             "BNB Smart Chain",
		Identifier:       "bsc",
		NativeSymbol:     "BNB",
		Decimals:         18,
		PrimaryRPCURL:    "https://1rpc.io/bnb",
		FallbackRPCURLs:  []string{"https://bsc-dataseed2.binance.org/", "https://bsc.publicnode.com"},
		BlockExplorerURL: "https://bscscan.com",
	}
	Avalanche = entity.NetworkDefinition{
		ChainID:          43114,
		Name:             "Avalanche C-Chain",
		Identifier:       "avalanche",
		NativeSymbol:     "AVAX",
		Decimals:         18,
		PrimaryRPCURL:    "https://api.avax.network/ext/bc/C/rpc",
		FallbackRPCURLs:  []string{"https://avalanche.public-rpc.com", "https://rpc.ankr.com/avalanche"},
		BlockExplorerURL: "https://snowtrace.io",
	}
)

var allKnownDefinitions = map[string]entity.NetworkDefinition{
	Ethereum.Identifier:    Ethereum,
	Sepolia.Identifier:     Sepolia,
	Polygon.Identifier:     Polygon,
	PolygonAmoy.Identifier: PolygonAmoy,
	Base.Identifier:        Base,
	BaseSepolia.Identifier: BaseSepolia,
	Arbitrum.Identifier:    Arbitrum,
	Optimism.Identifier:    Optimism,
	BSC.Identifier:         BSC,
	Avalanche.Identifier:   Avalanche,
}

func NewNetworkDefinitionProvider(log port.Logger) *NetworkDefinitionProvider {
	return &NetworkDefinitionProvider{
		logger:         log,
		allNetworkDefs: allKnownDefinitions,
	}
}

// GetAllNetworkDefinitions returns every known network, sorted by identifier.
func (p *NetworkDefinitionProvider) GetAllNetworkDefinitions() []entity.NetworkDefinition {
	if p == nil {
		return []entity.NetworkDefinition{}
	}
	defs := make([]entity.NetworkDefinition, 0, len(p.allNetworkDefs))
	for _, def := range p.allNetworkDefs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Identifier < defs[j].Identifier })
	return defs
}

func (p *NetworkDefinitionProvider) GetNetworkDefinitionByName(identifier string) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	def, ok := p.allNetworkDefs[strings.ToLower(strings.TrimSpace(identifier))]
	return def, ok
}

func (p *NetworkDefinitionProvider) GetNetworkDefinitionByChainID(chainID uint64) (entity.NetworkDefinition, bool) {
	if p == nil {
		return entity.NetworkDefinition{}, false
	}
	for _, def := range p.allNetworkDefs {
		if def.ChainID == chainID {
			return def, true
		}
	}
	return entity.NetworkDefinition{}, false
}

// Resolve returns the definition for identifier with rpcOverride, when set, as the primary RPC.
// The hardcoded primary is kept as the first fallback.
func (p *NetworkDefinitionProvider) Resolve(identifier, rpcOverride string) (entity.NetworkDefinition, error) {
	def, ok := p.GetNetworkDefinitionByName(identifier)
	if !ok {
		return entity.NetworkDefinition{}, fmt.Errorf("unknown network %q", identifier)
	}
	if rpcOverride != "" && rpcOverride != def.PrimaryRPCURL {
		fallbacks := make([]string, 0, len(def.FallbackRPCURLs)+1)
		fallbacks = append(fallbacks, def.PrimaryRPCURL)
		fallbacks = append(fallbacks, def.FallbackRPCURLs...)
		def.PrimaryRPCURL = rpcOverride
		def.FallbackRPCURLs = fallbacks
		if p.logger != nil {
			p.logger.Info("Using configured RPC URL override", "network", def.Identifier, "rpc_primary", rpcOverride)
		}
	}
	return def, nil
}

var _ port.NetworkDefinitionProvider = (*NetworkDefinitionProvider)(nil)
