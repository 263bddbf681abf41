package networkdefinition

import (
	"testing"

	"nft_staker/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Lookup(t *testing.T) {
	p := NewNetworkDefinitionProvider(logger.Nop{})

	def, ok := p.GetNetworkDefinitionByName(" Sepolia ")
	require.True(t, ok)
	assert.Equal(t, uint64(11155111), def.ChainID)

	def, ok = p.GetNetworkDefinitionByChainID(80002)
	require.True(t, ok)
	assert.Equal(t, "polygon-amoy", def.Identifier)

	_, ok = p.GetNetworkDefinitionByName("goerli")
	assert.False(t, ok)

	all := p.GetAllNetworkDefinitions()
	assert.Len(t, all, len(allKnownDefinitions))
	assert.Equal(t, "arbitrum", all[0].Identifier)
}

func TestProvider_ResolveOverride(t *testing.T) {
	p := NewNetworkDefinitionProvider(logger.Nop{})

	def, err := p.Resolve("sepolia", "http://localhost:8545")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8545", def.PrimaryRPCURL)
	assert.Equal(t, Sepolia.PrimaryRPCURL, def.FallbackRPCURLs[0])
	assert.Len(t, def.FallbackRPCURLs, len(Sepolia.FallbackRPCURLs)+1)

	// the shared table must not be mutated
	assert.Equal(t, "https://ethereum-sepolia-rpc.publicnode.com", Sepolia.PrimaryRPCURL)

	_, err = p.Resolve("goerli", "")
	assert.Error(t, err)
}

func TestTxURL(t *testing.T) {
	assert.Equal(t, "https://sepolia.etherscan.io/tx/0xabc", Sepolia.TxURL("0xabc"))
	assert.Empty(t, Sepolia.TxURL(""))
}
