package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
contracts:
  addressesFile: config.json
`))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sepolia", cfg.Network.Identifier)
	assert.Equal(t, "https://ipfs.io/ipfs/", cfg.Metadata.IPFSGateway)
	assert.Equal(t, 10, cfg.Performance.MaxConcurrentRoutines)
	assert.Equal(t, 120, cfg.Performance.TxWaitTimeoutSeconds)
	assert.Equal(t, 100, cfg.Performance.OwnerScanBatchSize)
	assert.Equal(t, int64(10000), cfg.Performance.MaxOwnerScan)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "WALLET_PRIVATE_KEY", cfg.Wallet.PrivateKeyEnv)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowOrigins)
}

func TestParse_KeepsExplicitValues(t *testing.T) {
	cfg, err := Parse([]byte(`
server:
  port: "9090"
network:
  identifier: polygon-amoy
  rpcURL: http://localhost:8545
contracts:
  nftDrop: "0xc4BAC744834115201E64dba0bf723c718Ecde9F8"
  rewardToken: "0x1111111111111111111111111111111111111111"
  nftStaking: "0x2222222222222222222222222222222222222222"
performance:
  max_concurrent_routines: 3
storage:
  driver: postgres
  dsn: postgres://localhost/nft
`))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "polygon-amoy", cfg.Network.Identifier)
	assert.Equal(t, "http://localhost:8545", cfg.Network.RPCURL)
	assert.Equal(t, 3, cfg.Performance.MaxConcurrentRoutines)
	assert.Equal(t, StorageDriverPostgres, cfg.Storage.Driver)
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no contracts", `server: {port: "1"}`},
		{"partial inline contracts", "contracts:\n  nftDrop: \"0xc4BAC744834115201E64dba0bf723c718Ecde9F8\"\n"},
		{"postgres without dsn", "contracts: {addressesFile: a.json}\nstorage: {driver: postgres}\n"},
		{"unknown driver", "contracts: {addressesFile: a.json}\nstorage: {driver: sqlite}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("contracts:\n  addressesFile: config.json\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "config.json", cfg.Contracts.AddressesFile)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
