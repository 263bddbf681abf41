package walletloader

import (
	"encoding/hex"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"nft_staker/internal/infrastructure/configloader"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSigner_FromEnv(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	t.Setenv("TEST_WALLET_KEY", "0x"+hex.EncodeToString(crypto.FromECDSA(key)))

	l := NewKeyLoader(configloader.WalletConfig{PrivateKeyEnv: "TEST_WALLET_KEY"}, nil)
	signer, err := l.LoadSigner()
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey).Hex(), signer.Address())

	opts, err := signer.Transactor(big.NewInt(11155111))
	require.NoError(t, err)
	assert.Equal(t, crypto.PubkeyToAddress(key.PublicKey), opts.From)
}

func TestLoadSigner_NothingConfigured(t *testing.T) {
	t.Setenv("TEST_WALLET_KEY", "")
	l := NewKeyLoader(configloader.WalletConfig{PrivateKeyEnv: "TEST_WALLET_KEY"}, nil)

	_, err := l.LoadSigner()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TEST_WALLET_KEY")
}

func TestLoadSigner_MalformedKey(t *testing.T) {
	t.Setenv("TEST_WALLET_KEY", "0xnothex")
	l := NewKeyLoader(configloader.WalletConfig{PrivateKeyEnv: "TEST_WALLET_KEY"}, nil)

	_, err := l.LoadSigner()
	assert.Error(t, err)
}

func TestLoadSigner_FromKeystore(t *testing.T) {
	privateKey, err := crypto.GenerateKey()
	require.NoError(t, err)
	key := &keystore.Key{
		Id:         uuid.New(),
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey),
		PrivateKey: privateKey,
	}
	keyJSON, err := keystore.EncryptKey(key, "secret", keystore.LightScryptN, keystore.LightScryptP)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, keyJSON, 0o600))
	t.Setenv("TEST_WALLET_PASS", "secret")

	var logged []string
	l := NewKeyLoader(configloader.WalletConfig{KeystorePath: path, PassphraseEnv: "TEST_WALLET_PASS"}, func(msg string, _ ...any) {
		logged = append(logged, msg)
	})
	signer, err := l.LoadSigner()
	require.NoError(t, err)
	assert.Equal(t, key.Address.Hex(), signer.Address())
	assert.Contains(t, logged, "Wallet key loaded from keystore")

	t.Setenv("TEST_WALLET_PASS", "wrong")
	_, err = l.LoadSigner()
	assert.Error(t, err)
}
