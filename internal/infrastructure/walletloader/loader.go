package walletloader

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"os"
	"strings"

	"nft_staker/internal/app/port"
	"nft_staker/internal/infrastructure/configloader"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/crypto"
)

// KeyLoader implements the port.WalletProvider interface by unlocking a local key.
// A keystore file takes precedence over a raw private key in the environment.
type KeyLoader struct {
	cfg        configloader.WalletConfig
	loggerInfo func(msg string, args ...any)
}

// NewKeyLoader creates a new KeyLoader.
func NewKeyLoader(cfg configloader.WalletConfig, loggerInfo func(msg string, args ...any)) port.WalletProvider {
	return &KeyLoader{
		cfg:        cfg,
		loggerInfo: loggerInfo,
	}
}

// LoadSigner unlocks the configured key.
func (l *KeyLoader) LoadSigner() (port.Signer, error) {
	if l.cfg.KeystorePath != "" {
		return l.loadKeystore()
	}

	raw := strings.TrimSpace(os.Getenv(l.cfg.PrivateKeyEnv))
	if raw == "" {
		return nil, fmt.Errorf("no wallet configured: set wallet.keystorePath or the %s environment variable", l.cfg.PrivateKeyEnv)
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(raw, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key from %s: %w", l.cfg.PrivateKeyEnv, err)
	}
	signer := NewKeySigner(key)
	if l.loggerInfo != nil {
		l.loggerInfo("Wallet key loaded from environment", "env", l.cfg.PrivateKeyEnv, "address", signer.Address())
	}
	return signer, nil
}

func (l *KeyLoader) loadKeystore() (port.Signer, error) {
	keyJSON, err := os.ReadFile(l.cfg.KeystorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore file %s: %w", l.cfg.KeystorePath, err)
	}
	key, err := keystore.DecryptKey(keyJSON, os.Getenv(l.cfg.PassphraseEnv))
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt keystore %s: %w", l.cfg.KeystorePath, err)
	}
	signer := NewKeySigner(key.PrivateKey)
	if l.loggerInfo != nil {
		l.loggerInfo("Wallet key loaded from keystore", "path", l.cfg.KeystorePath, "address", signer.Address())
	}
	return signer, nil
}

// KeySigner signs with an in-memory ECDSA key.
type KeySigner struct {
	key     *ecdsa.PrivateKey
	address string
}

// NewKeySigner wraps key as a port.Signer.
func NewKeySigner(key *ecdsa.PrivateKey) *KeySigner {
	return &KeySigner{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey).Hex(),
	}
}

func (s *KeySigner) Address() string {
	return s.address
}

func (s *KeySigner) Transactor(chainID *big.Int) (*bind.TransactOpts, error) {
	return bind.NewKeyedTransactorWithChainID(s.key, chainID)
}

var _ port.Signer = (*KeySigner)(nil)
