package configloader

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// NetworkConfig selects the chain the contracts are deployed on.
type NetworkConfig struct {
	Identifier string `yaml:"identifier"`
	// RPCURL overrides the primary RPC URL of the hardcoded definition when set.
	RPCURL string `yaml:"rpcURL"`
}

// ContractsConfig holds the contract addresses. Inline values win over the addresses file.
type ContractsConfig struct {
	AddressesFile string `yaml:"addressesFile"`
	NFTDrop       string `yaml:"nftDrop"`
	RewardToken   string `yaml:"rewardToken"`
	NFTStaking    string `yaml:"nftStaking"`
}

// WalletConfig tells the wallet loader where the signing key lives.
type WalletConfig struct {
	KeystorePath  string `yaml:"keystorePath"`
	PassphraseEnv string `yaml:"passphraseEnv"`
	PrivateKeyEnv string `yaml:"privateKeyEnv"`
	// AutoConnect connects the wallet session on startup.
	AutoConnect bool `yaml:"autoConnect"`
}

// MetadataConfig holds settings for resolving token metadata.
type MetadataConfig struct {
	IPFSGateway          string  `yaml:"ipfsGateway"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	CacheTTLMinutes      int     `yaml:"cacheTTLMinutes"`
	RateLimit            float64 `yaml:"rateLimit"`
	Burst                int     `yaml:"burst"`
}

// PerformanceConfig holds performance-related configurations.
type PerformanceConfig struct {
	MaxConcurrentRoutines int     `yaml:"max_concurrent_routines"`
	RPCCallTimeoutSeconds int     `yaml:"rpc_call_timeout_seconds"`
	TxWaitTimeoutSeconds  int     `yaml:"tx_wait_timeout_seconds"`
	OwnerScanBatchSize    int     `yaml:"owner_scan_batch_size"`
	MaxOwnerScan          int64   `yaml:"max_owner_scan"`
	RPCRateLimit          float64 `yaml:"rpc_rate_limit"`
	RPCBurstLimit         int     `yaml:"rpc_burst_limit"`
}

// StorageConfig selects the activity journal backend.
type StorageConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// SwaggerConfig holds configuration for Swagger UI.
type SwaggerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	SpecPath string `yaml:"specPath"`
}

// CORSConfig holds the allowed origins for browser clients.
type CORSConfig struct {
	AllowOrigins []string `yaml:"allowOrigins"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Network     NetworkConfig     `yaml:"network"`
	Contracts   ContractsConfig   `yaml:"contracts"`
	Wallet      WalletConfig      `yaml:"wallet"`
	Metadata    MetadataConfig    `yaml:"metadata"`
	Performance PerformanceConfig `yaml:"performance"`
	Storage     StorageConfig     `yaml:"storage"`
	Swagger     SwaggerConfig     `yaml:"swagger"`
	CORS        CORSConfig        `yaml:"cors"`
}

const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Load reads the YAML configuration file from the given path and unmarshals it.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	logrus.Info("Configuration loaded successfully.")
	return cfg, nil
}

// Parse unmarshals raw YAML, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
		logrus.Infof("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 15
	}
	if cfg.Server.WriteTimeout <= 0 {
		// Write handlers wait for mined receipts.
		cfg.Server.WriteTimeout = 180
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Network.Identifier == "" {
		cfg.Network.Identifier = "sepolia"
		logrus.Infof("Network.Identifier not set, defaulting to %s", cfg.Network.Identifier)
	}

	if cfg.Wallet.PassphraseEnv == "" {
		cfg.Wallet.PassphraseEnv = "WALLET_PASSPHRASE"
	}
	if cfg.Wallet.PrivateKeyEnv == "" {
		cfg.Wallet.PrivateKeyEnv = "WALLET_PRIVATE_KEY"
	}

	if cfg.Metadata.IPFSGateway == "" {
		cfg.Metadata.IPFSGateway = "https://ipfs.io/ipfs/"
		logrus.Infof("Metadata.IPFSGateway not set, defaulting to %s", cfg.Metadata.IPFSGateway)
	}
	if cfg.Metadata.RequestTimeoutMillis <= 0 {
		cfg.Metadata.RequestTimeoutMillis = 10000
	}
	if cfg.Metadata.CacheTTLMinutes <= 0 {
		cfg.Metadata.CacheTTLMinutes = 60
	}
	if cfg.Metadata.RateLimit <= 0 {
		cfg.Metadata.RateLimit = 10
	}
	if cfg.Metadata.Burst <= 0 {
		cfg.Metadata.Burst = 5
	}

	if cfg.Performance.MaxConcurrentRoutines <= 0 {
		cfg.Performance.MaxConcurrentRoutines = 10
	}
	if cfg.Performance.RPCCallTimeoutSeconds <= 0 {
		cfg.Performance.RPCCallTimeoutSeconds = 10
	}
	if cfg.Performance.TxWaitTimeoutSeconds <= 0 {
		cfg.Performance.TxWaitTimeoutSeconds = 120
	}
	if cfg.Performance.OwnerScanBatchSize <= 0 {
		cfg.Performance.OwnerScanBatchSize = 100
	}
	if cfg.Performance.MaxOwnerScan <= 0 {
		cfg.Performance.MaxOwnerScan = 10000
	}
	if cfg.Performance.RPCRateLimit <= 0 {
		cfg.Performance.RPCRateLimit = 20
	}
	if cfg.Performance.RPCBurstLimit <= 0 {
		cfg.Performance.RPCBurstLimit = 5
	}

	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = StorageDriverMemory
	}
	if cfg.Swagger.SpecPath == "" {
		cfg.Swagger.SpecPath = "./docs/swagger.yaml"
	}
	if len(cfg.CORS.AllowOrigins) == 0 {
		cfg.CORS.AllowOrigins = []string{"*"}
	}
}

// Validate checks the settings that have no sensible default.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Storage.Driver) {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the %s driver", StorageDriverPostgres)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Contracts.AddressesFile == "" && (c.Contracts.NFTDrop == "" || c.Contracts.NFTStaking == "" || c.Contracts.RewardToken == "") {
		return fmt.Errorf("contracts: either addressesFile or all of nftDrop, rewardToken and nftStaking must be set")
	}
	return nil
}

// GetConfig lets a loaded *Config serve as a port.ConfigProvider.
func (c *Config) GetConfig() *Config {
	return c
}
