// Package bootstrap assembles the application graph shared by the server and the CLI.
package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nft_staker/internal/app/port"
	"nft_staker/internal/app/provider"
	"nft_staker/internal/app/service"
	"nft_staker/internal/domain/entity"
	"nft_staker/internal/infrastructure/addressbook"
	"nft_staker/internal/infrastructure/configloader"
	"nft_staker/internal/infrastructure/metadata"
	clientprovider "nft_staker/internal/infrastructure/network/client"
	"nft_staker/internal/infrastructure/network/contract"
	networkdefinition "nft_staker/internal/infrastructure/network/definition"
	"nft_staker/internal/infrastructure/storage/memory"
	"nft_staker/internal/infrastructure/storage/migrations"
	"nft_staker/internal/infrastructure/storage/postgres"
	"nft_staker/internal/infrastructure/walletloader"
	"nft_staker/internal/pkg/logger"

	"go.uber.org/zap"
)

// App holds the wired services.
type App struct {
	Config    *configloader.Config
	Network   entity.NetworkDefinition
	Addresses entity.ContractAddresses
	Session   port.WalletSession
	Mint      *service.MintServiceImpl
	Stake     *service.StakeServiceImpl
	Activity  *service.ActivityServiceImpl

	closers []func()
}

// New connects to the configured network and builds every service. The caller must Close the App.
func New(ctx context.Context, cfg *configloader.Config, zapLogger *zap.Logger) (*App, error) {
	appLogger := logger.NewSlogAdapter()
	app := &App{Config: cfg}

	netDefProvider := networkdefinition.NewNetworkDefinitionProvider(appLogger)
	netDef, err := netDefProvider.Resolve(cfg.Network.Identifier, cfg.Network.RPCURL)
	if err != nil {
		return nil, err
	}
	app.Network = netDef

	addresses, err := addressbook.NewLoader(cfg.Contracts, appLogger.Info, appLogger.Warn).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load contract addresses: %w", err)
	}
	app.Addresses = addresses

	clients := clientprovider.NewEVMClientProvider(cfg, appLogger.Info, appLogger.Error)
	client, err := clients.GetClient(netDef)
	if err != nil {
		return nil, err
	}
	if c, ok := client.(interface{ Close() }); ok {
		app.closers = append(app.closers, c.Close)
	}

	backends := contract.BackendsFromClient(client, time.Duration(cfg.Performance.TxWaitTimeoutSeconds)*time.Second)
	drop, err := contract.NewNFTDrop(addresses.NFTDrop, backends)
	if err != nil {
		app.Close()
		return nil, err
	}
	staking, err := contract.NewNFTStaking(addresses.NFTStaking, backends)
	if err != nil {
		app.Close()
		return nil, err
	}
	token, err := contract.NewRewardToken(addresses.RewardToken, backends)
	if err != nil {
		app.Close()
		return nil, err
	}

	store, err := app.openStore(ctx, cfg.Storage)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Session = provider.NewWalletSession(walletloader.NewKeyLoader(cfg.Wallet, appLogger.Info), appLogger)
	app.Activity = service.NewActivityService(store, appLogger)
	app.Mint = service.NewMintService(app.Session, drop, app.Activity, netDef, appLogger)
	app.Stake = service.NewStakeService(
		app.Session,
		service.StakeContracts{Drop: drop, Staking: staking, Token: token, Scanner: client},
		metadata.NewIPFSClient(cfg.Metadata, zapLogger),
		app.Activity,
		netDef,
		appLogger,
		service.StakeOptions{
			MaxConcurrentRoutines: cfg.Performance.MaxConcurrentRoutines,
			OwnerScanBatchSize:    cfg.Performance.OwnerScanBatchSize,
			MaxOwnerScan:          cfg.Performance.MaxOwnerScan,
		},
	)

	if cfg.Wallet.AutoConnect {
		if _, err := app.Session.Connect(ctx); err != nil {
			appLogger.Warn("Wallet auto-connect failed, starting disconnected", "error", err)
		}
	}

	appLogger.Info("Application initialized",
		"network", netDef.Identifier,
		"chain_id", netDef.ChainID,
		"nft_drop", addresses.NFTDrop,
		"nft_staking", addresses.NFTStaking,
		"reward_token", addresses.RewardToken,
		"storage", cfg.Storage.Driver,
	)
	return app, nil
}

func (a *App) openStore(ctx context.Context, cfg configloader.StorageConfig) (port.ActivityStore, error) {
	switch strings.ToLower(cfg.Driver) {
	case configloader.StorageDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, pool.Close)
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			return nil, err
		}
		return postgres.NewActivityStore(pool), nil
	default:
		return memory.NewActivityStore(), nil
	}
}

// GetConfig implements port.ConfigProvider.
func (a *App) GetConfig() *configloader.Config {
	return a.Config
}

// Close releases network and database connections.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

var _ port.ConfigProvider = (*App)(nil)
