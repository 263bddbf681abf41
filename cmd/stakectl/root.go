package main

import (
	"context"
	"io"
	"log/slog"

	"nft_staker/internal/app/bootstrap"
	"nft_staker/internal/infrastructure/configloader"
	"nft_staker/internal/pkg/logger"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

const defaultConfigPath = "config/config.yml"

// cliEnv is shared by every subcommand. The application graph is built lazily so that
// --help and flag errors never dial the network.
type cliEnv struct {
	configPath string
	logLevel   string

	zapLogger *zap.Logger
	app       *bootstrap.App
	newApp    func(ctx context.Context, cfg *configloader.Config, zapLogger *zap.Logger) (*bootstrap.App, error)
}

func createRootCmd() (*cobra.Command, error) {
	return newRootCmd(&cliEnv{newApp: bootstrap.New})
}

func newRootCmd(env *cliEnv) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:           "stakectl",
		Short:         "Mint drop NFTs, stake them and claim rewards from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&env.configPath, "config", defaultConfigPath, "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&env.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides logging.level")

	builders := []func(*cliEnv) (*cobra.Command, error){
		createWalletCmd,
		createMintCmd,
		createStakeCmd,
		createWithdrawCmd,
		createClaimRewardsCmd,
		createActivityCmd,
	}
	for _, build := range builders {
		cmd, err := build(env)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(cmd)
	}
	return rootCmd, nil
}

// load builds the application once and connects the configured wallet.
func (e *cliEnv) load(ctx context.Context) (*bootstrap.App, error) {
	if e.app != nil {
		return e.app, nil
	}

	cfg, err := configloader.Load(e.configPath)
	if err != nil {
		return nil, err
	}
	if e.logLevel != "" {
		cfg.Logging.Level = e.logLevel
	}

	zapLogger, err := logger.NewZapLogger(cfg.Logging.Level, true)
	if err != nil {
		return nil, errors.Wrap(err, "unable to init logger")
	}
	e.zapLogger = zapLogger
	logger.SetDefault(slog.New(zapslog.NewHandler(zapLogger.Core(), zapslog.WithName("stakectl"))))

	app, err := e.newApp(ctx, cfg, zapLogger)
	if err != nil {
		return nil, errors.Wrap(err, "unable to init application")
	}
	e.app = app

	if _, err := app.Session.Connect(ctx); err != nil {
		return nil, errors.Wrap(err, "unable to connect wallet")
	}
	return app, nil
}

// run loads the application, executes fn and releases connections whatever the outcome.
func (e *cliEnv) run(cmd *cobra.Command, fn func(ctx context.Context, app *bootstrap.App) error) error {
	defer e.close()
	app, err := e.load(cmd.Context())
	if err != nil {
		return err
	}
	return fn(cmd.Context(), app)
}

func (e *cliEnv) close() {
	if e.app != nil {
		e.app.Close()
		e.app = nil
	}
	if e.zapLogger != nil {
		_ = e.zapLogger.Sync()
	}
}

func printJSON(w io.Writer, v any) error {
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(out, '\n'))
	return err
}
