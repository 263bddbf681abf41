package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"nft_staker/internal/app/bootstrap"
	"nft_staker/internal/domain/entity"
	"nft_staker/internal/infrastructure/configloader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootCmd, err := createRootCmd()
	require.NoError(t, err)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), err
}

func TestCommandTree(t *testing.T) {
	rootCmd, err := createRootCmd()
	require.NoError(t, err)

	for _, path := range [][]string{
		{"wallet"},
		{"mint"},
		{"stake", "status"},
		{"stake", "token"},
		{"withdraw"},
		{"claim-rewards"},
		{"activity"},
	} {
		cmd, _, err := rootCmd.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("config"))
	assert.NotNil(t, rootCmd.PersistentFlags().Lookup("log-level"))
}

func TestValidationHappensBeforeLoading(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yml")

	_, err := execute(t, "--config", missing, "mint", "--quantity", "0")
	assert.ErrorIs(t, err, entity.ErrInvalidQuantity)

	_, err = execute(t, "--config", missing, "stake", "token", "abc")
	assert.ErrorIs(t, err, entity.ErrInvalidTokenID)

	_, err = execute(t, "--config", missing, "withdraw", "--", "-1")
	assert.ErrorIs(t, err, entity.ErrInvalidTokenID)

	_, err = execute(t, "--config", missing, "activity", "--limit", "-5")
	assert.Error(t, err)
}

func TestMissingConfigIsReported(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.yml")

	_, err := execute(t, "--config", missing, "wallet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yml")
}

func TestArgumentCount(t *testing.T) {
	_, err := execute(t, "withdraw")
	assert.Error(t, err)

	_, err = execute(t, "claim-rewards", "extra")
	assert.Error(t, err)
}

func TestPrintJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printJSON(&out, entity.WalletState{Connected: true, Address: "0xabc"}))
	assert.JSONEq(t, `{"connected":true,"address":"0xabc"}`, out.String())
}

func TestLogLevel(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(`
logging:
  level: debug
contracts:
  addressesFile: config.json
`), 0o600))

	errStop := errors.New("stop before dialing")
	levelSeen := func(args ...string) string {
		var level string
		env := &cliEnv{newApp: func(_ context.Context, cfg *configloader.Config, _ *zap.Logger) (*bootstrap.App, error) {
			level = cfg.Logging.Level
			return nil, errStop
		}}
		rootCmd, err := newRootCmd(env)
		require.NoError(t, err)
		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetArgs(append([]string{"--config", configPath}, args...))
		assert.ErrorIs(t, rootCmd.Execute(), errStop)
		return level
	}

	assert.Equal(t, "debug", levelSeen("wallet"), "config level applies without the flag")
	assert.Equal(t, "error", levelSeen("--log-level", "error", "wallet"))
}
