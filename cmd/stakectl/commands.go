package main

import (
	"context"
	"fmt"

	"nft_staker/internal/app/bootstrap"
	"nft_staker/internal/domain/entity"
	"nft_staker/internal/pkg/utils"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func createWalletCmd(env *cliEnv) (*cobra.Command, error) {
	command := cobra.Command{
		Use:   "wallet",
		Short: "Connect the configured wallet and show its address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.run(cmd, func(_ context.Context, app *bootstrap.App) error {
				return printJSON(cmd.OutOrStdout(), app.Session.State())
			})
		},
	}
	return &command, nil
}

func createMintCmd(env *cliEnv) (*cobra.Command, error) {
	var quantity int64
	command := cobra.Command{
		Use:   "mint",
		Short: "Claim drop tokens to the connected wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if quantity < 1 {
				return entity.ErrInvalidQuantity
			}
			return env.run(cmd, func(ctx context.Context, app *bootstrap.App) error {
				res, err := app.Mint.Claim(ctx, quantity)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), res)
			})
		},
	}
	command.Flags().Int64VarP(&quantity, "quantity", "q", 1, "Number of tokens to claim")
	return &command, nil
}

func createStakeCmd(env *cliEnv) (*cobra.Command, error) {
	command := cobra.Command{
		Use:   "stake",
		Short: "Show staking state or stake a token",
	}

	statusCmd := cobra.Command{
		Use:   "status",
		Short: "Show staked and unstaked tokens, balance and claimable rewards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.run(cmd, func(ctx context.Context, app *bootstrap.App) error {
				view, err := app.Stake.View(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), view)
			})
		},
	}

	tokenCmd := cobra.Command{
		Use:   "token <id>",
		Short: "Approve the staking contract if needed and stake a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenID, ok := utils.ParseTokenID(args[0])
			if !ok {
				return errors.Wrapf(entity.ErrInvalidTokenID, "%q", args[0])
			}
			return env.run(cmd, func(ctx context.Context, app *bootstrap.App) error {
				txs, err := app.Stake.Stake(ctx, tokenID)
				if len(txs) > 0 {
					if perr := printJSON(cmd.OutOrStdout(), txs); perr != nil {
						return perr
					}
				}
				return err
			})
		},
	}

	command.AddCommand(&statusCmd, &tokenCmd)
	return &command, nil
}

func createWithdrawCmd(env *cliEnv) (*cobra.Command, error) {
	command := cobra.Command{
		Use:   "withdraw <id>",
		Short: "Withdraw a staked token back to the wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenID, ok := utils.ParseTokenID(args[0])
			if !ok {
				return errors.Wrapf(entity.ErrInvalidTokenID, "%q", args[0])
			}
			return env.run(cmd, func(ctx context.Context, app *bootstrap.App) error {
				tx, err := app.Stake.Withdraw(ctx, tokenID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), tx)
			})
		},
	}
	return &command, nil
}

func createClaimRewardsCmd(env *cliEnv) (*cobra.Command, error) {
	command := cobra.Command{
		Use:   "claim-rewards",
		Short: "Claim all rewards accrued by staked tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.run(cmd, func(ctx context.Context, app *bootstrap.App) error {
				tx, err := app.Stake.ClaimRewards(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), tx)
			})
		},
	}
	return &command, nil
}

func createActivityCmd(env *cliEnv) (*cobra.Command, error) {
	var limit int
	command := cobra.Command{
		Use:   "activity",
		Short: "List recent write operations of the connected wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("invalid limit %d", limit)
			}
			return env.run(cmd, func(ctx context.Context, app *bootstrap.App) error {
				records, err := app.Activity.List(ctx, app.Session.State().Address, limit)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), records)
			})
		},
	}
	command.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of entries to show")
	return &command, nil
}
