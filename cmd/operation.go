package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"treasury/domain/exchange"
	"treasury/domain/util"
	"treasury/usecase"
)

var caller string

func callerAccount() exchange.AccountID {
	return exchange.AccountID(caller)
}

// launchCmd represents the launch command
var launchCmd = &cobra.Command{
	Use:   "launch SYMBOL NAME",
	Short: "Launches a token and opens its treasury",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		defaultDependencyInject()
		defer dbPool.Close()

		token, err := tokenInteractor.Launch(args[0], args[1], callerAccount())
		if err != nil {
			return err
		}
		fmt.Printf("✅ %v (%v) launched, treasury %v\n", token.Symbol, token.Name, token.Treasury)
		return nil
	},
}

type amountOperation func(symbol string, caller exchange.AccountID, amount exchange.Amount) (*exchange.Receipt, error)

// newAmountCommand builds a command that applies one amount-taking operation to a treasury.
func newAmountCommand(use, short string, operation func() amountOperation) *cobra.Command {
	return &cobra.Command{
		Use:   use + " SYMBOL AMOUNT",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := exchange.ParseAmount(args[1])
			if err != nil {
				return err
			}

			defaultDependencyInject()
			defer dbPool.Close()

			receipt, err := operation()(args[0], callerAccount(), amount)
			if err != nil {
				return err
			}
			printReceipt(usecase.NormalizeSymbol(args[0]), receipt)
			return nil
		},
	}
}

var (
	buyCmd = newAmountCommand("buy", "Buys tokens with sats", func() amountOperation {
		return treasuryInteractor.Buy
	})
	sellCmd = newAmountCommand("sell", "Sells tokens back to the curve", func() amountOperation {
		return treasuryInteractor.Sell
	})
	lockCmd = newAmountCommand("lock", "Locks tokens in the treasury", func() amountOperation {
		return treasuryInteractor.Lock
	})
	unlockCmd = newAmountCommand("unlock", "Unlocks previously locked tokens", func() amountOperation {
		return treasuryInteractor.Unlock
	})
	withdrawCmd = newAmountCommand("withdraw", "Withdraws from the majority fee pool", func() amountOperation {
		return treasuryInteractor.WithdrawFees
	})
)

// claimCmd represents the claim command
var claimCmd = &cobra.Command{
	Use:   "claim SYMBOL",
	Short: "Claims the majority holder title",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defaultDependencyInject()
		defer dbPool.Close()

		receipt, err := treasuryInteractor.ClaimMajority(args[0], callerAccount())
		if err != nil {
			return err
		}
		printReceipt(usecase.NormalizeSymbol(args[0]), receipt)
		return nil
	},
}

func assetString(asset exchange.Asset, amount exchange.Amount, symbol string) string {
	if asset == exchange.AssetToken {
		return util.TokenString(amount, symbol)
	}
	return util.SatsString(amount)
}

func printReceipt(symbol string, receipt *exchange.Receipt) {
	fmt.Printf("✅ %v by %v\n", receipt.Op, receipt.Caller)
	if receipt.Buy != nil {
		fmt.Printf("   fee %v (platform %v, pool %v)\n",
			util.SatsString(receipt.Buy.Fee.Gross), util.SatsString(receipt.Buy.Fee.Swap), util.SatsString(receipt.Buy.Fee.Majority))
	}
	if receipt.Sell != nil {
		fmt.Printf("   fee %v (platform %v, pool %v)\n",
			util.SatsString(receipt.Sell.Fee.Gross), util.SatsString(receipt.Sell.Fee.Swap), util.SatsString(receipt.Sell.Fee.Majority))
	}
	for i, t := range receipt.Transfers {
		fmt.Printf("#%02d %v: %v -> %v\n", i+1, assetString(t.Asset, t.Amount, symbol), t.From, t.To)
	}
}

func init() {
	for _, c := range []*cobra.Command{launchCmd, buyCmd, sellCmd, lockCmd, unlockCmd, withdrawCmd, claimCmd} {
		c.Flags().StringVar(&caller, "caller", "", "account id of the caller")
		c.MarkFlagRequired("caller")
		rootCmd.AddCommand(c)
	}
}
