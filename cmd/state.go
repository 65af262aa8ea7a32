package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"treasury/domain/exchange"
	"treasury/domain/util"
)

// stateCmd represents the state command
var stateCmd = &cobra.Command{
	Use:   "state SYMBOL",
	Short: "Prints the state of a treasury",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		defaultDependencyInject()
		defer dbPool.Close()

		s, err := treasuryInteractor.Snapshot(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("------------- %v TREASURY (version %v) -----------------\n", s.Symbol, s.Version)
		fmt.Printf("treasury account     : %v (platform %v)\n", s.Treasury, s.Platform)
		fmt.Printf("tokens in treasury   : %v\n", util.TokenString(s.TokenBalance, s.Symbol))
		fmt.Printf("currency balance     : %v\n", util.SatsString(s.CurrencyBalance))
		fmt.Printf("virtual currency     : %v\n", util.SatsString(s.VirtualCurrency))
		fmt.Printf("spot price           : %v sats per token\n", s.Price)
		fmt.Printf("fee pool             : %v\n", util.SatsString(s.FeePool))
		fmt.Printf("swap fees sent       : %v\n", util.SatsString(s.TotalSwapFeesSent))
		fmt.Printf("total locked         : %v\n", util.TokenString(s.TotalLocked, s.Symbol))
		fmt.Printf("majority holder      : %v\n", s.MajorityHolder)
		fmt.Printf("last withdraw        : %v\n", util.SatsString(s.LastWithdrawAmount))
		fmt.Printf("unlock threshold     : %v (unlock allowed: %v)\n", util.SatsString(s.Threshold), s.CanUnlock)
		return nil
	},
}

var quoteSell bool

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote SYMBOL AMOUNT",
	Short: "Prices a buy (sats in) or, with --sell, a sell (tokens in)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := exchange.ParseAmount(args[1])
		if err != nil {
			return err
		}

		defaultDependencyInject()
		defer dbPool.Close()

		if quoteSell {
			q, err := treasuryInteractor.QuoteSell(args[0], amount)
			if err != nil {
				return err
			}
			fmt.Printf("sell %v: receive %v, fee %v\n",
				util.TokenString(amount, args[0]), util.SatsString(q.CurrencyOut), util.SatsString(q.Fee.Gross))
			return nil
		}

		q, err := treasuryInteractor.QuoteBuy(args[0], amount)
		if err != nil {
			return err
		}
		fmt.Printf("buy with %v: receive %v, fee %v\n",
			util.SatsString(amount), util.TokenString(q.TokensOut, args[0]), util.SatsString(q.Fee.Gross))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().BoolVar(&quoteSell, "sell", false, "quote a sell instead of a buy")
}
