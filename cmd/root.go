package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"treasury/domain/config"
	"treasury/infrastructure/logger"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "treasury",
	Short: "Bonding-curve treasury exchange",
	Long: `Runs per-token treasuries that sell a fixed supply along a constant-product curve,
collect trade fees into a majority pool and gate unlocking of locked tokens on that pool.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer logger.Sync()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")
}

func initConfig() {
	config.ReadConfig(cfgFile)
	logger.Init(config.GetLogLevel())
}
