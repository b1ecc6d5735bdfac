package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var verbose bool
var noColor bool
var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "moneymap",
	Short: "Deterministic personal-finance dataset generator",
	Long: `A deterministic synthetic financial transaction generator.

From a single seed phrase this tool derives a stable lifestyle profile
(banks, subscriptions, loans, spending habits) and generates months of
realistic checking-account history from it. The same seed always yields
byte-for-byte identical output, and an existing dataset can be extended
forward without disturbing earlier records.

Every run plants a handful of billing anomalies (duplicate charges,
overcharges, off-schedule charges) and then flags them with a built-in
pattern detector, so the data always contains something to find.

Example usage:
  moneymap generate --seed "jane doe 2024" --start 2024-01 --months 12
  moneymap generate --seed "jane doe 2024" --extend transactions.json --months 6
  moneymap detect transactions.csv
  moneymap import transactions.csv --db "user:pass@tcp(host:3306)/finance"`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colors and animations")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./moneymap.yaml)")

	// Silence usage on error - we'll print our own messages
	rootCmd.SilenceUsage = true

	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// initConfig reads in a config file and environment variables if set.
// Flags override config values, which override MONEYMAP_* env vars.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("moneymap")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("moneymap")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config file is fine; an explicit one is not.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "failed to read config %s: %v\n", cfgFile, err)
			os.Exit(1)
		}
	}
}

// Verbose returns whether verbose mode is enabled
func Verbose() bool {
	return verbose
}
