package cmd

import (
	"fmt"
	"os"

	"github.com/msto63/taxwise/internal/calculator"
	"github.com/msto63/taxwise/pkg/core/config"
	"github.com/msto63/taxwise/pkg/core/logging"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	tableFile string
	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "taxwise",
	Short: "TaxWise NG - Nigeria 2026 income tax calculator",
	Long: `TaxWise NG computes Nigerian personal income tax under the 2026
progressive bracket table.

Enter a monthly income and get the annual tax, monthly tax, take-home
pay, effective rate, a per-bracket breakdown and a PDF summary.

Surfaces:
  calc      - one-shot calculation on the command line
  brackets  - show or validate a bracket table
  export    - write a PDF summary
  serve     - HTTP (REST + WebSocket) and gRPC API
  tui       - interactive terminal calculator`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $"+config.EnvConfigPath+" or ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&tableFile, "table", "", "bracket table file (TOML or YAML)")
}

// loadConfig resolves the configuration and sets logging defaults. Commands
// log warnings only unless --verbose is given.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		printError("failed to load config", err)
		return err
	}

	if tableFile != "" {
		appConfig.Tax.TableFile = tableFile
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	logging.SetDefaults(level, appConfig.General.LogFormat, os.Stderr)
	return nil
}

func newCalculator() (*calculator.Service, error) {
	svc, err := calculator.NewFromConfig(appConfig, logging.New("calculator"))
	if err != nil {
		printError("failed to load bracket table", err)
		return nil, err
	}
	return svc, nil
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
