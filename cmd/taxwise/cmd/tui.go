package cmd

import (
	"github.com/msto63/taxwise/internal/tui/calculator"
	"github.com/msto63/taxwise/pkg/core/logging"
	"github.com/spf13/cobra"
)

var tuiLight bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive calculator",
	Long: `Starts the terminal calculator.

Navigation:
  Enter     - Calculate
  b         - Show/hide the breakdown
  e         - Export the summary as PDF
  Esc       - Calculate again
  t         - Toggle dark/light theme
  q, Ctrl+C - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().BoolVar(&tuiLight, "light", false, "start with the light theme")
}

func runTUI(cmd *cobra.Command, args []string) error {
	svc, err := newCalculator()
	if err != nil {
		return err
	}

	if err := calculator.Run(calculator.Config{
		Calculator: svc,
		ExportDir:  appConfig.Export.OutputDir,
		Light:      tuiLight,
		Logger:     logging.New("tui"),
	}); err != nil {
		printError("TUI failed", err)
		return err
	}
	return nil
}
