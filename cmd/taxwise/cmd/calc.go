package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
	"github.com/msto63/taxwise/internal/calculator"
	"github.com/msto63/taxwise/internal/chart"
	"github.com/msto63/taxwise/internal/report"
	"github.com/spf13/cobra"
)

var (
	calcFormat  string
	calcPeriods int
)

var calcCmd = &cobra.Command{
	Use:   "calc <monthly-income>",
	Short: "Calculate tax for a monthly income",
	Long: `Calculates the 2026 income tax for a monthly income.

The income may be grouped and may carry a naira sign.

Examples:
  taxwise calc 1500000
  taxwise calc "₦1,500,000" --format markdown
  taxwise calc 250000 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)
	calcCmd.Flags().StringVarP(&calcFormat, "format", "f", "text", "output format: text, markdown or json")
	calcCmd.Flags().IntVar(&calcPeriods, "periods", 0, "income periods per year (default from config)")
}

func runCalc(cmd *cobra.Command, args []string) error {
	if calcPeriods > 0 {
		appConfig.Tax.PeriodsPerYear = calcPeriods
	}

	svc, err := newCalculator()
	if err != nil {
		return err
	}

	rep, err := svc.Calculate(cmd.Context(), args[0])
	if err != nil {
		printError("calculation failed", err)
		return err
	}

	out := cmd.OutOrStdout()
	switch calcFormat {
	case "json":
		return report.WriteJSON(out, rep)
	case "markdown", "md":
		return writeMarkdown(out, rep)
	case "text":
		writeText(out, rep)
		return nil
	default:
		return fmt.Errorf("unknown format %q", calcFormat)
	}
}

func writeMarkdown(out io.Writer, rep *report.Report) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return err
	}
	rendered, err := renderer.Render(report.Markdown(rep))
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, rendered)
	return err
}

func writeText(out io.Writer, rep *report.Report) {
	fmt.Fprintln(out, "Your Tax Summary")
	fmt.Fprintln(out, "================")
	for _, s := range rep.Stats() {
		fmt.Fprintf(out, "  %-18s %s\n", s.Label+":", s.Value)
	}
	fmt.Fprintf(out, "  %-18s %s\n", "Effective Rate:", rep.EffectiveRate())
	fmt.Fprintln(out)
	fmt.Fprintln(out, rep.Insight)

	if len(rep.Chart) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Tax Distribution by Bracket")
		fmt.Fprintln(out, chart.RenderBars(rep.Chart, 30, rep.Money(), false))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "How It's Calculated")
	for _, line := range calculator.NewResponse(rep).Formatted.Breakdown {
		fmt.Fprintf(out, "  %s\n", line)
	}
	fmt.Fprintf(out, "  Total: %s\n", rep.Money().Format(rep.Result.TotalTax))
}
