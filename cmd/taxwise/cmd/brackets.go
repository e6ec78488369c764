package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/msto63/taxwise/internal/money"
	"github.com/msto63/taxwise/internal/tax"
	"github.com/msto63/taxwise/pkg/core/config"
	"github.com/spf13/cobra"
)

var bracketsFile string

var bracketsCmd = &cobra.Command{
	Use:   "brackets",
	Short: "Show or validate a bracket table",
	Long: `Shows the active bracket table. With --file the given TOML or YAML
table is loaded and validated instead.

Examples:
  taxwise brackets
  taxwise brackets --file configs/tables/ng-2026.yaml`,
	Args: cobra.NoArgs,
	RunE: runBrackets,
}

func init() {
	rootCmd.AddCommand(bracketsCmd)
	bracketsCmd.Flags().StringVar(&bracketsFile, "file", "", "table file to validate")
}

func runBrackets(cmd *cobra.Command, args []string) error {
	var (
		table tax.Table
		err   error
	)
	if bracketsFile != "" {
		table, err = config.LoadTable(bracketsFile)
	} else {
		table, err = appConfig.ResolveTable()
	}
	if err != nil {
		printError("invalid bracket table", err)
		return err
	}

	cur, ok := money.Lookup(appConfig.Tax.Currency)
	if !ok {
		cur = money.NGN
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Table %s (%d brackets, valid)\n\n", table.Name, len(table.Brackets))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Bracket\tUp to (annual)\tRate\t")
	for _, b := range table.Brackets {
		limit := "no limit"
		if !b.Unbounded {
			limit = cur.Format(b.Limit)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t\n", b.Label, limit, money.FormatRate(b.Rate))
	}
	return w.Flush()
}
