package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/msto63/taxwise/internal/report"
	"github.com/msto63/taxwise/pkg/core/apperror"
	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <monthly-income>",
	Short: "Write a PDF tax summary",
	Long: `Calculates the tax for a monthly income and writes a one-page PDF
summary. Without --out the file is written to the configured export
directory.

Examples:
  taxwise export 1500000
  taxwise export 250000 --out summary.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file")
}

func runExport(cmd *cobra.Command, args []string) error {
	svc, err := newCalculator()
	if err != nil {
		return err
	}

	rep, err := svc.Calculate(cmd.Context(), args[0])
	if err != nil {
		printError("calculation failed", err)
		return err
	}

	path := exportOut
	if path == "" {
		path = filepath.Join(appConfig.Export.OutputDir, report.Filename(rep))
	}
	if err := writePDFFile(path, rep); err != nil {
		printError("export failed", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", path)
	return nil
}

func writePDFFile(path string, rep *report.Report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperror.Wrap(err, apperror.CodeExportFailed, "failed to create export directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeExportFailed, "failed to create export file")
	}
	if err := report.WritePDF(f, rep); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return apperror.Wrap(err, apperror.CodeExportFailed, "failed to write export file")
	}
	return nil
}
