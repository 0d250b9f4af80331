package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wallaceicy06/fwfcsv"
)

func newConvertCmd() *cobra.Command {
	var (
		specFile string
		fwfFile  string
		csvFile  string
		strict   bool
		atomic   bool
	)
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a fixed-width file to a CSV file",
		Long: `Convert a fixed-width data file to a delimited file. Both layouts are read
from the same spec file.

Example:
  fwfcsv convert --spec spec.json --fwf-file data.fwf --csv-file out/data.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := fwfcsv.LoadPayload(specFile)
			if err != nil {
				return fmt.Errorf("failed to load spec: %w", err)
			}
			fwf, err := payload.FixedWidthSpec()
			if err != nil {
				return fmt.Errorf("failed to load fixed-width spec: %w", err)
			}
			csv, err := payload.DelimitedSpec()
			if err != nil {
				return fmt.Errorf("failed to load delimited spec: %w", err)
			}

			policy := fwfcsv.Lenient
			if strict {
				policy = fwfcsv.Strict
			}
			var opts []fwfcsv.WriteOption
			if atomic {
				opts = append(opts, fwfcsv.Atomic())
			}
			if err := fwfcsv.ConvertFile(fwf, csv, fwfFile, csvFile, policy, opts...); err != nil {
				return fmt.Errorf("failed to generate CSV file: %w", err)
			}
			logger.Printf("converted %s to %s", fwfFile, csvFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&specFile, "spec", "", "Fixed width and CSV spec file path (JSON or YAML)")
	cmd.Flags().StringVar(&fwfFile, "fwf-file", "", "Fixed width data file path")
	cmd.Flags().StringVar(&csvFile, "csv-file", "", "Generated CSV file path")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on lines shorter than the spec width")
	cmd.Flags().BoolVar(&atomic, "atomic", false, "Write to a temporary file and rename it into place")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("fwf-file")
	_ = cmd.MarkFlagRequired("csv-file")
	return cmd
}
