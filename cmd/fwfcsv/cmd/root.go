package cmd

import (
	"log"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
)

var logger = log.New(os.Stderr, "fwfcsv: ", log.LstdFlags)

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "fwfcsv",
		Short: "Generate and convert fixed-width files",
		Long: `fwfcsv generates fixed-width data files that follow a layout spec and
converts fixed-width files to delimited (CSV) files.

The spec is a JSON or YAML object with ColumnNames, Offsets (column
lengths), FixedWidthEncoding, IncludeHeader and DelimitedEncoding.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCmd(), newConvertCmd(), newSpecCmd())
	return root
}

// Execute runs the root command and returns the process exit status.
// This is called by main.main().
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		logger.Printf("error: %v", err)
		return 1
	}
	return 0
}

// seededRand returns a source seeded with seed, or nil when seed is 0 so
// the library picks a time-seeded source.
func seededRand(seed int64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewSource(seed))
}
