package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"disastermap/internal/dataset"
)

var (
	inputFile  string
	outputFile string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "disaster-import",
		Short: "Convert a disaster JSON dataset into a cleaned SQLite file",
		Long: `disaster-import reads a JSON array of historical disaster records,
applies the same cleaning rules the dashboard uses at startup, and writes
the retained records to a SQLite file the dashboard can load directly.`,
		Run: func(cmd *cobra.Command, args []string) {
			if err := runImport(cmd); err != nil {
				cmd.PrintErrln(fmt.Errorf("import failed: %w", err))
				os.Exit(1)
			}
		},
	}

	rootCmd.Flags().StringVarP(&inputFile, "input", "i", "disaster_map.json", "Input JSON dataset path")
	rootCmd.Flags().StringVarP(&outputFile, "output", "o", "disaster_map.db", "Output SQLite file path")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	addStatsCmd(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runImport(cmd *cobra.Command) error {
	if verbose {
		cmd.Println(fmt.Sprintf("Reading %s...", inputFile))
	}

	records, report, err := dataset.ReadJSON(inputFile)
	if err != nil {
		return err
	}

	if verbose {
		cmd.Println(fmt.Sprintf("Cleaned %d records (%d rows dropped)", report.Loaded, report.Dropped))
	}

	if err := dataset.WriteSQLite(outputFile, records); err != nil {
		return err
	}

	cmd.Println(fmt.Sprintf("Wrote %d records to %s", len(records), outputFile))
	return nil
}

// addStatsCmd adds a 'stats' subcommand that summarizes a dataset without
// writing anything.
func addStatsCmd(rootCmd *cobra.Command) {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize a dataset without converting it",
		Run: func(cmd *cobra.Command, args []string) {
			table, report := dataset.Load(inputFile)
			if table.Len() == 0 {
				cmd.Println("No usable records.")
				return
			}

			minYear, maxYear := table.YearRange()
			cmd.Println(fmt.Sprintf("Records: %d (%d rows dropped)", table.Len(), report.Dropped))
			cmd.Println(fmt.Sprintf("Years: %d-%d", minYear, maxYear))

			for _, dt := range table.Types() {
				count := 0
				for _, r := range table.Records() {
					if r.Type == dt {
						count++
					}
				}
				cmd.Println(fmt.Sprintf("  %s: %d", dt, count))
			}
		},
	}
	statsCmd.Flags().StringVarP(&inputFile, "input", "i", "disaster_map.json", "Input dataset path (JSON or SQLite)")

	rootCmd.AddCommand(statsCmd)
}
