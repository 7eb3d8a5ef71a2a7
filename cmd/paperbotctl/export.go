package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arxivtools/paperbot/pkg/activity"
	"github.com/arxivtools/paperbot/pkg/config"
	"github.com/arxivtools/paperbot/pkg/db"
	"github.com/arxivtools/paperbot/pkg/export"
	gormstore "github.com/arxivtools/paperbot/pkg/server/store/gorm"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the stored papers to CSV",
	Long: `Export the stored papers to a CSV file.

The output path defaults to the configured export_path. The file is
overwritten on each export.

Example:
  paperbotctl export
  paperbotctl export --out papers.csv`,
	Run: func(cmd *cobra.Command, args []string) {
		out, _ := cmd.Flags().GetString("out")

		if err := runCSVExport(out); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("out", "o", "", "Output file (default: configured export_path)")
}

func runCSVExport(out string) error {
	if out == "" {
		out = config.Get().ExportPath
	}

	database, err := db.Connect("")
	if err != nil {
		return err
	}

	papers, err := gormstore.NewPapersStore(database).ListPapers("", 0, 0)
	if err != nil {
		return fmt.Errorf("failed to list papers: %w", err)
	}

	count, err := export.Write(out, papers)
	if err != nil {
		activity.Log(activity.ExportEvent{Path: out, Success: false, ErrorMessage: err.Error()})
		return err
	}

	activity.Log(activity.ExportEvent{Path: out, Count: count, Success: true})
	fmt.Printf("Exported %d papers to %s\n", count, out)
	return nil
}
