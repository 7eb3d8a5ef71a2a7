package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arxivtools/paperbot/pkg/config"
)

// keywordsShowCmd represents the keywords show command
var keywordsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the configured search keywords",
	Long: `Show the configured search keywords, one per line.

Example:
  paperbotctl keywords show`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		if len(cfg.Keywords) == 0 {
			fmt.Println("No keywords configured")
			return
		}
		for _, kw := range cfg.Keywords {
			fmt.Println(kw)
		}
	},
}

func init() {
	keywordsCmd.AddCommand(keywordsShowCmd)
}
