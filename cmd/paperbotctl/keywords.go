package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// keywordsCmd represents the keywords command
var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Manage the search keywords",
	Long:  `Manage the arXiv search keywords.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'keywords' requires a subcommand (show, set)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(keywordsCmd)
}
