package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "paperbotctl",
	Short: "Manage the arXiv paper bot",
	Long: `paperbotctl manages the arXiv paper bot and its web server.

The bot searches the arXiv API for papers matching configured keywords and
stores new results in PostgreSQL. Run "paperbotctl server" to start the web
dashboard with background fetching, or "paperbotctl fetch" for a one-off pass.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadDotEnv)
}

// loadDotEnv loads a .env file when one is present in the working directory.
// Variables already set in the environment win over .env values.
func loadDotEnv() {
	_ = godotenv.Load()
}
