package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arxivtools/paperbot/pkg/activity"
	"github.com/arxivtools/paperbot/pkg/config"
)

// keywordsSetCmd represents the keywords set command
var keywordsSetCmd = &cobra.Command{
	Use:   "set <keywords>",
	Short: "Replace the search keywords",
	Long: `Replace the search keywords and persist them to the config file.

Keywords are comma-separated. A running server picks the change up through
its config file watcher.

Example:
  paperbotctl keywords set "large language models, agents"
  paperbotctl keywords set transformers`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := setKeywords(args); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to set keywords: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	keywordsCmd.AddCommand(keywordsSetCmd)
}

func setKeywords(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	old := append([]string(nil), cfg.Keywords...)

	// Accept both quoted comma-separated lists and bare multiple args
	var keywords []string
	for _, arg := range args {
		keywords = append(keywords, strings.Split(arg, ",")...)
	}

	if err := cfg.SetKeywords(keywords); err != nil {
		return err
	}

	activity.Log(activity.KeywordsEvent{
		Old:    old,
		New:    cfg.Keywords,
		Source: "cli",
	})

	fmt.Printf("Keywords saved to %s\n", cfg.ConfigFilePath())
	for _, kw := range cfg.Keywords {
		fmt.Println("  " + kw)
	}

	if os.Getenv("PAPERBOT_KEYWORDS") != "" {
		fmt.Println("Warning: PAPERBOT_KEYWORDS is set and overrides the config file")
	}
	return nil
}
