package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arxivtools/paperbot/pkg/config"
)

// configurationShowCmd represents the configuration show command
var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show configuration attributes and their sources",
	Long: `Show configuration attributes and their sources.

Each attribute is listed with its value and the source that won:
a built-in default, the config file, or a PAPERBOT_* environment
override. A running server re-reads the file when it changes, so
this output normally matches what the server is using.

Config file location: /etc/paperbot/paperbot.yml (or PAPERBOT_CONFIG_PATH)

Example:
  paperbotctl configuration show
  paperbotctl configuration show --output json`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		if err := showConfiguration(output); err != nil {
			fmt.Fprintln(os.Stderr, "Cannot show configuration:", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationShowCmd.Flags().StringP("output", "o", "text", "output format, text or json")
}

func showConfiguration(output string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	switch output {
	case "json":
		out, err := cfg.FormatJSON()
		if err != nil {
			return err
		}
		fmt.Println(out)
	case "text":
		fmt.Print(cfg.FormatText())
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", output)
	}
	return nil
}
