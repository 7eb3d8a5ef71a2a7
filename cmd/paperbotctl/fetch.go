package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arxivtools/paperbot/pkg/airtable"
	"github.com/arxivtools/paperbot/pkg/arxiv"
	"github.com/arxivtools/paperbot/pkg/bot"
	"github.com/arxivtools/paperbot/pkg/config"
	"github.com/arxivtools/paperbot/pkg/db"
	gormstore "github.com/arxivtools/paperbot/pkg/server/store/gorm"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch matching papers from arXiv",
	Long: `Fetch papers matching the configured keywords from arXiv and store new
ones in the database.

By default a single fetch pass is run. With --loop the command keeps
fetching on the configured poll interval until interrupted, which is how
the headless bot container runs.

Example:
  paperbotctl fetch
  paperbotctl fetch --loop`,
	Run: func(cmd *cobra.Command, args []string) {
		loop, _ := cmd.Flags().GetBool("loop")

		if err := runFetch(loop); err != nil {
			fmt.Fprintf(os.Stderr, "Fetch failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.Flags().Bool("loop", false, "keep fetching on the configured poll interval")
}

func runFetch(loop bool) error {
	cfg := config.Get()
	if err := cfg.Validate(); err != nil {
		return err
	}

	database, err := db.Connect("")
	if err != nil {
		return err
	}

	b := bot.New(
		gormstore.NewPapersStore(database),
		gormstore.NewRunsStore(database),
		arxiv.NewClient(),
	)
	if cfg.AirtableEnabled {
		if at, err := airtable.NewClientFromEnv(); err == nil {
			b.SetAirtable(at)
		} else {
			fmt.Printf("Airtable mirroring disabled, falling back to CSV: %v\n", err)
			b.SetCSVFallback(cfg.ExportPath)
		}
	} else {
		b.SetCSVFallback(cfg.ExportPath)
	}

	if !loop {
		result, err := b.RunOnce(context.Background(), bot.TriggerCLI)
		if err != nil {
			if errors.Is(err, bot.ErrNoKeywords) {
				return fmt.Errorf("no keywords configured; set them with 'paperbotctl keywords set'")
			}
			return err
		}
		fmt.Printf("Found %d papers: %d new, %d already stored\n", result.Found, result.Saved, result.Skipped)
		return nil
	}

	// Handle signals for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		cancel()
	}()

	go func() { _ = bot.WatchConfig(ctx, cfg.ConfigFilePath()) }()

	if err := b.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
