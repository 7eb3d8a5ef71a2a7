package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arxivtools/paperbot/pkg/airtable"
	"github.com/arxivtools/paperbot/pkg/arxiv"
	"github.com/arxivtools/paperbot/pkg/bot"
	"github.com/arxivtools/paperbot/pkg/config"
	"github.com/arxivtools/paperbot/pkg/db"
	"github.com/arxivtools/paperbot/pkg/server"
	"github.com/arxivtools/paperbot/pkg/server/endpoints"
	gormstore "github.com/arxivtools/paperbot/pkg/server/store/gorm"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the paper bot web server",
	Long: `Run the paper bot web server.

The server serves the dashboard and JSON API, and fetches new papers from
arXiv in the background on the configured poll interval. Use --no-poll to
serve without background fetching.

DATABASE_URL must point at the bot's PostgreSQL database. Migrations run
on boot unless --no-migrate is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Fail fast when the database location is missing
		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Applying database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Could not apply migrations: %v\n", err)
				os.Exit(1)
			}
		}

		cfg := config.Get()
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Bad configuration: %v\n", err)
			os.Exit(1)
		}

		database, err := db.Connect("")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to the database: %v\n", err)
			os.Exit(1)
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
				log.Printf("Airtable mirroring disabled: %v", err)
			}
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		noPoll, _ := cmd.Flags().GetBool("no-poll")
		if !noPoll {
			go func() { _ = b.Run(ctx) }()
		}
		go func() { _ = bot.WatchConfig(ctx, cfg.ConfigFilePath()) }()

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(database, b, host, port)

		endpoints.RegisterAll(s)

		go func() {
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			<-sigChan
			log.Println("Shutting down...")
			cancel()
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			_ = s.Shutdown(shutdownCtx)
		}()

		log.Printf("paperbot listening at http://%s:%s", host, port)
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// Here you will define your flags and configuration settings.

	// Cobra supports Persistent Flags which will work for this command
	// and all subcommands, e.g.:
	// serverCmd.PersistentFlags().String("foo", "", "A help for foo")

	// Cobra supports local flags which will only run when this command
	// is called directly, e.g.:
	serverCmd.Flags().StringP("port", "p", defaultPort(), "port to listen on")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "address to bind")
	serverCmd.Flags().Bool("no-migrate", false, "skip the schema migration on boot")
	serverCmd.Flags().Bool("no-poll", false, "serve without fetching papers in the background")
}
