package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/arxivtools/paperbot/pkg/arxiv"
	"github.com/arxivtools/paperbot/pkg/bot"
	"github.com/arxivtools/paperbot/pkg/config"
	"github.com/arxivtools/paperbot/pkg/db"
	"github.com/arxivtools/paperbot/pkg/server"
	"github.com/arxivtools/paperbot/pkg/server/endpoints"
	gormstore "github.com/arxivtools/paperbot/pkg/server/store/gorm"
)

// NOTES
// Minimal boot path for local development. The paperbotctl CLI under
// cmd/paperbotctl is the full entrypoint with migrations, flags and
// graceful shutdown. Run "paperbotctl db migrate" before first use.

func listenHost() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "127.0.0.1"
}

func listenPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func main() {
	_ = godotenv.Load()

	database, err := db.Connect("")
	if err != nil {
		log.Fatal("Unable to connect to DB: ", err)
	}

	b := bot.New(
		gormstore.NewPapersStore(database),
		gormstore.NewRunsStore(database),
		arxiv.NewClient(),
	)

	ctx := context.Background()
	go func() { _ = b.Run(ctx) }()
	go func() { _ = bot.WatchConfig(ctx, config.Get().ConfigFilePath()) }()

	s := server.NewServer(database, b, listenHost(), listenPort())
	endpoints.RegisterAll(s)

	log.Println("Running server...")
	log.Fatal(s.Start())
}
