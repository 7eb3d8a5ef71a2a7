package endpoints

import (
	"github.com/gorilla/mux"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arxivtools/paperbot/pkg/bot"
	"github.com/arxivtools/paperbot/pkg/server"
	"github.com/arxivtools/paperbot/pkg/server/middleware"
	"github.com/arxivtools/paperbot/pkg/server/store"
	gormstore "github.com/arxivtools/paperbot/pkg/server/store/gorm"
)

// NewTestServer creates a server instance for testing.
// It requires a running PostgreSQL database.
func NewTestServer(dbURL string) (*server.Server, error) {
	db, err := gorm.Open(
		postgres.New(postgres.Config{
			DSN:                  dbURL,
			PreferSimpleProtocol: true,
		}),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		return nil, err
	}

	b := bot.New(gormstore.NewPapersStore(db), gormstore.NewRunsStore(db), nil)
	return server.NewServer(db, b, "127.0.0.1", "0"), nil
}

// NewMockTestServer wires a server around the given stores with no
// database behind it. The token authenticator starts out disabled;
// tests exercising protected routes swap it before registering
// endpoints.
func NewMockTestServer(papers store.PapersStore, runs store.RunsStore, health store.HealthStore) *server.Server {
	return &server.Server{
		Router:      mux.NewRouter().UseEncodedPath(),
		PapersStore: papers,
		RunsStore:   runs,
		HealthStore: health,
		Bot:         bot.New(papers, runs, nil),
		TokenAuth:   middleware.NewTokenAuthenticator(""),
	}
}
