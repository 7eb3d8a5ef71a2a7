package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/arxivtools/paperbot/pkg/bot"
	"github.com/arxivtools/paperbot/pkg/server/middleware"
	"github.com/arxivtools/paperbot/pkg/server/store"
	gormstore "github.com/arxivtools/paperbot/pkg/server/store/gorm"
)

type Server struct {
	Router      *mux.Router
	DB          *gorm.DB
	PapersStore store.PapersStore
	RunsStore   store.RunsStore
	HealthStore store.HealthStore
	Bot         *bot.Bot
	TokenAuth   *middleware.TokenAuthenticator
	srv         *http.Server
}

func NewServer(
	db *gorm.DB,
	b *bot.Bot,
	host string,
	port string,
) *Server {

	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	return &Server{
		Router:      router,
		DB:          db,
		PapersStore: gormstore.NewPapersStore(db),
		RunsStore:   gormstore.NewRunsStore(db),
		HealthStore: gormstore.NewHealthStore(db),
		Bot:         b,
		TokenAuth:   middleware.NewTokenAuthenticator(os.Getenv("PAPERBOT_API_SECRET")),
		srv:         srv,
	}
}

func (s Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown stops the server gracefully, waiting for in-flight requests.
func (s Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// Addr returns the address the server listens on.
func (s Server) Addr() string {
	return s.srv.Addr
}
