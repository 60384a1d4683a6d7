package api

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/saeidalz13/mech-backend/db/sqlc"
	"github.com/saeidalz13/mech-backend/internal/config"
	"github.com/saeidalz13/mech-backend/models/combat"
	mc "github.com/saeidalz13/mech-backend/models/connection"
	"github.com/saeidalz13/mech-backend/models/mech"
)

const (
	defaultPort        = 8000
	restHandlerTimeout = time.Second * 10
)

type Server struct {
	port           int
	stage          string
	db             *sql.DB
	dbm            *sqlc.DbManager
	catalog        *mech.Catalog
	rules          config.Rules
	SessionManager *mc.MechSessionManager
	BoutManager    *combat.MechBoutManager
	router         *chi.Mux
}

type Option func(*Server) error

// NewServer panics on an invalid option; it only runs at startup.
func NewServer(optFuncs ...Option) *Server {
	server := Server{
		port:  defaultPort,
		stage: config.StageDev,
		rules: config.DefaultRules(),
	}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}
	if server.catalog == nil {
		panic("server needs a catalog")
	}

	server.SessionManager = mc.NewMechSessionManager()
	server.BoutManager = combat.NewMechBoutManager(
		combat.WithCosts(server.rules.Costs),
		combat.WithPolicy(combat.NewHeuristicPolicy(server.rules.Weights)),
	)
	server.router = server.routes()
	return &server
}

func WithPort(port int) Option {
	return func(s *Server) error {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port: %d", port)
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != config.StageProd && stage != config.StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

// WithDb enables the hangar and analytics. A nil db leaves them off.
func WithDb(db *sql.DB) Option {
	return func(s *Server) error {
		if db == nil {
			return nil
		}
		s.db = db
		dbm := sqlc.NewDbManager(sqlc.New(db))
		s.dbm = &dbm
		return nil
	}
}

func WithQuerier(q sqlc.Querier) Option {
	return func(s *Server) error {
		dbm := sqlc.NewDbManager(q)
		s.dbm = &dbm
		return nil
	}
}

func WithCatalog(catalog *mech.Catalog) Option {
	return func(s *Server) error {
		s.catalog = catalog
		return nil
	}
}

func WithRules(rules config.Rules) Option {
	return func(s *Server) error {
		s.rules = rules
		return nil
	}
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)

	// the websocket handler is long lived and must stay out of the timeout
	r.Method(http.MethodGet, "/bout", NewRequestProcessor(s.SessionManager, s.BoutManager, s.catalog, s.dbm))

	r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(restHandlerTimeout))
		r.Use(jsonContentType)
		NewRestHandler(s.catalog, s.dbm, s.BoutManager, s.SessionManager).Mount(r)
	})
	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", s.port)
}

func (s *Server) Stage() string {
	return s.stage
}
