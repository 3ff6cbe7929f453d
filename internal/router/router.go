package router

import (
	"database/sql"
	"net/http"
	"time"

	mem "epaw/internal/adapters/storage/memory"
	pg "epaw/internal/adapters/storage/postgres"
	"epaw/internal/middleware"
	"epaw/internal/platform/logger"
	"epaw/internal/ports/auth"
	"epaw/internal/ports/storage"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Tokens firma los tokens del login y los verifica en cada request.
type Tokens interface {
	auth.AuthVerifier
	auth.TokenIssuer
}

type Options struct {
	Tokens Tokens // obligatorio

	// Store tiene prioridad; si no viene y hay DB usa Postgres. Si no, in-memory.
	Store storage.DocumentStore
	DB    *sql.DB

	Logger logger.Logger
	Now    func() time.Time
}

// NewRouter arma el sandbox: una réplica local de la API de ePaw.
func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	store := opts.Store
	if store == nil {
		if opts.DB != nil {
			store = pg.NewDocumentsRepo(opts.DB)
		} else {
			store = mem.NewDocumentStore()
		}
	}

	a := &api{
		store:  store,
		tokens: opts.Tokens,
		log:    log,
		now:    opts.Now,
	}
	if a.now == nil {
		a.now = time.Now
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLog(log))

	r.Use(middleware.AuthContext(opts.Tokens))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Ruta no encontrada")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Método no permitido")
	})

	r.Route("/api", func(ar chi.Router) {
		registerAuthRoutes(ar, a)
		registerReportRoutes(ar, a)
		registerAdoptionRoutes(ar, a)
		registerMedicalRecordRoutes(ar, a)
		registerAnimalRoutes(ar, a)
		registerOrganizationRoutes(ar, a)
		registerVeterinaryRoutes(ar, a)
	})

	return r
}

// api comparte dependencias entre handlers.
type api struct {
	store  storage.DocumentStore
	tokens Tokens
	log    logger.Logger
	now    func() time.Time
}

func (a *api) timestamp() time.Time {
	return a.now().UTC().Truncate(time.Millisecond)
}
