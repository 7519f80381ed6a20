package router

import (
	"net/http"
	"time"

	"pet-health-record/internal/domain/pets"
	"pet-health-record/internal/domain/vaccines"
	"pet-health-record/internal/middleware"
	"pet-health-record/internal/platform/logger"
	"pet-health-record/internal/platform/metrics"
	"pet-health-record/internal/ports/auth"

	_ "pet-health-record/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	Stores  Stores
	Catalog *vaccines.Catalog // nil = catálogo por defecto
	Logger  logger.Logger
	Metrics *metrics.Metrics
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.New("pet_health_record")
	}
	stores := opts.Stores.withDefaults()

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(log))

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", m.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Services por módulo
	petsSvc := pets.NewService(stores.Pets)
	vaccinesSvc := vaccines.NewService(stores.Tracking, petsSvc, opts.Catalog, log, m)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	vaccines.RegisterRoutes(r, vaccinesSvc, petsSvc)

	return r
}

// requestLogger registra método, ruta, status y duración de cada request.
func requestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Debug("http request", map[string]any{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      ww.Status(),
				"duration_ms": time.Since(start).Milliseconds(),
				"request_id":  chimw.GetReqID(r.Context()),
			})
		})
	}
}
