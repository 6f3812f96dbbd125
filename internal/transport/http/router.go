package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	request "amigowallet/pkg/platform/middleware/request"
)

// Registrar is implemented by every handler that mounts its own routes.
type Registrar interface {
	Register(r chi.Router)
}

// Deps collects what the router needs from main.
type Deps struct {
	Logger         *slog.Logger
	Gatherer       prometheus.Gatherer
	Metrics        *request.Metrics
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	CORSOrigins    []string
	Handlers       []Registrar
}

// NewRouter wires the public endpoints behind the shared middleware stack.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(deps.Logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(deps.Logger))
	if deps.RequestTimeout > 0 {
		r.Use(request.Timeout(deps.RequestTimeout))
	}
	if deps.MaxBodyBytes > 0 {
		r.Use(request.BodyLimit(deps.MaxBodyBytes))
	}
	if deps.Metrics != nil {
		r.Use(request.Latency(deps.Metrics))
	}
	r.Use(cors.Handler(corsOptions(deps.CORSOrigins)))

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}
	for _, h := range deps.Handlers {
		h.Register(r)
	}

	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}
}

// NewServer returns an http.Server with conservative timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      45 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
