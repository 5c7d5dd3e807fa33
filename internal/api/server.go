// Package api exposes the search engine over HTTP.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/entity-search/internal/config"
	"github.com/sells-group/entity-search/internal/model"
	"github.com/sells-group/entity-search/internal/search"
)

// maxBodyBytes caps the size of a search request body.
const maxBodyBytes = 1 << 20

// Searcher is the engine surface the API needs.
type Searcher interface {
	Search(q *model.SearchQuery) ([]model.SearchResult, error)
	Stats() search.Stats
}

// Server routes HTTP requests to a Searcher.
type Server struct {
	searcher     Searcher
	metrics      *Metrics
	defaultLimit int
	router       chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithDefaultLimit applies limit to requests that do not set one.
func WithDefaultLimit(limit int) Option {
	return func(s *Server) { s.defaultLimit = limit }
}

// NewServer builds the router. cfg supplies CORS origins and the rate
// limit; a zero RateLimit disables limiting.
func NewServer(searcher Searcher, cfg config.ServerConfig, opts ...Option) *Server {
	s := &Server{
		searcher: searcher,
		metrics:  NewMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))
	r.Use(s.metrics.Middleware)

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", s.metrics.Handler())
	r.With(rateLimit(limiter)).Post("/v1/search", s.handleSearch)

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

type searchResponse struct {
	Results []model.SearchResult `json:"results"`
	Count   int                  `json:"count"`
}

type healthResponse struct {
	Status        string `json:"status"`
	People        int    `json:"people"`
	Organizations int    `json:"organizations"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var q model.SearchQuery
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&q); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if q.Limit == 0 {
		q.Limit = s.defaultLimit
	}

	results, err := s.searcher.Search(&q)
	if err != nil {
		if model.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		zap.L().Error("api: search failed",
			zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	if results == nil {
		results = []model.SearchResult{}
	}

	s.metrics.ObserveResults(string(q.EntityType), len(results))
	zap.L().Debug("api: search",
		zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
		zap.String("text", q.Text),
		zap.Int("results", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)
	writeJSON(w, http.StatusOK, searchResponse{Results: results, Count: len(results)})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	st := s.searcher.Stats()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		People:        st.People,
		Organizations: st.Organizations,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("api: encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
