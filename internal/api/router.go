package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/meur/umaviewer/internal/jobs"
	"github.com/meur/umaviewer/internal/storage"
)

// Options configures the control panel
type Options struct {
	Dir        string              // served directory, also where data.json lives
	Executable string              // binary launched for actions
	Commands   map[string][]string // action -> arguments
	Store      *storage.Store
	Jobs       *jobs.Registry
	Logger     *zap.Logger
}

// DefaultCommands are the subcommands the panel runs
func DefaultCommands() map[string][]string {
	return map[string][]string{
		"extract": {"extract", "--yes"},
		"enrich":  {"enrich"},
	}
}

// Server holds the HTTP server dependencies
type Server struct {
	dir        string
	executable string
	commands   map[string][]string
	store      *storage.Store
	jobs       *jobs.Registry
	logger     *zap.Logger
	router     chi.Router
}

// New creates a new control panel server
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Commands == nil {
		opts.Commands = DefaultCommands()
	}
	if opts.Jobs == nil {
		var rec jobs.Recorder
		if opts.Store != nil {
			rec = opts.Store
		}
		opts.Jobs = jobs.NewRegistry(opts.Dir, opts.Logger, rec)
	}
	s := &Server{
		dir:        opts.Dir,
		executable: opts.Executable,
		commands:   opts.Commands,
		store:      opts.Store,
		jobs:       opts.Jobs,
		logger:     opts.Logger,
		router:     chi.NewRouter(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupMiddleware() {
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handlePanel)
	s.router.Get("/index.html", s.handlePanel)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/output/{action}", s.handleOutput)
		r.Get("/live/{action}", s.handleLive)

		// Actions
		r.Post("/extract", s.handleLaunch("extract"))
		r.Post("/enrich", s.handleLaunch("enrich"))

		// Run history
		r.Get("/runs", s.handleListRuns)
		r.Get("/runs/{id}", s.handleGetRun)
	})

	// Health check
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	FileServer(s.router, "/", http.Dir(s.dir))

	// Only GET reaches the static files; any other unmatched method is a plain 404.
	s.router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})
}

// requestLogger logs each request once it has been served
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}

// --- Response helpers ---

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
