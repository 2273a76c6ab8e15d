// Package server provides the HTTP REST API for the resume portfolio service.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-portfolio/internal/config"
	"github.com/jonathan/resume-portfolio/internal/db"
	"github.com/jonathan/resume-portfolio/internal/llm"
	"github.com/jonathan/resume-portfolio/internal/matching"
	"github.com/jonathan/resume-portfolio/internal/parsing"
	"github.com/jonathan/resume-portfolio/internal/types"
	"github.com/jonathan/resume-portfolio/internal/uploadtoken"
)

// Store is the persistence surface the handlers need. *db.DB implements it;
// tests substitute an in-memory fake.
type Store interface {
	UpsertPortfolio(ctx context.Context, p types.Portfolio) error
	GetPortfolio(ctx context.Context, username string) (types.Portfolio, error)
	PortfolioExists(ctx context.Context, username string) (bool, error)
	UnpublishPortfolio(ctx context.Context, username string) error
	SaveJobMatch(ctx context.Context, jobDescription string, result types.JobMatchResult) (uuid.UUID, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	database     *db.DB
	store        Store
	extractor    *parsing.Extractor
	evaluator    *matching.Evaluator
	uploadCodec  *uploadtoken.Codec
	manageTokens *ManageTokenService
}

// Config holds server configuration
type Config struct {
	Port int
	App  *config.Config
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if err := cfg.App.ValidateForServe(); err != nil {
		return nil, err
	}

	database, err := db.Connect(context.Background(), cfg.App.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	var client llm.Client
	if cfg.App.LLMAPIKey != "" {
		client, err = llm.NewGeminiClient(context.Background(), cfg.App.LLM, cfg.App.LLMAPIKey)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to create model client: %w", err)
		}
	} else {
		log.Println("LLM_API_KEY not set, running in heuristic-only mode")
	}

	s := &Server{
		database:     database,
		store:        database,
		extractor:    parsing.NewExtractor(client),
		evaluator:    matching.NewEvaluator(client),
		uploadCodec:  uploadtoken.NewCodec(cfg.App.UploadTokenSecret),
		manageTokens: NewManageTokenService(cfg.App.JWTSecret),
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Model calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/resume/upload", s.handleUpload)
	mux.HandleFunc("POST /api/resume/parse", s.handleParse)
	mux.HandleFunc("POST /api/job-match/evaluate", s.handleEvaluate)
	mux.HandleFunc("POST /api/portfolio/deploy", s.handleDeploy)
	mux.HandleFunc("GET /api/portfolio/{username}", s.handleGetPortfolio)
	mux.HandleFunc("DELETE /api/portfolio/{username}", s.handleUnpublish)
	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.database.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
