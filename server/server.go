// Package server exposes the aggregation pipeline over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/econoscope/econoscope/pkg/curator"
	"github.com/econoscope/econoscope/pkg/domain"
)

// Server represents HTTP server instance
type Server struct {
	config   ConfigProvider
	searcher SearchProvider
	scraper  Scraper
	curator  Curator
	version  string
	debug    bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// SearchProvider finds articles matching a keyword
type SearchProvider interface {
	Search(ctx context.Context, keyword string, display int) ([]domain.Article, error)
}

// Scraper extracts article content from a URL
type Scraper interface {
	ScrapeWithRetry(ctx context.Context, url string) domain.ScrapedArticle
}

// Curator enriches articles with AI-derived data
type Curator interface {
	Enabled() bool
	CurateBatch(ctx context.Context, articles []domain.Article) curator.BatchResult
	Translate(ctx context.Context, text string) (string, error)
	Summarize(ctx context.Context, title, description, content string) (string, error)
	Format(ctx context.Context, text string) (string, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance. The searcher may be nil when no
// search provider is configured; affected endpoints report the condition.
func New(cfg ConfigProvider, searcher SearchProvider, scraper Scraper, cur Curator, version string, debug bool) *Server {
	s := &Server{
		config:   cfg,
		searcher: searcher,
		scraper:  scraper,
		curator:  cur,
		version:  version,
		debug:    debug,
		router:   routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("econoscope", "econoscope", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("POST /search", s.searchHandler)
		r.HandleFunc("POST /scrape", s.scrapeHandler)
		r.HandleFunc("POST /curate", s.curateHandler)
		r.HandleFunc("POST /translate", s.translateHandler)
		r.HandleFunc("POST /summary", s.summaryHandler)
		r.HandleFunc("POST /format", s.formatHandler)
	})
}
