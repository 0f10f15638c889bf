package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/econoscope/econoscope/pkg/cache"
	"github.com/econoscope/econoscope/pkg/config"
	"github.com/econoscope/econoscope/pkg/curator"
	"github.com/econoscope/econoscope/pkg/llm"
	"github.com/econoscope/econoscope/pkg/scraper"
	"github.com/econoscope/econoscope/pkg/search"
	"github.com/econoscope/econoscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"config file (yaml)"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] server failed: %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires the services together and runs the server until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	// API keys must never appear in logs
	setupLog(opts.Debug, cfg.LLM.APIKey, cfg.Search.ClientSecret)

	log.Printf("[INFO] starting econoscope version %s", revision)

	responseCache, closeCache, err := makeCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer closeCache()

	var model curator.LLM
	if cfg.LLM.Enabled() {
		model = llm.New(cfg.LLM)
		log.Printf("[INFO] llm enrichment enabled, model %s", cfg.LLM.Model)
	} else {
		log.Print("[WARN] llm api key not set, ai enrichment disabled")
	}

	cur := curator.New(curator.Params{
		LLM:        model,
		Cache:      responseCache,
		MaxWorkers: cfg.Curation.MaxWorkers,
	})

	searcher := makeSearcher(cfg)

	scr := scraper.New(scraper.Config{
		Timeout:       cfg.Scraper.Timeout,
		MaxRedirects:  cfg.Scraper.MaxRedirects,
		MaxRetries:    cfg.Scraper.MaxRetries,
		MinTextLength: cfg.Scraper.MinTextLength,
		UserAgent:     cfg.Scraper.UserAgent,
		UseFallback:   cfg.Scraper.UseFallback,
	})

	srv := server.New(cfg, searcher, scr, cur, revision, opts.Debug)
	return srv.Run(ctx)
}

// loadConfig reads the config file when given, otherwise falls back to
// built-in defaults
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		log.Print("[INFO] no config file given, using defaults")
		return config.Default(), nil
	}
	return config.Load(path)
}

// makeCache builds the response cache, a no-op cache when disabled. The
// returned closer is safe to call either way.
func makeCache(ctx context.Context, cfg *config.Config) (*cache.Cache, func(), error) {
	if cfg.Cache.Disabled || cfg.Cache.DSN == "" {
		log.Print("[INFO] response cache disabled")
		return cache.New(nil), func() {}, nil
	}

	store, err := cache.NewStore(ctx, cache.StoreConfig{
		DSN:             cfg.Cache.DSN,
		MaxOpenConns:    cfg.Cache.MaxOpenConns,
		MaxIdleConns:    cfg.Cache.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Cache.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return nil, nil, err
	}

	closer := func() {
		if err := store.Close(); err != nil {
			log.Printf("[WARN] cache close error: %v", err)
		}
	}
	return cache.New(store), closer, nil
}

// makeSearcher picks the configured search provider. A nil return means no
// provider is available and search endpoints will report it.
func makeSearcher(cfg *config.Config) server.SearchProvider {
	switch cfg.Search.Provider {
	case "rss":
		log.Print("[INFO] using rss search provider")
		return search.NewRSS(cfg.Search)
	default:
		naver, err := search.NewNaver(cfg.Search)
		if err != nil {
			log.Printf("[WARN] naver search unavailable: %v", err)
			return nil
		}
		log.Print("[INFO] using naver search provider")
		return naver
	}
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	for _, s := range secs {
		if s != "" {
			logOpts = append(logOpts, lgr.Secret(s))
		}
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
