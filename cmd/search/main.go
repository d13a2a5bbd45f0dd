// Command search discovers camera products from a listing URL and registers
// them as pending work in the progress file (and optionally the database).
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lenscatalog/dpreview-scraper/internal/browser"
	"github.com/lenscatalog/dpreview-scraper/internal/config"
	"github.com/lenscatalog/dpreview-scraper/internal/database"
	"github.com/lenscatalog/dpreview-scraper/internal/ratelimit"
	"github.com/lenscatalog/dpreview-scraper/internal/scraper"
	"github.com/lenscatalog/dpreview-scraper/internal/storage"
	"github.com/lenscatalog/dpreview-scraper/pkg/logger"
)

func main() {
	var (
		listingURL   = flag.String("url", "/products/cameras/all", "Camera listing URL (absolute or site-relative)")
		sinceYear    = flag.Int("since", 0, "Only keep cameras announced in or after this year (0 = all)")
		progressFile = flag.String("progress", "", "Progress file path (defaults to config)")
		headless     = flag.Bool("headless", true, "Run browser in headless mode")
		useDB        = flag.Bool("db", false, "Also register products in Postgres")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logg := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	logg.Info("starting camera discovery", "url", *listingURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logg.Info("shutdown signal received")
		cancel()
	}()

	b, err := browser.New(&browser.Options{
		Headless:       *headless && cfg.Browser.Headless,
		Timeout:        cfg.Browser.Timeout,
		UserAgent:      cfg.Crawler.UserAgents[0],
		ViewportWidth:  cfg.Browser.ViewportWidth,
		ViewportHeight: cfg.Browser.ViewportHeight,
		AcceptLanguage: cfg.Browser.AcceptLanguage,
		TimezoneID:     cfg.Browser.TimezoneID,
		Locale:         cfg.Browser.Locale,
	})
	if err != nil {
		logg.Error("failed to start browser", "error", err)
		os.Exit(1)
	}
	defer b.Close()

	limiter := ratelimit.NewAdaptiveRateLimiter(cfg.Crawler.RateLimitMin, cfg.Crawler.RateLimitMax)
	fetcher := scraper.NewBrowserFetcher(b, limiter, cfg.Crawler.MaxRetries)

	search := scraper.NewSearchScraper(fetcher, cfg.Crawler.BaseURL)
	search.SinceYear = *sinceYear

	results, err := search.CrawlListing(ctx, *listingURL)
	if err != nil {
		logg.Error("listing crawl failed", "error", err, "collected", len(results))
		if len(results) == 0 {
			os.Exit(1)
		}
	}

	path := *progressFile
	if path == "" {
		path = cfg.Storage.ProgressFile
	}
	progress, err := storage.NewProgressTracker(path)
	if err != nil {
		logg.Error("failed to open progress file", "error", err)
		os.Exit(1)
	}

	entries := make([]*storage.ProgressEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, &storage.ProgressEntry{
			ProductCode: r.ProductCode,
			URL:         r.URL,
			Name:        r.Name,
			ImageURL:    r.ImageURL,
			Announced:   r.Announced,
			ShortSpecs:  r.ShortSpecs,
		})
	}
	if err := progress.AddBatch(entries); err != nil {
		logg.Error("failed to record products", "error", err)
		os.Exit(1)
	}

	if *useDB {
		db, err := database.New(ctx, database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Database: cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
			MaxConns: 4,
		})
		if err != nil {
			logg.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := db.Migrate(ctx); err != nil {
			logg.Error("failed to run migration", "error", err)
			os.Exit(1)
		}
		for _, r := range results {
			if err := db.UpsertCamera(ctx, r.ProductCode, r.Name, r.URL); err != nil {
				logg.Error("failed to register product", "product", r.ProductCode, "error", err)
			}
		}
	}

	stats := progress.GetStats()
	fmt.Printf("Discovered %d products (%d pending, %d total tracked)\n",
		len(results), stats[storage.StatusPending], stats["total"])
}
