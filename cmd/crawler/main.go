// Command crawler works through pending products: it fetches each product's
// pages, parses them into a camera record, and writes one YAML file per
// product. Interrupted runs resume from the progress file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/lenscatalog/dpreview-scraper/internal/archive"
	"github.com/lenscatalog/dpreview-scraper/internal/browser"
	"github.com/lenscatalog/dpreview-scraper/internal/config"
	"github.com/lenscatalog/dpreview-scraper/internal/database"
	"github.com/lenscatalog/dpreview-scraper/internal/queue"
	"github.com/lenscatalog/dpreview-scraper/internal/ratelimit"
	"github.com/lenscatalog/dpreview-scraper/internal/scraper"
	"github.com/lenscatalog/dpreview-scraper/internal/storage"
	"github.com/lenscatalog/dpreview-scraper/pkg/logger"
	"log/slog"
)

func main() {
	var (
		outputDir    = flag.String("output", "", "Output directory for YAML records (defaults to config)")
		progressFile = flag.String("progress", "", "Progress file path (defaults to config)")
		headless     = flag.Bool("headless", true, "Run browser in headless mode")
		workers      = flag.Int("workers", 0, "Concurrent workers (defaults to config)")
		limit        = flag.Int("limit", 0, "Stop after this many products (0 = all pending)")
		force        = flag.Bool("force", false, "Re-crawl products that already have a record on disk")
		useDB        = flag.Bool("db", false, "Mirror completed records into Postgres")
		useArchive   = flag.Bool("archive", false, "Snapshot review pages in the Wayback Machine")
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
	logg.Info("starting crawler")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logg.Info("shutdown signal received")
		cancel()
	}()

	if *outputDir == "" {
		*outputDir = cfg.Storage.OutputDir
	}
	if *progressFile == "" {
		*progressFile = cfg.Storage.ProgressFile
	}
	if *workers <= 0 {
		*workers = cfg.Crawler.ConcurrentLimit
	}

	writer, err := storage.NewYAMLWriter(*outputDir)
	if err != nil {
		logg.Error("failed to prepare output directory", "error", err)
		os.Exit(1)
	}

	progress, err := storage.NewProgressTracker(*progressFile)
	if err != nil {
		logg.Error("failed to open progress file", "error", err)
		os.Exit(1)
	}

	pending := progress.GetPending()
	if len(pending) == 0 {
		fmt.Println("No pending products; run the search command first.")
		return
	}
	if *limit > 0 && len(pending) > *limit {
		pending = pending[:*limit]
	}

	var q queue.Queue
	if cfg.Queue.Type == "redis" {
		rq, err := queue.NewRedisQueue(cfg.Queue.RedisAddr, cfg.Queue.RedisKey)
		if err != nil {
			logg.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		q = rq
	} else {
		q = queue.NewInMemoryQueue()
	}

	queued := 0
	for _, entry := range pending {
		if !*force && writer.Exists(entry.ProductCode) {
			if err := progress.UpdateStatus(entry.ProductCode, storage.StatusCompleted, ""); err != nil {
				logg.Warn("failed to mark existing record", "product", entry.ProductCode, "error", err)
			}
			continue
		}
		if err := q.Push(queue.NewTask(entry.ProductCode, entry.URL, 0)); err != nil {
			logg.Error("failed to enqueue task", "product", entry.ProductCode, "error", err)
			continue
		}
		queued++
	}
	logg.Info("queued tasks", "count", queued, "skipped", len(pending)-queued)
	q.Close()

	if queued == 0 {
		fmt.Println("Nothing to crawl; all pending products already have records.")
		return
	}

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

	products := scraper.NewProductScraper(fetcher, writer, progress, cfg.Crawler.BaseURL)

	if *useDB {
		db, err := database.New(ctx, database.Config{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Database: cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
			MaxConns: int32(*workers) + 2,
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
		products = products.WithDatabase(db)
	}

	if *useArchive || cfg.Archive.Enabled {
		products = products.WithArchiver(archive.NewClient(
			cfg.Archive.Timeout,
			archive.WithMinDelay(cfg.Archive.MinDelay),
		))
	}

	runWorkers(ctx, logg, q, products, *workers)

	stats := progress.GetStats()
	fmt.Printf("Crawl finished: %d completed, %d failed, %d still pending\n",
		stats[storage.StatusCompleted], stats[storage.StatusFailed], stats[storage.StatusPending])
}

func runWorkers(ctx context.Context, logg *slog.Logger, q queue.Queue, products *scraper.ProductScraper, workers int) {
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				task, err := q.Pop(ctx)
				if err != nil {
					if errors.Is(err, queue.ErrQueueClosed) || errors.Is(err, context.Canceled) {
						return
					}
					logg.Error("failed to pop task", "worker", id, "error", err)
					return
				}

				if _, err := products.ScrapeProduct(ctx, task); err != nil {
					logg.Error("product failed", "worker", id, "product", task.ProductCode, "error", err)
				}
			}
		}(i)
	}

	wg.Wait()
}
