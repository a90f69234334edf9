// Command tickloader pulls per-day futures trades from the historical
// provider for every (meeting day, instrument root) pair in the study
// and persists them in TimescaleDB. Days that are already loaded are
// skipped, so the loader is safe to re-run.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rickgao/fomc-event-study/internal/config"
	"github.com/rickgao/fomc-event-study/internal/database"
	"github.com/rickgao/fomc-event-study/internal/inputs"
	"github.com/rickgao/fomc-event-study/internal/provider"
	"github.com/rickgao/fomc-event-study/internal/tickstore"
	"github.com/rickgao/fomc-event-study/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/study.local.yaml", "path to config file")
	force := flag.Bool("force", false, "re-pull days that are already loaded")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting tickloader",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.Provider.APIKey == "" {
		logger.Error("provider api_key is required for the tick loader")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	db, err := database.Connect(ctx, cfg.Database.Timescale)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	meetings, err := inputs.LoadMeetings(cfg.Study.MeetingsCSV)
	if err != nil {
		logger.Error("failed to load meetings", "error", err)
		os.Exit(1)
	}
	roots := cfg.Study.Roots()
	logger.Info("load plan", "meetings", len(meetings), "roots", roots)

	client := provider.NewClient(
		cfg.Provider.BaseURL,
		cfg.Provider.APIKey,
		cfg.Provider.Dataset,
		provider.WithTimeout(cfg.Provider.Timeout),
		provider.WithRetries(cfg.Provider.MaxRetries, time.Second),
		provider.WithPullWindow(cfg.Provider.WindowStartUTC, cfg.Provider.WindowEndUTC),
		provider.WithLogger(logger),
	)
	store := tickstore.New(db, logger)

	var (
		mu        sync.Mutex
		loaded    int
		skipped   int
		empty     int
		inserted  int
		conflicts int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Study.Concurrency)

	for _, m := range meetings {
		for _, root := range roots {
			day, root := m.ID, root
			g.Go(func() error {
				if !*force {
					have, err := store.DayLoaded(gctx, root, day)
					if err != nil {
						return err
					}
					if have {
						logger.Debug("day already loaded", "root", root, "day", day)
						mu.Lock()
						skipped++
						mu.Unlock()
						return nil
					}
				}

				ticks, err := client.GetDayTrades(gctx, root, day)
				if err != nil {
					return err
				}
				if len(ticks) == 0 {
					logger.Warn("no trades returned", "root", root, "day", day)
					mu.Lock()
					empty++
					mu.Unlock()
					return nil
				}

				ins, con, err := store.InsertDay(gctx, root, day, ticks)
				if err != nil {
					return err
				}
				logger.Info("day loaded", "root", root, "day", day, "inserted", ins, "conflicts", con)
				mu.Lock()
				loaded++
				inserted += ins
				conflicts += con
				mu.Unlock()
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		logger.Error("tick load failed", "error", err)
		os.Exit(1)
	}

	logger.Info("tickloader complete",
		"days_loaded", loaded,
		"days_skipped", skipped,
		"days_empty", empty,
		"rows_inserted", inserted,
		"rows_conflicted", conflicts,
	)
}
