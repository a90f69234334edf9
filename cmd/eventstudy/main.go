// Command eventstudy runs one batch of the FOMC event study: per-meeting
// fed-funds surprises, segment-level forward returns, and the assembled
// feature table, written as CSV for the external regression stage.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rickgao/fomc-event-study/internal/anchor"
	"github.com/rickgao/fomc-event-study/internal/batch"
	"github.com/rickgao/fomc-event-study/internal/config"
	"github.com/rickgao/fomc-event-study/internal/database"
	"github.com/rickgao/fomc-event-study/internal/features"
	"github.com/rickgao/fomc-event-study/internal/inputs"
	"github.com/rickgao/fomc-event-study/internal/output"
	"github.com/rickgao/fomc-event-study/internal/returns"
	"github.com/rickgao/fomc-event-study/internal/series"
	"github.com/rickgao/fomc-event-study/internal/surprise"
	"github.com/rickgao/fomc-event-study/internal/tickstore"
	"github.com/rickgao/fomc-event-study/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/study.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting eventstudy",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"instruments", cfg.Study.Instruments,
		"surprise_root", cfg.Study.SurpriseRoot,
		"horizons", len(cfg.Study.Horizons),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	logger.Info("connecting to database",
		"host", cfg.Database.Timescale.Host,
		"port", cfg.Database.Timescale.Port,
		"database", cfg.Database.Timescale.Name,
	)
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
	segments, err := inputs.LoadSegments(cfg.Study.SegmentsCSV)
	if err != nil {
		logger.Error("failed to load segments", "error", err)
		os.Exit(1)
	}
	logger.Info("inputs loaded", "meetings", len(meetings), "segments", len(segments))

	clock, err := anchor.New(cfg.Study.Timezone, cfg.Study.EventTime)
	if err != nil {
		logger.Error("failed to build anchor clock", "error", err)
		os.Exit(1)
	}

	store := series.NewStore(tickstore.New(db, logger), cfg.Study.PriceScale, logger)

	calc := surprise.New(surprise.Config{
		Root:       cfg.Study.SurpriseRoot,
		PreWindow:  cfg.Study.PreWindow,
		PostWindow: cfg.Study.PostWindow,
	}, store, clock, logger)

	engine := batch.New(batch.Config{
		Instruments: cfg.Study.Instruments,
		Concurrency: cfg.Study.Concurrency,
	}, store, clock, calc, returns.New(cfg.Study.Horizons, cfg.Study.PreLevelOffset), logger)

	res, err := engine.Run(ctx, meetings, segments)
	if err != nil {
		logger.Error("batch run failed", "error", err)
		os.Exit(1)
	}

	table := features.New(features.Config{
		Labels:      cfg.Study.Labels,
		Baseline:    cfg.Study.Baseline,
		WinsorSigma: cfg.Study.Sigma(),
	}, logger).Assemble(res.FeatureRows, cfg.Study.Horizons)

	if err := os.MkdirAll(cfg.Study.OutDir, 0o755); err != nil {
		logger.Error("failed to create output dir", "error", err)
		os.Exit(1)
	}

	surprisesPath := filepath.Join(cfg.Study.OutDir, "zq_surprises.csv")
	summaryPath := filepath.Join(cfg.Study.OutDir, "zq_surprises_summary.txt")
	featuresPath := filepath.Join(cfg.Study.OutDir, "features.csv")

	if err := output.WriteSurprises(surprisesPath, res.Surprises); err != nil {
		logger.Error("failed to write surprises", "error", err)
		os.Exit(1)
	}
	if err := output.WriteSurpriseSummary(summaryPath, res.Surprises); err != nil {
		logger.Error("failed to write surprise summary", "error", err)
		os.Exit(1)
	}
	if err := output.WriteFeatures(featuresPath, table); err != nil {
		logger.Error("failed to write features", "error", err)
		os.Exit(1)
	}

	logger.Info("eventstudy complete",
		"run_id", res.Diagnostics.RunID,
		"surprises", len(res.Surprises),
		"feature_rows", len(table.Rows),
		"pairs_skipped", res.Diagnostics.PairsSkipped,
		"skip_reasons", res.Diagnostics.SkipReasons,
		"horizons_held_flat", res.Diagnostics.HorizonsHeldFlat,
		"horizons_missing", res.Diagnostics.HorizonsMissing,
		"out_dir", cfg.Study.OutDir,
	)
}
