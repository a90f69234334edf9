// Package batch orchestrates one study run: surprises per meeting and
// forward returns per (meeting, instrument), computed in parallel and
// merged into flat output tables with run diagnostics.
package batch

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/rickgao/fomc-event-study/internal/anchor"
	"github.com/rickgao/fomc-event-study/internal/model"
	"github.com/rickgao/fomc-event-study/internal/returns"
	"github.com/rickgao/fomc-event-study/internal/series"
	"github.com/rickgao/fomc-event-study/internal/surprise"
)

// Config holds orchestration parameters.
type Config struct {
	Instruments []string // Forward-return roots
	Concurrency int      // Parallel worker limit
}

// Engine runs the batch. Tasks for distinct (meeting, instrument) pairs
// share no mutable state beyond the read-only series store, so they run
// freely in parallel; output order is fixed by a final sort.
type Engine struct {
	cfg       Config
	store     *series.Store
	clock     *anchor.Clock
	surprises *surprise.Calculator
	returns   *returns.Engine
	logger    *slog.Logger
}

// New creates an Engine.
func New(cfg Config, store *series.Store, clock *anchor.Clock, sc *surprise.Calculator, re *returns.Engine, logger *slog.Logger) *Engine {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:       cfg,
		store:     store,
		clock:     clock,
		surprises: sc,
		returns:   re,
		logger:    logger,
	}
}

// Diagnostics counts what a run produced and what it had to skip.
type Diagnostics struct {
	RunID            uuid.UUID
	Meetings         int
	SurprisesMissing int            // Meetings with no usable surprise window
	PairsSkipped     int            // (meeting, instrument) pairs skipped
	SkipReasons      map[string]int // Reason → count for skipped pairs/meetings
	Rows             int            // Feature rows emitted
	HorizonsHeldFlat int            // Horizon cells carried as held-flat zeros
	HorizonsMissing  int            // Horizon cells with no anchor price
}

// Result is the merged output of one run.
type Result struct {
	Surprises   []model.SurpriseRecord
	FeatureRows []model.FeatureRow
	Diagnostics Diagnostics
}

// Run executes the batch over all meetings. Data gaps are recorded in the
// diagnostics and in the output rows; only infrastructure failures return
// an error.
func (e *Engine) Run(ctx context.Context, meetings []model.Meeting, segments []model.Segment) (Result, error) {
	res := Result{
		Diagnostics: Diagnostics{
			RunID:       uuid.New(),
			Meetings:    len(meetings),
			SkipReasons: make(map[string]int),
		},
	}

	segsByMeeting := make(map[string][]model.Segment)
	for _, s := range segments {
		segsByMeeting[s.MeetingID] = append(segsByMeeting[s.MeetingID], s)
	}

	e.logger.Info("batch run starting",
		"run_id", res.Diagnostics.RunID,
		"meetings", len(meetings),
		"segments", len(segments),
		"instruments", e.cfg.Instruments,
		"concurrency", e.cfg.Concurrency,
	)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)

	for _, meeting := range meetings {
		meeting := meeting
		g.Go(func() error {
			rec, err := e.surprises.Compute(gctx, meeting)
			if err != nil {
				return err
			}
			mu.Lock()
			res.Surprises = append(res.Surprises, rec)
			if rec.SymbolUsed == "" {
				res.Diagnostics.SurprisesMissing++
				res.Diagnostics.SkipReasons["surprise_no_window_trades"]++
			}
			mu.Unlock()
			return nil
		})

		for _, root := range e.cfg.Instruments {
			root := root
			g.Go(func() error {
				rows, stats, reason, err := e.computePair(gctx, meeting, root, segsByMeeting[meeting.ID])
				if err != nil {
					return err
				}
				mu.Lock()
				defer mu.Unlock()
				if reason != "" {
					res.Diagnostics.PairsSkipped++
					res.Diagnostics.SkipReasons[reason]++
					return nil
				}
				res.FeatureRows = append(res.FeatureRows, rows...)
				res.Diagnostics.Rows += len(rows)
				res.Diagnostics.HorizonsHeldFlat += stats.heldFlat
				res.Diagnostics.HorizonsMissing += stats.missing
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	sort.Slice(res.Surprises, func(i, j int) bool {
		return res.Surprises[i].MeetingID < res.Surprises[j].MeetingID
	})
	// Feature rows get their final (meeting, segment, instrument) order in
	// the assembler; no ordering between meetings is promised here.

	e.logger.Info("batch run complete",
		"run_id", res.Diagnostics.RunID,
		"rows", res.Diagnostics.Rows,
		"pairs_skipped", res.Diagnostics.PairsSkipped,
		"surprises_missing", res.Diagnostics.SurprisesMissing,
		"horizons_held_flat", res.Diagnostics.HorizonsHeldFlat,
		"horizons_missing", res.Diagnostics.HorizonsMissing,
	)
	return res, nil
}

type pairStats struct {
	heldFlat int
	missing  int
}

// computePair builds rows for one (meeting, instrument). A non-empty
// reason marks a recoverable skip.
func (e *Engine) computePair(ctx context.Context, meeting model.Meeting, root string, segs []model.Segment) ([]model.FeatureRow, pairStats, string, error) {
	var stats pairStats

	if len(segs) == 0 {
		return nil, stats, "no_segments", nil
	}

	t0, err := e.clock.MeetingAnchor(meeting.ID)
	if err != nil {
		if errors.Is(err, anchor.ErrAmbiguousTime) {
			e.logger.Warn("skipping pair, ambiguous anchor", "meeting", meeting.ID, "root", root)
			return nil, stats, "anchor_ambiguous", nil
		}
		e.logger.Warn("skipping pair, bad meeting date", "meeting", meeting.ID, "root", root, "err", err)
		return nil, stats, "anchor_invalid", nil
	}

	// The day series is built once per (meeting, instrument) and shared
	// by every segment and horizon below.
	s, err := e.store.Day(ctx, meeting.ID, root)
	if errors.Is(err, series.ErrDataUnavailable) {
		e.logger.Warn("skipping pair, no ticks", "meeting", meeting.ID, "root", root)
		return nil, stats, "no_ticks", nil
	}
	if err != nil {
		return nil, stats, "", err
	}

	rows := make([]model.FeatureRow, 0, len(segs))
	for _, seg := range segs {
		anchorSec := e.clock.SegmentTime(t0, seg.StartOffsetS).Unix()
		r := e.returns.Compute(s, anchorSec)
		for _, v := range r.Values {
			switch v.Basis {
			case model.BasisHeldFlat:
				stats.heldFlat++
			case model.BasisUnavailable:
				stats.missing++
			}
		}
		rows = append(rows, model.FeatureRow{
			MeetingID: meeting.ID,
			SegmentID: seg.SegmentID,
			Symbol:    root,
			AnchorUTC: anchorSec,
			Emotion:   seg.Emotion,
			PrePx:     r.PrePx,
			Deltas:    r.Values,
		})
	}
	return rows, stats, "", nil
}
