// Package surprise computes the per-meeting fed-funds monetary-policy
// surprise from event-window price changes in the meeting-month contract.
package surprise

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/rickgao/fomc-event-study/internal/anchor"
	"github.com/rickgao/fomc-event-study/internal/contract"
	"github.com/rickgao/fomc-event-study/internal/model"
	"github.com/rickgao/fomc-event-study/internal/series"
)

// Config holds the surprise-window parameters.
type Config struct {
	Root       string        // Fed-funds futures root (e.g., "ZQ")
	PreWindow  time.Duration // Lookback before the anchor
	PostWindow time.Duration // Lookahead after the anchor
}

// Calculator computes SurpriseRecords. The series granularity is one
// second, so the pre window is [t0-pre, t0-1s]: a tick half a second
// before t0 lands in the t0-1 bucket and still counts as pre, while
// anything in the t0 bucket belongs to the post window [t0, t0+post].
type Calculator struct {
	cfg    Config
	store  *series.Store
	clock  *anchor.Clock
	logger *slog.Logger
}

// New creates a Calculator.
func New(cfg Config, store *series.Store, clock *anchor.Clock, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{cfg: cfg, store: store, clock: clock, logger: logger}
}

// Compute builds the SurpriseRecord for one meeting. Data gaps (no trades
// in-window for either candidate symbol, missing day file, ambiguous
// anchor) produce a record with unavailable fields and a note; only
// infrastructure failures return an error.
func (c *Calculator) Compute(ctx context.Context, meeting model.Meeting) (model.SurpriseRecord, error) {
	nan := math.NaN()
	rec := model.SurpriseRecord{
		MeetingID:         meeting.ID,
		PricePre:          nan,
		PricePost:         nan,
		ImpliedPre:        nan,
		ImpliedPost:       nan,
		DeltaImpliedBps:   nan,
		ScalingFactor:     nan,
		TargetSurpriseBps: nan,
	}

	date, err := time.Parse("2006-01-02", meeting.ID)
	if err != nil {
		rec.Notes = "invalid meeting date: " + meeting.ID
		return rec, nil
	}

	rec.PrimarySymbol = contract.Primary(c.cfg.Root, date)
	rec.FallbackSymbol = contract.Fallback(c.cfg.Root, date)

	// Calendar scaling is computable regardless of price availability.
	daysInMonth := time.Date(date.Year(), date.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	rem := daysInMonth - date.Day() + 1
	rec.DaysInMonth = daysInMonth
	rec.DaysRemaining = rem
	if rem > 0 {
		rec.ScalingFactor = float64(daysInMonth) / float64(rem)
	}

	t0, err := c.clock.MeetingAnchor(meeting.ID)
	if err != nil {
		if errors.Is(err, anchor.ErrAmbiguousTime) {
			rec.Notes = "anchor unavailable: " + err.Error()
			return rec, nil
		}
		rec.Notes = "anchor computation failed: " + err.Error()
		return rec, nil
	}
	rec.T0UTC = t0.Unix()

	preStart := rec.T0UTC - int64(c.cfg.PreWindow/time.Second)
	preEnd := rec.T0UTC - 1
	postEnd := rec.T0UTC + int64(c.cfg.PostWindow/time.Second)

	var pricePre, pricePost float64
	for _, sym := range contract.Candidates(c.cfg.Root, date) {
		s, err := c.store.Symbol(ctx, meeting.ID, c.cfg.Root, sym)
		if errors.Is(err, series.ErrDataUnavailable) {
			continue
		}
		if err != nil {
			return rec, err
		}

		pre, okPre := s.LastIn(preStart, preEnd)
		post, okPost := s.LastIn(rec.T0UTC, postEnd)
		if okPre && okPost {
			rec.SymbolUsed = sym
			pricePre, pricePost = pre, post
			break
		}
	}

	if rec.SymbolUsed == "" {
		rec.Notes = "no trades for meeting-month or next-month symbol in event window"
		return rec, nil
	}

	rec.PricePre = pricePre
	rec.PricePost = pricePost
	rec.ImpliedPre = 100 - pricePre
	rec.ImpliedPost = 100 - pricePost

	// Change in the implied monthly average rate, in basis points. Not
	// rounded before scaling.
	rec.DeltaImpliedBps = (rec.ImpliedPost - rec.ImpliedPre) * 100

	if !math.IsNaN(rec.ScalingFactor) {
		rec.TargetSurpriseBps = rec.DeltaImpliedBps * rec.ScalingFactor
	}

	c.logger.Debug("surprise computed",
		"meeting", meeting.ID,
		"symbol_used", rec.SymbolUsed,
		"delta_bps", rec.DeltaImpliedBps,
		"target_bps", rec.TargetSurpriseBps,
	)
	return rec, nil
}
