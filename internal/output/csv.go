// Package output writes the surprise and feature tables consumed by the
// external regression stage. Unavailable values are written as empty
// cells.
package output

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/rickgao/fomc-event-study/internal/features"
	"github.com/rickgao/fomc-event-study/internal/model"
)

// fmtFloat renders a float cell; NaN becomes the empty (null) cell.
func fmtFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// WriteSurprises writes one row per meeting.
func WriteSurprises(path string, recs []model.SurpriseRecord) error {
	header := []string{
		"meeting_id", "t0_utc", "primary_symbol", "fallback_symbol", "symbol_used",
		"price_pre", "price_post", "implied_pre", "implied_post", "delta_implied_bps",
		"days_in_month", "days_remaining_after_announcement", "scaling_factor",
		"target_surprise_bps", "notes",
	}
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		t0 := ""
		if r.T0UTC != 0 {
			t0 = strconv.FormatInt(r.T0UTC, 10)
		}
		rows = append(rows, []string{
			r.MeetingID, t0, r.PrimarySymbol, r.FallbackSymbol, r.SymbolUsed,
			fmtFloat(r.PricePre), fmtFloat(r.PricePost),
			fmtFloat(r.ImpliedPre), fmtFloat(r.ImpliedPost), fmtFloat(r.DeltaImpliedBps),
			strconv.Itoa(r.DaysInMonth), strconv.Itoa(r.DaysRemaining), fmtFloat(r.ScalingFactor),
			fmtFloat(r.TargetSurpriseBps), r.Notes,
		})
	}
	return writeCSV(path, header, rows)
}

// WriteSurpriseSummary writes the human-readable per-meeting summary.
func WriteSurpriseSummary(path string, recs []model.SurpriseRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	fmt.Fprintln(f, "fed-funds surprises per meeting (bps)")
	fmt.Fprintln(f, "meeting_id,symbol_used,delta_implied_bps,target_surprise_bps")
	for _, r := range recs {
		used := r.SymbolUsed
		if used == "" {
			used = "none"
		}
		fmt.Fprintf(f, "%s,%s,%s,%s\n", r.MeetingID, used, fmtFloat(r.DeltaImpliedBps), fmtFloat(r.TargetSurpriseBps))
	}
	return nil
}

// WriteFeatures writes the segment-level feature table: identifiers,
// one-hot emotion indicators (baseline omitted), the pre-event price
// level, and per-horizon delta + basis columns.
func WriteFeatures(path string, t features.Table) error {
	header := []string{"meeting_id", "segment_id", "sym", "timestamp_utc", "emotion", "is_non_neutral"}
	for _, label := range t.Indicators {
		header = append(header, "emo_"+label)
	}
	header = append(header, "pre_px")
	for _, h := range t.Horizons {
		header = append(header, fmt.Sprintf("d_px_%d", h), fmt.Sprintf("d_px_%d_basis", h))
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := []string{
			r.MeetingID,
			strconv.Itoa(r.SegmentID),
			r.Symbol,
			strconv.FormatInt(r.AnchorUTC, 10),
			r.Emotion,
			strconv.Itoa(r.IsNonNeutral),
		}
		for _, label := range t.Indicators {
			row = append(row, strconv.Itoa(t.Indicator(r, label)))
		}
		row = append(row, fmtFloat(r.PrePx))
		for _, v := range r.Deltas {
			row = append(row, fmtFloat(v.Delta), string(v.Basis))
		}
		rows = append(rows, row)
	}
	return writeCSV(path, header, rows)
}
