// Package features assembles the segment-level feature table handed to
// the external regression stage: emotion indicators joined onto forward
// returns, with outlier capping on the return columns.
package features

import (
	"log/slog"
	"math"
	"sort"

	"github.com/rickgao/fomc-event-study/internal/model"
)

// Config holds assembly parameters.
type Config struct {
	Labels      []string // Recognized emotion labels
	Baseline    string   // Omitted one-hot category
	WinsorSigma float64  // 0 disables capping
}

// Table is the assembled feature table. Rows are sorted by
// (meeting, segment, instrument); Indicators lists the non-baseline
// labels in configuration order.
type Table struct {
	Horizons   []int
	Indicators []string
	Rows       []model.FeatureRow
}

// Assembler joins emotion labels onto return rows and winsorizes the
// forward-return columns.
type Assembler struct {
	cfg    Config
	logger *slog.Logger
}

// New creates an Assembler.
func New(cfg Config, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{cfg: cfg, logger: logger}
}

// Assemble finalizes the feature table: deterministic row order, one-hot
// indicator set, and winsorized delta columns. Held-flat zeros are part
// of the numeric column; unavailable deltas are NaN and excluded from the
// cap computation. rows is modified in place.
func (a *Assembler) Assemble(rows []model.FeatureRow, horizons []int) Table {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].MeetingID != rows[j].MeetingID {
			return rows[i].MeetingID < rows[j].MeetingID
		}
		if rows[i].SegmentID != rows[j].SegmentID {
			return rows[i].SegmentID < rows[j].SegmentID
		}
		return rows[i].Symbol < rows[j].Symbol
	})

	indicators := make([]string, 0, len(a.cfg.Labels))
	for _, l := range a.cfg.Labels {
		if l != a.cfg.Baseline {
			indicators = append(indicators, l)
		}
	}

	for i := range rows {
		if rows[i].Emotion != a.cfg.Baseline {
			rows[i].IsNonNeutral = 1
		}
	}

	if a.cfg.WinsorSigma > 0 {
		for hi := range horizons {
			col := make([]float64, len(rows))
			for ri := range rows {
				col[ri] = rows[ri].Deltas[hi].Delta
			}
			bound := CapAt(col, a.cfg.WinsorSigma)
			ClipAt(col, bound)
			for ri := range rows {
				rows[ri].Deltas[hi].Delta = col[ri]
			}
		}
	}

	return Table{Horizons: horizons, Indicators: indicators, Rows: rows}
}

// Indicator returns the 0/1 one-hot value of a row for a non-baseline
// label.
func (t Table) Indicator(row model.FeatureRow, label string) int {
	if row.Emotion == label {
		return 1
	}
	return 0
}

// CapAt returns the winsorization boundary sigma·stdev for a column,
// using the population standard deviation (ddof=0) over non-NaN values.
// Returns NaN when the column has no finite values or sigma is 0.
func CapAt(vals []float64, sigma float64) float64 {
	if sigma == 0 {
		return math.NaN()
	}
	var sum float64
	var n int
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return math.NaN()
	}
	mean := sum / float64(n)

	var ss float64
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		d := v - mean
		ss += d * d
	}
	return sigma * math.Sqrt(ss/float64(n))
}

// ClipAt caps values outside [-bound, +bound] at the boundary, in place.
// NaN values and a NaN bound pass through untouched. Clipping at a fixed
// boundary is idempotent.
func ClipAt(vals []float64, bound float64) {
	if math.IsNaN(bound) {
		return
	}
	for i, v := range vals {
		switch {
		case math.IsNaN(v):
		case v > bound:
			vals[i] = bound
		case v < -bound:
			vals[i] = -bound
		}
	}
}
