// Package returns computes multi-horizon forward price deltas against an
// as-of price series.
package returns

import (
	"math"

	"github.com/rickgao/fomc-event-study/internal/model"
	"github.com/rickgao/fomc-event-study/internal/series"
)

// Engine computes forward returns for a fixed horizon list. Horizons are
// evaluated independently per row; they share only the anchor price p0.
type Engine struct {
	horizons       []int
	preLevelOffset int // seconds before the anchor for the pre-event level
}

// New creates an Engine. horizons are offsets in seconds, ascending,
// typically including 0.
func New(horizons []int, preLevelOffset int) *Engine {
	return &Engine{horizons: horizons, preLevelOffset: preLevelOffset}
}

// Horizons returns the configured horizon list.
func (e *Engine) Horizons() []int {
	return e.horizons
}

// Result holds the per-row forward-return computation.
type Result struct {
	PrePx  float64 // Price level preLevelOffset seconds before the anchor; NaN when unavailable
	Values []model.HorizonValue
}

// Compute resolves one row against a pre-built series. p0 is the as-of
// price at anchorSec; when p0 is unavailable every horizon is unavailable.
// When p0 resolves but no trade exists at or before anchorSec+h, the
// horizon is held flat: delta 0 with BasisHeldFlat, so the consumer can
// tell it apart from an observed zero.
func (e *Engine) Compute(s *series.PriceSeries, anchorSec int64) Result {
	res := Result{
		PrePx:  math.NaN(),
		Values: make([]model.HorizonValue, len(e.horizons)),
	}

	if pre, ok := s.At(anchorSec - int64(e.preLevelOffset)); ok {
		res.PrePx = pre
	}

	p0, ok := s.At(anchorSec)
	if !ok {
		for i, h := range e.horizons {
			res.Values[i] = model.HorizonValue{HorizonS: h, Delta: math.NaN(), Basis: model.BasisUnavailable}
		}
		return res
	}

	for i, h := range e.horizons {
		target := anchorSec + int64(h)
		if !s.Covers(target) {
			// The data ends before the horizon timestamp: the forward
			// price is not known yet, which is not the same as unchanged.
			res.Values[i] = model.HorizonValue{HorizonS: h, Delta: 0, Basis: model.BasisHeldFlat}
			continue
		}
		p1, _ := s.At(target) // covered and p0 resolved, so this cannot miss
		res.Values[i] = model.HorizonValue{HorizonS: h, Delta: p1 - p0, Basis: model.BasisObserved}
	}
	return res
}
