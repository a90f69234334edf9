package series

import (
	"errors"
	"fmt"
	"regexp"
	"sort"

	"github.com/rickgao/fomc-event-study/internal/model"
)

// ErrDataUnavailable marks a recoverable data gap: no ticks for a
// requested (instrument, day), or an empty series after filtering. Callers
// record a skip and continue; it never aborts a batch.
var ErrDataUnavailable = errors.New("tick data unavailable")

// PriceSeries is a time-ordered mapping from epoch second to the last
// observed price within that second, for one (instrument, calendar day).
// Keys are strictly increasing. Immutable after Build.
type PriceSeries struct {
	secs   []int64
	prices []float64
}

// Build constructs a PriceSeries from raw ticks. Ticks are ordered by
// (TsEvent, Seq); within each epoch-second bucket only the last tick's
// price is kept. scale rescales raw prices (1 for most roots, 0.01 for
// ES). The input slice is not modified.
func Build(ticks []model.Tick, scale float64) *PriceSeries {
	if scale == 0 {
		scale = 1
	}

	ordered := make([]model.Tick, len(ticks))
	copy(ordered, ticks)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].TsEvent != ordered[j].TsEvent {
			return ordered[i].TsEvent < ordered[j].TsEvent
		}
		return ordered[i].Seq < ordered[j].Seq
	})

	s := &PriceSeries{
		secs:   make([]int64, 0, len(ordered)),
		prices: make([]float64, 0, len(ordered)),
	}
	for _, t := range ordered {
		sec := t.TsEvent / 1_000_000 // µs → s, floor
		price := t.Price.InexactFloat64() * scale
		if n := len(s.secs); n > 0 && s.secs[n-1] == sec {
			s.prices[n-1] = price // later tick in the same second wins
			continue
		}
		s.secs = append(s.secs, sec)
		s.prices = append(s.prices, price)
	}
	return s
}

// Len returns the number of one-second buckets in the series.
func (s *PriceSeries) Len() int {
	return len(s.secs)
}

// At resolves the as-of price for sec: the price at the largest key <= sec.
// Returns false when no tick exists at or before sec.
func (s *PriceSeries) At(sec int64) (float64, bool) {
	// Predecessor search: first index with key > sec.
	i := sort.Search(len(s.secs), func(i int) bool { return s.secs[i] > sec })
	if i == 0 {
		return 0, false
	}
	return s.prices[i-1], true
}

// Covers reports whether the series extends to sec: at least one tick was
// observed at or after it. A forward lookup past the end of the data is
// not a resolvable price, even though At would still return the final
// observation.
func (s *PriceSeries) Covers(sec int64) bool {
	n := len(s.secs)
	return n > 0 && s.secs[n-1] >= sec
}

// LastIn returns the last observed price within the closed second window
// [start, end]. Returns false when no tick falls inside the window.
func (s *PriceSeries) LastIn(start, end int64) (float64, bool) {
	i := sort.Search(len(s.secs), func(i int) bool { return s.secs[i] > end })
	if i == 0 || s.secs[i-1] < start {
		return 0, false
	}
	return s.prices[i-1], true
}

// FilterSingleLeg keeps only ticks whose symbol is a single-leg monthly
// contract of root (e.g., "ZQX3"). Calendar-spread and multi-leg
// notations ("ZQ:BF F5-G5-J5") are dropped. An invalid root pattern is a
// setup defect and returns an error.
func FilterSingleLeg(ticks []model.Tick, root string) ([]model.Tick, error) {
	re, err := regexp.Compile("^" + regexp.QuoteMeta(root) + `[A-Z]\d$`)
	if err != nil {
		return nil, fmt.Errorf("compile symbol pattern for root %q: %w", root, err)
	}

	out := make([]model.Tick, 0, len(ticks))
	for _, t := range ticks {
		if re.MatchString(t.Symbol) {
			out = append(out, t)
		}
	}
	return out, nil
}
