package returns

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rickgao/fomc-event-study/internal/model"
	"github.com/rickgao/fomc-event-study/internal/series"
)

const anchorSec = int64(1_702_495_800)

func buildSeries(t *testing.T, points map[int64]string) *series.PriceSeries {
	t.Helper()
	ticks := make([]model.Tick, 0, len(points))
	seq := int64(0)
	for sec, price := range points {
		seq++
		ticks = append(ticks, model.Tick{
			Symbol:  "ZTH4",
			TsEvent: sec * 1_000_000,
			Seq:     seq,
			Price:   decimal.RequireFromString(price),
		})
	}
	return series.Build(ticks, 1)
}

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func TestComputeSparseTape(t *testing.T) {
	// Trades 10 minutes before the anchor, at the anchor, and 601 seconds
	// after it. Nothing beyond that.
	s := buildSeries(t, map[int64]string{
		anchorSec - 601: "100.00",
		anchorSec:       "99.98",
		anchorSec + 601: "99.95",
	})
	e := New([]int{0, 600, 601, 3600}, 60)

	res := e.Compute(s, anchorSec)

	if !approx(res.PrePx, 100.00) {
		t.Errorf("PrePx = %v, want 100.00", res.PrePx)
	}

	want := []struct {
		delta float64
		basis model.Basis
	}{
		{0, model.BasisObserved},     // h=0: p1 == p0
		{0, model.BasisObserved},     // h=600: as-of resolves to the anchor print
		{-0.03, model.BasisObserved}, // h=601: the next trade has landed
		{0, model.BasisHeldFlat},     // h=3600: past the end of the data
	}
	for i, w := range want {
		v := res.Values[i]
		if v.Basis != w.basis || !approx(v.Delta, w.delta) {
			t.Errorf("horizon %d: delta %v basis %q, want %v %q",
				v.HorizonS, v.Delta, v.Basis, w.delta, w.basis)
		}
	}
}

func TestComputeNoAnchorPrice(t *testing.T) {
	// First trade of the day is after the anchor: p0 cannot resolve and
	// every horizon is unavailable, not held flat.
	s := buildSeries(t, map[int64]string{
		anchorSec + 30: "99.95",
	})
	e := New([]int{0, 25, 50}, 60)

	res := e.Compute(s, anchorSec)

	if !math.IsNaN(res.PrePx) {
		t.Errorf("PrePx = %v, want NaN", res.PrePx)
	}
	for _, v := range res.Values {
		if v.Basis != model.BasisUnavailable {
			t.Errorf("horizon %d basis = %q, want %q", v.HorizonS, v.Basis, model.BasisUnavailable)
		}
		if !math.IsNaN(v.Delta) {
			t.Errorf("horizon %d delta = %v, want NaN", v.HorizonS, v.Delta)
		}
	}
}

func TestComputeDenseTape(t *testing.T) {
	s := buildSeries(t, map[int64]string{
		anchorSec - 60: "100.10",
		anchorSec:      "100.00",
		anchorSec + 25: "100.05",
		anchorSec + 50: "99.90",
	})
	e := New([]int{0, 25, 50}, 60)

	res := e.Compute(s, anchorSec)

	if !approx(res.PrePx, 100.10) {
		t.Errorf("PrePx = %v, want 100.10", res.PrePx)
	}
	wantDeltas := []float64{0, 0.05, -0.10}
	for i, want := range wantDeltas {
		v := res.Values[i]
		if v.Basis != model.BasisObserved || !approx(v.Delta, want) {
			t.Errorf("horizon %d: delta %v basis %q, want %v observed", v.HorizonS, v.Delta, v.Basis, want)
		}
	}
}

func TestComputePrePxIndependentOfAnchor(t *testing.T) {
	// PrePx resolves even when p0 does not, and vice versa.
	s := buildSeries(t, map[int64]string{
		anchorSec: "100.00",
	})
	e := New([]int{0}, 60)

	res := e.Compute(s, anchorSec)
	if !math.IsNaN(res.PrePx) {
		t.Errorf("PrePx = %v, want NaN (no trade before the anchor)", res.PrePx)
	}
	if res.Values[0].Basis != model.BasisObserved {
		t.Errorf("h=0 basis = %q, want observed", res.Values[0].Basis)
	}
}

func TestHorizons(t *testing.T) {
	hs := []int{0, 25, 50}
	e := New(hs, 60)
	got := e.Horizons()
	if len(got) != len(hs) {
		t.Fatalf("Horizons() len = %d, want %d", len(got), len(hs))
	}
	for i := range hs {
		if got[i] != hs[i] {
			t.Errorf("Horizons()[%d] = %d, want %d", i, got[i], hs[i])
		}
	}
}
