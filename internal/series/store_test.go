package series

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rickgao/fomc-event-study/internal/model"
)

// fakeSource serves canned ticks keyed by "root|day" and counts loads.
type fakeSource struct {
	mu    sync.Mutex
	ticks map[string][]model.Tick
	calls int
}

func (f *fakeSource) DayTicks(_ context.Context, root, day string) ([]model.Tick, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	ts, ok := f.ticks[root+"|"+day]
	if !ok || len(ts) == 0 {
		return nil, fmt.Errorf("%w: no stored ticks for %s %s", ErrDataUnavailable, root, day)
	}
	return ts, nil
}

func TestStoreLoadsEachDayOnce(t *testing.T) {
	src := &fakeSource{ticks: map[string][]model.Tick{
		"ZQ|2023-11-01": {
			tick("ZQX3", baseSec, 0, 1, "94.66"),
			tick("ZQZ3", baseSec+1, 0, 2, "94.70"),
		},
	}}
	st := NewStore(src, nil, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := st.Day(ctx, "2023-11-01", "ZQ"); err != nil {
			t.Fatalf("Day failed: %v", err)
		}
	}
	if _, err := st.Symbol(ctx, "2023-11-01", "ZQ", "ZQX3"); err != nil {
		t.Fatalf("Symbol failed: %v", err)
	}

	if src.calls != 1 {
		t.Errorf("source loaded %d times, want 1", src.calls)
	}
}

func TestStoreSymbolRestricts(t *testing.T) {
	src := &fakeSource{ticks: map[string][]model.Tick{
		"ZQ|2023-11-01": {
			tick("ZQX3", baseSec, 0, 1, "94.66"),
			tick("ZQZ3", baseSec, 0, 2, "94.70"),
		},
	}}
	st := NewStore(src, nil, nil)

	s, err := st.Symbol(context.Background(), "2023-11-01", "ZQ", "ZQX3")
	if err != nil {
		t.Fatalf("Symbol failed: %v", err)
	}
	if got, _ := s.At(baseSec); got != 94.66 {
		t.Errorf("At(base) = %v, want 94.66 (ZQX3 only)", got)
	}
}

func TestStoreMissingSymbol(t *testing.T) {
	src := &fakeSource{ticks: map[string][]model.Tick{
		"ZQ|2023-11-01": {tick("ZQX3", baseSec, 0, 1, "94.66")},
	}}
	st := NewStore(src, nil, nil)

	_, err := st.Symbol(context.Background(), "2023-11-01", "ZQ", "ZQZ3")
	if !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("Symbol for absent contract = %v, want ErrDataUnavailable", err)
	}
}

func TestStoreMissingDay(t *testing.T) {
	st := NewStore(&fakeSource{}, nil, nil)

	_, err := st.Day(context.Background(), "2023-11-01", "ZQ")
	if !errors.Is(err, ErrDataUnavailable) {
		t.Errorf("Day with no ticks = %v, want ErrDataUnavailable", err)
	}
}

func TestStoreAppliesRootScale(t *testing.T) {
	src := &fakeSource{ticks: map[string][]model.Tick{
		"ES|2023-11-01": {tick("ESZ3", baseSec, 0, 1, "450025")},
	}}
	st := NewStore(src, map[string]float64{"ES": 0.01}, nil)

	s, err := st.Day(context.Background(), "2023-11-01", "ES")
	if err != nil {
		t.Fatalf("Day failed: %v", err)
	}
	if got, _ := s.At(baseSec); got != 4500.25 {
		t.Errorf("At(base) = %v, want 4500.25", got)
	}
}
