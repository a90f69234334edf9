package series

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rickgao/fomc-event-study/internal/model"
)

// TickSource loads raw ticks for one (instrument root, calendar day).
// Implementations return ErrDataUnavailable (possibly wrapped) when no
// ticks exist for the day.
type TickSource interface {
	DayTicks(ctx context.Context, root, day string) ([]model.Tick, error)
}

type dayKey struct {
	day  string
	root string
}

type seriesKey struct {
	day    string
	root   string
	symbol string // "" for the whole-root series
}

type dayEntry struct {
	once  sync.Once
	ticks []model.Tick
	err   error
}

type seriesEntry struct {
	once sync.Once
	ps   *PriceSeries
	err  error
}

// Store builds and caches price series for a batch run. Each (day, root)
// is loaded and filtered once regardless of how many workers ask for it;
// built series are shared read-only.
type Store struct {
	src    TickSource
	scales map[string]float64 // per-root price scale, missing root = 1
	logger *slog.Logger

	mu     sync.Mutex
	days   map[dayKey]*dayEntry
	series map[seriesKey]*seriesEntry
}

// NewStore creates a Store over the given tick source.
func NewStore(src TickSource, scales map[string]float64, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		src:    src,
		scales: scales,
		logger: logger,
		days:   make(map[dayKey]*dayEntry),
		series: make(map[seriesKey]*seriesEntry),
	}
}

// Day returns the price series over all single-leg contracts of root on
// the given day (the forward-return series).
func (st *Store) Day(ctx context.Context, day, root string) (*PriceSeries, error) {
	return st.get(ctx, day, root, "")
}

// Symbol returns the price series restricted to one contract symbol (the
// surprise-window series).
func (st *Store) Symbol(ctx context.Context, day, root, symbol string) (*PriceSeries, error) {
	return st.get(ctx, day, root, symbol)
}

func (st *Store) get(ctx context.Context, day, root, symbol string) (*PriceSeries, error) {
	k := seriesKey{day: day, root: root, symbol: symbol}

	st.mu.Lock()
	e, ok := st.series[k]
	if !ok {
		e = &seriesEntry{}
		st.series[k] = e
	}
	st.mu.Unlock()

	e.once.Do(func() {
		ticks, err := st.dayTicks(ctx, day, root)
		if err != nil {
			e.err = err
			return
		}
		if symbol != "" {
			sub := make([]model.Tick, 0, len(ticks))
			for _, t := range ticks {
				if t.Symbol == symbol {
					sub = append(sub, t)
				}
			}
			ticks = sub
		}
		if len(ticks) == 0 {
			if symbol == "" {
				e.err = fmt.Errorf("%w: no single-leg ticks for %s on %s", ErrDataUnavailable, root, day)
			} else {
				e.err = fmt.Errorf("%w: no ticks for %s on %s", ErrDataUnavailable, symbol, day)
			}
			return
		}
		e.ps = Build(ticks, st.scale(root))
		st.logger.Debug("price series built",
			"day", day,
			"root", root,
			"symbol", symbol,
			"buckets", e.ps.Len(),
		)
	})
	return e.ps, e.err
}

// dayTicks loads and filters the raw day once per (day, root).
func (st *Store) dayTicks(ctx context.Context, day, root string) ([]model.Tick, error) {
	k := dayKey{day: day, root: root}

	st.mu.Lock()
	e, ok := st.days[k]
	if !ok {
		e = &dayEntry{}
		st.days[k] = e
	}
	st.mu.Unlock()

	e.once.Do(func() {
		ticks, err := st.src.DayTicks(ctx, root, day)
		if err != nil {
			e.err = err
			return
		}
		e.ticks, e.err = FilterSingleLeg(ticks, root)
	})
	return e.ticks, e.err
}

func (st *Store) scale(root string) float64 {
	if s, ok := st.scales[root]; ok && s != 0 {
		return s
	}
	return 1
}
