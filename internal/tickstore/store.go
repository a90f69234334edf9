// Package tickstore persists raw futures ticks in TimescaleDB and serves
// them back per (root, day) for series construction.
//
// Schema:
//
//	CREATE TABLE ticks (
//	    root     TEXT    NOT NULL,
//	    day      DATE    NOT NULL,
//	    symbol   TEXT    NOT NULL,
//	    ts_event BIGINT  NOT NULL,  -- µs since epoch
//	    seq      BIGINT  NOT NULL,  -- provider sequence number
//	    price    NUMERIC NOT NULL,
//	    PRIMARY KEY (root, day, symbol, ts_event, seq)
//	);
//
// Inserts are append-only with ON CONFLICT DO NOTHING, so re-running the
// loader for an already-loaded day is harmless.
package tickstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rickgao/fomc-event-study/internal/model"
	"github.com/rickgao/fomc-event-study/internal/series"
)

// insertChunkSize bounds one pgx.Batch round-trip.
const insertChunkSize = 1000

// Store reads and writes the ticks table.
type Store struct {
	db     *pgxpool.Pool
	logger *slog.Logger
}

// New creates a Store.
func New(db *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// tickRow is the database shape of one tick.
type tickRow struct {
	Root    string
	Day     string
	Symbol  string
	TsEvent int64
	Seq     int64
	Price   string
}

// transform converts a model tick for storage under (root, day).
func transform(root, day string, t model.Tick) tickRow {
	return tickRow{
		Root:    root,
		Day:     day,
		Symbol:  t.Symbol,
		TsEvent: t.TsEvent,
		Seq:     t.Seq,
		Price:   t.Price.String(),
	}
}

// DayLoaded reports whether any ticks exist for (root, day).
func (s *Store) DayLoaded(ctx context.Context, root, day string) (bool, error) {
	var loaded bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM ticks WHERE root = $1 AND day = $2)`,
		root, day,
	).Scan(&loaded)
	if err != nil {
		return false, fmt.Errorf("check day loaded %s %s: %w", root, day, err)
	}
	return loaded, nil
}

// InsertDay writes one day of ticks in chunked batches. Returns the
// number of rows inserted and the number dropped as duplicates.
func (s *Store) InsertDay(ctx context.Context, root, day string, ticks []model.Tick) (inserted, conflicts int, err error) {
	start := time.Now()

	for off := 0; off < len(ticks); off += insertChunkSize {
		end := min(off+insertChunkSize, len(ticks))

		batch := &pgx.Batch{}
		for _, t := range ticks[off:end] {
			r := transform(root, day, t)
			batch.Queue(`
				INSERT INTO ticks (root, day, symbol, ts_event, seq, price)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (root, day, symbol, ts_event, seq) DO NOTHING
			`, r.Root, r.Day, r.Symbol, r.TsEvent, r.Seq, r.Price)
		}

		results := s.db.SendBatch(ctx, batch)
		for i := off; i < end; i++ {
			ct, execErr := results.Exec()
			if execErr != nil {
				results.Close()
				return inserted, conflicts, fmt.Errorf("insert ticks %s %s: %w", root, day, execErr)
			}
			if ct.RowsAffected() == 0 {
				conflicts++
			} else {
				inserted++
			}
		}
		if err := results.Close(); err != nil {
			return inserted, conflicts, fmt.Errorf("close batch %s %s: %w", root, day, err)
		}
	}

	s.logger.Debug("day inserted",
		"root", root,
		"day", day,
		"inserted", inserted,
		"conflicts", conflicts,
		"duration", time.Since(start),
	)
	return inserted, conflicts, nil
}

// DayTicks loads all ticks for (root, day) ordered by event time. An
// empty day yields series.ErrDataUnavailable, which callers treat as a
// recoverable skip.
func (s *Store) DayTicks(ctx context.Context, root, day string) ([]model.Tick, error) {
	rows, err := s.db.Query(ctx, `
		SELECT symbol, ts_event, seq, price::text
		FROM ticks
		WHERE root = $1 AND day = $2
		ORDER BY ts_event, seq
	`, root, day)
	if err != nil {
		return nil, fmt.Errorf("query ticks %s %s: %w", root, day, err)
	}
	defer rows.Close()

	var ticks []model.Tick
	for rows.Next() {
		var t model.Tick
		var price string
		if err := rows.Scan(&t.Symbol, &t.TsEvent, &t.Seq, &price); err != nil {
			return nil, fmt.Errorf("scan tick %s %s: %w", root, day, err)
		}
		t.Price, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse stored price %q: %w", price, err)
		}
		ticks = append(ticks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read ticks %s %s: %w", root, day, err)
	}

	if len(ticks) == 0 {
		return nil, fmt.Errorf("%w: no stored ticks for %s %s", series.ErrDataUnavailable, root, day)
	}
	return ticks, nil
}
