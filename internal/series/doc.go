// Package series builds per-day price series from raw ticks and answers
// as-of price queries against them.
//
// A PriceSeries is a 1-second last-trade downsample of one (instrument,
// calendar day): ticks are bucketed by epoch second and only the latest
// tick within each second survives. Series are immutable once built and
// safe for concurrent readers.
//
// The Store caches built series per (meeting, root) and per (meeting,
// root, symbol) so the many (segment × horizon) queries of one batch run
// share a single build.
package series
