package provider

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/rickgao/fomc-event-study/internal/model"
)

// tradesResponse is the wire shape of a get_range trades pull.
type tradesResponse struct {
	Trades []tradeWire `json:"trades"`
}

// tradeWire is one raw trade record. Event timestamps are nanoseconds
// since epoch; prices are decimal strings.
type tradeWire struct {
	Symbol  string `json:"symbol"`
	TsEvent int64  `json:"ts_event"`
	Seq     int64  `json:"sequence"`
	Price   string `json:"price"`
}

// GetDayTrades fetches all trades for a parent root symbol on one
// calendar day (UTC pull window set on the client). Returns the ticks in
// provider order; an empty day returns an empty slice, not an error.
func (c *Client) GetDayTrades(ctx context.Context, root, day string) ([]model.Tick, error) {
	query := url.Values{}
	query.Set("dataset", c.dataset)
	query.Set("symbols", root+".FUT")
	query.Set("stype_in", "parent")
	query.Set("schema", "trades")
	query.Set("start", fmt.Sprintf("%sT%sZ", day, c.windowStartUTC))
	query.Set("end", fmt.Sprintf("%sT%sZ", day, c.windowEndUTC))

	var resp tradesResponse
	if err := c.get(ctx, "/v0/timeseries.get_range", query, &resp); err != nil {
		return nil, fmt.Errorf("get day trades %s %s: %w", root, day, err)
	}

	ticks := make([]model.Tick, 0, len(resp.Trades))
	for _, w := range resp.Trades {
		price, err := decimal.NewFromString(w.Price)
		if err != nil {
			return nil, fmt.Errorf("parse price %q for %s: %w", w.Price, w.Symbol, err)
		}
		ticks = append(ticks, model.Tick{
			Symbol:  w.Symbol,
			TsEvent: w.TsEvent / 1_000, // ns → µs
			Seq:     w.Seq,
			Price:   price,
		})
	}

	c.logger.Debug("day trades fetched", "root", root, "day", day, "ticks", len(ticks))
	return ticks, nil
}
