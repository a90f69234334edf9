package tickstore

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rickgao/fomc-event-study/internal/model"
)

func TestTransform(t *testing.T) {
	in := model.Tick{
		Symbol:  "ZQX3",
		TsEvent: 1698856200123456,
		Seq:     42,
		Price:   decimal.RequireFromString("94.6425"),
	}

	r := transform("ZQ", "2023-11-01", in)

	if r.Root != "ZQ" || r.Day != "2023-11-01" {
		t.Errorf("key = %s/%s, want ZQ/2023-11-01", r.Root, r.Day)
	}
	if r.Symbol != "ZQX3" || r.TsEvent != 1698856200123456 || r.Seq != 42 {
		t.Errorf("identity = %s/%d/%d", r.Symbol, r.TsEvent, r.Seq)
	}
	// Prices travel as decimal strings so NUMERIC storage is exact.
	if r.Price != "94.6425" {
		t.Errorf("Price = %q, want 94.6425", r.Price)
	}
}
