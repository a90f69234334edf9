package model

import "github.com/shopspring/decimal"

// -----------------------------------------------------------------------------
// Input Types
// -----------------------------------------------------------------------------

// Tick represents one observed trade in a futures contract.
type Tick struct {
	Symbol  string          // Contract symbol (e.g., "ZQX3")
	TsEvent int64           // Provider event timestamp (µs since epoch)
	Seq     int64           // Provider sequence number (storage identity, tie-break within a µs)
	Price   decimal.Decimal // Trade price in contract points
}

// Meeting identifies one FOMC meeting day.
type Meeting struct {
	ID      string // Meeting date "YYYY-MM-DD", primary key for the batch
	VideoID string // External video id, optional
}

// Segment is one emotion-labelled press-conference video segment.
type Segment struct {
	MeetingID    string // Foreign key to Meeting
	SegmentID    int    // Segment index within the meeting video
	StartOffsetS int    // Segment start, seconds after the meeting anchor
	Emotion      string // Emotion label (lowercased on load)
}

// -----------------------------------------------------------------------------
// Output Types
// -----------------------------------------------------------------------------

// SurpriseRecord is the per-meeting fed-funds surprise. Numeric fields are
// NaN and SymbolUsed is "" when no candidate contract produced both a pre
// and a post price.
type SurpriseRecord struct {
	MeetingID         string
	T0UTC             int64  // Anchor, epoch seconds; 0 when the anchor could not be computed
	PrimarySymbol     string // Meeting-month contract
	FallbackSymbol    string // Next-month contract
	SymbolUsed        string
	PricePre          float64
	PricePost         float64
	ImpliedPre        float64 // 100 - PricePre
	ImpliedPost       float64 // 100 - PricePost
	DeltaImpliedBps   float64 // (ImpliedPost - ImpliedPre) * 100
	DaysInMonth       int
	DaysRemaining     int     // Days left in the month including the meeting day
	ScalingFactor     float64 // DaysInMonth / DaysRemaining; NaN when DaysRemaining <= 0
	TargetSurpriseBps float64 // DeltaImpliedBps * ScalingFactor
	Notes             string
}

// Basis records how a horizon price delta was obtained.
type Basis string

const (
	// BasisObserved: both the anchor price and the horizon price were found.
	BasisObserved Basis = "observed"

	// BasisHeldFlat: no trade existed at or before anchor+h, so the delta
	// is carried as 0. This is a conservative default, not a real no-move
	// observation; downstream consumers may drop or reweight these rows.
	BasisHeldFlat Basis = "held_flat"

	// BasisUnavailable: the anchor price itself could not be resolved; the
	// delta is NaN.
	BasisUnavailable Basis = "unavailable"
)

// HorizonValue is one forward price delta at a fixed horizon.
type HorizonValue struct {
	HorizonS int     // Offset from the anchor, seconds
	Delta    float64 // price(anchor+h) - price(anchor); NaN when unavailable
	Basis    Basis
}

// FeatureRow is one (meeting, segment, instrument) observation in the
// feature table handed to the external regression stage. Deltas holds one
// value per configured horizon, in configuration order.
type FeatureRow struct {
	MeetingID    string
	SegmentID    int
	Symbol       string // Instrument root (e.g., "ES")
	AnchorUTC    int64  // Segment anchor, epoch seconds
	Emotion      string
	IsNonNeutral int     // 1 when Emotion differs from the baseline label
	PrePx        float64 // Pre-event price level; NaN when unavailable
	Deltas       []HorizonValue
}
