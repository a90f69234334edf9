package config

import "time"

// StudyConfig is the root configuration for one batch run.
type StudyConfig struct {
	Instance InstanceConfig `yaml:"instance"`
	Database DatabaseConfig `yaml:"database"`
	Provider ProviderConfig `yaml:"provider"`
	Study    Study          `yaml:"study"`
}

// InstanceConfig identifies this run for logs and diagnostics.
type InstanceConfig struct {
	ID string `yaml:"id"`
}

// DatabaseConfig holds the TimescaleDB connection for tick data.
type DatabaseConfig struct {
	Timescale DBConfig `yaml:"timescale"`
}

// DBConfig holds a single database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// ProviderConfig holds the historical tick provider settings.
type ProviderConfig struct {
	BaseURL        string        `yaml:"base_url"`
	APIKey         string        `yaml:"api_key"`
	Dataset        string        `yaml:"dataset"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	WindowStartUTC string        `yaml:"window_start_utc"` // Per-day pull window start, "HH:MM:SS"
	WindowEndUTC   string        `yaml:"window_end_utc"`   // Per-day pull window end, "HH:MM:SS"
}

// Study holds the event-study parameters. There are no package-level
// mutable knobs anywhere in the core; everything configurable lives here
// and is passed into components at construction.
type Study struct {
	MeetingsCSV string `yaml:"meetings_csv"`
	SegmentsCSV string `yaml:"segments_csv"`
	OutDir      string `yaml:"out_dir"`

	Instruments  []string `yaml:"instruments"`   // Forward-return roots (e.g., ES, ZT)
	SurpriseRoot string   `yaml:"surprise_root"` // Fed-funds root for the surprise calc

	Horizons       []int         `yaml:"horizons"`         // Forward offsets in seconds, includes 0
	PreWindow      time.Duration `yaml:"pre_window"`       // Surprise pre-event window
	PostWindow     time.Duration `yaml:"post_window"`      // Surprise post-event window
	PreLevelOffset int           `yaml:"pre_level_offset"` // Seconds before the anchor for the pre-event price level

	// WinsorSigma caps forward-return columns at ±sigma·stdev. nil means
	// "use the default"; an explicit 0 disables capping.
	WinsorSigma *float64 `yaml:"winsor_sigma"`

	EventTime string `yaml:"event_time"` // Local wall-clock anchor, "HH:MM"
	Timezone  string `yaml:"timezone"`   // IANA zone for EventTime

	// PriceScale rescales raw tick prices per root (e.g., ES: 0.01).
	PriceScale map[string]float64 `yaml:"price_scale"`

	Labels   []string `yaml:"labels"`   // Recognized emotion labels
	Baseline string   `yaml:"baseline"` // Omitted one-hot category

	Concurrency int `yaml:"concurrency"` // Parallel (meeting, instrument) workers
}

// Sigma returns the effective winsorization sigma.
func (s Study) Sigma() float64 {
	if s.WinsorSigma == nil {
		return DefaultWinsorSigma
	}
	return *s.WinsorSigma
}

// Roots returns the union of instrument roots and the surprise root,
// deduplicated and in a stable order. This is the set of roots the tick
// loader must cover.
func (s Study) Roots() []string {
	seen := make(map[string]bool, len(s.Instruments)+1)
	roots := make([]string, 0, len(s.Instruments)+1)
	for _, r := range s.Instruments {
		if !seen[r] {
			seen[r] = true
			roots = append(roots, r)
		}
	}
	if s.SurpriseRoot != "" && !seen[s.SurpriseRoot] {
		roots = append(roots, s.SurpriseRoot)
	}
	return roots
}
