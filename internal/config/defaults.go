package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultProviderURL    = "https://hist.databento.com"
	DefaultDataset        = "GLBX.MDP3"
	DefaultAPITimeout     = 30 * time.Second
	DefaultMaxRetries     = 3
	DefaultWindowStartUTC = "08:30:00"
	DefaultWindowEndUTC   = "22:00:00"
	DefaultDBPort         = 5432
	DefaultDBSSLMode      = "prefer"
	DefaultMaxConns       = 10
	DefaultMinConns       = 2
	DefaultSurpriseRoot   = "ZQ"
	DefaultPreWindow      = 10 * time.Minute
	DefaultPostWindow     = 10 * time.Minute
	DefaultPreLevelOffset = 60
	DefaultWinsorSigma    = 3.0
	DefaultEventTime      = "14:30"
	DefaultTimezone       = "America/New_York"
	DefaultBaseline       = "neutral"
	DefaultConcurrency    = 8
	DefaultOutDir         = "reg_outputs"
)

// DefaultHorizons matches the dense sweep: 0..300s in 25s steps.
func DefaultHorizons() []int {
	horizons := make([]int, 0, 13)
	for h := 0; h <= 300; h += 25 {
		horizons = append(horizons, h)
	}
	return horizons
}

func (c *StudyConfig) applyDefaults() {
	// Provider defaults
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = DefaultProviderURL
	}
	if c.Provider.Dataset == "" {
		c.Provider.Dataset = DefaultDataset
	}
	if c.Provider.Timeout == 0 {
		c.Provider.Timeout = DefaultAPITimeout
	}
	if c.Provider.MaxRetries == 0 {
		c.Provider.MaxRetries = DefaultMaxRetries
	}
	if c.Provider.WindowStartUTC == "" {
		c.Provider.WindowStartUTC = DefaultWindowStartUTC
	}
	if c.Provider.WindowEndUTC == "" {
		c.Provider.WindowEndUTC = DefaultWindowEndUTC
	}

	// Database defaults
	applyDBDefaults(&c.Database.Timescale)

	// Study defaults
	if len(c.Study.Instruments) == 0 {
		c.Study.Instruments = []string{"ES", "ZT"}
	}
	if c.Study.SurpriseRoot == "" {
		c.Study.SurpriseRoot = DefaultSurpriseRoot
	}
	if len(c.Study.Horizons) == 0 {
		c.Study.Horizons = DefaultHorizons()
	}
	if c.Study.PreWindow == 0 {
		c.Study.PreWindow = DefaultPreWindow
	}
	if c.Study.PostWindow == 0 {
		c.Study.PostWindow = DefaultPostWindow
	}
	if c.Study.PreLevelOffset == 0 {
		c.Study.PreLevelOffset = DefaultPreLevelOffset
	}
	if c.Study.WinsorSigma == nil {
		sigma := DefaultWinsorSigma
		c.Study.WinsorSigma = &sigma
	}
	if c.Study.EventTime == "" {
		c.Study.EventTime = DefaultEventTime
	}
	if c.Study.Timezone == "" {
		c.Study.Timezone = DefaultTimezone
	}
	if c.Study.PriceScale == nil {
		// ES tick files carry prices ×100 relative to index points.
		c.Study.PriceScale = map[string]float64{"ES": 0.01}
	}
	if len(c.Study.Labels) == 0 {
		c.Study.Labels = []string{"neutral", "happy", "surprise", "anxious"}
	}
	if c.Study.Baseline == "" {
		c.Study.Baseline = DefaultBaseline
	}
	if c.Study.Concurrency == 0 {
		c.Study.Concurrency = DefaultConcurrency
	}
	if c.Study.OutDir == "" {
		c.Study.OutDir = DefaultOutDir
	}
}

func applyDBDefaults(db *DBConfig) {
	if db.Port == 0 {
		db.Port = DefaultDBPort
	}
	if db.SSLMode == "" {
		db.SSLMode = DefaultDBSSLMode
	}
	if db.MaxConns == 0 {
		db.MaxConns = DefaultMaxConns
	}
	if db.MinConns == 0 {
		db.MinConns = DefaultMinConns
	}
}
