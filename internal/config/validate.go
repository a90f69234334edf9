package config

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Validate checks that all required fields are set and values are valid.
// Validation failures are setup defects and abort the run.
func (c *StudyConfig) Validate() error {
	if c.Instance.ID == "" {
		return errors.New("instance.id is required")
	}

	if err := c.Database.Timescale.validate("database.timescale"); err != nil {
		return err
	}

	if c.Study.MeetingsCSV == "" {
		return errors.New("study.meetings_csv is required")
	}
	if c.Study.SegmentsCSV == "" {
		return errors.New("study.segments_csv is required")
	}
	if len(c.Study.Instruments) == 0 {
		return errors.New("study.instruments must name at least one root")
	}

	for i, h := range c.Study.Horizons {
		if h < 0 {
			return fmt.Errorf("study.horizons[%d] must be >= 0, got %d", i, h)
		}
		if i > 0 && h <= c.Study.Horizons[i-1] {
			return errors.New("study.horizons must be strictly increasing")
		}
	}

	if c.Study.PreWindow <= 0 {
		return errors.New("study.pre_window must be positive")
	}
	if c.Study.PostWindow <= 0 {
		return errors.New("study.post_window must be positive")
	}
	if c.Study.PreLevelOffset < 0 {
		return errors.New("study.pre_level_offset must be >= 0")
	}
	if sigma := c.Study.Sigma(); sigma < 0 {
		return fmt.Errorf("study.winsor_sigma must be >= 0, got %v", sigma)
	}

	if _, err := time.Parse("15:04", c.Study.EventTime); err != nil {
		return fmt.Errorf("study.event_time must be HH:MM, got %q", c.Study.EventTime)
	}
	if _, err := time.LoadLocation(c.Study.Timezone); err != nil {
		return fmt.Errorf("study.timezone: %w", err)
	}

	if !slices.Contains(c.Study.Labels, c.Study.Baseline) {
		return fmt.Errorf("study.baseline %q is not in study.labels", c.Study.Baseline)
	}

	if c.Study.Concurrency < 1 {
		return errors.New("study.concurrency must be >= 1")
	}

	if c.Provider.MaxRetries < 0 {
		return errors.New("provider.max_retries must be >= 0")
	}
	for _, field := range []struct{ name, val string }{
		{"provider.window_start_utc", c.Provider.WindowStartUTC},
		{"provider.window_end_utc", c.Provider.WindowEndUTC},
	} {
		if _, err := time.Parse("15:04:05", field.val); err != nil {
			return fmt.Errorf("%s must be HH:MM:SS, got %q", field.name, field.val)
		}
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
