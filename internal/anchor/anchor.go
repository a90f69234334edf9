// Package anchor computes meeting event anchors: a fixed local wall-clock
// time on the meeting date (14:30 US Eastern by default), converted to
// UTC with DST handled by the zone database.
package anchor

import (
	"errors"
	"fmt"
	"time"
)

// ErrAmbiguousTime marks a local anchor time that cannot be resolved
// unambiguously on the meeting date (it falls in a DST gap). The single
// meeting is marked unavailable rather than guessing.
var ErrAmbiguousTime = errors.New("ambiguous local anchor time")

// Clock derives UTC anchors from meeting dates.
type Clock struct {
	loc    *time.Location
	hour   int
	minute int
}

// New creates a Clock for the given IANA timezone and "HH:MM" local time.
func New(timezone, localTime string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	tod, err := time.Parse("15:04", localTime)
	if err != nil {
		return nil, fmt.Errorf("parse event time %q: %w", localTime, err)
	}
	return &Clock{loc: loc, hour: tod.Hour(), minute: tod.Minute()}, nil
}

// MeetingAnchor returns the UTC anchor t0 for a "YYYY-MM-DD" meeting date.
func (c *Clock) MeetingAnchor(meetingDate string) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", meetingDate, c.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse meeting date %q: %w", meetingDate, err)
	}

	t := time.Date(d.Year(), d.Month(), d.Day(), c.hour, c.minute, 0, 0, c.loc)

	// time.Date normalizes wall-clock times that do not exist on a DST
	// transition day; a shifted round-trip means the anchor is not
	// representable and the meeting must be skipped.
	if t.Hour() != c.hour || t.Minute() != c.minute {
		return time.Time{}, fmt.Errorf("%w: %02d:%02d on %s", ErrAmbiguousTime, c.hour, c.minute, meetingDate)
	}

	return t.UTC(), nil
}

// SegmentTime returns the UTC timestamp of a segment that starts offsetS
// seconds after the meeting anchor.
func (c *Clock) SegmentTime(t0 time.Time, offsetS int) time.Time {
	return t0.Add(time.Duration(offsetS) * time.Second)
}
