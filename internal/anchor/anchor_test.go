package anchor

import (
	"errors"
	"testing"
	"time"
)

func TestMeetingAnchorStandardTime(t *testing.T) {
	c, err := New("America/New_York", "14:30")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := c.MeetingAnchor("2023-12-13")
	if err != nil {
		t.Fatalf("MeetingAnchor failed: %v", err)
	}

	want := time.Date(2023, 12, 13, 19, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("MeetingAnchor(2023-12-13) = %v, want %v", got, want)
	}
}

func TestMeetingAnchorDaylightTime(t *testing.T) {
	c, err := New("America/New_York", "14:30")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	got, err := c.MeetingAnchor("2023-06-14")
	if err != nil {
		t.Fatalf("MeetingAnchor failed: %v", err)
	}

	want := time.Date(2023, 6, 14, 18, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("MeetingAnchor(2023-06-14) = %v, want %v", got, want)
	}
}

func TestMeetingAnchorDSTGap(t *testing.T) {
	// 02:30 does not exist on the spring-forward date in US Eastern.
	c, err := New("America/New_York", "02:30")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = c.MeetingAnchor("2024-03-10")
	if !errors.Is(err, ErrAmbiguousTime) {
		t.Errorf("MeetingAnchor on DST gap = %v, want ErrAmbiguousTime", err)
	}
}

func TestMeetingAnchorBadDate(t *testing.T) {
	c, err := New("America/New_York", "14:30")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := c.MeetingAnchor("13/12/2023"); err == nil {
		t.Error("MeetingAnchor accepted a malformed date")
	}
}

func TestSegmentTime(t *testing.T) {
	c, err := New("America/New_York", "14:30")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	t0, err := c.MeetingAnchor("2023-12-13")
	if err != nil {
		t.Fatalf("MeetingAnchor failed: %v", err)
	}

	got := c.SegmentTime(t0, 125)
	want := t0.Add(125 * time.Second)
	if !got.Equal(want) {
		t.Errorf("SegmentTime(t0, 125) = %v, want %v", got, want)
	}
	if got := c.SegmentTime(t0, 0); !got.Equal(t0) {
		t.Errorf("SegmentTime(t0, 0) = %v, want t0", got)
	}
}

func TestNewRejectsBadInputs(t *testing.T) {
	if _, err := New("Not/AZone", "14:30"); err == nil {
		t.Error("New accepted an unknown timezone")
	}
	if _, err := New("America/New_York", "2:30pm"); err == nil {
		t.Error("New accepted a malformed event time")
	}
}
