package inputs

import (
	"strings"
	"testing"
)

func TestParseMeetings(t *testing.T) {
	csv := `video_id,meeting_date
abc123,2023-12-13
def456,2023-11-01
dup789,2023-12-13
`
	meetings, err := ParseMeetings(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseMeetings failed: %v", err)
	}

	if len(meetings) != 2 {
		t.Fatalf("got %d meetings, want 2 (duplicate date collapsed)", len(meetings))
	}
	if meetings[0].ID != "2023-11-01" || meetings[1].ID != "2023-12-13" {
		t.Errorf("meetings not sorted by date: %s, %s", meetings[0].ID, meetings[1].ID)
	}
	if meetings[1].VideoID != "dup789" {
		t.Errorf("duplicate date kept VideoID %q, want last row dup789", meetings[1].VideoID)
	}
}

func TestParseMeetingsHeaderCaseInsensitive(t *testing.T) {
	csv := `Video_ID, Meeting_Date
abc,2023-12-13
`
	meetings, err := ParseMeetings(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseMeetings failed: %v", err)
	}
	if len(meetings) != 1 || meetings[0].ID != "2023-12-13" {
		t.Errorf("meetings = %v, want one for 2023-12-13", meetings)
	}
}

func TestParseMeetingsMissingColumn(t *testing.T) {
	csv := `video_id,date
abc,2023-12-13
`
	_, err := ParseMeetings(strings.NewReader(csv))
	if err == nil {
		t.Fatal("ParseMeetings accepted a header without meeting_date")
	}
	if !strings.Contains(err.Error(), "meeting_date") {
		t.Errorf("error %q does not name the missing column", err)
	}
}

func TestParseSegments(t *testing.T) {
	csv := `meeting_id,segment_id,start_offset_s,emotion
2023-12-13,2,150,Happy
2023-12-13,1,30,NEUTRAL
2023-11-01,1,0,anxious
2023-12-13,1,45,surprise
`
	segments, err := ParseSegments(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseSegments failed: %v", err)
	}

	if len(segments) != 3 {
		t.Fatalf("got %d segments, want 3 (duplicate key collapsed)", len(segments))
	}
	if segments[0].MeetingID != "2023-11-01" {
		t.Errorf("segments[0] = %s, want 2023-11-01 first", segments[0].MeetingID)
	}
	// Duplicate (2023-12-13, 1) keeps the last row.
	s := segments[1]
	if s.MeetingID != "2023-12-13" || s.SegmentID != 1 || s.StartOffsetS != 45 || s.Emotion != "surprise" {
		t.Errorf("segments[1] = %+v, want the last duplicate row", s)
	}
	if segments[2].Emotion != "happy" {
		t.Errorf("emotion %q, want lowercased happy", segments[2].Emotion)
	}
}

func TestParseSegmentsBadOffset(t *testing.T) {
	csv := `meeting_id,segment_id,start_offset_s,emotion
2023-12-13,1,soon,neutral
`
	if _, err := ParseSegments(strings.NewReader(csv)); err == nil {
		t.Fatal("ParseSegments accepted a non-numeric offset")
	}
}

func TestParseSegmentsMissingColumn(t *testing.T) {
	csv := `meeting_id,segment_id,emotion
2023-12-13,1,neutral
`
	if _, err := ParseSegments(strings.NewReader(csv)); err == nil {
		t.Fatal("ParseSegments accepted a header without start_offset_s")
	}
}
