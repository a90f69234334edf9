// Package inputs loads the meeting list and the segment emotion table
// from CSV. Missing required columns are setup defects and abort the run.
package inputs

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/rickgao/fomc-event-study/internal/model"
)

// header maps column names to indices, case-insensitively.
type header map[string]int

func readHeader(rec []string, required []string, what string) (header, error) {
	h := make(header, len(rec))
	for i, name := range rec {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, name := range required {
		if _, ok := h[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s csv missing required columns: %s", what, strings.Join(missing, ", "))
	}
	return h, nil
}

// LoadMeetings reads the meeting map CSV (columns: video_id,
// meeting_date). Dates are deduplicated and returned sorted ascending.
func LoadMeetings(path string) ([]model.Meeting, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open meetings csv: %w", err)
	}
	defer f.Close()
	return ParseMeetings(f)
}

// ParseMeetings parses the meeting map from a reader.
func ParseMeetings(r io.Reader) ([]model.Meeting, error) {
	cr := csv.NewReader(r)
	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read meetings header: %w", err)
	}
	h, err := readHeader(head, []string{"video_id", "meeting_date"}, "meetings")
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]model.Meeting)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read meetings row: %w", err)
		}
		date := strings.TrimSpace(rec[h["meeting_date"]])
		if date == "" {
			continue
		}
		byDate[date] = model.Meeting{
			ID:      date,
			VideoID: strings.TrimSpace(rec[h["video_id"]]),
		}
	}

	meetings := make([]model.Meeting, 0, len(byDate))
	for _, m := range byDate {
		meetings = append(meetings, m)
	}
	sort.Slice(meetings, func(i, j int) bool { return meetings[i].ID < meetings[j].ID })
	return meetings, nil
}

// LoadSegments reads the segment emotion CSV (columns: meeting_id,
// segment_id, start_offset_s, emotion). Duplicate (meeting, segment)
// pairs keep the last row; labels are lowercased.
func LoadSegments(path string) ([]model.Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open segments csv: %w", err)
	}
	defer f.Close()
	return ParseSegments(f)
}

// ParseSegments parses the segment table from a reader.
func ParseSegments(r io.Reader) ([]model.Segment, error) {
	cr := csv.NewReader(r)
	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read segments header: %w", err)
	}
	h, err := readHeader(head, []string{"meeting_id", "segment_id", "start_offset_s", "emotion"}, "segments")
	if err != nil {
		return nil, err
	}

	type segKey struct {
		meeting string
		segment int
	}
	byKey := make(map[segKey]model.Segment)
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read segments row: %w", err)
		}
		line++

		segID, err := strconv.Atoi(strings.TrimSpace(rec[h["segment_id"]]))
		if err != nil {
			return nil, fmt.Errorf("segments line %d: bad segment_id: %w", line, err)
		}
		offset, err := strconv.Atoi(strings.TrimSpace(rec[h["start_offset_s"]]))
		if err != nil {
			return nil, fmt.Errorf("segments line %d: bad start_offset_s: %w", line, err)
		}

		seg := model.Segment{
			MeetingID:    strings.TrimSpace(rec[h["meeting_id"]]),
			SegmentID:    segID,
			StartOffsetS: offset,
			Emotion:      strings.ToLower(strings.TrimSpace(rec[h["emotion"]])),
		}
		byKey[segKey{seg.MeetingID, seg.SegmentID}] = seg
	}

	segments := make([]model.Segment, 0, len(byKey))
	for _, s := range byKey {
		segments = append(segments, s)
	}
	sort.Slice(segments, func(i, j int) bool {
		if segments[i].MeetingID != segments[j].MeetingID {
			return segments[i].MeetingID < segments[j].MeetingID
		}
		return segments[i].SegmentID < segments[j].SegmentID
	})
	return segments, nil
}
