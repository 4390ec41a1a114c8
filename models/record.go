package models

import (
	"fmt"
	"math"
	"strings"
)

// boundaryEpsilon is the tolerance used when comparing derived time
// boundaries. Boundaries are built by summing float64 durations, so exact
// equality checks would reject records over accumulated rounding.
const boundaryEpsilon = 1e-6

// Boundary marks the time span one source video occupies inside a
// concatenated video. EndTime - StartTime equals the source video's
// duration, and consecutive boundaries are contiguous by construction.
type Boundary struct {
	VideoID   string  `json:"video_id"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// ConcatRecord describes one planned concatenated video: the ordered member
// clips laid end-to-end with their derived time boundaries.
//
// Records are immutable once emitted by the planner. The JSON field names
// match the metadata format consumed by the downstream annotation and
// script tooling.
//
// Use NewConcatRecord to derive a validated record from an ordered member
// list.
type ConcatRecord struct {
	ConcatVideo   string     `json:"concat_video"`
	TotalDuration float64    `json:"total_duration"`
	Boundaries    []Boundary `json:"boundaries"`
	Videos        []string   `json:"videos"`
}

// NewConcatRecord builds a ConcatRecord from an ordered list of member
// videos. Boundaries and the total duration are derived arithmetically:
// the first member starts at 0 and each subsequent member starts where the
// previous one ended.
//
// Returns an error if name is empty, members is empty, or any member fails
// validation.
//
// Example:
//
//	record, err := models.NewConcatRecord("concat_00000.mp4", members)
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewConcatRecord(name string, members []SourceVideo) (*ConcatRecord, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("invalid concat record: name cannot be empty")
	}

	if len(members) == 0 {
		return nil, fmt.Errorf("invalid concat record: member list is empty")
	}

	boundaries := make([]Boundary, 0, len(members))
	videoIDs := make([]string, 0, len(members))
	current := 0.0

	for i, member := range members {
		if err := member.Validate(); err != nil {
			return nil, fmt.Errorf("invalid concat record: member %d: %w", i, err)
		}

		boundaries = append(boundaries, Boundary{
			VideoID:   member.ID,
			StartTime: current,
			EndTime:   current + member.Duration,
		})
		videoIDs = append(videoIDs, member.ID)
		current += member.Duration
	}

	return &ConcatRecord{
		ConcatVideo:   name,
		TotalDuration: current,
		Boundaries:    boundaries,
		Videos:        videoIDs,
	}, nil
}

// MemberCount returns the number of source videos in the record.
func (r *ConcatRecord) MemberCount() int {
	return len(r.Boundaries)
}

// Validate checks internal consistency of the record.
//
// Returns an error if:
//   - the record has no boundaries
//   - the first boundary does not start at 0
//   - any boundary is not contiguous with its predecessor
//   - any boundary has a non-positive span
//   - TotalDuration does not match the last boundary's end time
//   - the member id list does not match the boundary sequence
func (r *ConcatRecord) Validate() error {
	if len(r.Boundaries) == 0 {
		return fmt.Errorf("record has no boundaries")
	}

	if len(r.Videos) != len(r.Boundaries) {
		return fmt.Errorf("member id count %d does not match boundary count %d",
			len(r.Videos), len(r.Boundaries))
	}

	if math.Abs(r.Boundaries[0].StartTime) > boundaryEpsilon {
		return fmt.Errorf("first boundary must start at 0, got %.6f", r.Boundaries[0].StartTime)
	}

	for i, b := range r.Boundaries {
		if b.EndTime-b.StartTime <= 0 {
			return fmt.Errorf("boundary %d has non-positive span: %.6f to %.6f",
				i, b.StartTime, b.EndTime)
		}

		if b.VideoID != r.Videos[i] {
			return fmt.Errorf("boundary %d video id %q does not match member list entry %q",
				i, b.VideoID, r.Videos[i])
		}

		if i > 0 {
			prevEnd := r.Boundaries[i-1].EndTime
			if math.Abs(b.StartTime-prevEnd) > boundaryEpsilon {
				return fmt.Errorf("boundary %d is not contiguous: starts at %.6f, previous ends at %.6f",
					i, b.StartTime, prevEnd)
			}
		}
	}

	lastEnd := r.Boundaries[len(r.Boundaries)-1].EndTime
	if math.Abs(r.TotalDuration-lastEnd) > boundaryEpsilon {
		return fmt.Errorf("total_duration %.6f does not match last boundary end %.6f",
			r.TotalDuration, lastEnd)
	}

	return nil
}
