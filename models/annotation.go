package models

import "strings"

// Segment is one annotated time span inside a concatenated video. The JSON
// field names match the annotation format consumed by training tooling.
type Segment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Summary string  `json:"summary"`
}

// Annotation holds the full semantic annotation for one concatenated video:
// one segment per member clip, in playback order.
type Annotation struct {
	Video string    `json:"video"`
	Data  []Segment `json:"data"`
}

// HasEmptySummary reports whether any segment carries a blank summary.
// Records with blank summaries are dropped before training to keep data
// quality up.
func (a *Annotation) HasEmptySummary() bool {
	for _, seg := range a.Data {
		if strings.TrimSpace(seg.Summary) == "" {
			return true
		}
	}
	return false
}
