// Package models provides core data structures for the concatenation planner.
package models

import (
	"fmt"
	"strings"
)

// SourceVideo represents one pre-existing clip eligible for concatenation.
//
// Instances are created once at catalog load and never mutated afterwards.
// The planner only reasons over ID and Duration; Path is carried through
// for downstream tooling (frame sampling, script generation) and is never
// interpreted by the planning core.
//
// Use NewSourceVideo to create a validated instance.
type SourceVideo struct {
	ID       string  `json:"video_id"`
	Duration float64 `json:"duration"`
	Path     string  `json:"path"`
}

// NewSourceVideo creates a new SourceVideo with validation.
//
// Returns an error if the parameters are invalid:
//   - ID cannot be empty or whitespace-only
//   - Duration must be greater than 0
//
// Example:
//
//	video, err := models.NewSourceVideo("clip_001", 12.5, "/videos/clip_001.mp4")
//	if err != nil {
//	    log.Fatal(err)
//	}
func NewSourceVideo(id string, duration float64, path string) (*SourceVideo, error) {
	v := &SourceVideo{
		ID:       id,
		Duration: duration,
		Path:     path,
	}
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("invalid source video: %w", err)
	}
	return v, nil
}

// Validate checks if the SourceVideo has valid data.
//
// Returns an error if:
//   - ID is empty or whitespace-only
//   - Duration is not positive
func (v *SourceVideo) Validate() error {
	if strings.TrimSpace(v.ID) == "" {
		return fmt.Errorf("video_id cannot be empty")
	}

	if v.Duration <= 0 {
		return fmt.Errorf("duration must be greater than 0")
	}

	return nil
}
