package planner

import (
	"fmt"
	"strings"
)

// ReuseMode controls how the planner ranks eligible videos when reuse is
// allowed.
type ReuseMode string

const (
	// ReuseBalanced prefers the least-used video, with ties broken by
	// catalog order.
	ReuseBalanced ReuseMode = "balanced"

	// ReuseRandom shuffles the eligible set with the run's seeded stream.
	ReuseRandom ReuseMode = "random"
)

// ReuseModeValues returns the valid reuse modes.
func ReuseModeValues() []ReuseMode {
	return []ReuseMode{ReuseBalanced, ReuseRandom}
}

// IsValidReuseMode checks if mode is a known reuse mode.
func IsValidReuseMode(mode ReuseMode) bool {
	for _, valid := range ReuseModeValues() {
		if mode == valid {
			return true
		}
	}
	return false
}

// Options holds every knob the planning algorithm consumes.
//
// Seed controls the single pseudo-random stream the planner owns; two runs
// with identical options and catalog produce identical plans.
type Options struct {
	// TotalConcats is the target number of records to generate. The
	// emitted corpus may be smaller if individual records are abandoned.
	TotalConcats int

	// MinVideosPerConcat and MaxVideosPerConcat bound the member count of
	// each record. The per-record target is drawn uniformly (inclusive)
	// from this range.
	MinVideosPerConcat int
	MaxVideosPerConcat int

	// TargetDurationMin and TargetDurationMax define the inclusive total
	// duration window a record must land in to be emitted.
	TargetDurationMin float64
	TargetDurationMax float64

	// AllowReuse permits a video to appear in more than one record. When
	// false, every video is used at most once across the whole corpus.
	AllowReuse bool

	// Mode selects the ranking policy applied to eligible candidates.
	Mode ReuseMode

	// MaxUsageRatio caps one video's lifetime usage at
	// TotalConcats * MaxUsageRatio when reuse is allowed. Zero or negative
	// means uncapped.
	MaxUsageRatio float64

	// Seed initializes the planner's random stream.
	Seed int64
}

// Validate checks if the options are internally consistent.
func (o *Options) Validate() error {
	var errors []string

	if o.TotalConcats <= 0 {
		errors = append(errors, "total concats must be positive")
	}

	if o.MinVideosPerConcat <= 0 {
		errors = append(errors, "min videos per concat must be positive")
	}

	if o.MaxVideosPerConcat < o.MinVideosPerConcat {
		errors = append(errors, "max videos per concat cannot be less than min")
	}

	if o.TargetDurationMin <= 0 {
		errors = append(errors, "target duration min must be positive")
	}

	if o.TargetDurationMax < o.TargetDurationMin {
		errors = append(errors, "target duration max cannot be less than min")
	}

	if !IsValidReuseMode(o.Mode) {
		errors = append(errors, fmt.Sprintf("invalid reuse mode '%s', must be one of: balanced, random", o.Mode))
	}

	if len(errors) > 0 {
		return fmt.Errorf("planner options: %s", strings.Join(errors, ", "))
	}

	return nil
}
