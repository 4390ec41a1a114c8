package config

import "concatplan/planner"

// Config holds all planner pipeline configuration options
type Config struct {
	// Input: either pre-probed metadata or a directory to scan
	VideoMetadata string `yaml:"video_metadata"` // JSON metadata of source videos
	InputDir      string `yaml:"input_dir"`      // Directory of .mp4 files to probe (used when metadata is absent)

	// Output locations
	OutputDir string `yaml:"output_dir"` // Where metadata, scripts and annotations land

	// Planning settings
	Concat ConcatConfig `yaml:"concat"`

	// Frame sampling settings
	Sampling SamplingConfig `yaml:"sampling"`

	// Transition generation settings
	Transitions TransitionConfig `yaml:"transitions"`

	// Execution settings
	Workers int `yaml:"workers"` // 0 = auto-detect

	// Behavioral flags
	StrictMode bool `yaml:"strict_mode"` // Fail if the plan falls short of the request
	Verbose    bool `yaml:"verbose"`     // Show detailed logs
	DryRun     bool `yaml:"dry_run"`     // Show config without planning
}

// ConcatConfig holds the concatenation planning knobs
type ConcatConfig struct {
	TotalConcats       int     `yaml:"total_concats"`         // Target number of concatenated videos
	MinVideosPerConcat int     `yaml:"min_videos_per_concat"` // Lower member-count bound
	MaxVideosPerConcat int     `yaml:"max_videos_per_concat"` // Upper member-count bound
	TargetDurationMin  float64 `yaml:"target_duration_min"`   // Seconds, inclusive
	TargetDurationMax  float64 `yaml:"target_duration_max"`   // Seconds, inclusive
	AllowReuse         bool    `yaml:"allow_reuse"`           // Permit a video in multiple records
	ReuseMode          string  `yaml:"reuse_mode"`            // "balanced" or "random"
	MaxUsageRatio      float64 `yaml:"max_usage_ratio"`       // Per-video usage cap factor (<=0 = uncapped)
	Seed               int64   `yaml:"seed"`                  // Random stream seed
}

// SamplingConfig holds frame extraction settings
type SamplingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Interval    float64 `yaml:"interval"`     // Seconds between frames
	MinDuration float64 `yaml:"min_duration"` // Skip videos shorter than this (0 = sample all)
	FramesDir   string  `yaml:"frames_dir"`   // Frame output root (default: <output_dir>/frames)
}

// TransitionConfig holds annotation transition generation settings
type TransitionConfig struct {
	Enabled      bool   `yaml:"enabled"`
	Model        string `yaml:"model"`        // Chat model name (empty = library default)
	Descriptions string `yaml:"descriptions"` // Per-clip description file (JSON or JSONL)
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		// Required - must be provided by user
		VideoMetadata: "",
		InputDir:      "",
		OutputDir:     "./concat_output",

		Concat: ConcatConfig{
			TotalConcats:       500,
			MinVideosPerConcat: 2,
			MaxVideosPerConcat: 4,
			TargetDurationMin:  20.0,
			TargetDurationMax:  60.0,
			AllowReuse:         true,
			ReuseMode:          "balanced",
			MaxUsageRatio:      2.0,
			Seed:               42,
		},

		Sampling: SamplingConfig{
			Enabled:     false,
			Interval:    1.0,
			MinDuration: 0,
			FramesDir:   "",
		},

		Transitions: TransitionConfig{
			Enabled:      false,
			Model:        "",
			Descriptions: "",
		},

		// Execution settings
		Workers: 0, // Auto-detect CPU count

		// Behavioral defaults
		StrictMode: false,
		Verbose:    false,
		DryRun:     false,
	}
}

// Copy creates a deep copy of the config
func (c *Config) Copy() *Config {
	copy := *c
	copy.Concat = c.Concat
	copy.Sampling = c.Sampling
	copy.Transitions = c.Transitions
	return &copy
}

// PlannerOptions converts the planning section into planner options.
func (c *Config) PlannerOptions() planner.Options {
	return planner.Options{
		TotalConcats:       c.Concat.TotalConcats,
		MinVideosPerConcat: c.Concat.MinVideosPerConcat,
		MaxVideosPerConcat: c.Concat.MaxVideosPerConcat,
		TargetDurationMin:  c.Concat.TargetDurationMin,
		TargetDurationMax:  c.Concat.TargetDurationMax,
		AllowReuse:         c.Concat.AllowReuse,
		Mode:               planner.ReuseMode(c.Concat.ReuseMode),
		MaxUsageRatio:      c.Concat.MaxUsageRatio,
		Seed:               c.Concat.Seed,
	}
}
