package config

import (
	"fmt"
	"os"
	"strings"
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errors []string

	// One of the two input sources is required
	if c.VideoMetadata == "" && c.InputDir == "" {
		errors = append(errors, "either video metadata or an input directory is required")
	}

	if c.VideoMetadata != "" {
		if _, err := os.Stat(c.VideoMetadata); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("video metadata file does not exist: %s", c.VideoMetadata))
		}
	} else if c.InputDir != "" {
		if info, err := os.Stat(c.InputDir); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("input directory does not exist: %s", c.InputDir))
		} else if err == nil && !info.IsDir() {
			errors = append(errors, fmt.Sprintf("input path is not a directory: %s", c.InputDir))
		}
	}

	if c.OutputDir == "" {
		errors = append(errors, "output directory is required")
	}

	// Validate workers (0 is valid, means auto-detect)
	if c.Workers < 0 {
		errors = append(errors, "workers cannot be negative (use 0 for auto-detect)")
	}

	// Validate planning settings via the planner's own rules
	opts := c.PlannerOptions()
	if err := opts.Validate(); err != nil {
		errors = append(errors, err.Error())
	}

	// Validate sampling config
	if err := c.Sampling.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("sampling config: %v", err))
	}

	// Validate transition config
	if err := c.Transitions.Validate(); err != nil {
		errors = append(errors, fmt.Sprintf("transitions config: %v", err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// Validate checks if sampling configuration is valid
func (sc *SamplingConfig) Validate() error {
	if !sc.Enabled {
		return nil
	}

	var errors []string

	if sc.Interval <= 0 {
		errors = append(errors, "interval must be positive")
	}

	if sc.MinDuration < 0 {
		errors = append(errors, "min duration cannot be negative")
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, ", "))
	}

	return nil
}

// Validate checks if transition configuration is valid
func (tc *TransitionConfig) Validate() error {
	if !tc.Enabled {
		return nil
	}

	var errors []string

	if tc.Descriptions == "" {
		errors = append(errors, "a descriptions file is required when transitions are enabled")
	} else if _, err := os.Stat(tc.Descriptions); os.IsNotExist(err) {
		errors = append(errors, fmt.Sprintf("descriptions file does not exist: %s", tc.Descriptions))
	}

	if len(errors) > 0 {
		return fmt.Errorf("%s", strings.Join(errors, ", "))
	}

	return nil
}
