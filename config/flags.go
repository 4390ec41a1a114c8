package config

import (
	"flag"
	"fmt"
	"os"
)

// MergeFromFlags parses command-line flags and overrides config values
func (c *Config) MergeFromFlags() error {
	// Define flags
	fs := flag.NewFlagSet("concatplan", flag.ContinueOnError)
	fs.Usage = printUsage

	// Input / output
	metadata := fs.String("metadata", "", "Video metadata JSON file (required unless -input-dir is set)")
	inputDir := fs.String("input-dir", "", "Directory of .mp4 files to probe with ffprobe")
	outputDir := fs.String("output-dir", "", "Output directory for metadata, scripts and annotations")

	// Config file override (handled by LoadConfig before this function is called)
	_ = fs.String("config", "", "Path to config file (default: search standard locations)")

	// Planning settings
	totalConcats := fs.Int("total-concats", -1, "Target number of concatenated videos (default: from config)")
	minVideos := fs.Int("min-videos", -1, "Minimum videos per concatenation (default: from config)")
	maxVideos := fs.Int("max-videos", -1, "Maximum videos per concatenation (default: from config)")
	durationMin := fs.Float64("duration-min", -1, "Minimum total duration in seconds (default: from config)")
	durationMax := fs.Float64("duration-max", -1, "Maximum total duration in seconds (default: from config)")
	reuseMode := fs.String("reuse-mode", "", "Reuse mode: balanced, random (default: from config)")
	maxUsageRatio := fs.Float64("max-usage-ratio", -1, "Per-video usage cap factor, <=0 disables (default: from config)")
	seed := fs.Int64("seed", -1, "Random seed for reproducible plans (default: from config)")

	// Reuse shortcuts
	reuse := fs.Bool("reuse", false, "Allow a video in multiple concatenations")
	noReuse := fs.Bool("no-reuse", false, "Use every video at most once")

	// Sampling settings
	sample := fs.Bool("sample-frames", false, "Extract frames from source videos")
	sampleInterval := fs.Float64("sample-interval", -1, "Seconds between extracted frames (default: from config)")
	sampleMinDuration := fs.Float64("sample-min-duration", -1, "Skip videos shorter than this when sampling (default: from config)")
	framesDir := fs.String("frames-dir", "", "Frame output directory (default: <output-dir>/frames)")

	// Transition settings
	transitionsOn := fs.Bool("transitions", false, "Generate transition text for interior segments")
	transitionModel := fs.String("transition-model", "", "Chat model for transition generation (default: from config)")
	descriptions := fs.String("descriptions", "", "Per-clip description file, JSON or JSONL")

	// Execution settings
	workers := fs.Int("workers", -1, "Number of parallel workers (0 = auto-detect, default: from config)")

	// Behavioral flags
	strict := fs.Bool("strict", false, "Enable strict mode (fail if the plan falls short)")
	noStrict := fs.Bool("no-strict", false, "Disable strict mode")
	verbose := fs.Bool("verbose", false, "Enable verbose logging")
	dryRun := fs.Bool("dry-run", false, "Show configuration without planning")

	// Parse flags
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	// Override with flag values (only if explicitly set)
	if *metadata != "" {
		c.VideoMetadata = *metadata
	}
	if *inputDir != "" {
		c.InputDir = *inputDir
	}
	if *outputDir != "" {
		c.OutputDir = *outputDir
	}

	// Planning settings (-1 means not set)
	if *totalConcats > 0 {
		c.Concat.TotalConcats = *totalConcats
	}
	if *minVideos > 0 {
		c.Concat.MinVideosPerConcat = *minVideos
	}
	if *maxVideos > 0 {
		c.Concat.MaxVideosPerConcat = *maxVideos
	}
	if *durationMin > 0 {
		c.Concat.TargetDurationMin = *durationMin
	}
	if *durationMax > 0 {
		c.Concat.TargetDurationMax = *durationMax
	}
	if *reuseMode != "" {
		c.Concat.ReuseMode = *reuseMode
	}
	if *maxUsageRatio >= 0 {
		c.Concat.MaxUsageRatio = *maxUsageRatio
	}
	if *seed >= 0 {
		c.Concat.Seed = *seed
	}

	// Handle reuse shortcuts
	if *reuse {
		c.Concat.AllowReuse = true
	}
	if *noReuse {
		c.Concat.AllowReuse = false
	}

	// Sampling settings
	if *sample {
		c.Sampling.Enabled = true
	}
	if *sampleInterval > 0 {
		c.Sampling.Interval = *sampleInterval
	}
	if *sampleMinDuration >= 0 {
		c.Sampling.MinDuration = *sampleMinDuration
	}
	if *framesDir != "" {
		c.Sampling.FramesDir = *framesDir
	}

	// Transition settings
	if *transitionsOn {
		c.Transitions.Enabled = true
	}
	if *transitionModel != "" {
		c.Transitions.Model = *transitionModel
	}
	if *descriptions != "" {
		c.Transitions.Descriptions = *descriptions
	}

	// Execution settings
	if *workers >= 0 {
		c.Workers = *workers
	}

	// Behavioral flags
	if *strict {
		c.StrictMode = true
	}
	if *noStrict {
		c.StrictMode = false
	}
	if *verbose {
		c.Verbose = true
	}
	if *dryRun {
		c.DryRun = true
	}

	return nil
}

// printUsage prints help text
func printUsage() {
	fmt.Fprintf(os.Stderr, `concatplan - Plan concatenated training videos from a source catalog

USAGE:
  concatplan -metadata FILE [OPTIONS]
  concatplan -input-dir DIR [OPTIONS]

INPUT / OUTPUT:
  -metadata string
        Video metadata JSON file (video_name, duration_sec, video_path entries)
  -input-dir string
        Directory of .mp4 files; durations are probed with ffprobe
  -output-dir string
        Output directory for plan metadata, scripts and annotations (default: ./concat_output)

CONFIGURATION:
  -config string
        Path to config file (default: search ./concatplan.yaml, ~/.concatplan/config.yaml, /etc/concatplan/config.yaml)

PLANNING SETTINGS:
  -total-concats int
        Target number of concatenated videos (default: 500)
  -min-videos int
        Minimum videos per concatenation (default: 2)
  -max-videos int
        Maximum videos per concatenation (default: 4)
  -duration-min float
        Minimum total duration in seconds (default: 20)
  -duration-max float
        Maximum total duration in seconds (default: 60)
  --reuse
        Allow a video in multiple concatenations (default: true)
  --no-reuse
        Use every video at most once
  -reuse-mode string
        Candidate ranking: balanced, random (default: balanced)
  -max-usage-ratio float
        Per-video usage cap as a fraction of total concats, <=0 disables (default: 2.0)
  -seed int
        Random seed for reproducible plans (default: 42)

FRAME SAMPLING:
  --sample-frames
        Extract frames from source videos before planning
  -sample-interval float
        Seconds between extracted frames (default: 1.0)
  -sample-min-duration float
        Skip videos shorter than this when sampling (default: 0)
  -frames-dir string
        Frame output directory (default: <output-dir>/frames)

TRANSITIONS:
  --transitions
        Rewrite interior segment summaries with generated transition text
        (requires COHERE_API_KEY in the environment or a .env file)
  -transition-model string
        Chat model for transition generation
  -descriptions string
        Per-clip description file, JSON or JSONL (required with --transitions)

EXECUTION SETTINGS:
  -workers int
        Number of parallel workers (0 = auto-detect CPU count) (default: 0)

BEHAVIORAL FLAGS:
  --strict
        Fail if the plan produces fewer videos than requested
  --no-strict
        Accept a short plan with a warning (default)
  --verbose
        Enable verbose logging
  --dry-run
        Show effective configuration without planning

EXAMPLES:
  # Plan 500 concatenations from probed metadata
  concatplan -metadata video_metadata.json -output-dir ./corpus

  # Scan a directory, no reuse, reproducible seed
  concatplan -input-dir ./clips --no-reuse -seed 7

  # Full pipeline: frames, annotations with transitions
  concatplan -metadata video_metadata.json --sample-frames --transitions -descriptions clips.jsonl

  # Show effective configuration
  concatplan -metadata video_metadata.json --dry-run

CONFIGURATION FILES:
  Config files are searched in order:
    1. ./concatplan.yaml
    2. ~/.concatplan/config.yaml
    3. /etc/concatplan/config.yaml

  Priority: CLI flags > Config file > Defaults

`)
}

// PrintConfig prints the effective configuration
func (c *Config) PrintConfig() {
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("                 Effective Configuration                  ")
	fmt.Println("═══════════════════════════════════════════════════════════")
	if c.VideoMetadata != "" {
		fmt.Printf("Metadata:       %s\n", c.VideoMetadata)
	} else {
		fmt.Printf("Input Dir:      %s\n", c.InputDir)
	}
	fmt.Printf("Output Dir:     %s\n", c.OutputDir)
	fmt.Printf("Workers:        %d\n", c.Workers)

	fmt.Println("\nPlanning Settings:")
	fmt.Printf("  Total Concats:  %d\n", c.Concat.TotalConcats)
	fmt.Printf("  Videos/Concat:  %d-%d\n", c.Concat.MinVideosPerConcat, c.Concat.MaxVideosPerConcat)
	fmt.Printf("  Duration:       %.1fs-%.1fs\n", c.Concat.TargetDurationMin, c.Concat.TargetDurationMax)
	fmt.Printf("  Allow Reuse:    %v\n", c.Concat.AllowReuse)
	if c.Concat.AllowReuse {
		fmt.Printf("  Reuse Mode:     %s\n", c.Concat.ReuseMode)
		fmt.Printf("  Usage Ratio:    %.2f\n", c.Concat.MaxUsageRatio)
	}
	fmt.Printf("  Seed:           %d\n", c.Concat.Seed)

	if c.Sampling.Enabled {
		fmt.Println("\nFrame Sampling:")
		fmt.Printf("  Interval:       %.2fs\n", c.Sampling.Interval)
		if c.Sampling.MinDuration > 0 {
			fmt.Printf("  Min Duration:   %.2fs\n", c.Sampling.MinDuration)
		}
	}

	if c.Transitions.Enabled {
		fmt.Println("\nTransitions:")
		if c.Transitions.Model != "" {
			fmt.Printf("  Model:          %s\n", c.Transitions.Model)
		}
		fmt.Printf("  Descriptions:   %s\n", c.Transitions.Descriptions)
	}

	fmt.Println("\nBehavioral Flags:")
	fmt.Printf("  Strict Mode:   %v\n", c.StrictMode)
	fmt.Printf("  Verbose:       %v\n", c.Verbose)
	fmt.Println("═══════════════════════════════════════════════════════════")
}
