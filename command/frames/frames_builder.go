// Package frames builds FFmpeg commands that extract still frames from a
// source video at a fixed sampling interval.
package frames

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"concatplan/command"
	"concatplan/models"
)

// DefaultInterval is the default sampling interval in seconds.
const DefaultInterval = 1.0

// FramesBuilder builds an FFmpeg command that writes one JPEG per sampling
// interval into an output directory, named frame_00000.jpg onwards.
type FramesBuilder struct {
	video     models.SourceVideo
	outputDir string

	interval float64
	quality  int // JPEG quality for -q:v (2 = high quality)
}

// NewFramesBuilder creates a new frame extraction command builder.
func NewFramesBuilder(video models.SourceVideo, outputDir string) *FramesBuilder {
	return &FramesBuilder{
		video:     video,
		outputDir: outputDir,
		interval:  DefaultInterval,
		quality:   2,
	}
}

// SetInterval sets the sampling interval in seconds between extracted
// frames.
func (f *FramesBuilder) SetInterval(interval float64) *FramesBuilder {
	f.interval = interval
	return f
}

// SetQuality sets the JPEG quality passed as -q:v (lower is better, 2-31).
func (f *FramesBuilder) SetQuality(quality int) *FramesBuilder {
	f.quality = quality
	return f
}

// BuildArgs constructs the FFmpeg arguments for frame extraction.
//
// The fps filter emits one frame per interval; -start_number 0 makes frame
// indices line up with timestamp/interval, which the annotation tooling
// relies on.
func (f *FramesBuilder) BuildArgs() ([]string, error) {
	if err := f.video.Validate(); err != nil {
		return nil, fmt.Errorf("frames command: %w", err)
	}

	if strings.TrimSpace(f.video.Path) == "" {
		return nil, fmt.Errorf("frames command: video path cannot be empty")
	}

	if f.outputDir == "" {
		return nil, fmt.Errorf("frames command: output directory cannot be empty")
	}

	if f.interval <= 0 {
		return nil, fmt.Errorf("frames command: interval must be positive, got %.2f", f.interval)
	}

	if f.quality < 2 || f.quality > 31 {
		return nil, fmt.Errorf("frames command: quality must be between 2 and 31, got %d", f.quality)
	}

	args := []string{
		"-i", f.video.Path,
		"-vf", fmt.Sprintf("fps=1/%g", f.interval),
		"-q:v", fmt.Sprintf("%d", f.quality),
		"-start_number", "0",
		"-y",
		filepath.Join(f.outputDir, "frame_%05d.jpg"),
	}

	return args, nil
}

// Run executes the frame extraction, creating the output directory first.
func (f *FramesBuilder) Run() error {
	args, err := f.BuildArgs()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(f.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create frame directory %s: %w", f.outputDir, err)
	}

	cmd := exec.Command("ffmpeg", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg frame extraction failed for %s: %w (output: %s)",
			f.video.ID, err, string(output))
	}

	return nil
}

// DryRun returns the FFmpeg command as a shell-safe string without
// executing it.
func (f *FramesBuilder) DryRun() (string, error) {
	args, err := f.BuildArgs()
	if err != nil {
		return "", err
	}
	return command.ShellJoin("ffmpeg", args), nil
}

// GetTaskType returns the frames task type.
func (f *FramesBuilder) GetTaskType() command.TaskType {
	return command.TaskTypeFrames
}

// GetInputPath returns the source video path.
func (f *FramesBuilder) GetInputPath() string {
	return f.video.Path
}

// GetOutputPath returns the frame output directory.
func (f *FramesBuilder) GetOutputPath() string {
	return f.outputDir
}

// ExpectedFrames returns how many frames extraction should produce for the
// video's duration at the configured interval.
func (f *FramesBuilder) ExpectedFrames() int {
	if f.interval <= 0 {
		return 0
	}
	return int(f.video.Duration/f.interval) + 1
}
