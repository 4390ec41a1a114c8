// Package concatcmd builds FFmpeg concat-demuxer commands that realize a
// planned concatenation record as an actual video file.
package concatcmd

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"concatplan/command"
)

// ConcatBuilder builds an FFmpeg command that concatenates the files
// listed in a concat-demuxer list file into one output video without
// re-encoding.
type ConcatBuilder struct {
	listPath   string
	outputPath string

	copyStreams bool
}

// NewConcatBuilder creates a new concatenation command builder.
//
// listPath must point to a concat-demuxer list file (one "file '...'" line
// per member, in playback order).
func NewConcatBuilder(listPath, outputPath string) *ConcatBuilder {
	return &ConcatBuilder{
		listPath:    listPath,
		outputPath:  outputPath,
		copyStreams: true,
	}
}

// SetCopyStreams controls whether streams are copied without re-encoding.
// Copying requires all members to share codec parameters; disabling it
// re-encodes instead.
func (c *ConcatBuilder) SetCopyStreams(copy bool) *ConcatBuilder {
	c.copyStreams = copy
	return c
}

// BuildArgs constructs the FFmpeg concat arguments.
//
// -safe 0 permits absolute paths inside the list file; -y overwrites any
// existing output.
func (c *ConcatBuilder) BuildArgs() ([]string, error) {
	if strings.TrimSpace(c.listPath) == "" {
		return nil, fmt.Errorf("concat command: list file path cannot be empty")
	}

	if strings.TrimSpace(c.outputPath) == "" {
		return nil, fmt.Errorf("concat command: output path cannot be empty")
	}

	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", c.listPath,
	}

	if c.copyStreams {
		args = append(args, "-c", "copy")
	}

	args = append(args, "-y", c.outputPath)

	return args, nil
}

// Run executes the concatenation and verifies the output file exists
// afterwards.
func (c *ConcatBuilder) Run() error {
	args, err := c.BuildArgs()
	if err != nil {
		return err
	}

	cmd := exec.Command("ffmpeg", args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg concat failed: %w (output: %s)", err, string(output))
	}

	if _, err := os.Stat(c.outputPath); err != nil {
		return fmt.Errorf("output file not created: %w", err)
	}

	return nil
}

// DryRun returns the FFmpeg command as a shell-safe string without
// executing it. Paths are quoted, so the line can be embedded in a
// generated script verbatim.
func (c *ConcatBuilder) DryRun() (string, error) {
	args, err := c.BuildArgs()
	if err != nil {
		return "", err
	}
	return command.ShellJoin("ffmpeg", args), nil
}

// GetTaskType returns the concat task type.
func (c *ConcatBuilder) GetTaskType() command.TaskType {
	return command.TaskTypeConcat
}

// GetInputPath returns the concat list file path.
func (c *ConcatBuilder) GetInputPath() string {
	return c.listPath
}

// GetOutputPath returns the concatenated output path.
func (c *ConcatBuilder) GetOutputPath() string {
	return c.outputPath
}
