// Package command provides the core Command interface for building and
// executing FFmpeg commands.
//
// The specialized builders (frames extraction, concatenation) implement
// the Command interface, so the task orchestrator and the script generator
// can process them agnostically.
package command

// TaskType represents the type of media task.
type TaskType string

const (
	TaskTypeFrames TaskType = "frames" // Frame extraction from a source video
	TaskTypeConcat TaskType = "concat" // Concatenation of planned members
)

// Command represents an FFmpeg command that can be built, executed, or
// previewed.
//
// The interface supports:
//   - Command building: generate FFmpeg argument arrays
//   - Execution: run the command and handle output
//   - Preview: render the command without executing (script generation)
//   - Metadata: task identification and input/output tracking
//
// Example usage:
//
//	cmd := frames.NewFramesBuilder(video, "/frames/clip_001").
//		SetInterval(1.0)
//
//	// Preview the command
//	line, _ := cmd.DryRun()
//
//	// Execute the command
//	err := cmd.Run()
type Command interface {
	// BuildArgs constructs and returns the FFmpeg command arguments as a
	// slice suitable for exec.Command("ffmpeg", args...).
	BuildArgs() ([]string, error)

	// Run executes the FFmpeg command. It blocks until the command
	// completes and returns an error on a non-zero exit code.
	Run() error

	// DryRun returns the FFmpeg command as a string without executing it.
	// Useful for debugging, logging, or generating scripts.
	DryRun() (string, error)

	// GetTaskType returns the type of task (frames, concat).
	GetTaskType() TaskType

	// GetInputPath returns the primary input path for this command.
	GetInputPath() string

	// GetOutputPath returns the output path (file or directory) for this
	// command.
	GetOutputPath() string
}
