// Package sampler extracts still frames from source videos at a fixed
// interval, in parallel, for downstream annotation tooling.
package sampler

import (
	"context"
	"fmt"
	"path/filepath"

	"concatplan/command"
	"concatplan/command/frames"
	"concatplan/models"
	"concatplan/orchestrator"
)

// Failure records one video that could not be sampled.
type Failure struct {
	VideoID string `json:"video_name"`
	Path    string `json:"path"`
	Reason  string `json:"reason"`
}

// VideoFrames describes the frames extracted for one source video.
type VideoFrames struct {
	VideoID       string  `json:"video_name"`
	FrameDir      string  `json:"frame_dir"`
	Interval      float64 `json:"sampling_interval"`
	ExpectedCount int     `json:"expected_frames"`
}

// Summary aggregates the outcome of a sampling run.
type Summary struct {
	Sampled []VideoFrames
	Failed  []Failure
}

// Sampler drives parallel frame extraction across a catalog.
//
// Videos shorter than MinDuration are skipped and reported as failures,
// matching the metadata contract: every catalog video either yields a
// frame directory or an explicit failure reason.
type Sampler struct {
	framesDir   string
	interval    float64
	minDuration float64
	workers     int

	// newCommand builds the extraction command for one video. Overridable
	// in tests to avoid invoking ffmpeg.
	newCommand func(video models.SourceVideo, outputDir string) command.Command
}

// NewSampler creates a sampler writing one subdirectory per video under
// framesDir.
func NewSampler(framesDir string, interval float64, workers int) *Sampler {
	return &Sampler{
		framesDir: framesDir,
		interval:  interval,
		workers:   workers,
		newCommand: func(video models.SourceVideo, outputDir string) command.Command {
			return frames.NewFramesBuilder(video, outputDir).SetInterval(interval)
		},
	}
}

// SetMinDuration sets the minimum duration a video must have to be
// sampled. Zero (the default) samples everything.
func (s *Sampler) SetMinDuration(minDuration float64) *Sampler {
	s.minDuration = minDuration
	return s
}

// SampleAll extracts frames for every video, bounded by the sampler's
// worker count. Per-video failures are isolated and collected; they never
// abort the batch.
//
// The progress callback, if non-nil, is invoked after each video
// completes.
func (s *Sampler) SampleAll(ctx context.Context, videos []models.SourceVideo,
	progress func(completed, total int)) (*Summary, error) {

	if s.interval <= 0 {
		return nil, fmt.Errorf("sampling interval must be positive, got %.2f", s.interval)
	}

	if s.workers <= 0 {
		return nil, fmt.Errorf("sampler worker count must be positive, got %d", s.workers)
	}

	summary := &Summary{}

	// Pre-filter short videos so they never consume a worker slot.
	var eligible []models.SourceVideo
	for _, video := range videos {
		if video.Duration < s.minDuration {
			summary.Failed = append(summary.Failed, Failure{
				VideoID: video.ID,
				Path:    video.Path,
				Reason: fmt.Sprintf("video duration (%.2fs) is less than minimum (%.2fs)",
					video.Duration, s.minDuration),
			})
			continue
		}
		eligible = append(eligible, video)
	}

	pool := orchestrator.NewPool([]orchestrator.ResourceConstraint{
		{Type: orchestrator.ResourceCPU, MaxSlots: s.workers},
	})

	commands := make(map[string]command.Command, len(eligible))
	byID := make(map[string]models.SourceVideo, len(eligible))

	for _, video := range eligible {
		outputDir := filepath.Join(s.framesDir, video.ID)
		cmd := s.newCommand(video, outputDir)
		commands[video.ID] = cmd
		byID[video.ID] = video

		task := orchestrator.Task{
			ID:       video.ID,
			Resource: orchestrator.ResourceCPU,
			Runner:   cmd,
		}
		if err := pool.AddTask(task); err != nil {
			return nil, fmt.Errorf("failed to queue sampling task: %w", err)
		}
	}

	if progress != nil {
		pool.SetProgressCallback(func(completed, total int, result orchestrator.Result) {
			progress(completed, total)
		})
	}

	results := pool.Execute(ctx)

	for _, result := range results {
		video := byID[result.TaskID]
		if result.Err != nil {
			summary.Failed = append(summary.Failed, Failure{
				VideoID: video.ID,
				Path:    video.Path,
				Reason:  result.Err.Error(),
			})
			continue
		}

		summary.Sampled = append(summary.Sampled, VideoFrames{
			VideoID:       video.ID,
			FrameDir:      commands[video.ID].GetOutputPath(),
			Interval:      s.interval,
			ExpectedCount: int(video.Duration/s.interval) + 1,
		})
	}

	return summary, nil
}
