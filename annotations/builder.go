package annotations

import (
	"context"
	"fmt"

	"concatplan/models"
	"concatplan/orchestrator"
	"concatplan/transitions"
)

// Builder assembles annotations for planned records from per-clip
// descriptions.
//
// With a transition generator attached, every interior segment (all but
// the first of each record) is rewritten into text that bridges from the
// preceding clip. Generation failures fall back to the clip's raw
// description so one bad API call never empties a segment.
type Builder struct {
	descriptions map[string]string
	generator    transitions.Generator
	workers      int
}

// NewBuilder creates a builder over the given clip descriptions.
func NewBuilder(descriptions map[string]string) *Builder {
	return &Builder{
		descriptions: descriptions,
		workers:      4,
	}
}

// SetGenerator attaches a transition generator. Without one, segments keep
// the raw clip descriptions.
func (b *Builder) SetGenerator(generator transitions.Generator) *Builder {
	b.generator = generator
	return b
}

// SetWorkers bounds concurrent transition calls.
func (b *Builder) SetWorkers(workers int) *Builder {
	b.workers = workers
	return b
}

// Build produces one annotation per record, segments aligned with the
// record's boundaries.
//
// A member clip with no known description yields an empty summary; Clean
// strips such annotations afterwards.
func (b *Builder) Build(ctx context.Context, records []*models.ConcatRecord) ([]models.Annotation, error) {
	if b.workers <= 0 {
		return nil, fmt.Errorf("annotation worker count must be positive, got %d", b.workers)
	}

	result := make([]models.Annotation, len(records))
	for i, record := range records {
		segments := make([]models.Segment, len(record.Boundaries))
		for j, boundary := range record.Boundaries {
			segments[j] = models.Segment{
				Start:   boundary.StartTime,
				End:     boundary.EndTime,
				Summary: b.descriptions[boundary.VideoID],
			}
		}
		result[i] = models.Annotation{
			Video: record.ConcatVideo,
			Data:  segments,
		}
	}

	if b.generator == nil {
		return result, nil
	}

	if err := b.generateTransitions(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

// generateTransitions rewrites interior segment summaries in place,
// bounded by the builder's worker count. Each task owns a distinct
// segment slot, so concurrent writes never collide.
func (b *Builder) generateTransitions(ctx context.Context, anns []models.Annotation) error {
	pool := orchestrator.NewPool([]orchestrator.ResourceConstraint{
		{Type: orchestrator.ResourceNetwork, MaxSlots: b.workers},
	})

	queued := 0
	for i := range anns {
		segments := anns[i].Data
		for j := 1; j < len(segments); j++ {
			prev := segments[j-1].Summary
			current := segments[j].Summary
			if prev == "" || current == "" {
				continue
			}

			slot := &segments[j]
			task := orchestrator.Task{
				ID:       fmt.Sprintf("%s#%d", anns[i].Video, j),
				Resource: orchestrator.ResourceNetwork,
				Runner: orchestrator.RunnerFunc(func() error {
					text, err := b.generator.Transition(ctx, prev, current)
					if err != nil {
						// Keep the raw description on failure.
						return err
					}
					slot.Summary = text
					return nil
				}),
			}
			if err := pool.AddTask(task); err != nil {
				return fmt.Errorf("failed to queue transition task: %w", err)
			}
			queued++
		}
	}

	if queued == 0 {
		return nil
	}

	// Failures are already absorbed by the raw-summary fallback.
	pool.Execute(ctx)
	return nil
}
