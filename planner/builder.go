package planner

import (
	"fmt"
	"math/rand"

	"concatplan/models"
)

// maxAttemptsPerRecord bounds the per-record assembly loop so planning
// always terminates even when no candidate combination can satisfy the
// constraints.
const maxAttemptsPerRecord = 100

// recordState tracks the per-record assembly state machine.
type recordState int

const (
	stateAccumulating recordState = iota
	stateSatisfied
	stateAbandoned
)

// Warning describes one abandoned record attempt. Abandonment is a normal
// outcome: the corpus simply ends up smaller than requested.
type Warning struct {
	RecordIndex int
	Reason      string
}

func (w Warning) String() string {
	return fmt.Sprintf("concat %d abandoned: %s", w.RecordIndex, w.Reason)
}

// Planner assembles concatenation records from a source video catalog.
//
// A Planner owns all mutable planning state: the usage ledger and the
// seeded random stream. Record generation is strictly sequential; record i
// fully resolves, including its ledger updates, before record i+1 begins,
// so fairness decisions always observe the cumulative effect of earlier
// records. Planner is not safe for concurrent use.
type Planner struct {
	videos []models.SourceVideo
	opts   Options
	ledger *UsageLedger
	rng    *rand.Rand
}

// New creates a Planner over the given videos, which must be in catalog
// order (the balanced tie-break order).
//
// Returns an error if the options are invalid or the video list is empty.
func New(videos []models.SourceVideo, opts Options) (*Planner, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if len(videos) == 0 {
		return nil, fmt.Errorf("planner requires at least one source video")
	}

	return &Planner{
		videos: videos,
		opts:   opts,
		ledger: NewUsageLedger(),
		rng:    rand.New(rand.NewSource(opts.Seed)),
	}, nil
}

// Ledger exposes the planner's usage ledger for reporting.
func (p *Planner) Ledger() *UsageLedger {
	return p.ledger
}

// Plan generates the full corpus: up to Options.TotalConcats records.
//
// Abandoned attempts are returned as warnings and do not occupy an output
// slot, so the returned record list may be shorter than requested. Record
// names are derived from the attempt index, so emitted names may have gaps
// where attempts were abandoned.
func (p *Planner) Plan() ([]*models.ConcatRecord, []Warning, error) {
	records := make([]*models.ConcatRecord, 0, p.opts.TotalConcats)
	var warnings []Warning

	for i := 0; i < p.opts.TotalConcats; i++ {
		members, reason := p.assembleRecord()
		if len(members) == 0 {
			warnings = append(warnings, Warning{RecordIndex: i, Reason: reason})
			continue
		}

		record, err := models.NewConcatRecord(fmt.Sprintf("concat_%05d.mp4", i), members)
		if err != nil {
			return nil, warnings, fmt.Errorf("failed to build record %d: %w", i, err)
		}

		records = append(records, record)
	}

	return records, warnings, nil
}

// assembleRecord runs the per-record state machine: draw a target member
// count, then repeatedly filter, pick and commit until the count is
// reached, candidates run out, or the attempt budget is exhausted.
//
// Ledger increments happen at commit time, when a video is appended to the
// in-progress record, not at final acceptance. An ultimately-abandoned
// record therefore still leaves its increments applied.
//
// Returns the ordered member list on success, or nil and an abandonment
// reason.
func (p *Planner) assembleRecord() ([]models.SourceVideo, string) {
	targetCount := p.opts.MinVideosPerConcat +
		p.rng.Intn(p.opts.MaxVideosPerConcat-p.opts.MinVideosPerConcat+1)

	var selected []models.SourceVideo
	currentDuration := 0.0
	state := stateAccumulating
	reason := ""

	for attempts := 0; state == stateAccumulating; attempts++ {
		if len(selected) >= targetCount {
			state = stateSatisfied
			break
		}

		if attempts >= maxAttemptsPerRecord {
			state = stateAbandoned
			reason = fmt.Sprintf("attempt budget of %d exhausted", maxAttemptsPerRecord)
			break
		}

		available := p.eligible(currentDuration, false)

		if len(available) == 0 {
			// Relax the lower duration bound only while far from the
			// minimum, so relaxation can never overshoot the maximum.
			if currentDuration < p.opts.TargetDurationMin*0.5 {
				available = p.eligible(currentDuration, true)
			}

			if len(available) == 0 {
				state = stateSatisfied
				break
			}
		}

		chosen, ok := p.pick(available, currentDuration)
		if !ok {
			// Nothing fits under the maximum; the record may still be
			// valid if the minimum was already reached.
			state = stateSatisfied
			break
		}

		selected = append(selected, chosen)
		currentDuration += chosen.Duration
		p.ledger.Increment(chosen.ID)
	}

	// Terminal check: whatever ended the loop, a record below the minimum
	// duration or minimum member count is discarded.
	if currentDuration < p.opts.TargetDurationMin {
		if reason == "" {
			reason = fmt.Sprintf("total duration %.2fs below minimum %.2fs",
				currentDuration, p.opts.TargetDurationMin)
		}
		return nil, reason
	}

	if len(selected) < p.opts.MinVideosPerConcat {
		if reason == "" {
			reason = fmt.Sprintf("only %d members selected, minimum is %d",
				len(selected), p.opts.MinVideosPerConcat)
		}
		return nil, reason
	}

	if state == stateAbandoned {
		return nil, reason
	}

	return selected, ""
}
