package planner

import "concatplan/models"

// eligible computes the set of videos that may be appended to a record
// whose accumulated duration is currentDuration.
//
// In strict mode a video qualifies only if its duration alone can still
// reach the remaining minimum without blowing past the remaining maximum.
// With relaxed set, the lower bound is dropped: early in assembly a short
// video that cannot satisfy the minimum by itself should not be rejected,
// since later picks can still reach the window. The caller only relaxes
// while currentDuration is well below the minimum, so relaxation can never
// cause the maximum to be exceeded.
//
// The reuse policy applies identically in both modes: with reuse disabled
// a video must be unused; with reuse enabled its count must be under the
// ceiling, unless the ceiling is zero or negative (uncapped).
//
// The result preserves catalog order. An empty result is a valid outcome,
// not an error.
func (p *Planner) eligible(currentDuration float64, relaxed bool) []models.SourceVideo {
	remainingMin := p.opts.TargetDurationMin - currentDuration
	remainingMax := p.opts.TargetDurationMax - currentDuration

	ceiling := p.ledger.MaxAllowed(p.opts.TotalConcats, p.opts.MaxUsageRatio)

	var available []models.SourceVideo

	for _, video := range p.videos {
		if !relaxed && video.Duration < remainingMin {
			continue
		}
		if video.Duration > remainingMax {
			continue
		}

		if !p.opts.AllowReuse && p.ledger.Count(video.ID) > 0 {
			continue
		}

		if p.opts.AllowReuse && ceiling > 0 && float64(p.ledger.Count(video.ID)) >= ceiling {
			continue
		}

		available = append(available, video)
	}

	return available
}
