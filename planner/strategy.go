package planner

import (
	"sort"

	"concatplan/models"
)

// pick chooses one video from a non-empty eligible set.
//
// Balanced mode sorts by ascending usage count with a stable sort, so ties
// keep catalog order and the choice is deterministic for a given seed.
// Random mode shuffles the set with the planner's seeded stream. Either
// way the first element of the resulting order is the candidate.
//
// If the candidate would push the accumulated duration past the target
// maximum, the choice falls back to the first video (in the already-ranked
// order) whose addition still fits. If none fits, pick reports failure and
// the assembly loop ends; that is not an error, since the record may
// already have reached the minimum.
func (p *Planner) pick(available []models.SourceVideo, currentDuration float64) (models.SourceVideo, bool) {
	switch p.opts.Mode {
	case ReuseBalanced:
		sort.SliceStable(available, func(i, j int) bool {
			return p.ledger.Count(available[i].ID) < p.ledger.Count(available[j].ID)
		})
	case ReuseRandom:
		p.rng.Shuffle(len(available), func(i, j int) {
			available[i], available[j] = available[j], available[i]
		})
	}

	chosen := available[0]

	if currentDuration+chosen.Duration > p.opts.TargetDurationMax {
		found := false
		for _, video := range available {
			if currentDuration+video.Duration <= p.opts.TargetDurationMax {
				chosen = video
				found = true
				break
			}
		}
		if !found {
			return models.SourceVideo{}, false
		}
	}

	return chosen, true
}
