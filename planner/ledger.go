// Package planner implements the constrained randomized selection
// algorithm that assembles concatenated-video plans from a source catalog.
package planner

// UsageLedger tracks how many concatenation records each source video has
// been committed to during one planning run.
//
// Counts are monotonically non-decreasing: a video committed to an
// in-progress record keeps its increment even if that record is later
// discarded. This is deliberate; it biases subsequent records away from
// videos already tentatively spent. There is no rollback mechanism.
//
// The ledger is owned by a single Planner and is not safe for concurrent
// use, which is fine because planning is strictly sequential.
type UsageLedger struct {
	counts map[string]int
}

// NewUsageLedger creates an empty ledger. Every video id implicitly starts
// at zero.
func NewUsageLedger() *UsageLedger {
	return &UsageLedger{
		counts: make(map[string]int),
	}
}

// Increment records one more use of the given video id. Called exactly
// once per video appended to an in-progress record.
func (l *UsageLedger) Increment(videoID string) {
	l.counts[videoID]++
}

// Count returns the current usage count for a video id, zero for ids that
// have never been used.
func (l *UsageLedger) Count(videoID string) int {
	return l.counts[videoID]
}

// MaxAllowed derives the usage ceiling for one video given the target
// corpus size and the fairness ratio.
//
// The ceiling is real-valued, not rounded: eligibility checks compare
// count >= ceiling. A ceiling of zero or less means usage is uncapped.
func (l *UsageLedger) MaxAllowed(totalTargetRecords int, maxUsageRatio float64) float64 {
	return float64(totalTargetRecords) * maxUsageRatio
}
