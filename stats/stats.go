// Package stats summarizes a planned concatenation corpus: duration
// distribution, member-count histogram, and source-video usage spread.
package stats

import (
	"fmt"
	"io"
	"math"
	"sort"

	"concatplan/internal/timeutil"
	"concatplan/models"
)

// bucketWidth is the width of each duration histogram bucket in seconds.
const bucketWidth = 30.0

// bucketCeiling is the lower edge of the open-ended last bucket.
const bucketCeiling = 240.0

// DurationBucket is one bin of the duration histogram. The last bucket is
// open-ended.
type DurationBucket struct {
	Label string
	Count int
}

// Report aggregates the corpus-level statistics of a plan.
type Report struct {
	RecordCount int

	TotalDuration  float64
	MeanDuration   float64
	MedianDuration float64
	MinDuration    float64
	MaxDuration    float64
	StdDuration    float64

	TotalSegments       int
	MeanSegmentDuration float64
	MeanMemberCount     float64
	MinMemberCount      int
	MaxMemberCount      int

	// MemberCounts maps members-per-record to how many records have
	// exactly that many members.
	MemberCounts map[int]int

	DurationBuckets []DurationBucket

	// UsageCounts maps source video id to how many records include it.
	UsageCounts map[string]int
}

// Analyze computes the report for a set of planned records.
func Analyze(records []*models.ConcatRecord) *Report {
	report := &Report{
		MemberCounts: make(map[int]int),
		UsageCounts:  make(map[string]int),
	}

	if len(records) == 0 {
		report.DurationBuckets = emptyBuckets()
		return report
	}

	durations := make([]float64, 0, len(records))
	for _, record := range records {
		durations = append(durations, record.TotalDuration)

		members := record.MemberCount()
		report.TotalSegments += members
		report.MemberCounts[members]++

		if report.MinMemberCount == 0 || members < report.MinMemberCount {
			report.MinMemberCount = members
		}
		if members > report.MaxMemberCount {
			report.MaxMemberCount = members
		}

		for _, id := range record.Videos {
			report.UsageCounts[id]++
		}
	}

	report.RecordCount = len(records)
	report.MeanMemberCount = float64(report.TotalSegments) / float64(len(records))

	for _, d := range durations {
		report.TotalDuration += d
	}
	if report.TotalSegments > 0 {
		report.MeanSegmentDuration = report.TotalDuration / float64(report.TotalSegments)
	}

	sort.Float64s(durations)
	report.MinDuration = durations[0]
	report.MaxDuration = durations[len(durations)-1]
	report.MedianDuration = median(durations)

	report.MeanDuration = report.TotalDuration / float64(len(durations))

	var variance float64
	for _, d := range durations {
		diff := d - report.MeanDuration
		variance += diff * diff
	}
	report.StdDuration = math.Sqrt(variance / float64(len(durations)))

	report.DurationBuckets = bucketize(durations)

	return report
}

// median assumes the input is sorted.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func emptyBuckets() []DurationBucket {
	var buckets []DurationBucket
	for low := 0.0; low < bucketCeiling; low += bucketWidth {
		buckets = append(buckets, DurationBucket{
			Label: fmt.Sprintf("%.0f-%.0fs", low, low+bucketWidth),
		})
	}
	buckets = append(buckets, DurationBucket{
		Label: fmt.Sprintf("%.0fs+", bucketCeiling),
	})
	return buckets
}

func bucketize(durations []float64) []DurationBucket {
	buckets := emptyBuckets()
	for _, d := range durations {
		idx := int(d / bucketWidth)
		if d >= bucketCeiling {
			idx = len(buckets) - 1
		}
		buckets[idx].Count++
	}
	return buckets
}

// Print writes a human-readable report.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintf(w, "Concatenated videos: %d\n", r.RecordCount)

	if r.RecordCount == 0 {
		return
	}

	fmt.Fprintf(w, "Total duration:      %s (%.1fs)\n",
		timeutil.FormatSeconds(r.TotalDuration), r.TotalDuration)
	fmt.Fprintf(w, "Duration mean:       %.2fs (std %.2fs)\n", r.MeanDuration, r.StdDuration)
	fmt.Fprintf(w, "Duration median:     %.2fs\n", r.MedianDuration)
	fmt.Fprintf(w, "Duration range:      %.2fs - %.2fs\n", r.MinDuration, r.MaxDuration)
	fmt.Fprintf(w, "Total segments:      %d (mean %.2fs each)\n",
		r.TotalSegments, r.MeanSegmentDuration)
	fmt.Fprintf(w, "Members per video:   mean %.2f, range %d-%d\n",
		r.MeanMemberCount, r.MinMemberCount, r.MaxMemberCount)

	fmt.Fprintln(w, "\nMembers-per-video histogram:")
	counts := make([]int, 0, len(r.MemberCounts))
	for members := range r.MemberCounts {
		counts = append(counts, members)
	}
	sort.Ints(counts)
	for _, members := range counts {
		fmt.Fprintf(w, "  %2d members: %d\n", members, r.MemberCounts[members])
	}

	fmt.Fprintln(w, "\nDuration distribution:")
	for _, bucket := range r.DurationBuckets {
		fmt.Fprintf(w, "  %-10s %d\n", bucket.Label, bucket.Count)
	}

	fmt.Fprintf(w, "\nDistinct source videos used: %d\n", len(r.UsageCounts))
	if min, max, ok := usageSpread(r.UsageCounts); ok {
		fmt.Fprintf(w, "Source usage range:          %d-%d\n", min, max)
	}
}

func usageSpread(usage map[string]int) (int, int, bool) {
	if len(usage) == 0 {
		return 0, 0, false
	}

	first := true
	var min, max int
	for _, count := range usage {
		if first {
			min, max = count, count
			first = false
			continue
		}
		if count < min {
			min = count
		}
		if count > max {
			max = count
		}
	}
	return min, max, true
}
