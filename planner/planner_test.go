package planner

import (
	"reflect"
	"testing"

	"concatplan/models"
)

// testOptions returns a valid baseline option set for tests to tweak.
func testOptions() Options {
	return Options{
		TotalConcats:       10,
		MinVideosPerConcat: 2,
		MaxVideosPerConcat: 4,
		TargetDurationMin:  20.0,
		TargetDurationMax:  60.0,
		AllowReuse:         true,
		Mode:               ReuseBalanced,
		MaxUsageRatio:      2.0,
		Seed:               42,
	}
}

// testVideos builds a small catalog-ordered video list.
func testVideos(durations ...float64) []models.SourceVideo {
	videos := make([]models.SourceVideo, len(durations))
	for i, d := range durations {
		videos[i] = models.SourceVideo{
			ID:       string(rune('A' + i)),
			Duration: d,
			Path:     "/videos/" + string(rune('A'+i)) + ".mp4",
		}
	}
	return videos
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{
			name:   "zero total concats",
			modify: func(o *Options) { o.TotalConcats = 0 },
		},
		{
			name:   "zero min videos",
			modify: func(o *Options) { o.MinVideosPerConcat = 0 },
		},
		{
			name:   "max videos below min",
			modify: func(o *Options) { o.MaxVideosPerConcat = 1 },
		},
		{
			name:   "zero duration min",
			modify: func(o *Options) { o.TargetDurationMin = 0 },
		},
		{
			name:   "duration max below min",
			modify: func(o *Options) { o.TargetDurationMax = 10 },
		},
		{
			name:   "unknown reuse mode",
			modify: func(o *Options) { o.Mode = "round-robin" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			tt.modify(&opts)

			_, err := New(testVideos(10, 15, 40), opts)
			if err == nil {
				t.Error("Expected error for invalid options")
			}
		})
	}
}

func TestNew_EmptyVideoList(t *testing.T) {
	_, err := New(nil, testOptions())
	if err == nil {
		t.Error("Expected error for empty video list")
	}
}

// TestPlan_EmittedRecordsRespectConstraints checks every emitted record
// lands inside the duration window and the member count bounds.
func TestPlan_EmittedRecordsRespectConstraints(t *testing.T) {
	opts := testOptions()
	opts.TotalConcats = 50

	videos := testVideos(5.5, 8, 10.25, 12, 15, 18.5, 22, 25, 30, 35)

	p, err := New(videos, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	records, _, err := p.Plan()
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if len(records) == 0 {
		t.Fatal("Expected at least one emitted record")
	}

	for _, record := range records {
		if record.TotalDuration < opts.TargetDurationMin || record.TotalDuration > opts.TargetDurationMax {
			t.Errorf("Record %s total duration %.2f outside window [%.2f, %.2f]",
				record.ConcatVideo, record.TotalDuration, opts.TargetDurationMin, opts.TargetDurationMax)
		}

		if record.MemberCount() < opts.MinVideosPerConcat || record.MemberCount() > opts.MaxVideosPerConcat {
			t.Errorf("Record %s has %d members, expected between %d and %d",
				record.ConcatVideo, record.MemberCount(), opts.MinVideosPerConcat, opts.MaxVideosPerConcat)
		}

		if err := record.Validate(); err != nil {
			t.Errorf("Record %s failed validation: %v", record.ConcatVideo, err)
		}
	}
}

// TestPlan_BoundariesContiguous checks the derived boundary arithmetic:
// the first boundary starts at zero and each one starts where the previous
// ended.
func TestPlan_BoundariesContiguous(t *testing.T) {
	videos := testVideos(7.3, 9.9, 11.4, 13.1, 16.6, 21.2)

	p, err := New(videos, testOptions())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	records, _, err := p.Plan()
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	for _, record := range records {
		if len(record.Boundaries) == 0 {
			t.Fatalf("Record %s has no boundaries", record.ConcatVideo)
		}

		if record.Boundaries[0].StartTime != 0 {
			t.Errorf("Record %s first boundary starts at %.4f, expected 0",
				record.ConcatVideo, record.Boundaries[0].StartTime)
		}

		for i := 1; i < len(record.Boundaries); i++ {
			prev := record.Boundaries[i-1]
			curr := record.Boundaries[i]
			if curr.StartTime != prev.EndTime {
				t.Errorf("Record %s boundary %d starts at %.4f, previous ends at %.4f",
					record.ConcatVideo, i, curr.StartTime, prev.EndTime)
			}
		}
	}
}

// TestPlan_NoReuse checks that with reuse disabled no video id appears in
// more than one emitted record across the whole corpus.
func TestPlan_NoReuse(t *testing.T) {
	opts := testOptions()
	opts.AllowReuse = false
	opts.TotalConcats = 20

	videos := testVideos(10, 11, 12, 13, 14, 15, 16, 17, 18, 19)

	p, err := New(videos, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	records, _, err := p.Plan()
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	seen := make(map[string]string)
	for _, record := range records {
		for _, id := range record.Videos {
			if prev, ok := seen[id]; ok {
				t.Errorf("Video %s used in both %s and %s with reuse disabled",
					id, prev, record.ConcatVideo)
			}
			seen[id] = record.ConcatVideo
		}
	}
}

// TestPlan_UsageCeiling checks the fairness cap: no video's ledger count
// may reach or exceed the real-valued ceiling by more than the single
// commit that crossed it.
func TestPlan_UsageCeiling(t *testing.T) {
	opts := testOptions()
	opts.TotalConcats = 40
	opts.MaxUsageRatio = 0.1 // ceiling of 4 uses

	videos := testVideos(10, 12, 14, 16, 18, 20)

	p, err := New(videos, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, _, err = p.Plan()
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	ceiling := p.Ledger().MaxAllowed(opts.TotalConcats, opts.MaxUsageRatio)
	for _, video := range videos {
		count := p.Ledger().Count(video.ID)
		// A video at the ceiling is filtered before the next pick, so the
		// final count can never exceed the ceiling itself.
		if float64(count) > ceiling {
			t.Errorf("Video %s used %d times, ceiling is %.2f", video.ID, count, ceiling)
		}
	}
}

// TestPlan_UncappedRatio checks that a zero or negative ratio disables the
// ceiling entirely.
func TestPlan_UncappedRatio(t *testing.T) {
	opts := testOptions()
	opts.TotalConcats = 30
	opts.MaxUsageRatio = 0

	// Only one viable pair, so every record reuses the same two videos.
	videos := testVideos(10, 15)
	opts.MinVideosPerConcat = 2
	opts.MaxVideosPerConcat = 2
	opts.TargetDurationMin = 20
	opts.TargetDurationMax = 30

	p, err := New(videos, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	records, _, err := p.Plan()
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if len(records) != opts.TotalConcats {
		t.Errorf("Expected %d records with uncapped reuse, got %d", opts.TotalConcats, len(records))
	}
}

// TestPlan_OnlyValidPairEmitted reproduces the canonical packing case:
// catalog [A:10s, B:15s, C:40s] with a 20-30s window and exactly two
// members. {A,B} at 25s is the only valid combination; C can never appear.
func TestPlan_OnlyValidPairEmitted(t *testing.T) {
	for _, mode := range ReuseModeValues() {
		t.Run(string(mode), func(t *testing.T) {
			opts := testOptions()
			opts.TotalConcats = 25
			opts.MinVideosPerConcat = 2
			opts.MaxVideosPerConcat = 2
			opts.TargetDurationMin = 20
			opts.TargetDurationMax = 30
			opts.AllowReuse = false
			opts.Mode = mode

			videos := testVideos(10, 15, 40)

			p, err := New(videos, opts)
			if err != nil {
				t.Fatalf("New failed: %v", err)
			}

			records, _, err := p.Plan()
			if err != nil {
				t.Fatalf("Plan failed: %v", err)
			}

			for _, record := range records {
				if record.TotalDuration != 25 {
					t.Errorf("Record %s total duration %.2f, only 25.00 is reachable",
						record.ConcatVideo, record.TotalDuration)
				}

				for _, id := range record.Videos {
					if id == "C" {
						t.Errorf("Record %s uses video C, which cannot fit the window", record.ConcatVideo)
					}
				}
			}
		})
	}
}

// TestPlan_OversizedVideoNeverSelected checks that a single video longer
// than the duration window maximum is never chosen.
func TestPlan_OversizedVideoNeverSelected(t *testing.T) {
	opts := testOptions()
	opts.TotalConcats = 20

	videos := testVideos(10, 12, 15, 95) // D exceeds the 60s maximum alone

	p, err := New(videos, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	records, _, err := p.Plan()
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	for _, record := range records {
		for _, id := range record.Videos {
			if id == "D" {
				t.Errorf("Record %s selected oversized video D", record.ConcatVideo)
			}
		}
	}
}

// TestPlan_Deterministic checks that two runs with identical inputs and
// seed produce identical plans, and that a different seed diverges.
func TestPlan_Deterministic(t *testing.T) {
	videos := testVideos(6, 8.5, 10, 12.5, 14, 17, 19.5, 23, 27)

	run := func(seed int64, mode ReuseMode) []*models.ConcatRecord {
		opts := testOptions()
		opts.TotalConcats = 30
		opts.Seed = seed
		opts.Mode = mode

		p, err := New(videos, opts)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		records, _, err := p.Plan()
		if err != nil {
			t.Fatalf("Plan failed: %v", err)
		}
		return records
	}

	for _, mode := range ReuseModeValues() {
		t.Run(string(mode), func(t *testing.T) {
			first := run(42, mode)
			second := run(42, mode)

			if !reflect.DeepEqual(first, second) {
				t.Error("Two runs with the same seed produced different plans")
			}

			third := run(7, mode)
			if reflect.DeepEqual(first, third) {
				t.Error("Different seeds produced identical plans; randomness not wired to seed")
			}
		})
	}
}

// TestPlan_AbandonedAttemptsWarn checks that an unreachable window yields
// warnings and an empty corpus rather than an error.
func TestPlan_AbandonedAttemptsWarn(t *testing.T) {
	opts := testOptions()
	opts.TotalConcats = 5
	opts.TargetDurationMin = 200
	opts.TargetDurationMax = 250

	videos := testVideos(10, 15, 40)

	p, err := New(videos, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	records, warnings, err := p.Plan()
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if len(records) != 0 {
		t.Errorf("Expected no records for unreachable window, got %d", len(records))
	}

	if len(warnings) != opts.TotalConcats {
		t.Errorf("Expected %d warnings, got %d", opts.TotalConcats, len(warnings))
	}
}

// TestPlan_DiscardedAttemptsKeepIncrements checks the commit-time ledger
// policy: members of an abandoned record still count toward future
// ceilings.
func TestPlan_DiscardedAttemptsKeepIncrements(t *testing.T) {
	opts := testOptions()
	opts.TotalConcats = 1
	opts.MinVideosPerConcat = 3
	opts.MaxVideosPerConcat = 3
	opts.TargetDurationMin = 100
	opts.TargetDurationMax = 120

	// One short video: relaxed mode admits it early, but the minimum can
	// never be reached, so the only attempt is abandoned after committing
	// picks.
	videos := testVideos(10)

	p, err := New(videos, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	records, warnings, err := p.Plan()
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	if len(records) != 0 {
		t.Fatalf("Expected the attempt to be abandoned, got %d records", len(records))
	}

	if len(warnings) != 1 {
		t.Fatalf("Expected one warning, got %d", len(warnings))
	}

	if p.Ledger().Count("A") == 0 {
		t.Error("Expected abandoned attempt to leave its ledger increments applied")
	}
}

func TestUsageLedger(t *testing.T) {
	ledger := NewUsageLedger()

	if ledger.Count("unseen") != 0 {
		t.Error("Expected unseen id to count as 0")
	}

	ledger.Increment("v1")
	ledger.Increment("v1")
	ledger.Increment("v2")

	if got := ledger.Count("v1"); got != 2 {
		t.Errorf("Expected count 2 for v1, got %d", got)
	}
	if got := ledger.Count("v2"); got != 1 {
		t.Errorf("Expected count 1 for v2, got %d", got)
	}

	if got := ledger.MaxAllowed(500, 2.0); got != 1000.0 {
		t.Errorf("Expected ceiling 1000.0, got %.2f", got)
	}
	if got := ledger.MaxAllowed(3, 0.5); got != 1.5 {
		t.Errorf("Expected fractional ceiling 1.5, got %.2f", got)
	}
}

// TestEligible_RelaxedDropsLowerBound exercises the filter directly: in
// strict mode a short video cannot qualify on an empty record, but the
// relaxed filter admits it.
func TestEligible_RelaxedDropsLowerBound(t *testing.T) {
	opts := testOptions()
	videos := testVideos(5, 25, 70)

	p, err := New(videos, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	strict := p.eligible(0, false)
	if len(strict) != 1 || strict[0].ID != "B" {
		t.Errorf("Expected strict filter to admit only B, got %v", strict)
	}

	relaxed := p.eligible(0, true)
	if len(relaxed) != 2 {
		t.Fatalf("Expected relaxed filter to admit A and B, got %v", relaxed)
	}
	if relaxed[0].ID != "A" || relaxed[1].ID != "B" {
		t.Errorf("Expected relaxed filter to preserve catalog order [A B], got %v", relaxed)
	}
}

// TestPick_BalancedPrefersLeastUsed checks balanced ranking and the
// catalog-order tie break.
func TestPick_BalancedPrefersLeastUsed(t *testing.T) {
	opts := testOptions()
	videos := testVideos(20, 21, 22)

	p, err := New(videos, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// All counts zero: tie broken by catalog order.
	chosen, ok := p.pick(p.eligible(0, false), 0)
	if !ok {
		t.Fatal("Expected a pick from a non-empty set")
	}
	if chosen.ID != "A" {
		t.Errorf("Expected catalog-order tie break to choose A, got %s", chosen.ID)
	}

	// Bump A and B; C becomes the least used.
	p.ledger.Increment("A")
	p.ledger.Increment("B")

	chosen, ok = p.pick(p.eligible(0, false), 0)
	if !ok {
		t.Fatal("Expected a pick from a non-empty set")
	}
	if chosen.ID != "C" {
		t.Errorf("Expected least-used video C, got %s", chosen.ID)
	}
}

// TestPick_RestrictsToFitting checks the over-maximum fallback: when the
// ranked first choice would exceed the window, the first fitting candidate
// is taken instead, and failure is reported when nothing fits.
func TestPick_RestrictsToFitting(t *testing.T) {
	opts := testOptions()
	videos := testVideos(30, 10)

	p, err := New(videos, opts)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// At 45s accumulated, A (30s) would exceed 60s; B (10s) fits.
	chosen, ok := p.pick([]models.SourceVideo{videos[0], videos[1]}, 45)
	if !ok {
		t.Fatal("Expected a fitting pick")
	}
	if chosen.ID != "B" {
		t.Errorf("Expected fallback to fitting video B, got %s", chosen.ID)
	}

	// At 55s nothing fits.
	_, ok = p.pick([]models.SourceVideo{videos[0], videos[1]}, 55)
	if ok {
		t.Error("Expected pick to fail when no candidate fits under the maximum")
	}
}
