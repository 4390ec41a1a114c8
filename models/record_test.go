package models

import (
	"strings"
	"testing"
)

func testMembers() []SourceVideo {
	return []SourceVideo{
		{ID: "clip_a", Duration: 10.0, Path: "/v/a.mp4"},
		{ID: "clip_b", Duration: 15.5, Path: "/v/b.mp4"},
		{ID: "clip_c", Duration: 8.25, Path: "/v/c.mp4"},
	}
}

func TestNewConcatRecord_DerivesBoundaries(t *testing.T) {
	record, err := NewConcatRecord("concat_00000.mp4", testMembers())
	if err != nil {
		t.Fatalf("NewConcatRecord failed: %v", err)
	}

	if record.ConcatVideo != "concat_00000.mp4" {
		t.Errorf("Unexpected name: %s", record.ConcatVideo)
	}

	if record.TotalDuration != 33.75 {
		t.Errorf("Expected total 33.75, got %.2f", record.TotalDuration)
	}

	if record.MemberCount() != 3 {
		t.Fatalf("Expected 3 members, got %d", record.MemberCount())
	}

	expected := []Boundary{
		{VideoID: "clip_a", StartTime: 0, EndTime: 10.0},
		{VideoID: "clip_b", StartTime: 10.0, EndTime: 25.5},
		{VideoID: "clip_c", StartTime: 25.5, EndTime: 33.75},
	}

	for i, want := range expected {
		got := record.Boundaries[i]
		if got != want {
			t.Errorf("Boundary %d: got %+v, want %+v", i, got, want)
		}
	}

	if err := record.Validate(); err != nil {
		t.Errorf("Derived record should validate: %v", err)
	}
}

func TestNewConcatRecord_Errors(t *testing.T) {
	tests := []struct {
		name    string
		record  string
		members []SourceVideo
		wantErr string
	}{
		{
			name:    "Empty name",
			record:  "  ",
			members: testMembers(),
			wantErr: "name cannot be empty",
		},
		{
			name:    "No members",
			record:  "concat_00000.mp4",
			members: nil,
			wantErr: "member list is empty",
		},
		{
			name:   "Invalid member",
			record: "concat_00000.mp4",
			members: []SourceVideo{
				{ID: "clip_a", Duration: 0, Path: "/v/a.mp4"},
			},
			wantErr: "member 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConcatRecord(tt.record, tt.members)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_DetectsCorruption(t *testing.T) {
	fresh := func(t *testing.T) *ConcatRecord {
		record, err := NewConcatRecord("concat_00000.mp4", testMembers())
		if err != nil {
			t.Fatalf("NewConcatRecord failed: %v", err)
		}
		return record
	}

	tests := []struct {
		name   string
		mutate func(*ConcatRecord)
	}{
		{
			name:   "Wrong total duration",
			mutate: func(r *ConcatRecord) { r.TotalDuration = 99.0 },
		},
		{
			name:   "Non-contiguous boundary",
			mutate: func(r *ConcatRecord) { r.Boundaries[1].StartTime = 11.0 },
		},
		{
			name:   "First boundary offset",
			mutate: func(r *ConcatRecord) { r.Boundaries[0].StartTime = 1.0 },
		},
		{
			name:   "Mismatched member list",
			mutate: func(r *ConcatRecord) { r.Videos[1] = "clip_x" },
		},
		{
			name: "Non-positive span",
			mutate: func(r *ConcatRecord) {
				r.Boundaries[2].EndTime = r.Boundaries[2].StartTime
			},
		},
		{
			name:   "No boundaries",
			mutate: func(r *ConcatRecord) { r.Boundaries = nil; r.Videos = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := fresh(t)
			tt.mutate(record)
			if err := record.Validate(); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestValidate_ToleratesFloatAccumulation(t *testing.T) {
	// Boundaries built from many float sums drift slightly; validation
	// must accept drift below the epsilon.
	record, err := NewConcatRecord("concat_00000.mp4", []SourceVideo{
		{ID: "a", Duration: 0.1, Path: "/v/a.mp4"},
		{ID: "b", Duration: 0.2, Path: "/v/b.mp4"},
		{ID: "c", Duration: 0.3, Path: "/v/c.mp4"},
	})
	if err != nil {
		t.Fatalf("NewConcatRecord failed: %v", err)
	}

	if err := record.Validate(); err != nil {
		t.Errorf("Expected accumulated floats to validate: %v", err)
	}
}
