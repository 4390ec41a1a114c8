// Package catalog loads and holds the set of source videos available for
// concatenation planning.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"concatplan/models"
)

// ErrEmptyCatalog is returned when loading yields zero valid source videos.
// Planning cannot proceed without a catalog, so callers should treat this
// as fatal.
var ErrEmptyCatalog = errors.New("no valid videos found in catalog")

// metadataEntry is the on-disk representation of one source video in the
// metadata JSON produced by the sampling/probing tools.
type metadataEntry struct {
	VideoName   string  `json:"video_name"`
	DurationSec float64 `json:"duration_sec"`
	VideoPath   string  `json:"video_path"`
}

// Catalog is an immutable collection of source videos with id-based lookup.
//
// The iteration order of Videos() is the load order, which the planner
// relies on for deterministic tie-breaking. Build a Catalog with Load or
// New; there is no mutation after construction.
type Catalog struct {
	videos  []models.SourceVideo
	byID    map[string]models.SourceVideo
	skipped int
}

// New builds a catalog from an in-memory list of source videos.
//
// Entries failing validation are skipped. If two entries share an id, the
// later one wins the lookup table but both remain in iteration order,
// matching the metadata semantics of the upstream tools.
//
// Returns ErrEmptyCatalog if no valid entries remain.
func New(videos []models.SourceVideo) (*Catalog, error) {
	c := &Catalog{
		byID: make(map[string]models.SourceVideo, len(videos)),
	}

	for _, v := range videos {
		if err := v.Validate(); err != nil {
			continue
		}
		c.videos = append(c.videos, v)
		c.byID[v.ID] = v
	}

	if len(c.videos) == 0 {
		return nil, ErrEmptyCatalog
	}

	return c, nil
}

// Load reads a video metadata JSON file and builds a catalog from it.
//
// The file must contain an array of objects with video_name, duration_sec
// and video_path fields. Entries with a missing name or non-positive
// duration are skipped with a count reported by the returned catalog's
// Skipped method.
//
// Returns an error if the file cannot be read or parsed, and
// ErrEmptyCatalog if zero valid entries result.
//
// Example:
//
//	cat, err := catalog.Load("video_metadata.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Loaded %d videos\n", cat.Len())
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read video metadata %s: %w", path, err)
	}

	var entries []metadataEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse video metadata %s: %w", path, err)
	}

	videos := make([]models.SourceVideo, 0, len(entries))
	for _, entry := range entries {
		videos = append(videos, models.SourceVideo{
			ID:       entry.VideoName,
			Duration: entry.DurationSec,
			Path:     entry.VideoPath,
		})
	}

	cat, err := New(videos)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	cat.skipped = len(entries) - len(cat.videos)
	return cat, nil
}

// Videos returns the catalog contents in load order.
//
// The returned slice is a copy; callers may reorder it freely without
// affecting the catalog.
func (c *Catalog) Videos() []models.SourceVideo {
	out := make([]models.SourceVideo, len(c.videos))
	copy(out, c.videos)
	return out
}

// Get returns the source video with the given id.
func (c *Catalog) Get(id string) (models.SourceVideo, bool) {
	v, ok := c.byID[id]
	return v, ok
}

// Len returns the number of videos in the catalog.
func (c *Catalog) Len() int {
	return len(c.videos)
}

// Skipped returns the number of metadata entries dropped during load
// because they failed validation.
func (c *Catalog) Skipped() int {
	return c.skipped
}

// TotalDuration returns the combined duration of every video in the
// catalog, in seconds.
func (c *Catalog) TotalDuration() float64 {
	total := 0.0
	for _, v := range c.videos {
		total += v.Duration
	}
	return total
}

// Save writes the catalog back out in the metadata JSON format consumed by
// Load. Used after a directory scan to persist probed durations.
func (c *Catalog) Save(path string) error {
	entries := make([]metadataEntry, 0, len(c.videos))
	for _, v := range c.videos {
		entries = append(entries, metadataEntry{
			VideoName:   v.ID,
			DurationSec: v.Duration,
			VideoPath:   v.Path,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal video metadata: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write video metadata %s: %w", path, err)
	}

	return nil
}
