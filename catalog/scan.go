package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"concatplan/models"
)

// DurationProber reports the playback duration of a media file in seconds.
//
// This interface decouples the catalog scanner from specific probing
// implementations (ffprobe, mediainfo, etc.), making it more testable and
// flexible.
type DurationProber interface {
	ProbeDuration(path string) (float64, error)
}

// ScanFailure records one video that could not be added to the catalog
// during a directory scan.
type ScanFailure struct {
	VideoID string `json:"video_name"`
	Path    string `json:"path"`
	Reason  string `json:"reason"`
}

// ScanDirectory walks a directory for .mp4 files, probes each one's
// duration, and builds a catalog from the results.
//
// Videos that cannot be probed are collected as failures rather than
// aborting the scan. File order is sorted by name so the resulting catalog
// order (and therefore planner tie-breaking) is stable across runs.
//
// Returns ErrEmptyCatalog if no video could be probed successfully.
//
// Example:
//
//	cat, failed, err := catalog.ScanDirectory("/videos", ffprobe.NewClient())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Probed %d videos, %d failed\n", cat.Len(), len(failed))
func ScanDirectory(dir string, prober DurationProber) (*Catalog, []ScanFailure, error) {
	if prober == nil {
		return nil, nil, fmt.Errorf("duration prober cannot be nil")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read video directory %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".mp4") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var videos []models.SourceVideo
	var failures []ScanFailure

	for _, name := range names {
		path := filepath.Join(dir, name)
		id := strings.TrimSuffix(name, filepath.Ext(name))

		duration, err := prober.ProbeDuration(path)
		if err != nil {
			failures = append(failures, ScanFailure{
				VideoID: id,
				Path:    path,
				Reason:  err.Error(),
			})
			continue
		}

		if duration <= 0 {
			failures = append(failures, ScanFailure{
				VideoID: id,
				Path:    path,
				Reason:  fmt.Sprintf("invalid duration: %.2f seconds", duration),
			})
			continue
		}

		videos = append(videos, models.SourceVideo{
			ID:       id,
			Duration: duration,
			Path:     path,
		})
	}

	cat, err := New(videos)
	if err != nil {
		return nil, failures, fmt.Errorf("scan of %s: %w", dir, err)
	}

	return cat, failures, nil
}
