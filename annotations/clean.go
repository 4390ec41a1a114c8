package annotations

import (
	"encoding/json"
	"fmt"
	"os"

	"concatplan/models"
)

// Clean drops annotations that contain any blank segment summary and
// returns the kept annotations together with the ids of the dropped
// videos.
func Clean(anns []models.Annotation) ([]models.Annotation, []string) {
	kept := make([]models.Annotation, 0, len(anns))
	var dropped []string

	for _, ann := range anns {
		if ann.HasEmptySummary() {
			dropped = append(dropped, ann.Video)
			continue
		}
		kept = append(kept, ann)
	}

	return kept, dropped
}

// Save writes annotations as an indented JSON array.
func Save(anns []models.Annotation, path string) error {
	data, err := json.MarshalIndent(anns, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal annotations: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write annotations file: %w", err)
	}

	return nil
}

// Load reads an annotation file previously written by Save.
func Load(path string) ([]models.Annotation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read annotations file: %w", err)
	}

	var anns []models.Annotation
	if err := json.Unmarshal(data, &anns); err != nil {
		return nil, fmt.Errorf("failed to parse annotations file %s: %w", path, err)
	}

	return anns, nil
}
