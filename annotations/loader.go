// Package annotations builds per-segment semantic annotations for planned
// concatenated videos from per-clip descriptions, optionally rewriting
// interior segments with generated transition text.
package annotations

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// conversationTurn is one turn of a visual-QA style conversation.
type conversationTurn struct {
	From  string `json:"from"`
	Value string `json:"value"`
}

// describedVideo is one entry of a clip-description file. Two layouts are
// accepted:
//
//   - conversation format: the description is the first "gpt" turn
//   - segment format: the description is the segment summaries joined
type describedVideo struct {
	Video         string             `json:"video"`
	Conversations []conversationTurn `json:"conversations"`
	Data          []struct {
		Summary string `json:"summary"`
	} `json:"data"`
}

// description extracts the clip description from whichever layout the
// entry uses.
func (d *describedVideo) description() string {
	for _, turn := range d.Conversations {
		if turn.From == "gpt" {
			return strings.TrimSpace(turn.Value)
		}
	}

	parts := make([]string, 0, len(d.Data))
	for _, seg := range d.Data {
		if s := strings.TrimSpace(seg.Summary); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// LoadDescriptions reads per-clip descriptions from a JSON array or a
// JSONL file (one object per line) and returns them keyed by video id.
//
// Keys are normalized by stripping a trailing ".mp4" so they match
// catalog video ids. Entries without a usable description map to the
// empty string; the cleaner drops any record that ends up with one.
func LoadDescriptions(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptions file: %w", err)
	}

	var entries []describedVideo
	if err := json.Unmarshal(data, &entries); err != nil {
		entries, err = parseJSONL(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse descriptions file %s: %w", path, err)
		}
	}

	descriptions := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.Video == "" {
			continue
		}
		id := strings.TrimSuffix(entry.Video, ".mp4")
		descriptions[id] = entry.description()
	}

	return descriptions, nil
}

// parseJSONL parses one describedVideo per non-empty line.
func parseJSONL(data []byte) ([]describedVideo, error) {
	var entries []describedVideo

	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var entry describedVideo
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
