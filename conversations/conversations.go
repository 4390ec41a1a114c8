// Package conversations assembles the final training artifact: one
// streaming-style conversation per planned video, interleaving sampled
// frame references with model turns.
//
// The wire format targets streaming video-LLM training: the model stays
// silent while frames of a clip arrive and responds with the clip's
// summary when the clip ends.
package conversations

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"

	"concatplan/models"
)

// Conversation control tokens. These are part of the training data
// contract and must match the consumer exactly.
const (
	imageToken     = "<image>"
	silentToken    = "<|silent|>"
	responsePrefix = "<|response|> "
	endOfStream    = "<|END_OF_STREAMING|>"
)

// openingPrompt is the fixed instruction that starts every conversation.
const openingPrompt = "Please describe what is happening in the video."

// Turn is one conversation message.
type Turn struct {
	From  string `json:"from"`
	Value string `json:"value"`
}

// TrainConversation is the training sample for one concatenated video:
// the ordered frame image paths and the interleaved conversation.
type TrainConversation struct {
	Video         string   `json:"video"`
	Images        []string `json:"images"`
	Conversations []Turn   `json:"conversations"`
}

// Build assembles one training conversation per record.
//
// Frame paths are relative to the frames root, one frame per second of
// each member clip ("<video_id>/frame_%05d.jpg", indexed from the clip's
// own start). Segment summaries come from the record's annotation,
// matched by video name and aligned to boundaries by position.
//
// Per segment, every frame is answered with a silent token except the
// last one, which carries the segment's summary. The final segment is
// closed differently: its last frame is repeated, followed by the
// end-of-streaming marker, and only then its summary. A record without
// an annotation (or a segment with a blank summary) stays silent at the
// respective positions.
func Build(records []*models.ConcatRecord, anns []models.Annotation) []TrainConversation {
	byVideo := make(map[string]models.Annotation, len(anns))
	for _, ann := range anns {
		byVideo[ann.Video] = ann
	}

	result := make([]TrainConversation, 0, len(records))

	for _, record := range records {
		conv := TrainConversation{
			Video: record.ConcatVideo,
			Conversations: []Turn{
				{From: "human", Value: openingPrompt},
			},
		}

		summaries := segmentSummaries(record, byVideo[record.ConcatVideo])

		for i, boundary := range record.Boundaries {
			lastFrame := frameCount(boundary)
			isFinal := i == len(record.Boundaries)-1

			for frame := 0; frame <= lastFrame; frame++ {
				conv.Images = append(conv.Images, framePath(boundary.VideoID, frame))
				conv.Conversations = append(conv.Conversations,
					Turn{From: "human", Value: imageToken})

				if frame == lastFrame && !isFinal && summaries[i] != "" {
					conv.Conversations = append(conv.Conversations,
						Turn{From: "gpt", Value: responsePrefix + summaries[i]})
					continue
				}

				conv.Conversations = append(conv.Conversations,
					Turn{From: "gpt", Value: silentToken})
			}
		}

		// Close the stream: repeat the final frame, signal the end, then
		// let the model answer for the last segment.
		if n := len(record.Boundaries); n > 0 {
			last := record.Boundaries[n-1]
			conv.Images = append(conv.Images, framePath(last.VideoID, frameCount(last)))
			conv.Conversations = append(conv.Conversations,
				Turn{From: "human", Value: imageToken},
				Turn{From: "human", Value: endOfStream},
			)

			if summary := summaries[n-1]; summary != "" {
				conv.Conversations = append(conv.Conversations,
					Turn{From: "gpt", Value: responsePrefix + summary})
			}
		}

		result = append(result, conv)
	}

	return result
}

// segmentSummaries aligns an annotation's segments to the record's
// boundaries by position. Missing or surplus segments yield empty
// summaries rather than errors.
func segmentSummaries(record *models.ConcatRecord, ann models.Annotation) []string {
	summaries := make([]string, len(record.Boundaries))
	for i := range record.Boundaries {
		if i < len(ann.Data) {
			summaries[i] = strings.TrimSpace(ann.Data[i].Summary)
		}
	}
	return summaries
}

// frameCount returns the index of the last one-per-second frame inside a
// boundary, relative to the member clip's own start.
func frameCount(b models.Boundary) int {
	return int(math.Floor(b.EndTime - b.StartTime))
}

func framePath(videoID string, frame int) string {
	return fmt.Sprintf("%s/frame_%05d.jpg", videoID, frame)
}

// Save writes training conversations as an indented JSON array.
func Save(convs []TrainConversation, path string) error {
	data, err := json.MarshalIndent(convs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal train conversations: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write train conversations %s: %w", path, err)
	}

	return nil
}
