// Package transitions generates bridging natural-language descriptions for
// consecutive segments of a concatenated video using a text-generation
// API.
package transitions

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// DefaultModel is the chat model used when none is configured.
const DefaultModel = "command-r"

// requestTimeout bounds each chat call so a hung request cannot stall the
// annotation batch.
const requestTimeout = 60 * time.Second

// Generator produces a description for the current segment that bridges
// from the previous one.
//
// Implementations must be safe for concurrent use; the annotation builder
// issues calls from a bounded worker pool.
type Generator interface {
	Transition(ctx context.Context, prevSummary, currentSummary string) (string, error)
}

// BuildPrompt renders the transition prompt for a pair of adjacent segment
// summaries.
//
// The prompt asks for a paragraph focused on the current segment that
// briefly references the previous one, without frame-by-frame listing or
// invented content.
func BuildPrompt(prevSummary, currentSummary string) string {
	var b strings.Builder

	b.WriteString("Two consecutive clips of one video are described below.\n\n")
	b.WriteString("The previous clip:\n")
	fmt.Fprintf(&b, "%q\n\n", prevSummary)
	b.WriteString("The current clip:\n")
	fmt.Fprintf(&b, "%q\n\n", currentSummary)
	b.WriteString("Write one natural-language paragraph that mainly describes the ")
	b.WriteString("current clip while briefly referring back to the previous clip, ")
	b.WriteString("so the two read as a coherent continuation. Keep it concise and ")
	b.WriteString("clear; do not enumerate individual frames and do not invent ")
	b.WriteString("content that is not in the descriptions.")

	return b.String()
}

// CohereGenerator implements Generator with the Cohere chat API.
type CohereGenerator struct {
	client *cohereclient.Client
	model  string
}

// NewCohereGenerator creates a generator authenticated from the
// COHERE_API_KEY environment variable.
//
// Returns an error if the key is not set. Load a .env file beforehand if
// the key lives there.
func NewCohereGenerator(model string) (*CohereGenerator, error) {
	apiKey := os.Getenv("COHERE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("COHERE_API_KEY is not set")
	}

	if model == "" {
		model = DefaultModel
	}

	httpClient := &http.Client{
		Timeout: requestTimeout,
	}

	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)

	return &CohereGenerator{
		client: client,
		model:  model,
	}, nil
}

// ModelName returns the configured chat model.
func (g *CohereGenerator) ModelName() string {
	return g.model
}

// Transition asks the chat model for a bridging description of the
// current segment.
//
// Returns an error on API failure or an empty completion; the caller
// decides the fallback (the annotation builder keeps the raw summary).
func (g *CohereGenerator) Transition(ctx context.Context, prevSummary, currentSummary string) (string, error) {
	if strings.TrimSpace(prevSummary) == "" || strings.TrimSpace(currentSummary) == "" {
		return "", fmt.Errorf("both segment summaries are required")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := g.client.Chat(ctx, &cohere.ChatRequest{
		Message: BuildPrompt(prevSummary, currentSummary),
		Model:   &g.model,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}

	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return "", fmt.Errorf("cohere chat returned an empty response")
	}

	return strings.TrimSpace(resp.Text), nil
}
