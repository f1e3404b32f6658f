// Package gemini summarizes comparisons using the Google Gemini API.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/splitdiff"
)

// Compile-time interface verification.
var _ splitdiff.Summarizer = (*Summarizer)(nil)

// DefaultSummarizeTimeout is the default timeout for a single summarize call.
const DefaultSummarizeTimeout = 30 * time.Second

// Summarizer implements splitdiff.Summarizer using Google Gemini.
type Summarizer struct {
	client    GenerativeClient
	model     string
	formatter splitdiff.PromptFormatter
	timeout   time.Duration
}

// SummarizerOption configures a Summarizer.
type SummarizerOption func(*Summarizer)

// WithTimeout sets the timeout for API calls.
func WithTimeout(d time.Duration) SummarizerOption {
	return func(s *Summarizer) {
		s.timeout = d
	}
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(client GenerativeClient, model string, opts ...SummarizerOption) *Summarizer {
	s := &Summarizer{
		client:    client,
		model:     model,
		formatter: &splitdiff.DefaultFormatter{},
		timeout:   DefaultSummarizeTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize produces a Summary for one comparison. The response is
// validated against the alignment map before it is returned, so every
// hunk note refers to a hunk that exists.
func (s *Summarizer) Summarize(ctx context.Context, input splitdiff.SummaryInput) (*splitdiff.Summary, error) {
	if input.Map == nil {
		return nil, fmt.Errorf("gemini: summary input has no alignment map")
	}

	// Apply timeout to context
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := BuildSummaryPrompt(s.formatter.Format(input))

	contents := []*Content{{
		Parts: []*Part{{Text: prompt}},
	}}

	config := BuildSummaryConfig()

	resp, err := s.client.GenerateContent(ctx, s.model, contents, config)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("gemini: returned nil response")
	}

	var summary splitdiff.Summary
	if err := json.Unmarshal([]byte(resp.Text), &summary); err != nil {
		return nil, fmt.Errorf("gemini: failed to parse response: %w", err)
	}
	if err := summary.Validate(len(input.Map.Hunks)); err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	return &summary, nil
}

// BuildSummaryPrompt creates the user prompt for summarization.
func BuildSummaryPrompt(formattedInput string) string {
	return fmt.Sprintf(`Summarize this code comparison for a reviewer scanning it in a side-by-side viewer.

%s

## Task

Write an overview sentence describing what the whole change does, in plain language a reviewer skimming the file would find useful.

Optionally add a short note per hunk. Notes should say what changed and why it matters, not restate the lines. Reference hunks by the ordinal shown in the HUNK headers. Skip notes for hunks that are obvious from the overview.

Respond with JSON:
{
  "overview": "One sentence describing the whole change",
  "hunks": [
    {"hunk": 0, "text": "Short description of this hunk"}
  ]
}

Rules:
- "overview" is required and must be a single sentence
- "hunks" may be empty or omit hunks
- "hunk" is the 0-based ordinal from the input`, formattedInput)
}

// BuildSummaryConfig returns config for summarize calls. The response
// schema makes the overview mandatory while hunk notes stay optional.
func BuildSummaryConfig() *GenerateContentConfig {
	temp := float32(0.2) // Lower temperature for more consistent summaries
	return &GenerateContentConfig{
		SystemInstruction: &Content{
			Parts: []*Part{{
				Text: `You are a code change analyst helping developers review diffs in a side-by-side viewer.

Your role is to:
1. Describe what a change does in one plain sentence
2. Add short per-hunk notes only where they help a reviewer
3. Reference hunks strictly by their given ordinals

Be precise and terse. Never invent hunks that are not in the input.`,
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &Schema{
			Type: "OBJECT",
			Properties: map[string]*Schema{
				"overview": {
					Type:        "STRING",
					Description: "One sentence describing the whole change",
				},
				"hunks": {
					Type: "ARRAY",
					Items: &Schema{
						Type: "OBJECT",
						Properties: map[string]*Schema{
							"hunk": {
								Type:        "INTEGER",
								Description: "0-based ordinal of the hunk the note refers to",
							},
							"text": {
								Type:        "STRING",
								Description: "Short description of the change in this hunk",
							},
						},
						Required:         []string{"hunk", "text"},
						PropertyOrdering: []string{"hunk", "text"},
					},
				},
			},
			Required:         []string{"overview"},
			PropertyOrdering: []string{"overview", "hunks"},
		},
	}
}

// GenerativeClient abstracts the Gemini API for testing.
type GenerativeClient interface {
	GenerateContent(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error)
}

// Content represents a message in a Gemini conversation.
type Content struct {
	Parts []*Part
}

// Part represents a part of a message.
type Part struct {
	Text string
}

// GenerateContentConfig holds configuration for content generation.
type GenerateContentConfig struct {
	SystemInstruction *Content
	Temperature       *float32
	ResponseMIMEType  string
	ResponseSchema    *Schema
}

// Schema represents the structure for controlled JSON generation.
type Schema struct {
	Type             string             // OBJECT, ARRAY, STRING, INTEGER, NUMBER, BOOLEAN
	Properties       map[string]*Schema // For object types
	Items            *Schema            // For array types
	Enum             []string           // For string enums
	Required         []string           // Required property names
	PropertyOrdering []string           // Order of properties in output
	Description      string             // Field description
}

// GenerateContentResponse holds the response from content generation.
type GenerateContentResponse struct {
	Text string
}

// MockGenerativeClient is a mock implementation of GenerativeClient for testing.
type MockGenerativeClient struct {
	GenerateContentFn func(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error)
}

func (m *MockGenerativeClient) GenerateContent(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error) {
	return m.GenerateContentFn(ctx, model, contents, config)
}

// APIError represents an error from the Gemini API with HTTP status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}
