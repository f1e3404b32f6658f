package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/splitdiff"
)

// Compile-time interface verification.
var _ splitdiff.RubricJudge = (*Judge)(nil)

// Judge implements splitdiff.RubricJudge using Google Gemini.
type Judge struct {
	client GenerativeClient
	model  string
}

// NewJudge creates a new Judge.
func NewJudge(client GenerativeClient, model string) *Judge {
	return &Judge{client: client, model: model}
}

// Judge evaluates whether the output satisfies the given criterion.
func (j *Judge) Judge(ctx context.Context, criterion, output string) (*splitdiff.RubricResult, error) {
	prompt := BuildJudgePrompt(criterion, output)

	contents := []*Content{{
		Parts: []*Part{{Text: prompt}},
	}}

	config := BuildJudgeConfig()

	resp, err := j.client.GenerateContent(ctx, j.model, contents, config)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("gemini: returned nil response")
	}

	var result struct {
		Passed    bool   `json:"passed"`
		Reasoning string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(resp.Text), &result); err != nil {
		return nil, fmt.Errorf("gemini: failed to parse response: %w", err)
	}

	return &splitdiff.RubricResult{
		Passed:    result.Passed,
		Reasoning: result.Reasoning,
	}, nil
}

// BuildJudgePrompt creates the user prompt for rubric evaluation.
func BuildJudgePrompt(criterion, output string) string {
	return fmt.Sprintf(`Evaluate whether the output satisfies the criterion.

## Criterion

%s

## Output

%s

## Task

Decide whether the output satisfies the criterion. Judge only what the criterion asks for; do not penalize style or content the criterion does not mention.

Respond with JSON:
{
  "passed": true,
  "reasoning": "Why the output does or does not satisfy the criterion"
}`, criterion, output)
}

// BuildJudgeConfig returns config for judge calls. Temperature zero
// keeps verdicts repeatable.
func BuildJudgeConfig() *GenerateContentConfig {
	temp := float32(0)
	return &GenerateContentConfig{
		SystemInstruction: &Content{
			Parts: []*Part{{
				Text: `You are a strict but fair evaluator. You judge whether text satisfies explicit criteria, and you explain your verdict in one or two sentences.`,
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &Schema{
			Type: "OBJECT",
			Properties: map[string]*Schema{
				"passed": {
					Type:        "BOOLEAN",
					Description: "Whether the output satisfies the criterion",
				},
				"reasoning": {
					Type:        "STRING",
					Description: "Explanation for the verdict",
				},
			},
			Required:         []string{"passed", "reasoning"},
			PropertyOrdering: []string{"passed", "reasoning"},
		},
	}
}
