package splitdiff

import "context"

// RubricResult is the verdict of an LLM-as-judge evaluation.
type RubricResult struct {
	Passed    bool   // Whether the output met the criterion
	Reasoning string // The judge's explanation for the verdict
}

// RubricJudge scores free-form text, such as a generated summary,
// against a natural-language criterion. Implementations back the
// opt-in eval tests.
type RubricJudge interface {
	Judge(ctx context.Context, criterion, output string) (*RubricResult, error)
}
