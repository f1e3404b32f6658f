package mock

import (
	"context"

	"github.com/fwojciec/splitdiff"
)

// Compile-time interface verification.
var (
	_ splitdiff.Summarizer  = (*Summarizer)(nil)
	_ splitdiff.RubricJudge = (*RubricJudge)(nil)
)

// Summarizer is a mock implementation of splitdiff.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, input splitdiff.SummaryInput) (*splitdiff.Summary, error)
}

func (s *Summarizer) Summarize(ctx context.Context, input splitdiff.SummaryInput) (*splitdiff.Summary, error) {
	return s.SummarizeFn(ctx, input)
}

// RubricJudge is a mock implementation of splitdiff.RubricJudge.
type RubricJudge struct {
	JudgeFn func(ctx context.Context, criterion, output string) (*splitdiff.RubricResult, error)
}

func (j *RubricJudge) Judge(ctx context.Context, criterion, output string) (*splitdiff.RubricResult, error) {
	return j.JudgeFn(ctx, criterion, output)
}
