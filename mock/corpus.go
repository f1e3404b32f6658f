package mock

import "github.com/fwojciec/splitdiff"

// Compile-time interface verification.
var (
	_ splitdiff.CaseLoader    = (*CaseLoader)(nil)
	_ splitdiff.CaseSaver     = (*CaseSaver)(nil)
	_ splitdiff.JudgmentStore = (*JudgmentStore)(nil)
)

// CaseLoader is a mock implementation of splitdiff.CaseLoader.
type CaseLoader struct {
	LoadFn func(path string) ([]splitdiff.Case, error)
}

func (l *CaseLoader) Load(path string) ([]splitdiff.Case, error) {
	return l.LoadFn(path)
}

// CaseSaver is a mock implementation of splitdiff.CaseSaver.
type CaseSaver struct {
	SaveFn func(path string, c splitdiff.Case) error
}

func (s *CaseSaver) Save(path string, c splitdiff.Case) error {
	return s.SaveFn(path, c)
}

// JudgmentStore is a mock implementation of splitdiff.JudgmentStore.
type JudgmentStore struct {
	LoadFn func(path string) ([]splitdiff.Judgment, error)
	SaveFn func(path string, judgments []splitdiff.Judgment) error
}

func (s *JudgmentStore) Load(path string) ([]splitdiff.Judgment, error) {
	return s.LoadFn(path)
}

func (s *JudgmentStore) Save(path string, judgments []splitdiff.Judgment) error {
	return s.SaveFn(path, judgments)
}
