package pipeline

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/jonathan/health-check/internal/catalog"
	"github.com/jonathan/health-check/internal/types"
)

// AnswerError reports an answer that does not fit the catalog
type AnswerError struct {
	QuestionID string
	Index      int
	Reason     string
}

func (e *AnswerError) Error() string {
	return fmt.Sprintf("answer %q=%d: %s", e.QuestionID, e.Index, e.Reason)
}

// CheckAnswers rejects answers for unknown questions and out-of-range choice indexes.
// The engine itself skips such entries; this is the boundary check for collaborators.
func CheckAnswers(cat *catalog.Catalog, answers types.Answers) error {
	var result *multierror.Error
	for _, q := range cat.Questions() {
		idx, ok := answers[q.ID]
		if !ok {
			continue
		}
		if idx < 0 || idx >= len(q.Choices) {
			result = multierror.Append(result, &AnswerError{
				QuestionID: q.ID,
				Index:      idx,
				Reason:     fmt.Sprintf("choice index out of range [0, %d)", len(q.Choices)),
			})
		}
	}
	for id, idx := range answers {
		if _, ok := cat.Lookup(id); !ok {
			result = multierror.Append(result, &AnswerError{QuestionID: id, Index: idx, Reason: "unknown question"})
		}
	}
	return result.ErrorOrNil()
}
