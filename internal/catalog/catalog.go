// Package catalog holds the immutable question registry consumed by the scoring engine.
package catalog

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"

	"github.com/jonathan/health-check/internal/types"
)

// Kind tells which scoring model a catalog is authored for.
type Kind string

const (
	// KindTwoAxis catalogs carry a single score per choice and Physical/Mental categories.
	KindTwoAxis Kind = "two_axis"
	// KindFourAxis catalogs carry per-dimension contributions per choice.
	KindFourAxis Kind = "four_axis"
)

// Catalog is a read-only, ordered set of questions. It is safe for concurrent use
// because nothing mutates it after New returns.
type Catalog struct {
	name       string
	kind       Kind
	questions  []types.Question
	index      map[string]int
	categories []types.Category
}

// New validates the questions and builds a Catalog.
// Questions are deep-copied so later changes by the caller do not leak in.
func New(name string, kind Kind, questions []types.Question) (*Catalog, error) {
	if err := validateQuestions(name, kind, questions); err != nil {
		return nil, err
	}

	c := &Catalog{
		name:      name,
		kind:      kind,
		questions: make([]types.Question, len(questions)),
		index:     make(map[string]int, len(questions)),
	}

	seen := make(map[types.Category]bool)
	for i, q := range questions {
		c.questions[i] = cloneQuestion(q)
		c.index[q.ID] = i
		seen[q.Category] = true
	}
	for _, cat := range types.AllCategories {
		if seen[cat] {
			c.categories = append(c.categories, cat)
		}
	}

	return c, nil
}

// Name returns the catalog name.
func (c *Catalog) Name() string { return c.name }

// Kind returns the scoring model the catalog targets.
func (c *Catalog) Kind() Kind { return c.kind }

// Len returns the number of questions.
func (c *Catalog) Len() int { return len(c.questions) }

// Questions returns the questions in authored order. The slice is a copy; the
// nested choice and advice slices are shared and must be treated as read-only.
func (c *Catalog) Questions() []types.Question {
	return slices.Clone(c.questions)
}

// At returns the question at position i in authored order.
func (c *Catalog) At(i int) types.Question {
	return c.questions[i]
}

// Lookup returns the question with the given ID.
func (c *Catalog) Lookup(id string) (types.Question, bool) {
	i, ok := c.index[id]
	if !ok {
		return types.Question{}, false
	}
	return c.questions[i], true
}

// Categories returns the categories present in the catalog, in reporting order.
func (c *Catalog) Categories() []types.Category {
	return slices.Clone(c.categories)
}

func validateQuestions(name string, kind Kind, questions []types.Question) error {
	var errs *multierror.Error

	if name == "" {
		errs = multierror.Append(errs, fmt.Errorf("catalog name is empty"))
	}
	if kind != KindTwoAxis && kind != KindFourAxis {
		errs = multierror.Append(errs, fmt.Errorf("unknown catalog kind %q", kind))
	}
	if len(questions) == 0 {
		errs = multierror.Append(errs, fmt.Errorf("catalog has no questions"))
	}

	validate := validator.New()
	ids := make(map[string]bool, len(questions))
	for i := range questions {
		q := &questions[i]
		if err := validate.Struct(q); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("question %d (%s): %w", i, q.ID, err))
		}
		if q.ID != "" && ids[q.ID] {
			errs = multierror.Append(errs, fmt.Errorf("question %d: duplicate id %q", i, q.ID))
		}
		ids[q.ID] = true

		switch kind {
		case KindTwoAxis:
			if q.Category != types.CategoryPhysical && q.Category != types.CategoryMental {
				errs = multierror.Append(errs, fmt.Errorf("question %s: category %q not allowed in a two-axis catalog", q.ID, q.Category))
			}
		case KindFourAxis:
			for j, choice := range q.Choices {
				if len(choice.Dimensions) == 0 {
					errs = multierror.Append(errs, fmt.Errorf("question %s choice %d: no dimension contributions", q.ID, j))
				}
				for dim := range choice.Dimensions {
					if dim.Category() == "" {
						errs = multierror.Append(errs, fmt.Errorf("question %s choice %d: unknown dimension %q", q.ID, j, dim))
					}
				}
			}
		}
	}

	if errs.ErrorOrNil() == nil {
		return nil
	}
	return &ValidationError{Catalog: name, Errs: errs}
}

func cloneQuestion(q types.Question) types.Question {
	out := q
	out.Choices = make([]types.Choice, len(q.Choices))
	for i, ch := range q.Choices {
		out.Choices[i] = ch
		if ch.Dimensions != nil {
			dims := make(map[types.Dimension]int, len(ch.Dimensions))
			for k, v := range ch.Dimensions {
				dims[k] = v
			}
			out.Choices[i].Dimensions = dims
		}
	}
	out.Advice = slices.Clone(q.Advice)
	return out
}
