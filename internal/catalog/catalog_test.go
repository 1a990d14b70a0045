package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/health-check/internal/types"
)

func sampleQuestion(id string, category types.Category) types.Question {
	return types.Question{
		ID:         id,
		Category:   category,
		Text:       "Sample question " + id,
		ShortTopic: "Topic " + id,
		Severity:   1,
		Choices: []types.Choice{
			{Text: "Low", Score: 0},
			{Text: "High", Score: 3},
		},
		Advice: []types.AdviceRule{
			{Min: 0, Max: 1, Text: "Improve " + id},
			{Min: 2, Max: 3, Text: "Keep " + id},
		},
	}
}

func TestDefault_Loads(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "holistic-health-check", c.Name())
	assert.Equal(t, KindTwoAxis, c.Kind())
	assert.Equal(t, 20, c.Len())
	assert.Equal(t, []types.Category{types.CategoryPhysical, types.CategoryMental}, c.Categories())

	q, ok := c.Lookup("p01_sleep_hours")
	require.True(t, ok)
	assert.Equal(t, "Sleep duration", q.ShortTopic)
	assert.Equal(t, 3, q.MaxScore())
}

func TestDefault_AdviceCoversEveryChoice(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	for _, q := range c.Questions() {
		for _, choice := range q.Choices {
			assert.NotEmpty(t, q.ResolveAdvice(choice.Score), "question %s choice %q has no advice", q.ID, choice.Text)
		}
	}
}

func TestDefaultDimensional_Loads(t *testing.T) {
	c, err := DefaultDimensional()
	require.NoError(t, err)

	assert.Equal(t, KindFourAxis, c.Kind())
	assert.Equal(t, 12, c.Len())
	assert.Len(t, c.Categories(), 4)
	for _, q := range c.Questions() {
		for _, choice := range q.Choices {
			assert.NotEmpty(t, choice.Dimensions, "question %s", q.ID)
		}
	}
}

func TestNew_RejectsZeroChoices(t *testing.T) {
	q := sampleQuestion("q1", types.CategoryPhysical)
	q.Choices = nil

	_, err := New("broken", KindTwoAxis, []types.Question{q})
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.NotEmpty(t, validationErr.Violations())
}

func TestNew_AggregatesViolations(t *testing.T) {
	dup := sampleQuestion("q1", types.CategoryPhysical)
	social := sampleQuestion("q2", types.CategorySocial)
	badSeverity := sampleQuestion("q3", types.CategoryMental)
	badSeverity.Severity = 0

	_, err := New("broken", KindTwoAxis, []types.Question{
		sampleQuestion("q1", types.CategoryPhysical), dup, social, badSeverity,
	})
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Len(t, validationErr.Violations(), 3)
	assert.Contains(t, err.Error(), "duplicate id")
	assert.Contains(t, err.Error(), "two-axis")
}

func TestNew_FourAxisRequiresDimensions(t *testing.T) {
	q := sampleQuestion("q1", types.CategorySocial)

	_, err := New("dims", KindFourAxis, []types.Question{q})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dimension contributions")
}

func TestNew_RejectsInvertedAdviceRange(t *testing.T) {
	q := sampleQuestion("q1", types.CategoryPhysical)
	q.Advice = []types.AdviceRule{{Min: 3, Max: 1, Text: "never"}}

	_, err := New("broken", KindTwoAxis, []types.Question{q})
	require.Error(t, err)
}

func TestNew_CopiesInput(t *testing.T) {
	questions := []types.Question{sampleQuestion("q1", types.CategoryPhysical)}
	c, err := New("copy", KindTwoAxis, questions)
	require.NoError(t, err)

	questions[0].Choices[0].Score = 99
	questions[0].ShortTopic = "changed"

	q, ok := c.Lookup("q1")
	require.True(t, ok)
	assert.Equal(t, 0, q.Choices[0].Score)
	assert.Equal(t, "Topic q1", q.ShortTopic)
}

func TestLoad_JSONDocument(t *testing.T) {
	doc := `{"name": "json", "kind": "two_axis", "questions": [{"id": "q1", "category": "Mental",
		"text": "t", "short_topic": "s", "severity": 2, "choices": [{"text": "a", "score": 1}]}]}`

	c, err := Load([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, "json", c.Name())
	assert.Equal(t, 1, c.Len())
}

func TestLoad_SchemaViolation(t *testing.T) {
	doc := "name: bad\nkind: three_axis\nquestions: []\n"

	_, err := Load([]byte(doc))
	require.Error(t, err)

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Message, "schema")
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load([]byte("name: [unterminated"))
	require.Error(t, err)

	var loadErr *LoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, holisticYAML, 0644))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 20, c.Len())

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read file")
}
