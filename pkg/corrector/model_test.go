package corrector

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bastiangx/wordcheck/pkg/advisor"
	"github.com/bastiangx/wordcheck/pkg/customdict"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ advisor.Corrector = (*Model)(nil)
	_ advisor.Corrector = (*Matcher)(nil)
	_ advisor.Corrector = (*CustomWords)(nil)
)

func trainedModel() *Model {
	m := NewModel(DefaultModelOptions())
	m.Train(map[string]int{
		"spelling": 150,
		"spilling": 20,
		"hello":    300,
		"world":    250,
		"the":      2000,
		"skipped":  0,
	})
	return m
}

func TestModelKnownWord(t *testing.T) {
	m := trainedModel()

	best, err := m.BestCorrection("hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", best)

	best, err = m.BestCorrection("Hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", best)
}

func TestModelCorrectsMisspelling(t *testing.T) {
	m := trainedModel()

	best, err := m.BestCorrection("speling")
	require.NoError(t, err)
	assert.Equal(t, "spelling", best)

	ranked, err := m.RankedCandidates("speling")
	require.NoError(t, err)
	require.NotEmpty(t, ranked)
	assert.Equal(t, "spelling", ranked[0].Word)

	words := make([]string, len(ranked))
	total := 0.0
	for i, c := range ranked {
		words[i] = c.Word
		total += c.Confidence
	}
	assert.Contains(t, words, "spilling")
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestModelUnknownWordUnchanged(t *testing.T) {
	m := trainedModel()

	best, err := m.BestCorrection("qwxz")
	require.NoError(t, err)
	assert.Equal(t, "qwxz", best)
}

func TestModelWithAdvisor(t *testing.T) {
	m := trainedModel()

	v, err := advisor.Evaluate("speling", m)
	require.NoError(t, err)
	assert.Equal(t, advisor.KindMisspelled, v.Kind)
	assert.Equal(t, "spelling", v.Corrected)
	assert.LessOrEqual(t, len(v.Suggestions), advisor.MaxSuggestions)
	assert.Equal(t, "spelling", v.Suggestions[0])

	v, err = advisor.Evaluate("hello", m)
	require.NoError(t, err)
	assert.True(t, v.Correct())
}

func TestMatcherWithAdvisor(t *testing.T) {
	m := NewMatcher(testDictionary(), DefaultMatcherOptions())

	v, err := advisor.Evaluate(" ther ", m)
	require.NoError(t, err)
	assert.Equal(t, advisor.KindMisspelled, v.Kind)
	assert.Equal(t, "ther", v.Original)
	assert.Equal(t, "the", v.Corrected)
	assert.Equal(t, []string{"the", "there", "their"}, v.Suggestions)
}

func TestCustomWordsOverrideCorrection(t *testing.T) {
	store := customdict.NewMemory("Speling")
	c := WithCustomWords(trainedModel(), store)

	v, err := advisor.Evaluate("speling", c)
	require.NoError(t, err)
	assert.True(t, v.Correct())
	assert.Equal(t, "speling", v.Corrected)

	ranked, err := c.RankedCandidates("speling")
	require.NoError(t, err)
	assert.Empty(t, ranked)

	require.NoError(t, store.Remove(context.Background(), "speling"))
	v, err = advisor.Evaluate("speling", c)
	require.NoError(t, err)
	assert.Equal(t, advisor.KindMisspelled, v.Kind)
}

func TestWithCustomWordsNilStore(t *testing.T) {
	m := trainedModel()
	assert.Same(t, m, WithCustomWords(m, nil))
}

// brokenStore fails every call the way an unreachable Redis would.
type brokenStore struct{}

var errRefused = errors.New("connection refused")

func (brokenStore) Add(context.Context, string) error    { return errRefused }
func (brokenStore) Remove(context.Context, string) error { return errRefused }
func (brokenStore) All(context.Context) ([]string, error) {
	return nil, errRefused
}
func (brokenStore) Contains(context.Context, string) (bool, error) {
	return false, errRefused
}

func TestCustomWordsStoreFailure(t *testing.T) {
	c := WithCustomWords(trainedModel(), brokenStore{})

	_, err := advisor.Evaluate("xyzzy123", c)
	assert.ErrorIs(t, err, advisor.ErrCorrectorUnavailable)
	assert.ErrorIs(t, err, errRefused)
}

// blockingStore never answers before the caller gives up.
type blockingStore struct{ brokenStore }

func (blockingStore) Contains(ctx context.Context, _ string) (bool, error) {
	<-ctx.Done()
	return false, ctx.Err()
}

func TestCustomWordsTimeout(t *testing.T) {
	c, ok := WithCustomWords(trainedModel(), blockingStore{}).(*CustomWords)
	require.True(t, ok)

	c.SetTimeout(0)
	assert.Equal(t, DefaultStoreTimeout, c.timeout, "non-positive timeouts are ignored")

	c.SetTimeout(20 * time.Millisecond)
	start := time.Now()
	_, err := c.BestCorrection("hello")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), DefaultStoreTimeout)
}
