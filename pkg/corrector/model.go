/*
Package corrector provides the spelling backends used by the advisor.

Every backend implements advisor.Corrector:

  - Model wraps a statistical model from github.com/sajari/fuzzy.
  - Matcher ranks dictionary words by edit distance and frequency.
  - WithCustomWords layers a user dictionary over another corrector.

Backends are safe for concurrent use. Unknown words with no plausible
correction are returned unchanged, so they are reported as correct.
*/
package corrector

import (
	"sort"
	"strings"

	"github.com/bastiangx/wordcheck/pkg/advisor"
	"github.com/charmbracelet/log"
	"github.com/sajari/fuzzy"
)

// ModelOptions tunes the statistical model.
type ModelOptions struct {
	// Depth is the maximum edit distance explored.
	Depth int
	// Threshold is the corpus count a word must exceed to be known.
	Threshold int
}

// DefaultModelOptions returns the options used when none are given.
func DefaultModelOptions() ModelOptions {
	return ModelOptions{Depth: 2, Threshold: 0}
}

// Model corrects words with a trained fuzzy model.
type Model struct {
	model *fuzzy.Model
}

// NewModel creates an untrained model.
func NewModel(opts ModelOptions) *Model {
	if opts.Depth <= 0 {
		opts.Depth = DefaultModelOptions().Depth
	}
	if opts.Threshold < 0 {
		opts.Threshold = 0
	}
	m := fuzzy.NewModel()
	m.SetDepth(opts.Depth)
	m.SetThreshold(opts.Threshold)
	m.SetUseAutocomplete(false)
	return &Model{model: m}
}

// Train sets corpus counts for words. Words with a non-positive count are skipped.
func (m *Model) Train(words map[string]int) {
	n := 0
	for w, count := range words {
		lw := strings.ToLower(strings.TrimSpace(w))
		if lw == "" || count <= 0 {
			continue
		}
		m.model.SetCount(lw, count, true)
		n++
	}
	log.Debugf("Model trained with %d words", n)
}

// BestCorrection returns the model's most likely spelling of word.
func (m *Model) BestCorrection(word string) (string, error) {
	best := m.model.SpellCheck(word)
	if best == "" {
		return word, nil
	}
	return best, nil
}

// RankedCandidates returns all potentials for word ordered by edit
// distance, then corpus count. Confidence is the count share.
func (m *Model) RankedCandidates(word string) ([]advisor.Candidate, error) {
	potentials := m.model.Potentials(word, true)
	if len(potentials) == 0 {
		return nil, nil
	}

	pots := make([]*fuzzy.Potential, 0, len(potentials))
	total := 0
	for _, p := range potentials {
		pots = append(pots, p)
		total += p.Score
	}
	sort.Slice(pots, func(i, j int) bool {
		if pots[i].Leven != pots[j].Leven {
			return pots[i].Leven < pots[j].Leven
		}
		if pots[i].Score != pots[j].Score {
			return pots[i].Score > pots[j].Score
		}
		return pots[i].Term < pots[j].Term
	})

	candidates := make([]advisor.Candidate, len(pots))
	for i, p := range pots {
		conf := 0.0
		if total > 0 {
			conf = float64(p.Score) / float64(total)
		}
		candidates[i] = advisor.Candidate{Word: p.Term, Confidence: conf}
	}
	return candidates, nil
}
