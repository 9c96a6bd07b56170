package corrector

import (
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/bastiangx/wordcheck/pkg/advisor"
	"github.com/charmbracelet/log"
	"github.com/hbollon/go-edlib"
	"github.com/tchap/go-patricia/v2/patricia"
)

// MatcherOptions tunes the dictionary matcher.
type MatcherOptions struct {
	// MaxEditDistance is the largest Damerau-Levenshtein distance accepted.
	MaxEditDistance int
	// MinWordLength is the shortest input (in runes) that gets corrected.
	MinWordLength int
}

// DefaultMatcherOptions returns the options used when none are given.
func DefaultMatcherOptions() MatcherOptions {
	return MatcherOptions{
		MaxEditDistance: 2,
		MinWordLength:   2,
	}
}

// Matcher corrects words against a frequency dictionary.
//
// preference: exact match > smallest edit distance > most frequent word.
// Candidates must share the input's first letter.
type Matcher struct {
	mu   sync.RWMutex
	trie *patricia.Trie
	size int
	opts MatcherOptions
}

type match struct {
	word string
	freq int
	dist int
}

// NewMatcher builds a matcher over words (word -> frequency).
func NewMatcher(words map[string]int, opts MatcherOptions) *Matcher {
	if opts.MaxEditDistance <= 0 {
		opts.MaxEditDistance = DefaultMatcherOptions().MaxEditDistance
	}
	if opts.MinWordLength <= 0 {
		opts.MinWordLength = DefaultMatcherOptions().MinWordLength
	}
	m := &Matcher{
		trie: patricia.NewTrie(),
		opts: opts,
	}
	for w, f := range words {
		m.addLocked(w, f)
	}
	log.Debugf("Matcher built with %d words", m.size)
	return m
}

// AddWord inserts or updates word with the given frequency.
func (m *Matcher) AddWord(word string, frequency int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addLocked(word, frequency)
}

func (m *Matcher) addLocked(word string, frequency int) {
	lw := strings.ToLower(strings.TrimSpace(word))
	if lw == "" {
		return
	}
	if m.trie.Insert(patricia.Prefix(lw), frequency) {
		m.size++
		return
	}
	m.trie.Set(patricia.Prefix(lw), frequency)
}

// Len returns the number of distinct words.
func (m *Matcher) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.size
}

// BestCorrection returns the dictionary spelling of word, its most likely
// correction, or word itself when nothing qualifies.
func (m *Matcher) BestCorrection(word string) (string, error) {
	lw := strings.ToLower(word)
	if utf8.RuneCountInString(lw) < m.opts.MinWordLength {
		return word, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.trie.Get(patricia.Prefix(lw)) != nil {
		return lw, nil
	}
	matches := m.findMatches(lw)
	if len(matches) == 0 {
		return word, nil
	}
	return matches[0].word, nil
}

// RankedCandidates returns every dictionary word within reach of word,
// best first. Exact matches are not included.
func (m *Matcher) RankedCandidates(word string) ([]advisor.Candidate, error) {
	lw := strings.ToLower(word)
	if utf8.RuneCountInString(lw) < m.opts.MinWordLength {
		return nil, nil
	}

	m.mu.RLock()
	matches := m.findMatches(lw)
	m.mu.RUnlock()

	total := 0
	for _, mt := range matches {
		total += mt.freq
	}

	candidates := make([]advisor.Candidate, 0, len(matches))
	for _, mt := range matches {
		candidates = append(candidates, advisor.Candidate{
			Word:       mt.word,
			Confidence: confidence(lw, mt, total),
		})
	}
	return candidates, nil
}

// findMatches must be called with the read lock held.
func (m *Matcher) findMatches(lw string) []match {
	first, size := utf8.DecodeRuneInString(lw)
	if size == 0 {
		return nil
	}
	inputLen := utf8.RuneCountInString(lw)

	var matches []match
	err := m.trie.VisitSubtree(patricia.Prefix(string(first)), func(p patricia.Prefix, item patricia.Item) error {
		cand := string(p)
		if cand == lw {
			return nil
		}
		if abs(utf8.RuneCountInString(cand)-inputLen) > m.opts.MaxEditDistance {
			return nil
		}
		dist := edlib.DamerauLevenshteinDistance(lw, cand)
		if dist > m.opts.MaxEditDistance {
			return nil
		}
		matches = append(matches, match{word: cand, freq: frequencyOf(item), dist: dist})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		if matches[i].freq != matches[j].freq {
			return matches[i].freq > matches[j].freq
		}
		return matches[i].word < matches[j].word
	})
	return matches
}

// confidence mixes string similarity with the candidate's frequency share.
func confidence(input string, mt match, total int) float64 {
	sim, err := edlib.StringsSimilarity(input, mt.word, edlib.Levenshtein)
	if err != nil {
		log.Debugf("similarity %q/%q: %v", input, mt.word, err)
		sim = 0
	}
	share := 1.0
	if total > 0 {
		share = float64(mt.freq) / float64(total)
	}
	return float64(sim) * (0.5 + 0.5*share)
}

func frequencyOf(item patricia.Item) int {
	switch v := item.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case uint32:
		return int(v)
	case float64:
		return int(v)
	}
	log.Errorf("Unknown item type: %T", item)
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
