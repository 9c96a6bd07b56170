/*
Package advisor decides whether a typed word is spelled correctly.

The advisor holds no dictionary and no model of its own. Every call gets a
Corrector, asks it for the best spelling of the word and, when that differs
from the input, for a ranked list of alternatives:

	v, err := advisor.Evaluate("speling", model)
	if errors.Is(err, advisor.ErrEmpty) {
		// ask for input
	}
	if v.Kind == advisor.KindMisspelled {
		fmt.Println("did you mean", v.Corrected, v.Suggestions)
	}

Comparison between the input and the correction ignores case. At most
MaxSuggestions alternatives are returned, in the order the corrector ranked
them; duplicates and low-confidence entries are kept as-is.
*/
package advisor

import (
	"errors"
	"fmt"
	"strings"
)

// MaxSuggestions caps the alternatives returned for a misspelled word.
const MaxSuggestions = 5

var (
	// ErrEmpty is returned when the input is empty after trimming.
	ErrEmpty = errors.New("empty input")
	// ErrCorrectorUnavailable wraps any failure of the corrector.
	ErrCorrectorUnavailable = errors.New("corrector unavailable")
)

// Candidate is one ranked correction with the corrector's confidence.
type Candidate struct {
	Word       string
	Confidence float64
}

// Corrector provides spelling corrections for single words.
// Candidates must already be ranked best first.
type Corrector interface {
	BestCorrection(word string) (string, error)
	RankedCandidates(word string) ([]Candidate, error)
}

// Kind tags a Verdict.
type Kind int

const (
	KindCorrect Kind = iota
	KindMisspelled
)

func (k Kind) String() string {
	switch k {
	case KindCorrect:
		return "correct"
	case KindMisspelled:
		return "misspelled"
	}
	return "unknown"
}

// Verdict is the outcome of one evaluation.
// Suggestions is empty for KindCorrect.
type Verdict struct {
	Kind        Kind
	Original    string
	Corrected   string
	Suggestions []string
}

// Correct reports whether the word needed no correction.
func (v Verdict) Correct() bool {
	return v.Kind == KindCorrect
}

// Evaluate checks raw against c.
func Evaluate(raw string, c Corrector) (Verdict, error) {
	word := strings.TrimSpace(raw)
	if word == "" {
		return Verdict{}, ErrEmpty
	}
	if c == nil {
		return Verdict{}, fmt.Errorf("%w: no corrector configured", ErrCorrectorUnavailable)
	}

	corrected, err := c.BestCorrection(word)
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: %w", ErrCorrectorUnavailable, err)
	}

	if strings.EqualFold(corrected, word) {
		return Verdict{
			Kind:        KindCorrect,
			Original:    word,
			Corrected:   corrected,
			Suggestions: []string{},
		}, nil
	}

	candidates, err := c.RankedCandidates(word)
	if err != nil {
		return Verdict{}, fmt.Errorf("%w: %w", ErrCorrectorUnavailable, err)
	}

	n := min(len(candidates), MaxSuggestions)
	suggestions := make([]string, n)
	for i := range n {
		suggestions[i] = candidates[i].Word
	}

	return Verdict{
		Kind:        KindMisspelled,
		Original:    word,
		Corrected:   corrected,
		Suggestions: suggestions,
	}, nil
}

// Advisor binds a Corrector so callers can pass a single value around.
type Advisor struct {
	corrector Corrector
}

// New returns an Advisor that evaluates words against c.
func New(c Corrector) Advisor {
	return Advisor{corrector: c}
}

// Evaluate is the bound form of the package-level Evaluate.
func (a Advisor) Evaluate(raw string) (Verdict, error) {
	return Evaluate(raw, a.corrector)
}

// Corrector returns the bound corrector.
func (a Advisor) Corrector() Corrector {
	return a.corrector
}
