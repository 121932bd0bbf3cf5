// Package categorize implements keyword-based auto-categorization as a
// pluggable scoring strategy: new matchers only need to implement Scorer.
package categorize

import (
	"sort"
	"strings"

	"github.com/finsighthq/finsight/pkg/domain"
)

// Scorer rates how well a piece of transaction text matches one category.
// Higher is better; zero or below means no match.
type Scorer interface {
	Score(text string) int
}

// KeywordScorer matches case-insensitively on a category's keyword list.
// Longer keywords score higher than short ones so "aws marketplace" beats
// "aws" when both hit.
type KeywordScorer struct {
	keywords []string
}

// NewKeywordScorer builds a scorer from a keyword list. Blank keywords are
// dropped.
func NewKeywordScorer(keywords []string) *KeywordScorer {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return &KeywordScorer{keywords: out}
}

// Score counts matching keywords weighted by their length.
func (s *KeywordScorer) Score(text string) int {
	text = strings.ToLower(text)
	score := 0
	for _, k := range s.keywords {
		if strings.Contains(text, k) {
			score += len(k)
		}
	}
	return score
}

// Match is a scored category candidate.
type Match struct {
	Category domain.Category
	Score    int
}

// Suggest returns the best-scoring active category for the given text, or
// nil when nothing matches. Ties break on category name for determinism.
func Suggest(categories []domain.Category, text string) *Match {
	var matches []Match
	for _, c := range categories {
		if !c.Active || len(c.Keywords) == 0 {
			continue
		}
		if score := NewKeywordScorer(c.Keywords).Score(text); score > 0 {
			matches = append(matches, Match{Category: c, Score: score})
		}
	}
	if len(matches) == 0 {
		return nil
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Category.Name < matches[j].Category.Name
	})
	return &matches[0]
}
