package relevance

import (
	"sort"
	"strings"

	"newsanalyst/internal/corpus"
)

// MaxRanked caps how many scored articles a ranking returns.
const MaxRanked = 8

// Scoring weights. Title hits dominate, category triggers sit between
// title and plain body matches.
const (
	keywordWeight  = 2
	categoryWeight = 3
	titleWeight    = 5
)

// ScoredArticle pairs an article with its relevance score for one question.
type ScoredArticle struct {
	Article corpus.Article
	Score   int
}

// Rank scores every corpus article against the question and returns the
// most relevant first, zero-score articles dropped, truncated to MaxRanked.
// Pure and deterministic: ties preserve corpus order.
func Rank(question string, articles []corpus.Article) []ScoredArticle {
	questionLower := strings.ToLower(question)
	questionKeywords := ExtractKeywords(question)

	// Category signals apply when the category name itself appears in the
	// question ("what's new in technology?").
	var activeCategories []Category
	for _, cat := range Categories {
		if strings.Contains(questionLower, cat.Name) {
			activeCategories = append(activeCategories, cat)
		}
	}

	var scored []ScoredArticle
	for _, article := range articles {
		articleText := strings.ToLower(article.Title + " " + article.Description)
		titleText := strings.ToLower(article.Title)

		score := 0
		for _, kw := range questionKeywords {
			if strings.Contains(articleText, kw) {
				score += keywordWeight
			}
		}
		for _, cat := range activeCategories {
			for _, trigger := range cat.Keywords {
				if strings.Contains(articleText, trigger) {
					score += categoryWeight
				}
			}
		}
		for _, kw := range questionKeywords {
			if strings.Contains(titleText, kw) {
				score += titleWeight
			}
		}

		if score > 0 {
			scored = append(scored, ScoredArticle{Article: article, Score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > MaxRanked {
		scored = scored[:MaxRanked]
	}
	return scored
}
