package relevance

import "strings"

// Category pairs a topic label with its lowercase trigger keywords.
// Declaration order matters: on a tie the first-declared category wins,
// which keeps categorization deterministic.
type Category struct {
	Name     string
	Keywords []string
}

// Categories is the fixed topic table used for both article categorization
// and the category signal of relevance ranking.
var Categories = []Category{
	{"ai", []string{"artificial intelligence", "ai", "machine learning", "neural", "chatgpt", "openai", "google ai", "deepmind", "llm", "gpt", "claude", "gemini"}},
	{"technology", []string{"tech", "software", "app", "digital", "internet", "computer", "smartphone", "apple", "google", "microsoft", "meta", "tesla"}},
	{"business", []string{"company", "business", "market", "stock", "investment", "economy", "financial", "revenue", "profit", "startup", "ipo"}},
	{"science", []string{"research", "study", "discovery", "scientist", "university", "breakthrough", "experiment", "climate", "space", "nasa"}},
	{"health", []string{"health", "medical", "doctor", "hospital", "treatment", "vaccine", "drug", "disease", "covid", "medicine"}},
	{"crypto", []string{"bitcoin", "cryptocurrency", "blockchain", "crypto", "ethereum", "nft", "defi", "web3"}},
	{"politics", []string{"government", "president", "election", "policy", "congress", "senate", "political", "vote"}},
	{"sports", []string{"sports", "football", "basketball", "soccer", "olympics", "championship", "team", "player"}},
}

// DefaultCategory is assigned when no trigger keyword matches.
const DefaultCategory = "general"

// Categorize assigns a topic label from keyword-set scoring over the
// article title and description. Matching is permissive substring matching,
// mirroring the behavior the relevance ranker relies on.
func Categorize(title, description string) string {
	text := strings.ToLower(title + " " + description)

	best := DefaultCategory
	bestScore := 0
	for _, cat := range Categories {
		score := 0
		for _, kw := range cat.Keywords {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > bestScore {
			best = cat.Name
			bestScore = score
		}
	}
	return best
}
