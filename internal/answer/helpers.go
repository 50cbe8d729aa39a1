package answer

import (
	"strings"
	"unicode"

	"newsanalyst/internal/corpus"
)

var authoritativeTerms = []string{
	"reuters", "bloomberg", "associated press", "bbc", "cnn", "wall street journal", "financial times",
}

var financialTerms = []string{
	"bloomberg", "reuters", "financial", "wall street", "forbes", "cnbc",
}

var knownCompanies = []string{
	"Apple", "Google", "Microsoft", "Amazon", "Tesla", "Meta", "OpenAI", "Netflix",
	"Uber", "Airbnb", "SpaceX", "Twitter", "Facebook", "Instagram", "YouTube",
	"LinkedIn", "TikTok", "Snapchat", "Zoom", "Slack", "Salesforce", "Oracle",
	"IBM", "Intel", "AMD", "NVIDIA", "Samsung", "Sony", "Nintendo", "Adobe",
	"Spotify", "PayPal", "Square", "Stripe", "Coinbase", "Robinhood",
}

func firstN[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func slice[T any](items []T, from, to int) []T {
	if from >= len(items) {
		return nil
	}
	if to > len(items) {
		to = len(items)
	}
	return items[from:to]
}

// firstSentence returns the first period-terminated sentence of text.
func firstSentence(text string) string {
	sentence, _, found := strings.Cut(text, ".")
	sentence = strings.TrimSpace(sentence)
	if !found {
		return sentence
	}
	return sentence + "."
}

// formatTime trims an RFC3339-ish provider timestamp to its date part.
func formatTime(published string) string {
	if published == "" {
		return "Recently"
	}
	if date, _, found := strings.Cut(published, "T"); found {
		return date
	}
	return published
}

func titleCase(s string) string {
	if s == "" {
		return "General"
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func sourcesOf(articles []corpus.Article) []string {
	sources := make([]string, 0, len(articles))
	for _, a := range articles {
		sources = append(sources, a.Source)
	}
	return sources
}

func distinct(values []string) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func distinctSources(articles []corpus.Article) []string {
	return distinct(sourcesOf(articles))
}

func distinctCategories(articles []corpus.Article) []string {
	categories := make([]string, 0, len(articles))
	for _, a := range articles {
		categories = append(categories, a.Category)
	}
	return distinct(categories)
}

// dominantCategory returns the most frequent category and its count.
// Ties resolve to the category seen first, keeping output deterministic.
func dominantCategory(articles []corpus.Article) (string, int) {
	counts := map[string]int{}
	var order []string
	for _, a := range articles {
		cat := a.Category
		if cat == "" {
			cat = "general"
		}
		if _, ok := counts[cat]; !ok {
			order = append(order, cat)
		}
		counts[cat]++
	}

	best, bestCount := "technology", 0
	for _, cat := range order {
		if counts[cat] > bestCount {
			best, bestCount = cat, counts[cat]
		}
	}
	return best, bestCount
}

func authoritativeSources(sources []string) []string {
	var out []string
	for _, src := range sources {
		lower := strings.ToLower(src)
		for _, term := range authoritativeTerms {
			if strings.Contains(lower, term) {
				out = append(out, src)
				break
			}
		}
	}
	return out
}

func financialSources(sources []string) []string {
	var out []string
	for _, src := range sources {
		lower := strings.ToLower(src)
		for _, term := range financialTerms {
			if strings.Contains(lower, term) {
				out = append(out, src)
				break
			}
		}
	}
	return out
}

// companiesMentioned scans titles and descriptions for well-known company
// names, preserving first-mention order.
func companiesMentioned(articles []corpus.Article) []string {
	var companies []string
	seen := map[string]struct{}{}
	for _, a := range articles {
		text := a.Title + " " + a.Description
		for _, company := range knownCompanies {
			if _, ok := seen[company]; ok {
				continue
			}
			if strings.Contains(text, company) {
				seen[company] = struct{}{}
				companies = append(companies, company)
			}
		}
	}
	return companies
}
