// Package answer renders structured textual answers from ranked articles.
// Intent selection is a single ordered table rather than branching code,
// so variants can be reordered or extended in one place.
package answer

import (
	"fmt"
	"strings"

	"newsanalyst/internal/corpus"
	"newsanalyst/internal/relevance"
)

// NoResultsAnswer is returned when ranking produced nothing relevant.
const NoResultsAnswer = "I don't have any recent news articles that directly relate to your question. " +
	"Please try asking about technology, business, science, or current events."

// Intent maps question trigger phrases to a rendering template. The table
// is checked in order; the first match wins.
type Intent struct {
	Name     string
	Triggers []string
	Render   func(question string, articles []corpus.Article) string
}

var Intents = []Intent{
	{"latest", []string{"latest", "recent", "new", "update", "current", "today"}, renderLatest},
	{"explanatory", []string{"what", "what's", "tell me about"}, renderExplanatory},
	{"analytical", []string{"how", "why", "when", "where"}, renderAnalytical},
	{"ai", []string{"ai", "artificial intelligence", "machine learning", "chatgpt"}, renderAIFocus},
	{"business", []string{"business", "company", "market", "stock", "economy"}, renderBusinessFocus},
	{"technology", []string{"technology", "tech", "software", "app", "digital"}, renderTechFocus},
}

// Synthesize classifies the question's intent and renders an answer from
// the ranked articles. It never fails and never returns an empty string.
func Synthesize(question string, ranked []relevance.ScoredArticle) string {
	if len(ranked) == 0 {
		return NoResultsAnswer
	}

	articles := make([]corpus.Article, len(ranked))
	for i, sa := range ranked {
		articles[i] = sa.Article
	}

	questionLower := strings.ToLower(question)
	for _, intent := range Intents {
		for _, trigger := range intent.Triggers {
			if strings.Contains(questionLower, trigger) {
				return intent.Render(question, articles)
			}
		}
	}
	return renderComprehensive(question, articles)
}

func renderLatest(question string, articles []corpus.Article) string {
	var b strings.Builder
	b.WriteString("## 📰 Latest Developments\n\n")
	b.WriteString("Based on the most recent news coverage, here are the key developments:\n\n")

	for i, a := range firstN(articles, 5) {
		fmt.Fprintf(&b, "### %d. %s\n", i+1, a.Title)
		if a.Description != "" {
			fmt.Fprintf(&b, "**Key Points:** %s\n\n", a.Description)
		}
		fmt.Fprintf(&b, "**Source:** %s | **Category:** %s\n", a.Source, titleCase(a.Category))
		fmt.Fprintf(&b, "**Published:** %s\n\n", formatTime(a.PublishedAt))
	}

	topCategory, count := dominantCategory(articles)
	b.WriteString("### 📊 Trend Analysis\n")
	fmt.Fprintf(&b, "The dominant theme in recent news is **%s**, appearing in %d out of %d relevant articles. ",
		topCategory, count, len(articles))
	fmt.Fprintf(&b, "This suggests significant activity in the %s sector.\n\n", topCategory)
	return b.String()
}

func renderExplanatory(question string, articles []corpus.Article) string {
	top := articles[0]

	var b strings.Builder
	fmt.Fprintf(&b, "## 💡 %s\n\n", question)
	b.WriteString("Based on recent news analysis, here's what's happening:\n\n")

	b.WriteString("### Primary Development\n")
	fmt.Fprintf(&b, "**%s**\n\n", top.Title)
	if top.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", top.Description)
	}
	fmt.Fprintf(&b, "*Source: %s - %s News*\n\n", top.Source, titleCase(top.Category))

	if len(articles) > 1 {
		b.WriteString("### Related Developments\n")
		for _, a := range slice(articles, 1, 4) {
			fmt.Fprintf(&b, "• **%s** (%s)\n", a.Title, a.Source)
			if a.Description != "" {
				fmt.Fprintf(&b, "  %s\n", firstSentence(a.Description))
			}
		}
		b.WriteString("\n")
	}

	sources := distinctSources(firstN(articles, 5))
	b.WriteString("### 🎯 Key Implications\n")
	fmt.Fprintf(&b, "This development is being covered by %d major news sources including %s, ",
		len(sources), strings.Join(firstN(sources, 3), ", "))
	b.WriteString("indicating significant industry attention and potential impact.\n\n")
	return b.String()
}

func renderAnalytical(question string, articles []corpus.Article) string {
	questionLower := strings.ToLower(question)
	top := articles[0]

	var b strings.Builder
	fmt.Fprintf(&b, "## 🔍 Analysis: %s\n\n", question)

	switch {
	case strings.Contains(questionLower, "how"):
		b.WriteString("### 📋 Process & Methodology\n")
	case strings.Contains(questionLower, "why"):
		b.WriteString("### 🎯 Reasoning & Context\n")
	case strings.Contains(questionLower, "when"):
		b.WriteString("### ⏰ Timeline & Schedule\n")
	default:
		b.WriteString("### 🔬 Detailed Analysis\n")
	}

	fmt.Fprintf(&b, "**Primary Source:** %s\n\n", top.Title)
	if top.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", top.Description)
	}

	if len(articles) > 1 {
		b.WriteString("### 📚 Supporting Evidence\n")
		for i, a := range slice(articles, 1, 4) {
			fmt.Fprintf(&b, "%d. **%s**\n", i+1, a.Title)
			if a.Description != "" {
				fmt.Fprintf(&b, "   %s\n", firstSentence(a.Description))
			}
			fmt.Fprintf(&b, "   *%s*\n\n", a.Source)
		}
	}

	b.WriteString("### 💡 Expert Perspective\n")
	sources := sourcesOf(firstN(articles, 3))
	authoritative := authoritativeSources(sources)
	if len(authoritative) > 0 {
		fmt.Fprintf(&b, "Analysis is supported by %d authoritative news sources including %s, ",
			len(authoritative), strings.Join(firstN(authoritative, 2), ", "))
		b.WriteString("providing high confidence in the information accuracy.\n\n")
	} else {
		fmt.Fprintf(&b, "Information compiled from %d news sources, providing comprehensive coverage of the topic.\n\n",
			len(sources))
	}
	return b.String()
}

func renderAIFocus(question string, articles []corpus.Article) string {
	aiTerms := []string{"ai", "artificial intelligence", "machine learning", "chatgpt", "openai", "google ai", "neural", "llm"}

	var aiArticles []corpus.Article
	for _, a := range articles {
		text := strings.ToLower(a.Title + " " + a.Description)
		for _, term := range aiTerms {
			if strings.Contains(text, term) {
				aiArticles = append(aiArticles, a)
				break
			}
		}
	}
	if len(aiArticles) == 0 {
		aiArticles = firstN(articles, 3)
	}

	var b strings.Builder
	b.WriteString("## 🤖 AI & Technology Intelligence Report\n\n")
	b.WriteString("### 🚀 Current AI Landscape\n")
	for i, a := range firstN(aiArticles, 3) {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, a.Title)
		if a.Description != "" {
			fmt.Fprintf(&b, "%s\n", a.Description)
		}
		fmt.Fprintf(&b, "*%s | %s*\n\n", a.Source, formatTime(a.PublishedAt))
	}

	b.WriteString("### 📈 Market Analysis\n")
	if companies := companiesMentioned(aiArticles); len(companies) > 0 {
		fmt.Fprintf(&b, "**Key Players:** %s\n", strings.Join(firstN(companies, 5), ", "))
	}
	fmt.Fprintf(&b, "**Coverage Intensity:** %d AI-related articles in recent news cycle\n", len(aiArticles))
	b.WriteString("**Industry Focus:** High activity suggests continued AI innovation and market expansion\n\n")
	return b.String()
}

func renderBusinessFocus(question string, articles []corpus.Article) string {
	var businessArticles []corpus.Article
	for _, a := range articles {
		if a.Category == "business" || strings.Contains(a.Topic, "business") {
			businessArticles = append(businessArticles, a)
		}
	}
	if len(businessArticles) == 0 {
		businessArticles = firstN(articles, 4)
	}

	var b strings.Builder
	b.WriteString("## 💼 Business Intelligence Summary\n\n")
	b.WriteString("### 📊 Market Developments\n")
	for i, a := range firstN(businessArticles, 3) {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, a.Title)
		if a.Description != "" {
			fmt.Fprintf(&b, "%s\n", a.Description)
		}
		fmt.Fprintf(&b, "*%s | %s*\n\n", a.Source, titleCase(a.Category))
	}

	b.WriteString("### 💡 Strategic Insights\n")
	sources := sourcesOf(businessArticles)
	if financial := financialSources(sources); len(financial) > 0 {
		fmt.Fprintf(&b, "**Financial Media Coverage:** %d major financial outlets reporting\n", len(financial))
	}
	fmt.Fprintf(&b, "**Market Sentiment:** Active coverage across %d news sources indicates significant market interest\n",
		len(distinct(sources)))
	b.WriteString("**Sector Activity:** Multiple developments suggest dynamic business environment\n\n")
	return b.String()
}

func renderTechFocus(question string, articles []corpus.Article) string {
	techArticles := firstN(articles, 4)

	var b strings.Builder
	b.WriteString("## 🔧 Technology Sector Analysis\n\n")
	b.WriteString("### 🚀 Innovation Highlights\n")
	for i, a := range techArticles {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, a.Title)
		if a.Description != "" {
			fmt.Fprintf(&b, "%s\n", a.Description)
		}
		fmt.Fprintf(&b, "*%s | %s*\n\n", a.Source, formatTime(a.PublishedAt))
	}

	b.WriteString("### 📱 Technology Trends\n")
	if companies := companiesMentioned(techArticles); len(companies) > 0 {
		fmt.Fprintf(&b, "**Leading Companies:** %s\n", strings.Join(firstN(companies, 4), ", "))
	}
	topCategory, count := dominantCategory(techArticles)
	fmt.Fprintf(&b, "**Dominant Theme:** %s (%d articles)\n", titleCase(topCategory), count)
	fmt.Fprintf(&b, "**Innovation Index:** High activity with %d major developments\n\n", len(techArticles))
	return b.String()
}

func renderComprehensive(question string, articles []corpus.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## 🎯 Comprehensive Analysis: %s\n\n", question)

	b.WriteString("### 📋 Key Findings\n")
	for i, a := range firstN(articles, 3) {
		fmt.Fprintf(&b, "**%d. %s**\n", i+1, a.Title)
		if a.Description != "" {
			fmt.Fprintf(&b, "%s\n", a.Description)
		}
		fmt.Fprintf(&b, "*%s - %s | %s*\n\n", a.Source, titleCase(a.Category), formatTime(a.PublishedAt))
	}

	if len(articles) > 3 {
		b.WriteString("### 🔗 Related Developments\n")
		for _, a := range slice(articles, 3, 6) {
			fmt.Fprintf(&b, "• %s (%s)\n", a.Title, a.Source)
		}
		b.WriteString("\n")
	}

	b.WriteString("### 📊 Summary Insights\n")
	fmt.Fprintf(&b, "**Coverage Breadth:** %d news sources\n", len(distinctSources(articles)))
	fmt.Fprintf(&b, "**Topic Diversity:** %d different categories\n", len(distinctCategories(articles)))
	fmt.Fprintf(&b, "**Information Confidence:** High (based on %d relevant articles)\n\n", len(articles))
	return b.String()
}
