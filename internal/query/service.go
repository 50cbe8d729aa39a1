package query

import (
	"fmt"
	"strings"
	"time"

	"newsanalyst/internal/answer"
	"newsanalyst/internal/corpus"
	"newsanalyst/internal/logger"
	"newsanalyst/internal/metrics"
	"newsanalyst/internal/relevance"
)

// StillFetchingAnswer is returned while the corpus is empty.
const StillFetchingAnswer = "No news articles available yet. The system is still fetching the " +
	"first batch of articles. Please wait a moment and try again."

// SourceRef is the display projection of an article in a response.
type SourceRef struct {
	Title    string `json:"title"`
	Source   string `json:"source"`
	URL      string `json:"url"`
	Topic    string `json:"topic"`
	Category string `json:"category,omitempty"`
}

// Response is the answer payload. Callers always get a well-formed one:
// on internal failure Failed is set and Answer degrades to recent headlines.
type Response struct {
	Answer           string      `json:"answer"`
	Sources          []SourceRef `json:"sources"`
	Method           string      `json:"method,omitempty"`
	ArticlesAnalyzed int         `json:"articles_analyzed,omitempty"`
	RelevantFound    int         `json:"relevant_found,omitempty"`
	Error            string      `json:"error,omitempty"`
	Details          string      `json:"details,omitempty"`

	Failed bool `json:"-"`
}

// Service orchestrates ranking and synthesis over a recent corpus window.
type Service struct {
	store  *corpus.Store
	window int

	// replaceable for fault-injection tests
	synthesize func(string, []relevance.ScoredArticle) string
}

func New(store *corpus.Store, recentWindow int) *Service {
	if recentWindow <= 0 {
		recentWindow = 50
	}
	return &Service{store: store, window: recentWindow, synthesize: answer.Synthesize}
}

// Answer answers a free-text question from the recent corpus window.
// It never panics past its boundary: any internal fault is converted into
// a best-effort fallback built from the most recent headlines.
func (s *Service) Answer(question string) (resp Response) {
	start := time.Now()
	defer func() {
		metrics.Global.RecordQuery(time.Since(start))
	}()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("query: internal error, serving fallback", "error", fmt.Sprint(r))
			metrics.Global.IncrementFallbackAnswers()
			resp = s.fallback(r)
		}
	}()

	recent := s.store.Recent(s.window)
	logger.Debug("query: analyzing recent window", "articles", len(recent), "question_len", len(question))

	if len(recent) == 0 {
		return Response{Answer: StillFetchingAnswer, Sources: []SourceRef{}}
	}

	ranked := relevance.Rank(question, recent)
	text := s.synthesize(question, ranked)

	sources := make([]SourceRef, 0, 5)
	for _, sa := range ranked {
		if len(sources) == 5 {
			break
		}
		sources = append(sources, toSourceRef(sa.Article))
	}

	return Response{
		Answer:           text,
		Sources:          sources,
		Method:           "intelligent_analysis",
		ArticlesAnalyzed: len(recent),
		RelevantFound:    len(ranked),
	}
}

func (s *Service) fallback(cause any) Response {
	recent := s.store.Recent(5)

	headlines := make([]string, 0, len(recent))
	sources := make([]SourceRef, 0, len(recent))
	for _, a := range recent {
		headlines = append(headlines, a.Title)
		sources = append(sources, toSourceRef(a))
	}

	text := "No articles available yet."
	if len(headlines) > 0 {
		text = strings.Join(headlines, " | ")
	}

	return Response{
		Answer:  fmt.Sprintf("I'm experiencing technical difficulties, but here are the latest headlines I can share: %s", text),
		Sources: sources,
		Error:   fmt.Sprintf("Technical error: %T", cause),
		Details: fmt.Sprint(cause),
		Failed:  true,
	}
}

func toSourceRef(a corpus.Article) SourceRef {
	return SourceRef{
		Title:    a.Title,
		Source:   a.Source,
		URL:      a.URL,
		Topic:    a.Topic,
		Category: a.Category,
	}
}
