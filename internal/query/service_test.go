package query

import (
	"strings"
	"testing"
	"time"

	"newsanalyst/internal/corpus"
	"newsanalyst/internal/logger"
	"newsanalyst/internal/relevance"
)

func init() {
	logger.Init()
}

func seededStore() *corpus.Store {
	s := corpus.NewStore(100)
	s.Append(corpus.Article{
		Title:       "Apple unveils new smartphone",
		Description: "The tech giant's digital lineup grows.",
		URL:         "https://news.example/apple",
		Source:      "Tech Daily",
		Topic:       "technology",
		Category:    "technology",
		FetchedAt:   time.Now(),
	})
	s.Append(corpus.Article{
		Title:       "Microsoft updates cloud software",
		Description: "New computer infrastructure rolls out.",
		URL:         "https://news.example/msft",
		Source:      "Reuters",
		Topic:       "technology",
		Category:    "technology",
		FetchedAt:   time.Now(),
	})
	s.Append(corpus.Article{
		Title:       "Grain prices rise",
		Description: "Farmers expect a strong harvest.",
		URL:         "https://news.example/grain",
		Source:      "Biz Wire",
		Topic:       "business",
		Category:    "business",
		FetchedAt:   time.Now(),
	})
	return s
}

func TestAnswerEmptyCorpus(t *testing.T) {
	t.Parallel()

	svc := New(corpus.NewStore(100), 50)
	resp := svc.Answer("anything?")

	if resp.Answer != StillFetchingAnswer {
		t.Errorf("expected still-fetching answer, got %q", resp.Answer)
	}
	if resp.Sources == nil || len(resp.Sources) != 0 {
		t.Errorf("expected empty non-nil sources, got %v", resp.Sources)
	}
	if resp.Failed {
		t.Error("empty corpus is not a failure")
	}
}

func TestAnswerTechnologyQuestion(t *testing.T) {
	t.Parallel()

	svc := New(seededStore(), 50)
	resp := svc.Answer("What's new in technology?")

	if resp.Failed {
		t.Fatalf("unexpected failure: %s / %s", resp.Error, resp.Details)
	}
	if resp.Answer == "" {
		t.Fatal("expected a non-empty answer")
	}
	if resp.Method != "intelligent_analysis" {
		t.Errorf("unexpected method %q", resp.Method)
	}
	if resp.ArticlesAnalyzed != 3 {
		t.Errorf("ArticlesAnalyzed = %d, want 3", resp.ArticlesAnalyzed)
	}
	if resp.RelevantFound != 2 {
		t.Errorf("RelevantFound = %d, want 2 (both tech articles)", resp.RelevantFound)
	}

	if len(resp.Sources) == 0 {
		t.Fatal("expected at least one source")
	}
	for _, src := range resp.Sources {
		if src.Topic != "technology" {
			t.Errorf("business article leaked into sources: %+v", src)
		}
		if src.URL == "" || src.Title == "" {
			t.Errorf("incomplete source projection: %+v", src)
		}
	}
}

func TestAnswerSourcesCappedAtFive(t *testing.T) {
	t.Parallel()

	s := corpus.NewStore(100)
	for i := 0; i < 10; i++ {
		s.Append(corpus.Article{
			Title:     "Bitcoin climbs again",
			URL:       "https://news.example/btc" + string(rune('a'+i)),
			Source:    "Crypto Desk",
			Topic:     "business",
			Category:  "crypto",
			FetchedAt: time.Now(),
		})
	}

	svc := New(s, 50)
	resp := svc.Answer("bitcoin outlook please")
	if len(resp.Sources) != 5 {
		t.Fatalf("expected 5 sources, got %d", len(resp.Sources))
	}
}

func TestAnswerRecoversFromInternalPanic(t *testing.T) {
	t.Parallel()

	svc := New(seededStore(), 50)
	svc.synthesize = func(string, []relevance.ScoredArticle) string {
		panic("template exploded")
	}

	resp := svc.Answer("What's new in technology?")
	if !resp.Failed {
		t.Fatal("expected the failure flag on the fallback response")
	}
	if resp.Answer == "" {
		t.Fatal("fallback must still carry an answer")
	}
	if !strings.Contains(resp.Answer, "technical difficulties") {
		t.Errorf("unexpected fallback answer: %q", resp.Answer)
	}
	if !strings.Contains(resp.Answer, "Grain prices rise") {
		t.Errorf("fallback should list recent headlines, got %q", resp.Answer)
	}
	if resp.Details != "template exploded" {
		t.Errorf("Details = %q", resp.Details)
	}
	if len(resp.Sources) != 3 {
		t.Errorf("expected the 3 recent articles as fallback sources, got %d", len(resp.Sources))
	}
}

func TestAnswerNeverPanics(t *testing.T) {
	t.Parallel()

	stores := []*corpus.Store{corpus.NewStore(100), seededStore()}
	questions := []string{"", "?", strings.Repeat("technology ", 1000)}

	for _, store := range stores {
		svc := New(store, 50)
		for _, q := range questions {
			resp := svc.Answer(q)
			if resp.Answer == "" {
				t.Errorf("empty answer for question of length %d", len(q))
			}
			if resp.Sources == nil {
				t.Errorf("nil sources for question of length %d", len(q))
			}
		}
	}
}
