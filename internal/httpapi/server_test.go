package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"newsanalyst/internal/corpus"
	"newsanalyst/internal/logger"
	"newsanalyst/internal/metrics"
	"newsanalyst/internal/poller"
	"newsanalyst/internal/query"
)

func init() {
	logger.Init()
}

type fakeStateReporter struct {
	state poller.State
}

func (f *fakeStateReporter) State() poller.State { return f.state }

func newTestServer(store *corpus.Store, state poller.State) *Server {
	return NewServer(store, query.New(store, 50), &fakeStateReporter{state: state}, []string{"technology", "business", "science"})
}

func seededStore(t *testing.T) *corpus.Store {
	t.Helper()
	s := corpus.NewStore(100)
	s.Append(corpus.Article{
		Title:       "Robots learn to fold laundry",
		Description: "A software breakthrough in robot control.",
		URL:         "https://news.example/robots",
		Source:      "Tech Daily",
		Topic:       "technology",
		Category:    "technology",
		PublishedAt: "2026-08-27T10:00:00Z",
		FetchedAt:   time.Now(),
	})
	s.Append(corpus.Article{
		Title:       "Retailers report strong quarter",
		Description: "Earnings beat market expectations.",
		URL:         "https://news.example/retail",
		Source:      "Biz Wire",
		Topic:       "business",
		Category:    "business",
		PublishedAt: "2026-08-27T11:00:00Z",
		FetchedAt:   time.Now(),
	})
	return s
}

func getJSON(t *testing.T, h http.Handler, method, path, body string) (int, map[string]interface{}) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("%s %s: invalid JSON response %q: %v", method, path, rec.Body.String(), err)
	}
	return rec.Code, payload
}

func TestStatusRunning(t *testing.T) {
	srv := newTestServer(seededStore(t), poller.StatePolling)

	code, payload := getJSON(t, srv.Routes(), http.MethodGet, "/api/status", "")
	if code != http.StatusOK {
		t.Fatalf("status code = %d", code)
	}
	if payload["status"] != "running" {
		t.Errorf("status = %v, want running", payload["status"])
	}
	if payload["articles_count"].(float64) != 2 {
		t.Errorf("articles_count = %v, want 2", payload["articles_count"])
	}
	topics, ok := payload["topics"].([]interface{})
	if !ok || len(topics) != 3 {
		t.Errorf("unexpected topics: %v", payload["topics"])
	}
}

func TestStatusReportsHaltedIngestion(t *testing.T) {
	srv := newTestServer(seededStore(t), poller.StateHalted)

	code, payload := getJSON(t, srv.Routes(), http.MethodGet, "/api/status", "")
	if code != http.StatusOK {
		t.Fatalf("status code = %d", code)
	}
	if payload["status"] != "ingestion_halted" {
		t.Errorf("status = %v, want ingestion_halted", payload["status"])
	}
}

func TestArticlesProjection(t *testing.T) {
	srv := newTestServer(seededStore(t), poller.StatePolling)

	code, payload := getJSON(t, srv.Routes(), http.MethodGet, "/api/articles", "")
	if code != http.StatusOK {
		t.Fatalf("status code = %d", code)
	}
	if payload["total"].(float64) != 2 {
		t.Errorf("total = %v, want 2", payload["total"])
	}
	articles := payload["articles"].([]interface{})
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	first := articles[0].(map[string]interface{})
	for _, key := range []string{"title", "source", "topic", "category", "published_at", "url"} {
		if _, ok := first[key]; !ok {
			t.Errorf("article projection missing %q: %v", key, first)
		}
	}
}

func TestAnswerRejectsInvalidJSON(t *testing.T) {
	srv := newTestServer(seededStore(t), poller.StatePolling)

	code, payload := getJSON(t, srv.Routes(), http.MethodPost, "/v1/pw_ai_answer", "{not json")
	if code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want 400", code)
	}
	if payload["error"] != "invalid JSON body" {
		t.Errorf("error = %v", payload["error"])
	}
}

func TestAnswerRejectsEmptyPrompt(t *testing.T) {
	srv := newTestServer(seededStore(t), poller.StatePolling)

	code, payload := getJSON(t, srv.Routes(), http.MethodPost, "/v1/pw_ai_answer", `{"prompt": ""}`)
	if code != http.StatusBadRequest {
		t.Fatalf("status code = %d, want 400", code)
	}
	if payload["error"] != "No prompt provided" {
		t.Errorf("error = %v", payload["error"])
	}
}

func TestAnswerSuccessShape(t *testing.T) {
	srv := newTestServer(seededStore(t), poller.StatePolling)

	code, payload := getJSON(t, srv.Routes(), http.MethodPost, "/v1/pw_ai_answer",
		`{"prompt": "What's the latest in technology?"}`)
	if code != http.StatusOK {
		t.Fatalf("status code = %d, want 200", code)
	}
	if payload["answer"].(string) == "" {
		t.Error("expected a non-empty answer")
	}
	if payload["method"] != "intelligent_analysis" {
		t.Errorf("method = %v", payload["method"])
	}
	if _, ok := payload["sources"].([]interface{}); !ok {
		t.Errorf("sources missing or wrong shape: %v", payload["sources"])
	}
	if payload["articles_analyzed"].(float64) != 2 {
		t.Errorf("articles_analyzed = %v, want 2", payload["articles_analyzed"])
	}
}

func TestAnswerEmptyCorpusStillOK(t *testing.T) {
	srv := newTestServer(corpus.NewStore(100), poller.StatePolling)

	code, payload := getJSON(t, srv.Routes(), http.MethodPost, "/v1/pw_ai_answer", `{"prompt": "anything?"}`)
	if code != http.StatusOK {
		t.Fatalf("status code = %d, want 200", code)
	}
	if payload["answer"] != query.StillFetchingAnswer {
		t.Errorf("answer = %v", payload["answer"])
	}
}

func TestHealthEndpoint(t *testing.T) {
	metrics.Global.RecordPollCycle(false)

	srv := newTestServer(seededStore(t), poller.StatePolling)
	code, payload := getJSON(t, srv.Routes(), http.MethodGet, "/health", "")
	if code != http.StatusOK {
		t.Fatalf("status code = %d, want 200", code)
	}
	if payload["status"] != "ok" {
		t.Errorf("status = %v", payload["status"])
	}
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(seededStore(t), poller.StatePolling)

	code, payload := getJSON(t, srv.Routes(), http.MethodGet, "/metrics", "")
	if code != http.StatusOK {
		t.Fatalf("status code = %d, want 200", code)
	}
	for _, key := range []string{"articles_ingested", "poll_cycles", "questions_answered", "is_healthy"} {
		if _, ok := payload[key]; !ok {
			t.Errorf("metrics payload missing %q", key)
		}
	}
}

func TestHomePage(t *testing.T) {
	srv := newTestServer(seededStore(t), poller.StatePolling)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status code = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/v1/pw_ai_answer") {
		t.Errorf("home page should document the answer endpoint:\n%s", rec.Body.String())
	}
}
