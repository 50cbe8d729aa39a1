package corpus

import (
	"sort"
	"sync"
	"time"
)

// Article is a single ingested news item with provider metadata and the
// category derived at ingest time. Immutable after creation.
type Article struct {
	Title       string
	Description string
	Content     string
	URL         string
	Source      string
	Topic       string
	Category    string
	PublishedAt string // provider-supplied, may be empty or unparseable
	FetchedAt   time.Time
}

// Store is the bounded in-memory corpus. The poller is the only writer,
// query handlers are concurrent readers. Insertion order is preserved
// (oldest first); when the cap is exceeded the oldest articles are trimmed.
type Store struct {
	mu       sync.RWMutex
	articles []Article
	max      int
}

func NewStore(maxArticles int) *Store {
	if maxArticles <= 0 {
		maxArticles = 1000
	}
	return &Store{max: maxArticles}
}

func (s *Store) Append(a Article) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.articles = append(s.articles, a)
	if len(s.articles) > s.max {
		trimmed := make([]Article, s.max)
		copy(trimmed, s.articles[len(s.articles)-s.max:])
		s.articles = trimmed
	}
}

// Recent returns a copy of the last n articles, oldest first. Callers may
// hold the result across their own suspension points safely.
func (s *Store) Recent(n int) []Article {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || len(s.articles) == 0 {
		return nil
	}
	if n > len(s.articles) {
		n = len(s.articles)
	}
	out := make([]Article, n)
	copy(out, s.articles[len(s.articles)-n:])
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}

// SourceCount is one entry of the per-source breakdown.
type SourceCount struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// Stats is the corpus breakdown served by the stats endpoint.
type Stats struct {
	TotalArticles int            `json:"total_articles"`
	ByTopic       map[string]int `json:"by_topic"`
	ByCategory    map[string]int `json:"by_category"`
	TopSources    []SourceCount  `json:"top_sources"`
	LastUpdated   string         `json:"last_updated,omitempty"`
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		TotalArticles: len(s.articles),
		ByTopic:       map[string]int{},
		ByCategory:    map[string]int{},
	}

	sourceCounts := map[string]int{}
	for _, a := range s.articles {
		st.ByTopic[a.Topic]++
		st.ByCategory[a.Category]++
		sourceCounts[a.Source]++
	}

	for src, n := range sourceCounts {
		st.TopSources = append(st.TopSources, SourceCount{Source: src, Count: n})
	}
	sort.Slice(st.TopSources, func(i, j int) bool {
		if st.TopSources[i].Count != st.TopSources[j].Count {
			return st.TopSources[i].Count > st.TopSources[j].Count
		}
		return st.TopSources[i].Source < st.TopSources[j].Source
	})
	if len(st.TopSources) > 5 {
		st.TopSources = st.TopSources[:5]
	}

	if len(s.articles) > 0 {
		st.LastUpdated = s.articles[len(s.articles)-1].FetchedAt.Format(time.RFC3339)
	}
	return st
}
