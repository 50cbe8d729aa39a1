package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	ArticlesIngested   int64
	DuplicatesFiltered int64
	EmptyURLDropped    int64
	PollCycles         int64
	FailedCycles       int64
	RateLimitHits      int64
	QuestionsAnswered  int64
	FallbackAnswers    int64

	// Timings
	LastQueryTime    time.Duration
	TotalQueryTime   time.Duration
	AverageQueryTime time.Duration
	QueryCount       int64

	// Status
	LastPollTime  time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddArticlesIngested(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesIngested += n
}

func (m *Metrics) IncrementDuplicatesFiltered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered++
}

func (m *Metrics) IncrementEmptyURLDropped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EmptyURLDropped++
}

func (m *Metrics) IncrementRateLimitHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RateLimitHits++
}

func (m *Metrics) IncrementFallbackAnswers() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FallbackAnswers++
}

func (m *Metrics) RecordPollCycle(failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PollCycles++
	if failed {
		m.FailedCycles++
	} else {
		m.LastPollTime = time.Now()
		m.IsHealthy = true
	}
}

func (m *Metrics) RecordQuery(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.QuestionsAnswered++
	m.LastQueryTime = duration
	m.TotalQueryTime += duration
	m.QueryCount++

	if m.QueryCount > 0 {
		m.AverageQueryTime = m.TotalQueryTime / time.Duration(m.QueryCount)
	}
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"articles_ingested":     m.ArticlesIngested,
		"duplicates_filtered":   m.DuplicatesFiltered,
		"empty_url_dropped":     m.EmptyURLDropped,
		"poll_cycles":           m.PollCycles,
		"failed_cycles":         m.FailedCycles,
		"rate_limit_hits":       m.RateLimitHits,
		"questions_answered":    m.QuestionsAnswered,
		"fallback_answers":      m.FallbackAnswers,
		"last_query_time_ms":    m.LastQueryTime.Milliseconds(),
		"average_query_time_ms": m.AverageQueryTime.Milliseconds(),
		"last_poll_time":        m.LastPollTime.Format(time.RFC3339),
		"last_error_time":       m.LastErrorTime.Format(time.RFC3339),
		"last_error":            m.LastError,
		"is_healthy":            m.IsHealthy,
	}
}
