package poller

import (
	"context"
	"sync/atomic"
	"time"

	"newsanalyst/internal/corpus"
	"newsanalyst/internal/feed"
	"newsanalyst/internal/logger"
	"newsanalyst/internal/metrics"
	"newsanalyst/internal/relevance"
)

// Source is one unit of polling work: a GNews topic or the RSS feed set.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]feed.RawArticle, feed.Outcome)
}

// State of the polling loop. Halted is terminal; it is reached only after
// the consecutive-error ceiling and is the one fatal condition here.
type State int32

const (
	StatePolling State = iota
	StateBackoff
	StateHalted
)

func (s State) String() string {
	switch s {
	case StatePolling:
		return "polling"
	case StateBackoff:
		return "backoff"
	case StateHalted:
		return "halted"
	default:
		return "unknown"
	}
}

// Poller owns the ingestion loop: it iterates sources in a fixed order,
// deduplicates by URL, categorizes, and appends to the corpus. seenURLs
// and the error counter are poller-private and only touched from Run.
type Poller struct {
	sources   []Source
	store     *corpus.Store
	interval  time.Duration
	maxErrors int

	seenURLs          map[string]struct{}
	consecutiveErrors int

	state atomic.Int32

	// replaced in tests to avoid real sleeps
	sleep func(ctx context.Context, d time.Duration) bool
}

func New(sources []Source, store *corpus.Store, interval time.Duration, maxConsecutiveErrors int) *Poller {
	return &Poller{
		sources:   sources,
		store:     store,
		interval:  interval,
		maxErrors: maxConsecutiveErrors,
		seenURLs:  make(map[string]struct{}),
		sleep:     sleepCtx,
	}
}

// State reports the current loop state for diagnostics endpoints.
func (p *Poller) State() State {
	return State(p.state.Load())
}

// Run executes the polling loop until the context is canceled or the
// consecutive-error ceiling halts it. The serving process stays up either
// way; the corpus retains whatever was ingested.
func (p *Poller) Run(ctx context.Context) {
	logger.Info("poller: starting", "sources", len(p.sources), "interval", p.interval)

	for {
		newCount, ok := p.cycle(ctx)
		metrics.Global.RecordPollCycle(!ok)

		if ok {
			p.consecutiveErrors = 0
			if newCount == 0 {
				logger.Info("poller: no new articles", "sources_checked", len(p.sources))
			} else {
				logger.Info("poller: ingested new articles", "count", newCount, "corpus_size", p.store.Len())
			}
			if !p.sleep(ctx, p.interval) {
				return
			}
			continue
		}

		p.consecutiveErrors++
		if p.consecutiveErrors >= p.maxErrors {
			p.state.Store(int32(StateHalted))
			metrics.Global.SetError("poller halted after consecutive fetch failures")
			logger.Error("poller: too many consecutive errors, halting",
				"consecutive_errors", p.consecutiveErrors, "ceiling", p.maxErrors)
			return
		}

		backoff := BackoffDuration(p.consecutiveErrors)
		p.state.Store(int32(StateBackoff))
		logger.Warn("poller: cycle failed, backing off",
			"consecutive_errors", p.consecutiveErrors, "ceiling", p.maxErrors, "backoff", backoff)
		if !p.sleep(ctx, backoff) {
			return
		}
		p.state.Store(int32(StatePolling))
	}
}

// cycle runs one pass over all sources. It returns how many new articles
// were ingested and whether every source fetch came back OK; the first
// non-OK outcome aborts the pass.
func (p *Poller) cycle(ctx context.Context) (int, bool) {
	newCount := 0

	for _, src := range p.sources {
		articles, outcome := src.Fetch(ctx)
		if !outcome.OK() {
			if outcome.Status == feed.StatusRateLimited {
				// Not an outage: the interval is likely too aggressive.
				metrics.Global.IncrementRateLimitHits()
				logger.Warn("poller: rate limit exceeded, consider increasing POLLING_INTERVAL",
					"source", src.Name())
			} else {
				logger.Warn("poller: fetch failed", "source", src.Name(), "outcome", outcome.String())
			}
			return newCount, false
		}

		for _, raw := range articles {
			if raw.URL == "" {
				// No stable dedup key, drop silently.
				metrics.Global.IncrementEmptyURLDropped()
				continue
			}
			if _, seen := p.seenURLs[raw.URL]; seen {
				metrics.Global.IncrementDuplicatesFiltered()
				continue
			}
			p.seenURLs[raw.URL] = struct{}{}

			p.store.Append(corpus.Article{
				Title:       raw.Title,
				Description: raw.Description,
				Content:     raw.Content,
				URL:         raw.URL,
				Source:      raw.SourceName(),
				Topic:       raw.Topic,
				Category:    relevance.Categorize(raw.Title, raw.Description),
				PublishedAt: raw.PublishedAt,
				FetchedAt:   time.Now(),
			})
			newCount++
			logger.Debug("poller: new article", "title", truncate(raw.Title, 60), "source", raw.SourceName())
		}
	}

	metrics.Global.AddArticlesIngested(int64(newCount))
	return newCount, true
}

// BackoffDuration returns the capped exponential backoff after n
// consecutive failures: 10s, 20s, 40s, 60s, 60s, ...
func BackoffDuration(n int) time.Duration {
	if n < 1 {
		n = 1
	}
	seconds := 10 * (1 << (n - 1))
	if seconds > 60 {
		seconds = 60
	}
	return time.Duration(seconds) * time.Second
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
