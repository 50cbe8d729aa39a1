// Package rssfeed is a supplemental ingestion source: configured RSS feeds
// are fetched alongside the GNews topics and funneled into the same corpus.
package rssfeed

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"newsanalyst/internal/feed"
	"newsanalyst/internal/logger"
)

// FeedConfig is one entry of the YAML feeds file:
//
// feeds:
//   - url: https://example.com/rss
//     topic: technology
type FeedConfig struct {
	URL   string `yaml:"url"`
	Topic string `yaml:"topic"`
}

type FeedsConfig struct {
	Feeds []FeedConfig `yaml:"feeds"`
}

// LoadFeeds reads the RSS feed list from a YAML file.
func LoadFeeds(path string) ([]FeedConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	for i := range cfg.Feeds {
		if cfg.Feeds[i].Topic == "" {
			cfg.Feeds[i].Topic = "rss"
		}
	}
	return cfg.Feeds, nil
}

// Source fetches every configured feed in one poll step. A single failing
// feed is logged and skipped; the step only fails when no feed answered.
type Source struct {
	feeds  []FeedConfig
	parser *gofeed.Parser
}

func NewSource(feeds []FeedConfig) *Source {
	return &Source{feeds: feeds, parser: gofeed.NewParser()}
}

func (s *Source) Name() string {
	return "rss"
}

func (s *Source) Fetch(ctx context.Context) ([]feed.RawArticle, feed.Outcome) {
	if len(s.feeds) == 0 {
		return nil, feed.OK
	}

	var articles []feed.RawArticle
	successCount := 0
	lastErr := ""

	for _, fc := range s.feeds {
		parsed, err := s.parser.ParseURLWithContext(fc.URL, ctx)
		if err != nil {
			logger.Warn("rss: feed fetch failed", "url", fc.URL, "error", err)
			lastErr = err.Error()
			continue
		}
		successCount++

		sourceName := parsed.Title
		for _, item := range parsed.Items {
			articles = append(articles, itemToRaw(item, sourceName, fc.Topic))
		}
		logger.Debug("rss: feed loaded", "url", fc.URL, "items", len(parsed.Items))
	}

	if successCount == 0 {
		return nil, feed.NetworkError("all feeds failed: " + lastErr)
	}
	return articles, feed.OK
}

func itemToRaw(item *gofeed.Item, sourceName, topic string) feed.RawArticle {
	published := item.Published
	if item.PublishedParsed != nil {
		published = item.PublishedParsed.Format(time.RFC3339)
	}

	return feed.RawArticle{
		Title:       strings.TrimSpace(item.Title),
		Description: stripHTML(item.Description),
		Content:     stripHTML(item.Content),
		URL:         item.Link,
		PublishedAt: published,
		Source:      feed.Source{Name: sourceName, URL: item.Link},
		Topic:       topic,
	}
}

// stripHTML flattens feed markup to plain text. Many feeds ship HTML in
// the description field, which would pollute keyword matching.
func stripHTML(s string) string {
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
