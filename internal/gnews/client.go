package gnews

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"

	"newsanalyst/internal/config"
	"newsanalyst/internal/feed"
	"newsanalyst/internal/logger"
)

// Client calls the GNews top-headlines API. It is stateless: every call
// returns a classified outcome and never an error, leaving retry policy
// to the poller.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	language    string
	country     string
	maxPerTopic int
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:     cfg.GNewsBaseURL,
		apiKey:      cfg.GNewsAPIKey,
		language:    cfg.Language,
		country:     cfg.Country,
		maxPerTopic: cfg.MaxPerTopic,
	}
}

// headlinesResponse covers both the success and the application-error
// payload GNews returns with HTTP 200.
type headlinesResponse struct {
	Articles []feed.RawArticle `json:"articles"`
	Errors   json.RawMessage   `json:"errors"`
}

// FetchTopic fetches the current top headlines for one topic.
//
// A provider-reported application error (an "errors" payload despite
// HTTP 200) is returned as OK with zero articles: the feed is up, it just
// has nothing valid for us, and it must not count toward the error budget.
func (c *Client) FetchTopic(ctx context.Context, topic string) ([]feed.RawArticle, feed.Outcome) {
	endpoint := fmt.Sprintf("%s/top-headlines", c.baseURL)

	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("topic", topic)
	params.Set("lang", c.language)
	params.Set("country", c.country)
	params.Set("max", strconv.Itoa(c.maxPerTopic))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, feed.NetworkError(err.Error())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, feed.Timeout(err.Error())
		}
		return nil, feed.NetworkError(err.Error())
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, feed.RateLimited()
	case resp.StatusCode != http.StatusOK:
		return nil, feed.HTTPError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, feed.NetworkError(err.Error())
	}

	var parsed headlinesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		logger.Warn("gnews: unparseable response body", "topic", topic, "error", err)
		return nil, feed.OK
	}

	if len(parsed.Errors) > 0 && string(parsed.Errors) != "null" {
		logger.Warn("gnews: provider reported an application error", "topic", topic, "errors", string(parsed.Errors))
		return nil, feed.OK
	}

	for i := range parsed.Articles {
		parsed.Articles[i].Topic = topic
	}
	return parsed.Articles, feed.OK
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// TopicSource adapts one topic of this client to the poller's Source shape.
type TopicSource struct {
	client *Client
	topic  string
}

func (c *Client) TopicSource(topic string) *TopicSource {
	return &TopicSource{client: c, topic: topic}
}

func (s *TopicSource) Name() string {
	return "gnews/" + s.topic
}

func (s *TopicSource) Fetch(ctx context.Context) ([]feed.RawArticle, feed.Outcome) {
	return s.client.FetchTopic(ctx, s.topic)
}
