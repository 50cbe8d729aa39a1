// Package feed defines the wire-level article shape and the classified
// fetch outcome shared by all ingestion sources.
package feed

import "fmt"

// RawArticle is an article as delivered by a provider, before dedup and
// categorization. Topic is stamped by the source that fetched it.
type RawArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
	Source      Source `json:"source"`
	Topic       string `json:"-"`
}

type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SourceName returns the publisher name, "Unknown" when absent.
func (a RawArticle) SourceName() string {
	if a.Source.Name == "" {
		return "Unknown"
	}
	return a.Source.Name
}

// Status classifies the result of one provider call. Connectors never
// return Go errors across their boundary; the caller branches on this.
type Status int

const (
	StatusOK Status = iota
	StatusTimeout
	StatusRateLimited
	StatusHTTPError
	StatusNetworkError
)

type Outcome struct {
	Status     Status
	HTTPStatus int // set for StatusHTTPError
	Detail     string
}

// OK reports whether the call succeeded (possibly with zero articles).
func (o Outcome) OK() bool {
	return o.Status == StatusOK
}

func (o Outcome) String() string {
	switch o.Status {
	case StatusOK:
		return "ok"
	case StatusTimeout:
		return "timeout"
	case StatusRateLimited:
		return "rate_limited"
	case StatusHTTPError:
		return fmt.Sprintf("http_error_%d", o.HTTPStatus)
	case StatusNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

var (
	OK = Outcome{Status: StatusOK}
)

func Timeout(detail string) Outcome {
	return Outcome{Status: StatusTimeout, Detail: detail}
}

func RateLimited() Outcome {
	return Outcome{Status: StatusRateLimited, HTTPStatus: 429}
}

func HTTPError(status int) Outcome {
	return Outcome{Status: StatusHTTPError, HTTPStatus: status}
}

func NetworkError(detail string) Outcome {
	return Outcome{Status: StatusNetworkError, Detail: detail}
}
