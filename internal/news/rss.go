package news

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/domain/article"
	"github.com/mmcdole/gofeed"
)

// RSS queries a search feed (for example Google News RSS) by appending the
// query terms as the "q" parameter of FeedURL.
type RSS struct {
	client  *http.Client
	feedURL string
}

type RSSConfig struct {
	FeedURL   string
	Timeout   time.Duration
	Transport http.RoundTripper
}

func NewRSS(cfg RSSConfig) *RSS {
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &RSS{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: &userAgentTransport{base: base},
		},
		feedURL: cfg.FeedURL,
	}
}

func (p *RSS) Fetch(ctx context.Context, q Query) ([]article.Article, error) {
	u, err := url.Parse(p.feedURL)
	if err != nil {
		return nil, fmt.Errorf("parse feed url: %w", err)
	}

	params := u.Query()
	params.Set("q", q.Terms)
	u.RawQuery = params.Encode()

	fp := gofeed.NewParser()
	fp.Client = p.client

	feed, err := fp.ParseURLWithContext(u.String(), ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, &StatusError{StatusCode: httpErr.StatusCode, Message: httpErr.Status}
		}
		if errors.Is(err, gofeed.ErrFeedTypeNotDetected) {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return nil, fmt.Errorf("rss request: %w", err)
	}

	entries := feed.Items
	// newest first; undated entries sink to the end
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].PublishedParsed, entries[j].PublishedParsed
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})

	if q.PageSize > 0 && len(entries) > q.PageSize {
		entries = entries[:q.PageSize]
	}

	items := make([]item, 0, len(entries))
	for _, e := range entries {
		items = append(items, item{title: e.Title, source: feed.Title, url: e.Link})
	}

	return number(items), nil
}
