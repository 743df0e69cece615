// Package news fetches personalized headlines from an external provider and
// degrades to static content when the provider is missing or failing.
package news

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/domain/article"
)

const (
	DefaultTerm     = "technology"
	MaxQueryTerms   = 3
	DefaultPageSize = 10
	DefaultLanguage = "en"
	SortByPublished = "publishedAt"
)

var (
	ErrNotConfigured = errors.New("news provider not configured")
	ErrDecode        = errors.New("malformed provider payload")
)

// StatusError is returned when the provider answers with a non-2xx status or
// an application-level error.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider status %d: %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("provider status %d", e.StatusCode)
}

type Query struct {
	Terms    string
	Language string
	SortBy   string
	PageSize int
}

// NewQuery ORs together the first few preferences, or uses the default term.
func NewQuery(preferences []string) Query {
	terms := DefaultTerm

	if len(preferences) > 0 {
		n := min(len(preferences), MaxQueryTerms)
		terms = strings.Join(preferences[:n], " OR ")
	}

	return Query{
		Terms:    terms,
		Language: DefaultLanguage,
		SortBy:   SortByPublished,
		PageSize: DefaultPageSize,
	}
}

func (q Query) CacheKey() string {
	return "news:v1:lang=" + q.Language +
		":sort=" + q.SortBy +
		":size=" + strconv.Itoa(q.PageSize) +
		":q=" + strings.ToLower(q.Terms)
}

type Provider interface {
	Fetch(ctx context.Context, q Query) ([]article.Article, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context, q Query) ([]article.Article, error)

func (f ProviderFunc) Fetch(ctx context.Context, q Query) ([]article.Article, error) {
	return f(ctx, q)
}

type item struct {
	title  string
	source string
	url    string
}

// number assigns sequential ids starting at "1".
func number(items []item) []article.Article {
	out := make([]article.Article, 0, len(items))

	for i, it := range items {
		out = append(out, article.Article{
			ID:     strconv.Itoa(i + 1),
			Title:  it.title,
			Source: it.source,
			URL:    it.url,
		})
	}

	return out
}
