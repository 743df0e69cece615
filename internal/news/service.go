package news

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"slices"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/cache"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/domain/article"
)

const (
	OutcomeStatic   = "static"
	OutcomeProvider = "provider"
	OutcomeCache    = "cache"
	OutcomeFallback = "fallback"
)

// Recorder receives one observation per ForPreferences call.
type Recorder interface {
	ObserveNews(outcome string, d time.Duration)
}

type Service struct {
	provider Provider
	cache    *cache.Cache[[]article.Article]
	log      *slog.Logger
	rec      Recorder
}

type Option func(*Service)

// WithCacheTTL caches successful provider results per query; ttl <= 0 disables.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cache = cache.New[[]article.Article](ttl)
		}
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

func WithRecorder(rec Recorder) Option {
	return func(s *Service) {
		s.rec = rec
	}
}

// NewService builds a Service; a nil provider means no credential is configured.
func NewService(provider Provider, opts ...Option) *Service {
	s := &Service{
		provider: provider,
		log:      slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Configured() bool {
	return s.provider != nil
}

// ForPreferences never fails: provider errors degrade to article.Fallback.
func (s *Service) ForPreferences(ctx context.Context, preferences []string) []article.Article {
	start := time.Now()

	if s.provider == nil {
		s.log.DebugContext(ctx, "news provider not configured, serving sample", "reason", ErrNotConfigured)
		s.record(OutcomeStatic, start)
		return article.Sample()
	}

	q := NewQuery(preferences)

	if s.cache != nil {
		if items, ok := s.cache.Get(q.CacheKey()); ok {
			s.record(OutcomeCache, start)
			return slices.Clone(items)
		}
	}

	items, err := s.provider.Fetch(ctx, q)
	if err != nil {
		s.log.WarnContext(ctx, "news provider call failed, serving fallback",
			"cause", Classify(err),
			"query", q.Terms,
			"err", err,
		)
		s.record(OutcomeFallback, start)
		return article.Fallback()
	}

	if s.cache != nil {
		s.cache.Set(q.CacheKey(), slices.Clone(items))
	}

	s.record(OutcomeProvider, start)
	return items
}

func (s *Service) record(outcome string, start time.Time) {
	if s.rec != nil {
		s.rec.ObserveNews(outcome, time.Since(start))
	}
}

// Classify buckets a provider failure for logs and metrics.
func Classify(err error) string {
	var (
		statusErr *StatusError
		netErr    net.Error
	)

	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrCircuitOpen):
		return "circuit_open"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.As(err, &statusErr):
		if statusErr.StatusCode == 401 || statusErr.StatusCode == 403 {
			return "auth"
		}
		return "status"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.As(err, &netErr) && netErr.Timeout():
		return "timeout"
	default:
		return "network"
	}
}
