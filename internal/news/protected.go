package news

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/domain/article"
)

var ErrCircuitOpen = errors.New("circuit breaker open")

const (
	stateClosed   = "closed"
	stateOpen     = "open"
	stateHalfOpen = "half_open"
)

type ProtectedProviderConfig struct {
	Timeout          time.Duration // hard timeout per fetch
	FailureThreshold int           // consecutive failures to open circuit
	Cooldown         time.Duration // how long to stay open before half-open
	HalfOpenMaxCalls int           // allow N trial calls in half-open
}

// ProtectedProvider wraps a Provider with a per-call timeout and a
// consecutive-failure circuit breaker. It never retries.
type ProtectedProvider struct {
	inner Provider
	cfg   ProtectedProviderConfig
	mu    sync.Mutex
	now   func() time.Time

	state string

	consecutiveFailures int
	openedAt            time.Time
	halfOpenInFlight    int
}

func NewProtectedProvider(inner Provider, cfg ProtectedProviderConfig) *ProtectedProvider {
	//defaults
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	if cfg.HalfOpenMaxCalls <= 0 {
		cfg.HalfOpenMaxCalls = 1
	}

	return &ProtectedProvider{
		inner: inner,
		cfg:   cfg,
		now:   time.Now,
		state: stateClosed,
	}
}

func (p *ProtectedProvider) Fetch(ctx context.Context, q Query) ([]article.Article, error) {
	// fail-fast gate
	if !p.allowRequest() {
		return nil, ErrCircuitOpen
	}

	fetchCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	items, err := p.inner.Fetch(fetchCtx, q)

	// a caller that went away says nothing about provider health
	if err != nil && ctx.Err() != nil {
		p.release()
		return nil, err
	}

	p.afterRequest(err)

	return items, err
}

func (p *ProtectedProvider) State() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.state
}

func (p *ProtectedProvider) allowRequest() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case stateClosed:
		return true
	case stateOpen:
		// cooldown has passed? move to half open
		if p.now().Sub(p.openedAt) >= p.cfg.Cooldown {
			p.state = stateHalfOpen
			p.halfOpenInFlight = 1
			return true
		}
		return false
	case stateHalfOpen:
		if p.halfOpenInFlight >= p.cfg.HalfOpenMaxCalls {
			return false
		}
		p.halfOpenInFlight++
		return true
	default:
		return true
	}
}

func (p *ProtectedProvider) release() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == stateHalfOpen && p.halfOpenInFlight > 0 {
		p.halfOpenInFlight--
	}
}

func (p *ProtectedProvider) afterRequest(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// half-open call just finished
	if p.state == stateHalfOpen && p.halfOpenInFlight > 0 {
		p.halfOpenInFlight--
	}

	if err == nil {
		p.consecutiveFailures = 0
		p.state = stateClosed
		return
	}

	p.consecutiveFailures++

	// if half-open failed, reopen immediately
	if p.state == stateHalfOpen {
		p.state = stateOpen
		p.openedAt = p.now()
		return
	}

	if p.consecutiveFailures >= p.cfg.FailureThreshold {
		p.state = stateOpen
		p.openedAt = p.now()
	}
}
