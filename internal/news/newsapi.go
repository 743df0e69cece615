package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/domain/article"
)

const (
	DefaultNewsAPIURL = "https://newsapi.org/v2/everything"
	userAgent         = "news-aggregator/1.0"
	maxPayloadBytes   = 2 << 20
)

// NewsAPI talks to newsapi.org's /v2/everything endpoint.
type NewsAPI struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

type NewsAPIConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// Transport is optional; tests inject httptest transports here.
	Transport http.RoundTripper
}

func NewNewsAPI(cfg NewsAPIConfig) *NewsAPI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultNewsAPIURL
	}

	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	return &NewsAPI{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: &userAgentTransport{base: base},
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"articles"`
}

func (p *NewsAPI) Fetch(ctx context.Context, q Query) ([]article.Article, error) {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	params := u.Query()
	params.Set("q", q.Terms)
	params.Set("language", q.Language)
	params.Set("sortBy", q.SortBy)
	params.Set("pageSize", strconv.Itoa(q.PageSize))
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	// header keeps the key out of URLs and access logs
	req.Header.Set("X-Api-Key", p.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}
	defer resp.Body.Close()

	var body newsAPIResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxPayloadBytes)).Decode(&body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Code: body.Code, Message: body.Message}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, decodeErr)
	}
	if body.Status != "ok" {
		return nil, &StatusError{StatusCode: resp.StatusCode, Code: body.Code, Message: body.Message}
	}

	items := make([]item, 0, len(body.Articles))
	for _, a := range body.Articles {
		items = append(items, item{title: a.Title, source: a.Source.Name, url: a.URL})
	}

	if q.PageSize > 0 && len(items) > q.PageSize {
		items = items[:q.PageSize]
	}

	return number(items), nil
}

type userAgentTransport struct {
	base http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", userAgent)
	return t.base.RoundTrip(req)
}
