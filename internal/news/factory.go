package news

import (
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/config"
)

// ProviderFromConfig picks NewsAPI when a key is set, then RSS, else nil.
func ProviderFromConfig(cfg config.Config) Provider {
	if !cfg.NewsConfigured() {
		return nil
	}

	var inner Provider

	switch {
	case cfg.NewsAPIKey != "":
		inner = NewNewsAPI(NewsAPIConfig{
			APIKey:  cfg.NewsAPIKey,
			BaseURL: cfg.NewsAPIURL,
			Timeout: cfg.NewsTimeout,
		})
	default:
		inner = NewRSS(RSSConfig{
			FeedURL: cfg.NewsRSSURL,
			Timeout: cfg.NewsTimeout,
		})
	}

	return NewProtectedProvider(inner, ProtectedProviderConfig{Timeout: cfg.NewsTimeout})
}
