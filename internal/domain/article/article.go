package article

import "encoding/json"

// Article renders in one of two shapes: {id,title,source,url} for sample and
// provider items, {id,title,category} for the fallback item. Category decides
// which; source and url are always present in the first shape, even empty.
type Article struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Source   string `json:"source"`
	URL      string `json:"url"`
	Category string `json:"category,omitempty"`
}

type listedArticle struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Source string `json:"source"`
	URL    string `json:"url"`
}

type categorizedArticle struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

func (a Article) MarshalJSON() ([]byte, error) {
	if a.Category != "" {
		return json.Marshal(categorizedArticle{ID: a.ID, Title: a.Title, Category: a.Category})
	}
	return json.Marshal(listedArticle{ID: a.ID, Title: a.Title, Source: a.Source, URL: a.URL})
}

// Sample is served when no provider credential is configured.
func Sample() []Article {
	return []Article{
		{
			ID:     "1",
			Title:  "Sample news",
			Source: "Static",
			URL:    "https://example.com",
		},
	}
}

// Fallback is served when the provider call fails for any reason.
func Fallback() []Article {
	return []Article{
		{
			ID:       "1",
			Title:    "Fallback news",
			Category: "general",
		},
	}
}
