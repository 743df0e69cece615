package news

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewQuery(t *testing.T) {
	tests := []struct {
		name  string
		prefs []string
		want  string
	}{
		{"empty", nil, "technology"},
		{"one", []string{"go"}, "go"},
		{"three", []string{"go", "rust", "zig"}, "go OR rust OR zig"},
		{"more than three", []string{"a", "b", "c", "d", "e"}, "a OR b OR c"},
		{"duplicates kept", []string{"a", "a"}, "a OR a"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := NewQuery(tc.prefs)
			assert.Equal(t, tc.want, q.Terms)
			assert.Equal(t, "en", q.Language)
			assert.Equal(t, "publishedAt", q.SortBy)
			assert.Equal(t, 10, q.PageSize)
		})
	}
}

func TestQuery_CacheKeyIgnoresCase(t *testing.T) {
	assert.Equal(t, NewQuery([]string{"Go"}).CacheKey(), NewQuery([]string{"go"}).CacheKey())
	assert.NotEqual(t, NewQuery([]string{"go"}).CacheKey(), NewQuery([]string{"rust"}).CacheKey())
}

func TestNumber_SequentialIDs(t *testing.T) {
	got := number([]item{{title: "a"}, {title: "b"}, {title: "c"}})

	ids := make([]string, 0, len(got))
	for _, a := range got {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)
	assert.NotNil(t, number(nil))
}
