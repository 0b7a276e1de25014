package content

import (
	"context"
	"github.com/morikuni/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"
)

type recordingObserver struct {
	mu       sync.Mutex
	outcomes []string
}

func (o *recordingObserver) ObserveFetch(origin string, outcome string, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.outcomes = append(o.outcomes, origin+":"+outcome)
}

func newTestFetcher(t *testing.T, files map[string]string) (*Fetcher, *recordingObserver) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	base, err := url.Parse(srv.URL)
	require.NoError(t, err)
	observer := &recordingObserver{}
	return NewFetcher(NewHTTPOrigin(base, srv.Client()), observer), observer
}

func TestIndexLocation(t *testing.T) {
	assert.Equal(t, "index.jsonl", IndexLocation(""))
	assert.Equal(t, "index.jsonl", IndexLocation("en"))
	assert.Equal(t, "index.jsonl", IndexLocation("xx"))
	assert.Equal(t, "ja/index.jsonl", IndexLocation("ja"))
	assert.Equal(t, "zhs/index.jsonl", IndexLocation("zhs"))
}

func TestPostsOrdering(t *testing.T) {
	fetcher, observer := newTestFetcher(t, map[string]string{
		"/index.jsonl": `{"title":"T1","create_time":"2024-01-01T00:00:00Z","update_time":"2024-01-01T00:00:00Z","url":"posts/t1.md"}
{"title":"T2","create_time":"2024-02-01T00:00:00Z","update_time":"2024-02-01T00:00:00Z","url":"posts/t2.md"}
`,
		"/ja/index.jsonl": `{"title":"J","create_time":"2024-01-01","update_time":"2024-01-01","url":"ja/posts/j.md"}`,
	})
	ctx := context.Background()

	posts := fetcher.Posts(ctx, "en")
	require.Len(t, posts, 2)
	assert.Equal(t, "T2", posts[0].Title)
	assert.Equal(t, "T1", posts[1].Title)

	posts = fetcher.Posts(ctx, "ja")
	require.Len(t, posts, 1)
	assert.Equal(t, "J", posts[0].Title)

	assert.Equal(t, []string{"http:ok", "http:ok"}, observer.outcomes)
}

func TestPostsOriginFailure(t *testing.T) {
	fetcher, observer := newTestFetcher(t, map[string]string{})
	posts := fetcher.Posts(context.Background(), "zht")
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
	assert.Equal(t, []string{"http:not_found"}, observer.outcomes)
}

func TestPostMergesFrontmatter(t *testing.T) {
	fetcher, _ := newTestFetcher(t, map[string]string{
		"/index.jsonl":          `{"title":"Hello","create_time":"2024-01-01","update_time":"2024-01-01","url":"posts/hello-world.md","tags":["index"]}`,
		"/posts/hello-world.md": "---\nupdated: 2024-06-01\n---\n# Hello\n\n## Part\ntext\n",
	})

	article, ok := fetcher.Post(context.Background(), "hello-world", "en")
	require.True(t, ok)
	assert.Equal(t, "Hello", article.Title)
	assert.Equal(t, "2024-01-01", article.CreateTime)
	assert.Equal(t, "2024-06-01", article.UpdateTime)
	assert.Equal(t, []string{"index"}, article.Tags)
	assert.Equal(t, "# Hello\n\n## Part\ntext\n", article.Body)
}

func TestPostMissing(t *testing.T) {
	fetcher, _ := newTestFetcher(t, map[string]string{
		"/index.jsonl": `{"title":"Hello","create_time":"2024-01-01","update_time":"2024-01-01","url":"posts/hello.md"}`,
	})
	ctx := context.Background()

	article, ok := fetcher.Post(ctx, "nope", "en")
	assert.False(t, ok)
	assert.Nil(t, article)

	_, err := fetcher.GetArticle(ctx, "nope", "en")
	assert.True(t, failure.Is(err, NotFound))

	// listed in the index but the body is gone
	article, ok = fetcher.Post(ctx, "hello", "en")
	assert.False(t, ok)
	assert.Nil(t, article)
}

func TestPostEmptySlugIsAbout(t *testing.T) {
	fetcher, _ := newTestFetcher(t, map[string]string{
		"/index.jsonl":    `{"title":"About","create_time":"2024-01-01","update_time":"2024-01-01","url":"about.md"}`,
		"/about.md":       "I write things.",
		"/ja/index.jsonl": `{"title":"紹介","create_time":"2024-01-01","update_time":"2024-01-01","url":"ja/about.md"}`,
		"/ja/about.md":    "書きます。",
	})
	article, ok := fetcher.Post(context.Background(), "", "en")
	require.True(t, ok)
	assert.Equal(t, "I write things.", article.Body)

	article, ok = fetcher.Post(context.Background(), "", "ja")
	require.True(t, ok)
	assert.Equal(t, "書きます。", article.Body)
}
