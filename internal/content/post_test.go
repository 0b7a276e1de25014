package content

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

const sampleIndex = `{"title": "First", "create_time": "2024-01-01T00:00:00Z", "update_time": "2024-01-01T00:00:00Z", "url": "posts/first.md"}

not json at all
{"title": "Missing URL", "create_time": "2024-03-01"}
{"title": "Second", "create_time": "2024-02-01T00:00:00Z", "update_time": "2024-02-02T00:00:00Z", "url": "https://cdn.example.com/posts/second.md", "tags": ["go"]}
`

func TestParseIndexSkipsBadLines(t *testing.T) {
	posts, err := ParseIndex(strings.NewReader(sampleIndex))
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "First", posts[0].Title)
	assert.Equal(t, "Second", posts[1].Title)
	assert.Equal(t, []string{"go"}, posts[1].Tags)
}

func TestParseIndexSkipsOversizedLine(t *testing.T) {
	huge := `{"title": "` + strings.Repeat("x", indexLineLimit) + `", "url": "huge.md"}`
	index := `{"title": "First", "url": "first.md"}` + "\n" + huge + "\n" + `{"title": "Last", "url": "last.md"}`
	posts, err := ParseIndex(strings.NewReader(index))
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "First", posts[0].Title)
	assert.Equal(t, "Last", posts[1].Title)
}

func TestSortPostsNewestFirst(t *testing.T) {
	posts := []Post{
		{Title: "old", CreateTime: "2023-05-01", URL: "old.md"},
		{Title: "broken", CreateTime: "yesterday", URL: "broken.md"},
		{Title: "new", CreateTime: "2024-05-01T08:00:00Z", URL: "new.md"},
		{Title: "mid", CreateTime: "2024-01-01 12:00:00", URL: "mid.md"},
		{Title: "empty", URL: "empty.md"},
	}
	SortPosts(posts)
	var titles []string
	for _, p := range posts {
		titles = append(titles, p.Title)
	}
	assert.Equal(t, []string{"new", "mid", "old", "broken", "empty"}, titles)
}

func TestSlugFromURL(t *testing.T) {
	cases := map[string]string{
		"posts/hello-world.md":                       "hello-world",
		"https://example.com/a/b/about.md":           "about",
		"https://example.com/a/b/notes.md?version=2": "notes",
		"plain": "plain",
		"dir/":  "",
	}
	for url, want := range cases {
		assert.Equal(t, want, SlugFromURL(url), url)
	}
}

func TestDisplayTitle(t *testing.T) {
	assert.Equal(t, "Given", Post{Title: "Given", URL: "x.md"}.DisplayTitle())
	assert.Equal(t, "My First Post", Post{Title: " ", URL: "posts/my-first_post.md"}.DisplayTitle())
}

func TestWithFrontmatter(t *testing.T) {
	post := Post{CreateTime: "2024-01-01", UpdateTime: "2024-01-01", Tags: []string{"index"}, URL: "a.md"}

	assert.Equal(t, post, post.WithFrontmatter(nil))

	merged := post.WithFrontmatter(&Frontmatter{Updated: "2024-06-01"})
	assert.Equal(t, "2024-01-01", merged.CreateTime)
	assert.Equal(t, "2024-06-01", merged.UpdateTime)
	assert.Equal(t, []string{"index"}, merged.Tags)

	merged = post.WithFrontmatter(&Frontmatter{Created: "2023-12-31", Tags: []string{"fm"}})
	assert.Equal(t, "2023-12-31", merged.CreateTime)
	assert.Equal(t, []string{"fm"}, merged.Tags)
}

func TestParseTime(t *testing.T) {
	for _, value := range []string{"2024-01-02T03:04:05Z", "2024-01-02T03:04:05.123+09:00", "2024-01-02T03:04:05", "2024-01-02 03:04:05", "2024-01-02"} {
		parsed, ok := ParseTime(value)
		assert.True(t, ok, value)
		assert.Equal(t, 2024, parsed.Year())
	}
	_, ok := ParseTime("02/01/2024")
	assert.False(t, ok)
}
