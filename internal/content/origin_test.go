package content

import (
	"context"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/morikuni/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewOriginPicksImplementation(t *testing.T) {
	ctx := context.Background()
	o, err := NewOrigin(ctx, "https://example.com/content")
	require.NoError(t, err)
	assert.Equal(t, "http", o.Kind())

	o, err = NewOrigin(ctx, "file:///srv/content")
	require.NoError(t, err)
	assert.Equal(t, "dir", o.Kind())

	o, err = NewOrigin(ctx, "./content")
	require.NoError(t, err)
	assert.Equal(t, "dir", o.Kind())
}

func TestDirOrigin(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "posts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "posts", "a.md"), []byte("hello"), 0o644))
	origin := NewDirOrigin(root)
	ctx := context.Background()

	for _, location := range []string{"posts/a.md", "/posts/a.md", "https://cdn.example.com/posts/a.md", "../posts/a.md"} {
		body, err := origin.Fetch(ctx, location)
		require.NoError(t, err, location)
		assert.Equal(t, "hello", string(body))
	}

	_, err := origin.Fetch(ctx, "posts/missing.md")
	assert.True(t, failure.Is(err, NotFound))
}

func TestHTTPOrigin(t *testing.T) {
	var accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		switch r.URL.Path {
		case "/content/posts/a.md":
			_, _ = io.WriteString(w, "hello")
		case "/content/broken.md":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()
	base, err := url.Parse(srv.URL + "/content")
	require.NoError(t, err)
	origin := NewHTTPOrigin(base, srv.Client())
	ctx := context.Background()

	body, err := origin.Fetch(ctx, "posts/a.md")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))
	assert.Equal(t, "text/plain; charset=utf-8", accept)

	body, err = origin.Fetch(ctx, srv.URL+"/content/posts/a.md")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(body))

	_, err = origin.Fetch(ctx, "missing.md")
	assert.True(t, failure.Is(err, NotFound))

	_, err = origin.Fetch(ctx, "broken.md")
	assert.True(t, failure.Is(err, OriginUnavailable))
}

type fakeS3 struct {
	objects map[string]string
	err     error
	calls   []string
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := *params.Bucket + "/" + *params.Key
	f.calls = append(f.calls, key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3Origin(t *testing.T) {
	client := &fakeS3{objects: map[string]string{
		"site/blog/index.jsonl": "{}",
		"other/x.md":            "x",
	}}
	origin := NewS3Origin(client, "site", "/blog/")
	ctx := context.Background()

	body, err := origin.Fetch(ctx, "index.jsonl")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(body))

	body, err = origin.Fetch(ctx, "s3://other/x.md")
	require.NoError(t, err)
	assert.Equal(t, "x", string(body))

	_, err = origin.Fetch(ctx, "ja/index.jsonl")
	assert.True(t, failure.Is(err, NotFound))
	assert.Equal(t, []string{"site/blog/index.jsonl", "other/x.md", "site/blog/ja/index.jsonl"}, client.calls)
}

func TestS3OriginAPIError(t *testing.T) {
	client := &fakeS3{err: &smithy.GenericAPIError{Code: "AccessDenied", Message: "denied"}}
	_, err := NewS3Origin(client, "site", "").Fetch(context.Background(), "index.jsonl")
	require.Error(t, err)
	assert.True(t, failure.Is(err, OriginUnavailable))
	assert.False(t, failure.Is(err, NotFound))
}
