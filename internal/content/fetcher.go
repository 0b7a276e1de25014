package content

import (
	"bytes"
	"context"
	"github.com/QuantumGhost/folio/internal/i18n"
	"github.com/morikuni/failure"
	"github.com/rs/zerolog/log"
	"time"
)

const (
	indexFile   = "index.jsonl"
	defaultSlug = "about"
)

// FetchObserver is told about every origin request.
type FetchObserver interface {
	ObserveFetch(origin string, outcome string, elapsed time.Duration)
}

// Fetcher reads post indexes and bodies from an Origin. Nothing is cached:
// every call goes to the origin.
type Fetcher struct {
	origin   Origin
	observer FetchObserver
}

func NewFetcher(origin Origin, observer FetchObserver) *Fetcher {
	return &Fetcher{origin: origin, observer: observer}
}

// IndexLocation is the index path for a language; unknown and default
// languages use the root index.
func IndexLocation(lang string) string {
	if _, ok := i18n.Lookup(lang); !ok || i18n.IsDefault(lang) {
		return indexFile
	}
	return lang + "/" + indexFile
}

// Posts returns the posts of a language, newest first. Failures are logged
// and yield an empty list.
func (f *Fetcher) Posts(ctx context.Context, lang string) []Post {
	posts, err := f.ListPosts(ctx, lang)
	if err != nil {
		log.Error().Stack().Err(err).Str("lang", lang).Msg("error while fetching post index")
		return []Post{}
	}
	return posts
}

func (f *Fetcher) ListPosts(ctx context.Context, lang string) ([]Post, error) {
	body, err := f.fetch(ctx, IndexLocation(lang))
	if err != nil {
		return nil, err
	}
	posts, err := ParseIndex(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	SortPosts(posts)
	return posts, nil
}

// Post finds a post by slug and returns it with its body. Frontmatter
// values take priority over the index. ok is false when the post does not
// exist or anything failed on the way.
func (f *Fetcher) Post(ctx context.Context, slug string, lang string) (*Article, bool) {
	article, err := f.GetArticle(ctx, slug, lang)
	if err != nil {
		if failure.Is(err, NotFound) {
			log.Info().Str("slug", slug).Str("lang", lang).Msg("post not found")
		} else {
			log.Error().Stack().Err(err).Str("slug", slug).Str("lang", lang).Msg("error while fetching post")
		}
		return nil, false
	}
	return article, true
}

func (f *Fetcher) GetArticle(ctx context.Context, slug string, lang string) (*Article, error) {
	if slug == "" {
		slug = defaultSlug
	}
	posts, err := f.ListPosts(ctx, lang)
	if err != nil {
		return nil, err
	}
	post, ok := findPost(posts, slug)
	if !ok {
		return nil, failure.New(NotFound, failure.Context{"slug": slug, "lang": lang})
	}
	raw, err := f.fetch(ctx, post.URL)
	if err != nil {
		return nil, err
	}
	fm, body := ParseFrontmatter(string(raw))
	return &Article{Post: post.WithFrontmatter(fm), Body: body}, nil
}

func findPost(posts []Post, slug string) (Post, bool) {
	for _, post := range posts {
		if post.Slug() == slug {
			return post, true
		}
	}
	return Post{}, false
}

func (f *Fetcher) fetch(ctx context.Context, location string) ([]byte, error) {
	start := time.Now()
	body, err := f.origin.Fetch(ctx, location)
	if f.observer != nil {
		f.observer.ObserveFetch(f.origin.Kind(), outcomeOf(err), time.Since(start))
	}
	log.Debug().Str("origin", f.origin.Kind()).Str("location", location).Err(err).Msg("origin fetch")
	return body, err
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case failure.Is(err, NotFound):
		return "not_found"
	default:
		return "error"
	}
}
