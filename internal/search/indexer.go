package search

import (
	"code.sajari.com/sego"
	"context"
	_ "embed"
	"github.com/QuantumGhost/folio/internal"
	"github.com/QuantumGhost/folio/internal/content"
	"github.com/go-shiori/go-readability"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgtype/pgxtype"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/log/zerologadapter"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/morikuni/failure"
	"github.com/retarus/whatlanggo"
	"github.com/rs/zerolog/log"
	"html/template"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
)

//go:embed schema.sql
var schemaSQL string

// Source is where the indexer reads posts from.
type Source interface {
	ListPosts(ctx context.Context, lang string) ([]content.Post, error)
	GetArticle(ctx context.Context, slug string, lang string) (*content.Article, error)
}

type HTMLRenderer interface {
	Render(markdown string) (template.HTML, error)
}

type Observer interface {
	ObserveIndexed(language string)
}

type job struct {
	lang string
	post content.Post
}

type Indexer struct {
	parentCtx context.Context
	config    internal.Config
	source    Source
	renderer  HTMLRenderer
	observer  Observer
	db        *pgxpool.Pool
}

func NewIndexer(
	ctx context.Context, config internal.Config, source Source, renderer HTMLRenderer, observer Observer,
) *Indexer {
	return &Indexer{parentCtx: ctx, config: config, source: source, renderer: renderer, observer: observer}
}

func upsertDocument(ctx context.Context, runner pgxtype.Querier, doc Document, meta Metadata, title, body string) error {
	// language: sql
	const upsertDocumentSQL = `
INSERT INTO documents (language, slug, title, url, detected_language, excerpt, meta, document_vectors, indexed_at)
VALUES (
    $1, $2, $3, $4, $5, $6, $7,
    setweight(to_tsvector('simple', $8), 'A') || setweight(to_tsvector('simple', $9), 'B'),
    now()
)
ON CONFLICT (language, slug) DO UPDATE SET
    title = EXCLUDED.title,
    url = EXCLUDED.url,
    detected_language = EXCLUDED.detected_language,
    excerpt = EXCLUDED.excerpt,
    meta = EXCLUDED.meta,
    document_vectors = EXCLUDED.document_vectors,
    indexed_at = EXCLUDED.indexed_at
`
	jsonb := pgtype.JSONB{}
	err := jsonb.Set(meta)
	if err != nil {
		return failure.MarkUnexpected(err)
	}
	_, err = runner.Exec(
		ctx, upsertDocumentSQL,
		doc.Language, doc.Slug, doc.Title, doc.URL, doc.DetectedLanguage, doc.Excerpt, jsonb,
		title, body,
	)
	if err != nil {
		return failure.MarkUnexpected(err)
	}
	return nil
}

func (w *Indexer) indexPost(ctx context.Context, j job, segmenter *sego.Segmenter) error {
	article, err := w.source.GetArticle(ctx, j.post.Slug(), j.lang)
	if err != nil {
		return err
	}
	rendered, err := w.renderer.Render(article.Body)
	if err != nil {
		return err
	}
	text := article.Body
	simplified, err := readability.FromReader(strings.NewReader(string(rendered)), "http://localhost")
	if err == nil && strings.TrimSpace(simplified.TextContent) != "" {
		text = simplified.TextContent
	}
	detected := whatlanggo.DetectLang(text)

	title := article.DisplayTitle()
	titleTokens, bodyTokens := title, text
	if needsSegmentation(j.lang, detected) {
		titleTokens = segment(segmenter, title)
		bodyTokens = segment(segmenter, text)
	}
	doc := Document{
		Language:         j.lang,
		Slug:             article.Slug(),
		Title:            title,
		URL:              article.URL,
		DetectedLanguage: detected.Iso6391(),
		Excerpt:          excerpt(text),
	}
	meta := Metadata{Tags: article.Tags, CreateTime: article.CreateTime, UpdateTime: article.UpdateTime}
	if err := upsertDocument(ctx, w.db, doc, meta, titleTokens, bodyTokens); err != nil {
		return err
	}
	if w.observer != nil {
		w.observer.ObserveIndexed(j.lang)
	}
	return nil
}

func (w *Indexer) indexWorker(jobChan <-chan job) {
	var segmenter sego.Segmenter
	segmenter.LoadDefaultDictionary()
	for {
		select {
		case j, ok := <-jobChan:
			if !ok {
				return
			}
			ctx, cancel := context.WithTimeout(w.parentCtx, w.config.JobTimeout)
			err := w.indexPost(ctx, j, &segmenter)
			cancel()
			if err != nil {
				log.Error().Stack().Err(err).
					Str("slug", j.post.Slug()).
					Str("lang", j.lang).
					Msg("error while indexing post")
			}
		case <-w.parentCtx.Done():
			return
		}
	}
}

// enqueue sends one job per post of every configured language. It returns
// false when the context was cancelled.
func (w *Indexer) enqueue(jobChan chan<- job) bool {
	for _, lang := range languages(w.config.Languages) {
		ctx, cancel := context.WithTimeout(w.parentCtx, w.config.JobTimeout)
		posts, err := w.source.ListPosts(ctx, lang)
		cancel()
		if err != nil {
			log.Error().Stack().Err(err).Str("lang", lang).Msg("error while listing posts to index")
			continue
		}
		log.Info().Str("lang", lang).Int("posts", len(posts)).Msg("posts listed")
		for _, post := range posts {
			select {
			case jobChan <- job{lang: lang, post: post}:
				log.Debug().Str("slug", post.Slug()).Str("lang", lang).Msg("post queued")
			case <-w.parentCtx.Done():
				return false
			}
		}
	}
	return true
}

func (w *Indexer) scan(jobChan chan<- job) {
	for {
		if !w.enqueue(jobChan) || w.config.Once {
			return
		}
		select {
		case <-w.parentCtx.Done():
			return
		case <-time.After(w.config.ScanInterval):
		}
	}
}

func (w *Indexer) Start() error {
	ctx, cancel := context.WithTimeout(w.parentCtx, w.config.JobTimeout)
	defer cancel()
	db, err := initDB(ctx, w.config.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	w.db = db
	if _, err := db.Exec(ctx, schemaSQL); err != nil {
		return failure.MarkUnexpected(err)
	}

	workerNum := runtime.NumCPU()
	wg := sync.WaitGroup{}
	wg.Add(workerNum)
	jobChan := make(chan job, workerNum)
	for i := 0; i < workerNum; i++ {
		go func() {
			w.indexWorker(jobChan)
			wg.Done()
		}()
	}

	w.scan(jobChan)
	close(jobChan)
	wg.Wait()
	return nil
}

func initDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	var level pgx.LogLevel = pgx.LogLevelWarn
	var err error
	levelStr, ok := os.LookupEnv("PGX_LOG_LEVEL")
	if ok {
		level, err = pgx.LogLevelFromString(levelStr)
		if err != nil {
			return nil, failure.MarkUnexpected(err)
		}
	}

	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, failure.MarkUnexpected(err)
	}
	cfg.ConnConfig.Logger = zerologadapter.NewLogger(log.Logger)
	cfg.ConnConfig.LogLevel = level
	db, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, failure.MarkUnexpected(err)
	}
	if err = db.Ping(ctx); err != nil {
		db.Close()
		return nil, failure.MarkUnexpected(err)
	}
	return db, nil
}
