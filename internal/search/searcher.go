package search

import (
	"code.sajari.com/sego"
	"context"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/morikuni/failure"
	"github.com/retarus/whatlanggo"
	"strings"
	"sync"
)

// Searcher answers full-text queries against the documents table.
type Searcher struct {
	db *sqlx.DB

	once      sync.Once
	segmenter sego.Segmenter
}

func NewSearcher(ctx context.Context, databaseURL string) (*Searcher, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, failure.MarkUnexpected(err)
	}
	return &Searcher{db: db}, nil
}

func (s *Searcher) Close() error {
	return s.db.Close()
}

func (s *Searcher) terms(lang, query string) string {
	if !needsSegmentation(lang, whatlanggo.DetectLang(query)) {
		return query
	}
	s.once.Do(s.segmenter.LoadDefaultDictionary)
	return segment(&s.segmenter, query)
}

func (s *Searcher) Search(ctx context.Context, lang string, query string, limit int) ([]Result, error) {
	// language: sql
	const searchSQL = `
SELECT slug, language, title, url, excerpt,
       ts_rank(document_vectors, plainto_tsquery('simple', $2)) AS rank
FROM documents
WHERE language = $1 AND document_vectors @@ plainto_tsquery('simple', $2)
ORDER BY rank DESC, slug
LIMIT $3`
	query = strings.TrimSpace(query)
	if query == "" {
		return []Result{}, nil
	}
	results := []Result{}
	err := s.db.SelectContext(ctx, &results, searchSQL, lang, s.terms(lang, query), limit)
	if err != nil {
		return nil, failure.MarkUnexpected(err)
	}
	return results, nil
}
