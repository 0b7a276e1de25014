package search

import (
	"github.com/jackc/pgtype"
	"time"
)

// Metadata is stored as JSONB next to each document.
type Metadata struct {
	Tags       []string `json:"tags,omitempty"`
	CreateTime string   `json:"create_time,omitempty"`
	UpdateTime string   `json:"update_time,omitempty"`
}

type Document struct {
	Language         string       `db:"language" json:"language"`
	Slug             string       `db:"slug" json:"slug"`
	Title            string       `db:"title" json:"title"`
	URL              string       `db:"url" json:"url"`
	DetectedLanguage string       `db:"detected_language" json:"detected_language"`
	Excerpt          string       `db:"excerpt" json:"excerpt"`
	Meta             pgtype.JSONB `db:"meta" json:"meta"`
	IndexedAt        time.Time    `db:"indexed_at" json:"indexed_at"`
}

type Result struct {
	Slug     string  `db:"slug" json:"slug"`
	Language string  `db:"language" json:"language"`
	Title    string  `db:"title" json:"title"`
	URL      string  `db:"url" json:"url"`
	Excerpt  string  `db:"excerpt" json:"excerpt"`
	Rank     float64 `db:"rank" json:"rank"`
}
