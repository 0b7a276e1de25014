package content

import (
	"bufio"
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"github.com/morikuni/failure"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
)

const indexLineLimit = 4 * 1024 * 1024

var validate = validator.New()

// Post is one record of a content index.
type Post struct {
	Title      string   `json:"title"`
	CreateTime string   `json:"create_time"`
	UpdateTime string   `json:"update_time"`
	URL        string   `json:"url" validate:"required"`
	Tags       []string `json:"tags,omitempty"`
}

// Article is a post together with its markdown body.
type Article struct {
	Post
	Body string
}

func (p Post) Slug() string {
	return SlugFromURL(p.URL)
}

func (p Post) Created() (time.Time, bool) {
	return ParseTime(p.CreateTime)
}

func (p Post) Updated() (time.Time, bool) {
	return ParseTime(p.UpdateTime)
}

// DisplayTitle falls back to a title derived from the slug.
func (p Post) DisplayTitle() string {
	if strings.TrimSpace(p.Title) != "" {
		return p.Title
	}
	words := strings.NewReplacer("-", " ", "_", " ").Replace(p.Slug())
	return cases.Title(language.English).String(words)
}

// WithFrontmatter returns a copy of p where non-empty frontmatter fields
// replace the index values.
func (p Post) WithFrontmatter(fm *Frontmatter) Post {
	if fm == nil {
		return p
	}
	if fm.Created != "" {
		p.CreateTime = fm.Created
	}
	if fm.Updated != "" {
		p.UpdateTime = fm.Updated
	}
	if fm.Tags != nil {
		p.Tags = fm.Tags
	}
	return p
}

// SlugFromURL returns the filename of url without directories, query and
// the ".md" extension.
func SlugFromURL(url string) string {
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	name := url[strings.LastIndexByte(url, '/')+1:]
	return strings.TrimSuffix(name, ".md")
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func ParseTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseIndex reads a newline-delimited JSON index. Lines that are not a
// valid post record, or are longer than indexLineLimit, are logged and
// skipped.
func ParseIndex(reader io.Reader) ([]Post, error) {
	buffered := bufio.NewReaderSize(reader, 64*1024)
	var posts []Post
	lineNo := 0
	for {
		raw, err := buffered.ReadString('\n')
		if err != nil && err != io.EOF {
			return posts, failure.Translate(err, InvalidRecord, failure.Context{"line": strconv.Itoa(lineNo + 1)})
		}
		if raw != "" {
			lineNo++
			if post, ok := parseLine(raw, lineNo); ok {
				posts = append(posts, post)
			}
		}
		if err == io.EOF {
			return posts, nil
		}
	}
}

func parseLine(raw string, lineNo int) (Post, bool) {
	if len(raw) > indexLineLimit {
		log.Error().Int("line", lineNo).Int("bytes", len(raw)).Msg("skipping oversized index line")
		return Post{}, false
	}
	line := strings.TrimSpace(raw)
	if line == "" {
		return Post{}, false
	}
	post, err := parseRecord(line)
	if err != nil {
		log.Error().Err(err).Int("line", lineNo).Str("record", line).Msg("skipping index line")
		return Post{}, false
	}
	return post, true
}

func parseRecord(line string) (Post, error) {
	var post Post
	if err := json.Unmarshal([]byte(line), &post); err != nil {
		return Post{}, failure.Translate(err, InvalidRecord)
	}
	if err := validate.Struct(post); err != nil {
		return Post{}, failure.Translate(err, InvalidRecord)
	}
	return post, nil
}

// SortPosts orders posts newest first. Posts without a parsable creation
// time go last, keeping their index order.
func SortPosts(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		ti, okI := posts[i].Created()
		tj, okJ := posts[j].Created()
		if !okI || !okJ {
			return okI && !okJ
		}
		return ti.After(tj)
	})
}
