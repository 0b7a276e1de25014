package content

import (
	"github.com/morikuni/failure"
	"github.com/rs/zerolog/log"
	"strings"
	"unicode/utf8"
)

const frontmatterDelimiter = "---"

// Frontmatter holds the fields a post preamble may override.
type Frontmatter struct {
	Created string
	Updated string
	Tags    []string
}

// ParseFrontmatter splits raw into an optional preamble and the markdown
// body. Without a preamble, or when the preamble cannot be parsed, it
// returns nil and raw unchanged.
func ParseFrontmatter(raw string) (*Frontmatter, string) {
	preamble, body, ok := splitFrontmatter(raw)
	if !ok {
		return nil, raw
	}
	fm, err := parsePreamble(preamble)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring malformed frontmatter")
		return nil, raw
	}
	return fm, body
}

// splitFrontmatter finds a "---" line at the very start of raw and the next
// "---" line after it.
func splitFrontmatter(raw string) (string, string, bool) {
	first, rest, found := cutLine(raw)
	if !found || !isDelimiter(first) {
		return "", "", false
	}
	offset := 0
	for offset <= len(rest) {
		line, next, found := cutLine(rest[offset:])
		if isDelimiter(line) {
			preamble := strings.TrimSuffix(rest[:offset], "\n")
			if !found {
				return preamble, "", true
			}
			return preamble, next, true
		}
		if !found {
			break
		}
		offset += len(line) + 1
	}
	return "", "", false
}

func cutLine(s string) (string, string, bool) {
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+1:], true
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == frontmatterDelimiter
}

func parsePreamble(preamble string) (*Frontmatter, error) {
	if !utf8.ValidString(preamble) {
		return nil, failure.New(InvalidFrontmatter, failure.Message("preamble is not valid UTF-8"))
	}
	fm := &Frontmatter{}
	for _, line := range strings.Split(preamble, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "created":
			fm.Created = value
		case "updated":
			fm.Updated = value
		case "tags":
			if tags, ok := parseTagList(value); ok {
				fm.Tags = tags
			}
		}
	}
	return fm, nil
}

// parseTagList reads the first bracketed list in value, e.g. [a, "b", 'c'].
func parseTagList(value string) ([]string, bool) {
	start := strings.IndexByte(value, '[')
	if start < 0 {
		return nil, false
	}
	end := strings.IndexByte(value[start+1:], ']')
	if end < 0 {
		return nil, false
	}
	tags := []string{}
	for _, tag := range strings.Split(value[start+1:start+1+end], ",") {
		tag = strings.TrimSpace(tag)
		tag = strings.NewReplacer(`"`, "", `'`, "").Replace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags, true
}
