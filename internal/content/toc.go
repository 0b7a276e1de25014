package content

import (
	"regexp"
	"strings"
)

// TocEntry is one heading of a document outline. Level-2 entries are
// nested under the nearest preceding level-1 entry.
type TocEntry struct {
	ID       string     `json:"id"`
	Text     string     `json:"text"`
	Level    int        `json:"level"`
	Children []TocEntry `json:"children,omitempty"`
}

var (
	h1Pattern = regexp.MustCompile(`^#\s+(.+)$`)
	h2Pattern = regexp.MustCompile(`^##\s+(.+)$`)
)

// ExtractTOC scans markdown line by line and returns its level-1 and
// level-2 headings in document order. Lines inside fenced code blocks are
// not skipped.
func ExtractTOC(markdown string) []TocEntry {
	var (
		toc     []TocEntry
		current = -1
		slugger = NewSlugger()
	)
	for _, line := range strings.Split(markdown, "\n") {
		level, text, ok := ParseHeading(line)
		if !ok {
			continue
		}
		entry := TocEntry{ID: slugger.ID(text), Text: text, Level: level}
		switch {
		case level == 1:
			toc = append(toc, entry)
			current = len(toc) - 1
		case current >= 0:
			toc[current].Children = append(toc[current].Children, entry)
		default:
			toc = append(toc, entry)
		}
	}
	return toc
}

// ParseHeading reports whether line is a heading the outline counts, with
// its level and text.
func ParseHeading(line string) (int, string, bool) {
	trimmed := strings.TrimSpace(line)
	if m := h1Pattern.FindStringSubmatch(trimmed); m != nil {
		return 1, strings.TrimSpace(m[1]), true
	}
	if m := h2Pattern.FindStringSubmatch(trimmed); m != nil {
		return 2, strings.TrimSpace(m[1]), true
	}
	return 0, "", false
}

// Flatten returns the level-2 entries of toc in document order.
func Flatten(toc []TocEntry) []TocEntry {
	var flat []TocEntry
	for _, entry := range toc {
		if entry.Level == 2 {
			flat = append(flat, TocEntry{ID: entry.ID, Text: entry.Text, Level: 2})
		}
		for _, child := range entry.Children {
			flat = append(flat, TocEntry{ID: child.ID, Text: child.Text, Level: 2})
		}
	}
	return flat
}
