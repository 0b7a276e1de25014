package content

import (
	"strconv"
	"strings"
	"unicode"
)

// PlaceholderSlug is used when heading text has no letters or digits left.
const PlaceholderSlug = "heading"

// Slug turns heading text into a lower-case, hyphenated anchor id.
func Slug(text string) string {
	id, _ := slug(text)
	return id
}

func slug(text string) (string, bool) {
	var b strings.Builder
	b.Grow(len(text))
	pendingHyphen := false
	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingHyphen = true
		}
	}
	if b.Len() == 0 {
		return PlaceholderSlug, false
	}
	return b.String(), true
}

// Slugger hands out ids that are unique within one document.
type Slugger struct {
	used        map[string]struct{}
	placeholder int
}

func NewSlugger() *Slugger {
	return &Slugger{used: make(map[string]struct{})}
}

// ID returns a unique id for text. Repeated ids get "-2", "-3", ... and
// placeholder ids are numbered "heading-1", "heading-2", ...
func (s *Slugger) ID(text string) string {
	base, ok := slug(text)
	var id string
	if !ok {
		for {
			s.placeholder++
			id = base + "-" + strconv.Itoa(s.placeholder)
			if !s.taken(id) {
				break
			}
		}
	} else {
		id = base
		for n := 2; s.taken(id); n++ {
			id = base + "-" + strconv.Itoa(n)
		}
	}
	s.used[id] = struct{}{}
	return id
}

func (s *Slugger) taken(id string) bool {
	_, ok := s.used[id]
	return ok
}
