package search

import (
	"code.sajari.com/sego"
	"github.com/QuantumGhost/folio/internal/i18n"
	"github.com/retarus/whatlanggo"
	"strings"
	"unicode/utf8"
)

const excerptLength = 200

// needsSegmentation reports whether text has to be split into words before
// to_tsvector can index it. Chinese has no spaces between words.
func needsSegmentation(siteLang string, detected whatlanggo.Lang) bool {
	return detected == whatlanggo.Cmn || siteLang == "zhs" || siteLang == "zht"
}

func segment(segmenter *sego.Segmenter, text string) string {
	segments := segmenter.Segment([]byte(text))
	return strings.Join(sego.SegmentsToSlice(segments, false), " ")
}

func excerpt(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= excerptLength {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:excerptLength])) + "…"
}

// languages returns the configured site languages, or every known one.
func languages(codes []string) []string {
	var out []string
	for _, code := range codes {
		if _, ok := i18n.Lookup(code); ok {
			out = append(out, code)
		}
	}
	if len(out) > 0 {
		return out
	}
	for _, lang := range i18n.Languages() {
		out = append(out, lang.Code)
	}
	return out
}
