package render

import (
	"bytes"
	"github.com/PuerkitoBio/goquery"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/morikuni/failure"
	"github.com/rs/zerolog/log"
	"strings"
)

// postProcess applies the presentation rules goldmark has no option for.
func (r *Renderer) postProcess(fragment []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(fragment))
	if err != nil {
		return "", failure.MarkUnexpected(err)
	}
	body := doc.Find("body")

	body.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, _ := s.Attr("href"); strings.HasPrefix(href, "http") {
			s.SetAttr("target", "_blank")
			s.SetAttr("rel", "noopener noreferrer")
		}
	})

	body.Find("code").Each(func(_ int, s *goquery.Selection) {
		if strings.TrimSpace(s.Text()) == "" {
			s.Remove()
		}
	})

	body.Find("pre > code").Each(func(_ int, s *goquery.Selection) {
		r.highlight(s)
	})

	body.Find("table").WrapHtml(`<div class="table-wrap"></div>`)

	out, err := body.Html()
	if err != nil {
		return "", failure.MarkUnexpected(err)
	}
	return out, nil
}

func (r *Renderer) highlight(code *goquery.Selection) {
	class, _ := code.Attr("class")
	var lang string
	for _, c := range strings.Fields(class) {
		if strings.HasPrefix(c, "language-") {
			lang = strings.TrimPrefix(c, "language-")
		}
	}
	if lang == "" {
		return
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return
	}
	iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code.Text())
	if err != nil {
		log.Warn().Err(err).Str("lang", lang).Msg("cannot tokenise code block")
		return
	}
	var buf strings.Builder
	if err := r.formatter.Format(&buf, r.codeStyle, iterator); err != nil {
		log.Warn().Err(err).Str("lang", lang).Msg("cannot highlight code block")
		return
	}
	code.Parent().ReplaceWithHtml(buf.String())
}
