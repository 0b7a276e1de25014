package render

import (
	"github.com/QuantumGhost/folio/internal/content"
	"github.com/charmbracelet/glamour"
	"github.com/morikuni/failure"
	"strings"
)

// Terminal renders markdown for a terminal of the given width.
func Terminal(markdown string, width int) (string, error) {
	tr, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", failure.MarkUnexpected(err)
	}
	out, err := tr.Render(ExpandShortcodes(markdown, JSONLink))
	if err != nil {
		return "", failure.MarkUnexpected(err)
	}
	return out, nil
}

// Preview lays out an article as one markdown document: title, dates,
// tags and outline first, then the body.
func Preview(article *content.Article) string {
	var b strings.Builder
	b.WriteString("# " + article.DisplayTitle() + "\n\n")
	var meta []string
	if article.CreateTime != "" {
		meta = append(meta, "created "+article.CreateTime)
	}
	if article.UpdateTime != "" && article.UpdateTime != article.CreateTime {
		meta = append(meta, "updated "+article.UpdateTime)
	}
	if len(article.Tags) > 0 {
		meta = append(meta, "tags: "+strings.Join(article.Tags, ", "))
	}
	if len(meta) > 0 {
		b.WriteString("_" + strings.Join(meta, " · ") + "_\n\n")
	}
	if toc := content.ExtractTOC(article.Body); len(toc) > 0 {
		writeOutline(&b, toc, 0)
		b.WriteString("\n---\n\n")
	}
	b.WriteString(article.Body)
	return b.String()
}

func writeOutline(b *strings.Builder, toc []content.TocEntry, depth int) {
	for _, entry := range toc {
		b.WriteString(strings.Repeat("  ", depth) + "- " + entry.Text + "\n")
		writeOutline(b, entry.Children, depth+1)
	}
}
