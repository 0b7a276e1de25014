package render

import (
	"bytes"
	"github.com/QuantumGhost/folio/internal/content"
	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/morikuni/failure"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"html/template"
)

const DefaultJSONViewerPath = "/json"

type Option func(*Renderer)

func WithJSONViewerPath(p string) Option {
	return func(r *Renderer) {
		r.jsonViewerPath = p
	}
}

func WithCodeStyle(name string) Option {
	return func(r *Renderer) {
		if s := styles.Get(name); s != nil {
			r.codeStyle = s
		}
	}
}

// Renderer turns post markdown into HTML.
type Renderer struct {
	md             goldmark.Markdown
	jsonViewerPath string
	codeStyle      *chroma.Style
	formatter      *chromahtml.Formatter
}

func New(opts ...Option) *Renderer {
	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(
				parser.WithASTTransformers(util.Prioritized(headingIDs{}, 100)),
			),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
		jsonViewerPath: DefaultJSONViewerPath,
		codeStyle:      styles.Get("github"),
		formatter:      chromahtml.New(chromahtml.WithClasses(false), chromahtml.TabWidth(4)),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.codeStyle == nil {
		r.codeStyle = styles.Fallback
	}
	return r
}

func (r *Renderer) Render(markdown string) (template.HTML, error) {
	src := ExpandShortcodes(markdown, JSONPlaceholder(r.jsonViewerPath))
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", failure.MarkUnexpected(err)
	}
	out, err := r.postProcess(buf.Bytes())
	if err != nil {
		return "", err
	}
	return template.HTML(out), nil
}

// headingIDs gives level-2 headings the ids the TOC extractor produces for
// the same document. Level-1 headings take part in numbering and are then
// dropped since the page header already shows the title.
type headingIDs struct{}

func (headingIDs) Transform(doc *ast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	slugger := content.NewSlugger()
	var titles []ast.Node
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindFencedCodeBlock, ast.KindCodeBlock, ast.KindHTMLBlock:
			// the outline reads these lines too, so their ids are taken
			countHeadingLines(slugger, n, source)
			return ast.WalkSkipChildren, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if heading.Level > 2 || !isATX(heading, source) {
			return ast.WalkSkipChildren, nil
		}
		id := slugger.ID(rawText(heading, source))
		if heading.Level == 1 {
			titles = append(titles, heading)
		} else {
			heading.SetAttributeString("id", []byte(id))
		}
		return ast.WalkSkipChildren, nil
	})
	for _, n := range titles {
		n.Parent().RemoveChild(n.Parent(), n)
	}
}

func countHeadingLines(slugger *content.Slugger, n ast.Node, source []byte) {
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		if _, text, ok := content.ParseHeading(sourceLine(source, lines.At(i).Start)); ok {
			slugger.ID(text)
		}
	}
}

// sourceLine is the whole line of source containing offset.
func sourceLine(source []byte, offset int) string {
	start := bytes.LastIndexByte(source[:offset], '\n') + 1
	end := bytes.IndexByte(source[offset:], '\n')
	if end < 0 {
		return string(source[start:])
	}
	return string(source[start : offset+end])
}

func rawText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	return buf.String()
}

// isATX reports whether the heading has text and its source line starts
// with '#', the only form the line-based TOC extractor recognises.
func isATX(heading *ast.Heading, source []byte) bool {
	lines := heading.Lines()
	if lines.Len() == 0 {
		return false
	}
	start := bytes.LastIndexByte(source[:lines.At(0).Start], '\n') + 1
	return bytes.HasPrefix(bytes.TrimLeft(source[start:], " \t"), []byte("#"))
}
