package render

import (
	"html"
	"net/url"
	"regexp"
	"strings"
)

var (
	rawHTMLShortcode     = regexp.MustCompile(`\{\{<\s*rawhtml\s*>\}\}([\s\S]*?)\{\{<\s*/rawhtml\s*>\}\}`)
	jsonDisplayShortcode = regexp.MustCompile(`\{\{<\s*json-display\s*>\}\}([\s\S]*?)\{\{<\s*/json-display\s*>\}\}`)
)

// ExpandShortcodes rewrites rawhtml blocks to their trimmed content and
// json-display blocks to whatever jsonDisplay returns for the URL.
func ExpandShortcodes(markdown string, jsonDisplay func(url string) string) string {
	out := rawHTMLShortcode.ReplaceAllStringFunc(markdown, func(m string) string {
		return strings.TrimSpace(rawHTMLShortcode.FindStringSubmatch(m)[1])
	})
	return jsonDisplayShortcode.ReplaceAllStringFunc(out, func(m string) string {
		return jsonDisplay(strings.TrimSpace(jsonDisplayShortcode.FindStringSubmatch(m)[1]))
	})
}

// JSONPlaceholder is the element a json-display shortcode becomes in HTML.
// It links to the JSON viewer page at viewerPath.
func JSONPlaceholder(viewerPath string) func(string) string {
	return func(target string) string {
		escaped := html.EscapeString(target)
		link := html.EscapeString(viewerPath + "?url=" + url.QueryEscape(target))
		return `<div class="json-display-placeholder" data-json-display="` + escaped + `">` +
			`<a href="` + link + `">JSON: ` + escaped + `</a></div>`
	}
}

// JSONLink renders a json-display shortcode as a plain markdown link.
func JSONLink(target string) string {
	return "[JSON: " + target + "](" + target + ")"
}
