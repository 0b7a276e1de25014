package render

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestExpandShortcodes(t *testing.T) {
	md := "a {{< rawhtml >}}  <b>x</b>  {{< /rawhtml >}} b\n{{< json-display >}}\n  https://e.com/d.json\n{{< /json-display >}}"
	out := ExpandShortcodes(md, JSONLink)
	assert.Equal(t, "a <b>x</b> b\n[JSON: https://e.com/d.json](https://e.com/d.json)", out)
}

func TestExpandShortcodesMultiple(t *testing.T) {
	md := "{{<rawhtml>}}1{{</rawhtml>}} and {{<rawhtml>}}2{{</rawhtml>}}"
	assert.Equal(t, "1 and 2", ExpandShortcodes(md, JSONLink))
}

func TestExpandShortcodesLeavesUnclosed(t *testing.T) {
	md := "{{< rawhtml >}} never closed"
	assert.Equal(t, md, ExpandShortcodes(md, JSONLink))
}

func TestJSONPlaceholderEscapes(t *testing.T) {
	out := JSONPlaceholder("/json")(`https://e.com/?a=1&b="2"`)
	assert.Contains(t, out, `data-json-display="https://e.com/?a=1&amp;b=&#34;2&#34;"`)
	assert.Contains(t, out, `href="/json?url=https%3A%2F%2Fe.com%2F%3Fa%3D1%26b%3D%222%22"`)
}
