package content

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestExtractTOCNestsUnderTitle(t *testing.T) {
	toc := ExtractTOC("# A\n## B\n## B\ntext\n## C")
	assert.Equal(t, []TocEntry{
		{ID: "a", Text: "A", Level: 1, Children: []TocEntry{
			{ID: "b", Text: "B", Level: 2},
			{ID: "b-2", Text: "B", Level: 2},
			{ID: "c", Text: "C", Level: 2},
		}},
	}, toc)
}

func TestExtractTOCTopLevelSections(t *testing.T) {
	toc := ExtractTOC("intro\n## First\n## Second\n# Title\n## Third")
	assert.Equal(t, []TocEntry{
		{ID: "first", Text: "First", Level: 2},
		{ID: "second", Text: "Second", Level: 2},
		{ID: "title", Text: "Title", Level: 1, Children: []TocEntry{
			{ID: "third", Text: "Third", Level: 2},
		}},
	}, toc)
}

func TestExtractTOCIgnoresOtherLines(t *testing.T) {
	md := "#NoSpace\n### Deep\n####\n  ## Indented  \nplain # text\n##\n"
	assert.Equal(t, []TocEntry{
		{ID: "indented", Text: "Indented", Level: 2},
	}, ExtractTOC(md))
}

func TestExtractTOCScansFencedCode(t *testing.T) {
	md := "## Real\n```sh\n# comment\n```\n"
	toc := ExtractTOC(md)
	assert.Len(t, toc, 2)
	assert.Equal(t, "comment", toc[1].ID)
	assert.Equal(t, 1, toc[1].Level)
}

func TestExtractTOCPlaceholders(t *testing.T) {
	toc := ExtractTOC("## !!!\n## ???")
	assert.Equal(t, "heading-1", toc[0].ID)
	assert.Equal(t, "heading-2", toc[1].ID)
}

func TestExtractTOCEmpty(t *testing.T) {
	assert.Empty(t, ExtractTOC(""))
	assert.Empty(t, ExtractTOC("no headings\nat all"))
}

func TestFlatten(t *testing.T) {
	toc := ExtractTOC("## Lead\n# A\n## B\n# C\n## D")
	flat := Flatten(toc)
	assert.Equal(t, []TocEntry{
		{ID: "lead", Text: "Lead", Level: 2},
		{ID: "b", Text: "B", Level: 2},
		{ID: "d", Text: "D", Level: 2},
	}, flat)
}
