package jsontree

const DefaultTOCDepth = 2

type TocEntry struct {
	ID    string   `json:"id"`
	Text  string   `json:"text"`
	Level int      `json:"level"`
	Path  []string `json:"path"`
}

// ExtractTOC outlines the keys of v down to maxDepth levels. maxDepth is
// clamped to 1..2; zero or less means the default depth. Entry ids match
// the ids of the corresponding Nodes.
func ExtractTOC(v Value, maxDepth int) []TocEntry {
	if maxDepth <= 0 || maxDepth > DefaultTOCDepth {
		maxDepth = DefaultTOCDepth
	}
	var toc []TocEntry
	var traverse func(v Value, path []string, level int)
	traverse = func(v Value, path []string, level int) {
		visit := func(key string, child Value) {
			p := childPath(path, key)
			toc = append(toc, TocEntry{ID: PathID(p), Text: key, Level: level, Path: p})
			if level < maxDepth && child.IsContainer() {
				traverse(child, p, level+1)
			}
		}
		switch v.Type {
		case TypeObject:
			for _, m := range v.Object {
				visit(m.Key, m.Value)
			}
		case TypeArray:
			for i, item := range v.Array {
				visit(IndexKey(i), item)
			}
		}
	}
	traverse(v, nil, 1)
	return toc
}
