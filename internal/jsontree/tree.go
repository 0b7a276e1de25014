package jsontree

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Node is one entry of a JSON value viewed as a tree. Children is only
// set for objects and arrays, and only when built eagerly.
type Node struct {
	Key      string   `json:"key"`
	Value    Value    `json:"value"`
	Type     Type     `json:"type"`
	Path     []string `json:"path"`
	ID       string   `json:"id"`
	Children []Node   `json:"children,omitempty"`
}

var nonIDChars = regexp.MustCompile(`[^a-z0-9-]`)

// PathID derives a stable anchor id from a path.
func PathID(path []string) string {
	return nonIDChars.ReplaceAllString(strings.ToLower(strings.Join(path, "-")), "-")
}

func IndexKey(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

func childPath(parent []string, key string) []string {
	path := make([]string, len(parent), len(parent)+1)
	copy(path, parent)
	return append(path, key)
}

func newNode(key string, value Value, parent []string) Node {
	path := childPath(parent, key)
	return Node{Key: key, Value: value, Type: value.Type, Path: path, ID: PathID(path)}
}

// Nodes returns the direct children of v. Deeper levels are built by
// calling Nodes again with a child's Value and Path.
func Nodes(v Value, parent []string) []Node {
	var nodes []Node
	switch v.Type {
	case TypeObject:
		nodes = make([]Node, 0, len(v.Object))
		for _, m := range v.Object {
			nodes = append(nodes, newNode(m.Key, m.Value, parent))
		}
	case TypeArray:
		nodes = make([]Node, 0, len(v.Array))
		for i, item := range v.Array {
			nodes = append(nodes, newNode(IndexKey(i), item, parent))
		}
	}
	return nodes
}

// Tree returns the children of v with every descendant populated.
func Tree(v Value, parent []string) []Node {
	nodes := Nodes(v, parent)
	for i := range nodes {
		if nodes[i].Value.IsContainer() {
			nodes[i].Children = Tree(nodes[i].Value, nodes[i].Path)
		}
	}
	return nodes
}

// Flatten lists every node below v in pre-order, children populated.
func Flatten(v Value, parent []string) []Node {
	var flat []Node
	var walk func(nodes []Node)
	walk = func(nodes []Node) {
		for _, n := range nodes {
			flat = append(flat, n)
			walk(n.Children)
		}
	}
	walk(Tree(v, parent))
	return flat
}

// Resolve follows path from v. Array items are addressed as "[i]".
func Resolve(v Value, path []string) (Value, bool) {
	cur := v
	for _, seg := range path {
		switch cur.Type {
		case TypeObject:
			next, ok := cur.Field(seg)
			if !ok {
				return Value{}, false
			}
			cur = next
		case TypeArray:
			if !strings.HasPrefix(seg, "[") || !strings.HasSuffix(seg, "]") {
				return Value{}, false
			}
			i, err := strconv.Atoi(seg[1 : len(seg)-1])
			if err != nil || i < 0 || i >= len(cur.Array) {
				return Value{}, false
			}
			cur = cur.Array[i]
		default:
			return Value{}, false
		}
	}
	return cur, true
}

// Format renders v for display next to its key.
func Format(v Value) string {
	switch v.Type {
	case TypeString:
		return `"` + v.Str + `"`
	case TypeNumber:
		return v.Number.String()
	case TypeBoolean:
		return strconv.FormatBool(v.Bool)
	case TypeArray:
		return fmt.Sprintf("Array(%d)", len(v.Array))
	case TypeObject:
		return fmt.Sprintf("Object(%d)", len(v.Object))
	default:
		return "null"
	}
}

// Summary describes the size of a whole document.
func Summary(v Value) string {
	switch v.Type {
	case TypeArray:
		return fmt.Sprintf("Array (%d items)", len(v.Array))
	case TypeObject:
		return fmt.Sprintf("Object (%d keys)", len(v.Object))
	default:
		return Format(v)
	}
}
