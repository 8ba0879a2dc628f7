package chunker

import (
	"strings"

	"github.com/dgallion1/docchunk/internal/document"
)

// buildTree converts a flat, ordered element stream into a section forest
// using the standard heading-stack rule: a heading's parent is the nearest
// preceding still-open node with a strictly smaller level. The second result
// is false when the stream contains no headings at all.
func buildTree(doc document.Document, tok Tokenizer) (*tree, bool) {
	t := &tree{}
	var stack []int
	headings := 0

	for _, el := range doc.Elements {
		switch el.Type {
		case document.ElementHeading:
			headings++
			level := el.Level
			if level <= 0 {
				// Invalid levels nest one deeper than the open node, never
				// shallower, so they cannot close open sections unexpectedly.
				if len(stack) > 0 {
					level = t.nodes[stack[len(stack)-1]].level + 1
				} else {
					level = 1
				}
			}
			for len(stack) > 0 && t.nodes[stack[len(stack)-1]].level >= level {
				stack = stack[:len(stack)-1]
			}
			parent := -1
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}
			id := t.newNode(strings.TrimSpace(el.Title), level, parent)
			stack = append(stack, id)

		case document.ElementParagraph:
			text := strings.TrimSpace(el.Text)
			if text == "" {
				continue
			}
			if len(stack) == 0 {
				// Body text before any heading lands in an implicit untitled
				// root that stays open for the rest of the document.
				id := t.newNode("", 0, -1)
				stack = append(stack, id)
			}
			top := stack[len(stack)-1]
			t.appendContent(top, para{text: text, tokens: tok(text), page: el.Page, polygon: el.Polygon})
		}
	}

	return t, headings > 0
}
