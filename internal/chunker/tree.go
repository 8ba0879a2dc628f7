package chunker

import "strings"

// para is one paragraph span owned by exactly one section node.
type para struct {
	text    string
	tokens  int
	page    int
	polygon []float64
}

// segment is one splitter-produced slice of a section's content, realized
// as a separate chunk by the assembler.
type segment struct {
	text       string
	tokens     int
	overlapLen int // bytes of duplicated prefix, separator included
	pageStart  int
	pageEnd    int
	oversized  bool
}

// node is one heading-delimited section. Parent and children are arena
// indices, never owning references, so the tree carries no pointer cycles.
type node struct {
	id       int
	title    string
	level    int
	parent   int // -1 for roots
	children []int
	content  []para
	tokens   int // own content only, descendants excluded
	summary  bool
	removed  bool
	segments []segment
}

// tree is an arena-backed section forest. It lives only for the duration of
// one chunking call.
type tree struct {
	nodes []node
	roots []int
}

func (t *tree) newNode(title string, level, parent int) int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, node{id: id, title: title, level: level, parent: parent})
	if parent >= 0 {
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	} else {
		t.roots = append(t.roots, id)
	}
	return id
}

func (t *tree) appendContent(id int, p para) {
	t.nodes[id].content = append(t.nodes[id].content, p)
	t.nodes[id].tokens += p.tokens
}

// siblingGroup returns the ordered group the node competes in for merging:
// its parent's children, or the root list.
func (t *tree) siblingGroup(id int) []int {
	if p := t.nodes[id].parent; p >= 0 {
		return t.nodes[p].children
	}
	return t.roots
}

func (t *tree) hasContent() bool {
	for i := range t.nodes {
		if len(t.nodes[i].content) > 0 {
			return true
		}
	}
	return false
}

// walk visits live nodes pre-order: each node before its children, siblings
// in reading order.
func (t *tree) walk(fn func(id int)) {
	var visit func(int)
	visit = func(id int) {
		if t.nodes[id].removed {
			return
		}
		fn(id)
		for _, c := range t.nodes[id].children {
			visit(c)
		}
	}
	for _, r := range t.roots {
		visit(r)
	}
}

// postOrder returns live node ids children-first, for bottom-up passes.
func (t *tree) postOrder() []int {
	var order []int
	var visit func(int)
	visit = func(id int) {
		for _, c := range t.nodes[id].children {
			visit(c)
		}
		order = append(order, id)
	}
	for _, r := range t.roots {
		visit(r)
	}
	return order
}

// path returns the titles from root to the given node, skipping untitled
// implicit roots.
func (t *tree) path(id int) []string {
	var titles []string
	for cur := id; cur >= 0; cur = t.nodes[cur].parent {
		if title := t.nodes[cur].title; title != "" {
			titles = append(titles, title)
		}
	}
	for i, j := 0, len(titles)-1; i < j; i, j = i+1, j-1 {
		titles[i], titles[j] = titles[j], titles[i]
	}
	return titles
}

// makeSegment joins paragraphs into one segment, tracking the page range.
func makeSegment(paras []para, tokens int) segment {
	var sb strings.Builder
	pageStart, pageEnd := 0, 0
	for i, p := range paras {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(p.text)
		if p.page > 0 {
			if pageStart == 0 {
				pageStart = p.page
			}
			pageEnd = p.page
		}
	}
	return segment{text: sb.String(), tokens: tokens, pageStart: pageStart, pageEnd: pageEnd}
}
