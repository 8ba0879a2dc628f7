package chunker

// mergeTiny collapses sections whose own content is under minTokens into a
// neighbor, repeating full passes until nothing changes. Sizes are judged on
// own content only; descendants neither protect nor penalize a node.
func (t *tree) mergeTiny(minTokens int) {
	for t.mergePass(minTokens) {
	}
}

func (t *tree) mergePass(minTokens int) bool {
	changed := false
	// Bottom-up so children settle before their parents are judged.
	for _, id := range t.postOrder() {
		n := &t.nodes[id]
		if n.removed {
			continue
		}
		// Content-less nodes are pure structure; merging them would only
		// flatten the hierarchy without moving any text.
		if len(n.content) == 0 || n.tokens >= minTokens {
			continue
		}
		if t.mergeInto(id) {
			changed = true
		}
	}
	return changed
}

// mergeInto moves the node's content into its previous sibling, or upward
// into its parent when it is a first child. Its children are reparented to
// the absorbing node. Returns false when the node has nowhere to go (a first
// root, including the last remaining section of a document).
func (t *tree) mergeInto(id int) bool {
	n := &t.nodes[id]
	group := t.siblingGroup(id)
	idx := -1
	for i, s := range group {
		if s == id {
			idx = i
			break
		}
	}

	if idx > 0 {
		prev := group[idx-1]
		p := &t.nodes[prev]
		p.content = append(p.content, n.content...)
		p.tokens += n.tokens
		for _, c := range n.children {
			t.nodes[c].parent = prev
		}
		// Appended after the sibling's existing children to keep reading order.
		p.children = append(p.children, n.children...)
		t.removeFromGroup(id)
		n.removed = true
		n.content = nil
		n.children = nil
		n.tokens = 0
		return true
	}

	parentID := n.parent
	if parentID < 0 {
		return false
	}

	// First child: its content immediately follows the parent's own
	// paragraphs in reading order, so appending preserves document order.
	p := &t.nodes[parentID]
	p.content = append(p.content, n.content...)
	p.tokens += n.tokens

	// The node's children take its former slot among the parent's children.
	newChildren := make([]int, 0, len(p.children)-1+len(n.children))
	for _, c := range p.children {
		if c == id {
			for _, g := range n.children {
				t.nodes[g].parent = parentID
			}
			newChildren = append(newChildren, n.children...)
			continue
		}
		newChildren = append(newChildren, c)
	}
	p.children = newChildren
	n.removed = true
	n.content = nil
	n.children = nil
	n.tokens = 0
	return true
}

func (t *tree) removeFromGroup(id int) {
	if p := t.nodes[id].parent; p >= 0 {
		t.nodes[p].children = deleteID(t.nodes[p].children, id)
		return
	}
	t.roots = deleteID(t.roots, id)
}

func deleteID(ids []int, id int) []int {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
