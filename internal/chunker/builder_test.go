package chunker

import (
	"strings"
	"testing"

	"github.com/dgallion1/docchunk/internal/document"
)

func mustNode(t *testing.T, tr *tree, title string) *node {
	t.Helper()
	for i := range tr.nodes {
		if tr.nodes[i].title == title {
			return &tr.nodes[i]
		}
	}
	t.Fatalf("node %q not found", title)
	return nil
}

func TestBuildTree_HeadingStack(t *testing.T) {
	doc := document.Document{
		ID: "doc1",
		Elements: []document.Element{
			document.Heading("A", 1),
			document.Paragraph("a body"),
			document.Heading("A.1", 2),
			document.Paragraph("a1 body"),
			document.Heading("A.1.1", 3),
			document.Heading("A.2", 2),
			document.Heading("B", 1),
		},
	}
	tr, ok := buildTree(doc, wordTokens)
	if !ok {
		t.Fatal("expected heading structure")
	}
	if len(tr.roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(tr.roots))
	}

	a := mustNode(t, tr, "A")
	a1 := mustNode(t, tr, "A.1")
	a11 := mustNode(t, tr, "A.1.1")
	a2 := mustNode(t, tr, "A.2")
	b := mustNode(t, tr, "B")

	if a1.parent != a.id || a2.parent != a.id {
		t.Error("A.1 and A.2 should be children of A")
	}
	if a11.parent != a1.id {
		t.Error("A.1.1 should be a child of A.1")
	}
	if b.parent != -1 {
		t.Error("B should be a root")
	}
	if len(a.content) != 1 || a.content[0].text != "a body" {
		t.Errorf("A should own its body text, got %+v", a.content)
	}
	if len(a1.content) != 1 || a1.content[0].text != "a1 body" {
		t.Errorf("A.1 should own its body text, got %+v", a1.content)
	}
}

func TestBuildTree_RepeatedLevels(t *testing.T) {
	// Flat HTML-like structures repeat levels; equal levels are siblings.
	doc := document.Document{
		ID: "doc1",
		Elements: []document.Element{
			document.Heading("One", 2),
			document.Heading("Two", 2),
			document.Heading("Three", 2),
		},
	}
	tr, _ := buildTree(doc, wordTokens)
	if len(tr.roots) != 3 {
		t.Fatalf("expected 3 sibling roots, got %d", len(tr.roots))
	}
}

func TestBuildTree_LevelSkip(t *testing.T) {
	// A jump from level 1 to level 3 still nests under the level-1 node.
	doc := document.Document{
		ID: "doc1",
		Elements: []document.Element{
			document.Heading("Top", 1),
			document.Heading("Deep", 3),
			document.Heading("Next", 2),
		},
	}
	tr, _ := buildTree(doc, wordTokens)
	top := mustNode(t, tr, "Top")
	if mustNode(t, tr, "Deep").parent != top.id {
		t.Error("level-3 heading should nest under the open level-1 node")
	}
	if mustNode(t, tr, "Next").parent != top.id {
		t.Error("level-2 heading should close the level-3 node and nest under Top")
	}
}

func TestBuildTree_LeadingBodyText(t *testing.T) {
	doc := document.Document{
		ID: "doc1",
		Elements: []document.Element{
			document.Paragraph("preamble text"),
			document.Heading("First", 1),
			document.Paragraph("section text"),
		},
	}
	tr, ok := buildTree(doc, wordTokens)
	if !ok {
		t.Fatal("expected heading structure")
	}
	if len(tr.roots) != 1 {
		t.Fatalf("expected a single implicit root, got %d roots", len(tr.roots))
	}
	root := &tr.nodes[tr.roots[0]]
	if root.title != "" {
		t.Errorf("implicit root must be untitled, got %q", root.title)
	}
	if len(root.content) != 1 || root.content[0].text != "preamble text" {
		t.Errorf("implicit root should hold the preamble, got %+v", root.content)
	}
	if mustNode(t, tr, "First").parent != root.id {
		t.Error("following headings should nest under the implicit root")
	}
}

func TestBuildTree_InvalidLevelNestsDeeper(t *testing.T) {
	doc := document.Document{
		ID: "doc1",
		Elements: []document.Element{
			document.Heading("Open", 2),
			document.Heading("Broken", 0),
		},
	}
	tr, _ := buildTree(doc, wordTokens)
	open := mustNode(t, tr, "Open")
	broken := mustNode(t, tr, "Broken")
	if broken.parent != open.id {
		t.Error("invalid level should nest under the open node, never close it")
	}
	if broken.level != open.level+1 {
		t.Errorf("invalid level should become one deeper, got %d", broken.level)
	}
}

func TestBuildTree_NoHeadingsSentinel(t *testing.T) {
	doc := document.Document{
		ID:       "doc1",
		Elements: []document.Element{document.Paragraph("just text")},
	}
	if _, ok := buildTree(doc, wordTokens); ok {
		t.Error("expected the no-structure sentinel for a heading-free stream")
	}
}

func TestBuildTree_BlankParagraphsDropped(t *testing.T) {
	doc := document.Document{
		ID: "doc1",
		Elements: []document.Element{
			document.Heading("A", 1),
			document.Paragraph("   "),
			document.Paragraph(strings.TrimSpace("kept")),
		},
	}
	tr, _ := buildTree(doc, wordTokens)
	a := mustNode(t, tr, "A")
	if len(a.content) != 1 || a.content[0].text != "kept" {
		t.Errorf("blank paragraphs should be dropped, got %+v", a.content)
	}
}
