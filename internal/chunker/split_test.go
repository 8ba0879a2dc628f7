package chunker

import (
	"strings"
	"testing"
)

func mkParas(tokensEach int, count int) []para {
	out := make([]para, 0, count)
	for range count {
		text := strings.TrimSpace(strings.Repeat("w ", tokensEach))
		out = append(out, para{text: text, tokens: tokensEach})
	}
	return out
}

func TestSplitContent_GreedyParagraphBoundaries(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTokens = 100
	cfg.OverlapTokens = 0

	segs := splitContent(mkParas(30, 10), cfg, wordTokens)
	if len(segs) != 4 {
		t.Fatalf("expected 4 segments (3+3+3+1 paragraphs), got %d", len(segs))
	}
	want := []int{90, 90, 90, 30}
	for i, seg := range segs {
		if seg.tokens != want[i] {
			t.Errorf("segment %d: expected %d tokens, got %d", i, want[i], seg.tokens)
		}
		if seg.oversized {
			t.Errorf("segment %d: unexpectedly oversized", i)
		}
	}
}

func TestSplitContent_WholeParagraphOverlap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTokens = 100
	cfg.OverlapTokens = 50

	segs := splitContent(mkParas(20, 10), cfg, wordTokens)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	// Two whole 20-token paragraphs fit the 50-token budget.
	if segs[1].tokens != 100+40 {
		t.Errorf("expected 40 tokens of whole-paragraph overlap, got %d extra", segs[1].tokens-100)
	}
	if segs[1].overlapLen == 0 {
		t.Error("overlap prefix length must be recorded")
	}
	stripped := segs[1].text[segs[1].overlapLen:]
	if wordTokens(stripped) != 100 {
		t.Errorf("stripping the recorded prefix should leave the base segment, got %d tokens", wordTokens(stripped))
	}
}

func TestSplitContent_WordSuffixOverlap(t *testing.T) {
	// The trailing paragraph alone exceeds the overlap budget, so the prefix
	// is the longest word suffix that fits.
	cfg := DefaultConfig()
	cfg.MaxTokens = 100
	cfg.OverlapTokens = 30

	segs := splitContent(mkParas(80, 2), cfg, wordTokens)
	if len(segs) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(segs))
	}
	if got := segs[1].tokens - 80; got != 30 {
		t.Errorf("expected a 30-token word-suffix overlap, got %d", got)
	}
}

func TestSplitContent_OversizedAtom(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTokens = 100
	cfg.OverlapTokens = 10

	paras := mkParas(40, 1)
	paras = append(paras, mkParas(500, 1)...)
	paras = append(paras, mkParas(40, 1)...)

	segs := splitContent(paras, cfg, wordTokens)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	if !segs[1].oversized {
		t.Error("the 500-token paragraph should be flagged oversized")
	}
	if segs[1].tokens != 500 || segs[1].overlapLen != 0 {
		t.Error("an oversized atom must be emitted unmodified, with no overlap prefix")
	}
	if segs[0].oversized || segs[2].oversized {
		t.Error("neighboring segments must not inherit the oversized flag")
	}
}

func TestSplitContent_NoOverlapWhenParagraphSplitsDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxTokens = 100
	cfg.OverlapTokens = 50
	cfg.PreferParagraphSplits = false

	segs := splitContent(mkParas(40, 6), cfg, wordTokens)
	for i, seg := range segs {
		if seg.overlapLen != 0 {
			t.Errorf("segment %d: expected no overlap prefix, got %d bytes", i, seg.overlapLen)
		}
	}
}

func TestOverlapTail_BudgetTooSmallForAnyWord(t *testing.T) {
	// With a zero budget nothing fits; callers only invoke overlapTail with a
	// positive budget, but the helper must still be total.
	paras := mkParas(10, 1)
	text, tokens := overlapTail(paras, 0, wordTokens)
	if text != "" || tokens != 0 {
		t.Errorf("expected empty overlap, got %q (%d tokens)", text, tokens)
	}
}
