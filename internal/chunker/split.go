package chunker

import "strings"

// splitOversized segments every section whose own content exceeds the token
// ceiling. Segments are stored on the node; the assembler realizes them as
// separate chunks. Node processing order does not affect any node's result.
func (t *tree) splitOversized(cfg Config, tok Tokenizer) {
	for i := range t.nodes {
		n := &t.nodes[i]
		if n.removed || len(n.content) == 0 || n.tokens <= cfg.MaxTokens {
			continue
		}
		n.segments = splitContent(n.content, cfg, tok)
	}
}

// splitContent accumulates paragraphs greedily until the next one would
// exceed the ceiling, then closes the segment. Paragraphs are never split
// mid-text for primary boundaries; a single paragraph over the ceiling
// becomes its own oversized segment, unmodified.
func splitContent(content []para, cfg Config, tok Tokenizer) []segment {
	var groups [][]para
	var oversized []bool
	var cur []para
	curTokens := 0

	flush := func() {
		if len(cur) == 0 {
			return
		}
		groups = append(groups, cur)
		oversized = append(oversized, false)
		cur = nil
		curTokens = 0
	}

	for _, p := range content {
		if p.tokens > cfg.MaxTokens {
			flush()
			groups = append(groups, []para{p})
			oversized = append(oversized, true)
			continue
		}
		if curTokens+p.tokens > cfg.MaxTokens && len(cur) > 0 {
			flush()
		}
		cur = append(cur, p)
		curTokens += p.tokens
	}
	flush()

	segs := make([]segment, 0, len(groups))
	for i, g := range groups {
		tokens := 0
		for _, p := range g {
			tokens += p.tokens
		}
		seg := makeSegment(g, tokens)
		seg.oversized = oversized[i]

		// Duplicated trailing context from the previous segment. This is
		// intentional duplication, flagged via overlapLen so it can be
		// stripped exactly. Oversized atoms are emitted unmodified.
		if i > 0 && !seg.oversized && cfg.PreferParagraphSplits && cfg.OverlapTokens > 0 {
			prefix, prefixTokens := overlapTail(groups[i-1], cfg.OverlapTokens, tok)
			if prefix != "" {
				seg.overlapLen = len(prefix) + len("\n\n")
				seg.text = prefix + "\n\n" + seg.text
				seg.tokens += prefixTokens
			}
		}
		segs = append(segs, seg)
	}
	return segs
}

// overlapTail returns up to budget tokens of trailing text from a segment's
// paragraphs. Whole trailing paragraphs are preferred; when even the last
// paragraph alone exceeds the budget, it is truncated to the longest word
// suffix that fits, so overlap never cuts mid-word.
func overlapTail(paras []para, budget int, tok Tokenizer) (string, int) {
	taken := 0
	tokens := 0
	for i := len(paras) - 1; i >= 0; i-- {
		if tokens+paras[i].tokens > budget {
			break
		}
		tokens += paras[i].tokens
		taken++
	}
	if taken > 0 {
		tail := paras[len(paras)-taken:]
		parts := make([]string, 0, taken)
		for _, p := range tail {
			parts = append(parts, p.text)
		}
		return strings.Join(parts, "\n\n"), tokens
	}

	words := strings.Fields(paras[len(paras)-1].text)
	best := ""
	bestTokens := 0
	for n := 1; n <= len(words); n++ {
		suffix := strings.Join(words[len(words)-n:], " ")
		suffixTokens := tok(suffix)
		if suffixTokens > budget {
			break
		}
		best = suffix
		bestTokens = suffixTokens
	}
	return best, bestTokens
}
