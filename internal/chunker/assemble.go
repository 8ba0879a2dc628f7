package chunker

import (
	"fmt"

	"github.com/dgallion1/docchunk/internal/document"
)

// assemble walks the finalized forest pre-order and emits the chunk
// sequence: one chunk per splitter segment, or one per section when no
// split occurred. Ordinals run over the whole sequence.
func assemble(t *tree, doc document.Document, cfg Config) []document.Chunk {
	var chunks []document.Chunk
	ordinal := 0

	t.walk(func(id int) {
		n := &t.nodes[id]
		if len(n.content) == 0 {
			return
		}
		segs := n.segments
		if segs == nil {
			segs = []segment{makeSegment(n.content, n.tokens)}
		}
		for i, seg := range segs {
			sectionID := n.id
			c := document.Chunk{
				ID:               chunkID(doc.ID, ordinal),
				DocumentID:       doc.ID,
				DocumentTitle:    doc.Title,
				Source:           doc.Source,
				Text:             seg.text,
				Tokens:           seg.tokens,
				SectionID:        &sectionID,
				SectionTitle:     n.title,
				SectionLevel:     n.level,
				IsSummarySection: n.summary,
				IsSectionStart:   i == 0,
				Ordinal:          ordinal,
				Oversized:        seg.oversized,
				OverlapLen:       seg.overlapLen,
				PageStart:        seg.pageStart,
				PageEnd:          seg.pageEnd,
			}
			if cfg.PreserveHierarchy {
				c.SectionPath = t.path(id)
			}
			chunks = append(chunks, c)
			ordinal++
		}
	})

	return chunks
}

// chunkID is deterministic so identical input and config always yield
// identical output.
func chunkID(docID string, ordinal int) string {
	return fmt.Sprintf("%s-%d", docID, ordinal)
}
