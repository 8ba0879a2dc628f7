// Package chunker converts a structurally annotated document into an ordered
// sequence of retrieval-ready chunks. Whole sections are kept together where
// possible, chunks stay within a token budget, paragraphs are never split at
// primary boundaries, and documents without usable heading structure degrade
// to fixed-window chunking.
package chunker

import "github.com/dgallion1/docchunk/internal/document"

// Chunker performs section-aware chunking with a fixed config and tokenizer.
// It is safe for concurrent use: every call owns its own section tree.
type Chunker struct {
	cfg Config
	tok Tokenizer
}

// New validates the config once and returns a ready chunker. A nil tokenizer
// selects the built-in estimator.
func New(cfg Config, tok Tokenizer) (*Chunker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tok == nil {
		tok = EstimateTokens
	}
	return &Chunker{cfg: cfg, tok: tok}, nil
}

// Chunk transforms one document's element stream into its chunk sequence.
// It is a pure function of the document and the config; the section tree it
// builds is discarded on return.
//
// An empty document yields zero chunks and no error. A document without
// headings goes through fixed-window fallback, or fails with
// *NoStructureError when fallback is disabled.
func (c *Chunker) Chunk(doc document.Document) ([]document.Chunk, error) {
	t, hasHeadings := buildTree(doc, c.tok)

	if !hasHeadings {
		if !t.hasContent() {
			return nil, nil
		}
		if !c.cfg.FallbackToFixedChunking {
			return nil, &NoStructureError{DocID: doc.ID}
		}
		return fixedWindowChunks(doc, c.cfg, c.tok), nil
	}

	if c.cfg.MergeTinySections {
		t.mergeTiny(c.cfg.MinTokens)
	}
	t.splitOversized(c.cfg, c.tok)
	t.classifySummaries()

	return assemble(t, doc, c.cfg), nil
}
