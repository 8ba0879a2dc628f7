package chunker

import (
	"strings"

	"github.com/dgallion1/docchunk/internal/document"
)

// fixedWindowChunks slides a token window over the document's concatenated
// paragraph text. Invoked only when the element stream carries no headings.
// All emitted chunks have a nil section id and an empty section path.
func fixedWindowChunks(doc document.Document, cfg Config, tok Tokenizer) []document.Chunk {
	var words []string
	for _, el := range doc.Elements {
		if el.Type != document.ElementParagraph {
			continue
		}
		text := strings.TrimSpace(el.Text)
		if text == "" {
			continue
		}
		words = append(words, strings.Fields(text)...)
	}
	if len(words) == 0 {
		return nil
	}

	var chunks []document.Chunk
	ordinal := 0
	start := 0
	prevEnd := 0

	for start < len(words) {
		// Grow the window until one more word would cross the ceiling.
		end := start + 1
		for end < len(words) && tok(strings.Join(words[start:end+1], " ")) <= cfg.MaxTokens {
			end++
		}

		text := strings.Join(words[start:end], " ")
		c := document.Chunk{
			ID:             chunkID(doc.ID, ordinal),
			DocumentID:     doc.ID,
			DocumentTitle:  doc.Title,
			Source:         doc.Source,
			Text:           text,
			Tokens:         tok(text),
			IsSectionStart: ordinal == 0,
			Ordinal:        ordinal,
		}
		if start < prevEnd {
			// Leading words duplicated from the previous window.
			c.OverlapLen = len(strings.Join(words[start:prevEnd], " ")) + 1
		}
		chunks = append(chunks, c)
		ordinal++

		if end >= len(words) {
			break
		}

		// Step back far enough to carry roughly OverlapTokens of context
		// into the next window, always making forward progress.
		next := end
		if cfg.OverlapTokens > 0 {
			for next > start+1 && tok(strings.Join(words[next-1:end], " ")) <= cfg.OverlapTokens {
				next--
			}
		}
		if next <= start {
			next = start + 1
		}
		prevEnd = end
		start = next
	}

	return chunks
}
