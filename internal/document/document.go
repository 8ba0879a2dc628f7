package document

// ElementType distinguishes the two kinds of structural elements the
// extraction service produces.
type ElementType string

const (
	ElementHeading   ElementType = "heading"
	ElementParagraph ElementType = "paragraph"
)

// Element is one record of the ordered element stream for a document.
// Order is significant and is preserved through chunking.
type Element struct {
	Type ElementType `json:"type"`

	// Heading fields.
	Title string `json:"title,omitempty"`
	Level int    `json:"level,omitempty"` // 1 = most significant

	// Paragraph fields.
	Text    string    `json:"text,omitempty"`
	Page    int       `json:"page,omitempty"`    // 1-indexed, 0 if unknown
	Polygon []float64 `json:"polygon,omitempty"` // flat x/y coordinate list
}

// Heading builds a heading element.
func Heading(title string, level int) Element {
	return Element{Type: ElementHeading, Title: title, Level: level}
}

// Paragraph builds a paragraph element.
func Paragraph(text string) Element {
	return Element{Type: ElementParagraph, Text: text}
}

// Document is the chunking input: an identifier, optional provenance tags,
// and the ordered element stream from the extraction service.
type Document struct {
	ID       string    `json:"id"`
	Title    string    `json:"title,omitempty"`
	Source   string    `json:"source,omitempty"`
	Elements []Element `json:"elements"`
}

// Chunk is one retrieval-ready unit of text with hierarchy metadata.
// SectionID is nil only for fixed-window fallback chunks.
type Chunk struct {
	ID            string `json:"id"`
	DocumentID    string `json:"document_id"`
	DocumentTitle string `json:"document_title,omitempty"`
	Source        string `json:"source,omitempty"`

	Text   string `json:"text"`
	Tokens int    `json:"token_count"`

	SectionID    *int     `json:"section_id"`
	SectionTitle string   `json:"section_title,omitempty"`
	SectionLevel int      `json:"section_level,omitempty"`
	SectionPath  []string `json:"section_path,omitempty"` // root → leaf

	IsSummarySection bool `json:"is_summary_section"`
	IsSectionStart   bool `json:"is_section_start"`
	Ordinal          int  `json:"ordinal"`

	// Oversized marks a chunk holding a single paragraph that exceeds the
	// configured ceiling and could not be split at a safe boundary.
	Oversized bool `json:"oversized,omitempty"`

	// OverlapLen is the byte length of the duplicated context prefix
	// (separator included), so consumers can strip overlap exactly.
	OverlapLen int `json:"overlap_len,omitempty"`

	PageStart int `json:"page_start,omitempty"`
	PageEnd   int `json:"page_end,omitempty"`
}

// SummaryChunks returns the chunks whose sections carry overview semantics.
// It is a derived view over an emitted sequence, not separate state.
func SummaryChunks(chunks []Chunk) []Chunk {
	var out []Chunk
	for _, c := range chunks {
		if c.IsSummarySection {
			out = append(out, c)
		}
	}
	return out
}

// FilterBySectionTitle returns the chunks emitted from sections with the
// given title, for targeted retrieval.
func FilterBySectionTitle(chunks []Chunk, title string) []Chunk {
	var out []Chunk
	for _, c := range chunks {
		if c.SectionTitle == title {
			out = append(out, c)
		}
	}
	return out
}
