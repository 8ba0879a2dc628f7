package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docchunk/internal/document"
)

// TextParser handles plain text files. Blank lines delimit paragraphs; plain
// text carries no headings, so the engine's fallback path applies.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]document.Element, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var elements []document.Element
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			elements = append(elements, document.Paragraph(current.String()))
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return elements, nil
}
