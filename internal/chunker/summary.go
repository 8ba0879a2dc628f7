package chunker

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// summaryTitles is the fixed vocabulary of overview-like headings. Matching
// is exact after normalization, not substring, so a title like
// "Table of Contents Overview Diagram" does not qualify.
var summaryTitles = map[string]bool{
	"purpose":           true,
	"summary":           true,
	"executive summary": true,
	"introduction":      true,
	"overview":          true,
	"scope":             true,
	"background":        true,
	"abstract":          true,
	"objectives":        true,
	"recitals":          true,
	"whereas":           true,
}

// classifySummaries tags every live section whose title matches the summary
// vocabulary.
func (t *tree) classifySummaries() {
	for i := range t.nodes {
		if t.nodes[i].removed {
			continue
		}
		t.nodes[i].summary = isSummaryTitle(t.nodes[i].title)
	}
}

func isSummaryTitle(title string) bool {
	norm := normalizeTitle(title)
	return norm != "" && summaryTitles[norm]
}

// normalizeTitle strips surrounding whitespace and punctuation, collapses
// internal whitespace, and case-folds.
func normalizeTitle(title string) string {
	trimmed := strings.TrimFunc(title, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
	collapsed := strings.Join(strings.Fields(trimmed), " ")
	return cases.Fold().String(collapsed)
}
