package chunker

import "strings"

// Tokenizer maps text to a token count. It must be a local, synchronous,
// side-effect-free function; it is used only for sizing decisions.
type Tokenizer func(text string) int

// EstimateTokens gives a rough token count; exact tokenization is not
// required for sizing decisions.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	// Count words as a better proxy than pure character division.
	words := len(strings.Fields(text))
	// Roughly 0.75 tokens per word for English text.
	tokens := int(float64(words) * 1.33)
	if tokens < 1 && len(text) > 0 {
		tokens = 1
	}
	return tokens
}
