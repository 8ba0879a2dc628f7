package chunker

import "fmt"

// ConfigError reports an invalid chunking configuration. It is fatal to the
// call and is returned before any processing starts.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid chunk config: " + e.Reason
}

// NoStructureError is returned when a document contains no headings and
// fixed-window fallback is disabled. The caller decides whether to retry
// with fallback enabled.
type NoStructureError struct {
	DocID string
}

func (e *NoStructureError) Error() string {
	return fmt.Sprintf("document %s has no heading structure and fallback chunking is disabled", e.DocID)
}
