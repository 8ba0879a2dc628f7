package chunker

// Config controls section-aware chunking. It is an immutable value supplied
// per call; no global state is involved.
type Config struct {
	MinTokens     int // sections below this are merge candidates
	MaxTokens     int // ceiling for a single chunk
	OverlapTokens int // duplicated context between split segments

	MergeTinySections       bool
	PreserveHierarchy       bool
	PreferParagraphSplits   bool
	FallbackToFixedChunking bool
}

// DefaultConfig returns the recognized defaults.
func DefaultConfig() Config {
	return Config{
		MinTokens:               100,
		MaxTokens:               1500,
		OverlapTokens:           50,
		MergeTinySections:       true,
		PreserveHierarchy:       true,
		PreferParagraphSplits:   true,
		FallbackToFixedChunking: true,
	}
}

// Validate rejects configurations that cannot produce bounded chunks.
func (c Config) Validate() error {
	if c.MaxTokens <= 0 {
		return &ConfigError{Reason: "max_tokens must be positive"}
	}
	if c.MinTokens < 0 {
		return &ConfigError{Reason: "min_tokens must not be negative"}
	}
	if c.MinTokens >= c.MaxTokens {
		return &ConfigError{Reason: "min_tokens must be less than max_tokens"}
	}
	if c.OverlapTokens < 0 || c.OverlapTokens >= c.MaxTokens {
		return &ConfigError{Reason: "overlap_tokens must be >= 0 and less than max_tokens"}
	}
	return nil
}
