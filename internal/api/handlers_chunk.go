package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dgallion1/docchunk/internal/chunker"
	"github.com/dgallion1/docchunk/internal/document"
)

// chunkOverrides carries optional per-request chunking parameters;
// absent fields keep the server defaults.
type chunkOverrides struct {
	MinTokens               *int  `json:"min_tokens"`
	MaxTokens               *int  `json:"max_tokens"`
	OverlapTokens           *int  `json:"overlap_tokens"`
	MergeTinySections       *bool `json:"merge_tiny_sections"`
	PreserveHierarchy       *bool `json:"preserve_hierarchy"`
	PreferParagraphSplits   *bool `json:"prefer_paragraph_splits"`
	FallbackToFixedChunking *bool `json:"fallback_to_fixed_chunking"`
}

func (o *chunkOverrides) apply(cfg chunker.Config) chunker.Config {
	if o == nil {
		return cfg
	}
	if o.MinTokens != nil {
		cfg.MinTokens = *o.MinTokens
	}
	if o.MaxTokens != nil {
		cfg.MaxTokens = *o.MaxTokens
	}
	if o.OverlapTokens != nil {
		cfg.OverlapTokens = *o.OverlapTokens
	}
	if o.MergeTinySections != nil {
		cfg.MergeTinySections = *o.MergeTinySections
	}
	if o.PreserveHierarchy != nil {
		cfg.PreserveHierarchy = *o.PreserveHierarchy
	}
	if o.PreferParagraphSplits != nil {
		cfg.PreferParagraphSplits = *o.PreferParagraphSplits
	}
	if o.FallbackToFixedChunking != nil {
		cfg.FallbackToFixedChunking = *o.FallbackToFixedChunking
	}
	return cfg
}

// handleChunk chunks an already-parsed element stream synchronously and
// returns the chunk sequence without touching the index.
func (s *Server) handleChunk(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Document document.Document `json:"document"`
		Config   *chunkOverrides   `json:"config"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Document.ID == "" {
		jsonError(w, "document.id is required", http.StatusBadRequest)
		return
	}

	cfg := req.Config.apply(s.cfg.Chunking)
	eng, err := chunker.New(cfg, nil)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	chunks, err := eng.Chunk(req.Document)
	if err != nil {
		var noStructure *chunker.NoStructureError
		if errors.As(err, &noStructure) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if chunks == nil {
		chunks = []document.Chunk{}
	}

	oversized := 0
	for _, c := range chunks {
		if c.Oversized {
			oversized++
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"doc_id":    req.Document.ID,
		"chunks":    chunks,
		"total":     len(chunks),
		"oversized": oversized,
	})
}
