package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// handleListDocuments proxies the index service's document listing.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	limit := 200
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	docs, err := s.orchestrator.IndexClient().ListDocuments(r.Context(), limit)
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"documents": docs})
}

// handleDeleteDocument removes a document and its chunks from the index.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	if err := s.orchestrator.IndexClient().DeleteDocument(r.Context(), docID); err != nil {
		jsonError(w, "failed to delete document: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"doc_id": docID, "deleted": true})
}

// handleDocumentSummary returns the summary-section chunks for a document:
// the short coverage view used to represent the whole document.
func (s *Server) handleDocumentSummary(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")

	chunks, err := s.orchestrator.IndexClient().SummaryChunks(r.Context(), docID)
	if err != nil {
		jsonError(w, "failed to fetch summary chunks: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"doc_id": docID, "chunks": chunks})
}

// handleDocumentSections returns a document's chunks filtered by section
// title, given as the title query parameter.
func (s *Server) handleDocumentSections(w http.ResponseWriter, r *http.Request) {
	docID := chi.URLParam(r, "docID")
	title := r.URL.Query().Get("title")
	if title == "" {
		jsonError(w, "title query parameter is required", http.StatusBadRequest)
		return
	}

	chunks, err := s.orchestrator.IndexClient().ChunksBySection(r.Context(), docID, title)
	if err != nil {
		jsonError(w, "failed to fetch section chunks: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"doc_id": docID, "title": title, "chunks": chunks})
}
