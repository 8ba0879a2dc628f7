package index

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dgallion1/docchunk/internal/document"
)

func TestPutChunks(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody struct {
		Chunks []document.Chunk `json:"chunks"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	chunks := []document.Chunk{
		{ID: "doc1-0", DocumentID: "doc1", Text: "first", Tokens: 2, Ordinal: 0},
		{ID: "doc1-1", DocumentID: "doc1", Text: "second", Tokens: 2, Ordinal: 1},
	}
	if err := c.PutChunks(context.Background(), "doc1", chunks); err != nil {
		t.Fatalf("PutChunks: %v", err)
	}
	if gotPath != "/documents/doc1/chunks" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if len(gotBody.Chunks) != 2 || gotBody.Chunks[1].ID != "doc1-1" {
		t.Errorf("body chunks = %+v", gotBody.Chunks)
	}
}

func TestPutChunksRetryableStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	err := c.PutChunks(context.Background(), "doc1", nil)
	var re *RetryableError
	if !errors.As(err, &re) {
		t.Fatalf("expected RetryableError, got %v", err)
	}
}

func TestPutChunksClientErrorNotRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad chunk", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	err := c.PutChunks(context.Background(), "doc1", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	var re *RetryableError
	if errors.As(err, &re) {
		t.Fatalf("400 should not be retryable: %v", err)
	}
}

func TestSummaryChunks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("summary") != "true" {
			t.Errorf("missing summary query: %s", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"chunks": []document.Chunk{{ID: "doc1-0", IsSummarySection: true}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	chunks, err := c.SummaryChunks(context.Background(), "doc1")
	if err != nil {
		t.Fatalf("SummaryChunks: %v", err)
	}
	if len(chunks) != 1 || !chunks[0].IsSummarySection {
		t.Errorf("chunks = %+v", chunks)
	}
}

func TestChunksBySectionEscapesTitle(t *testing.T) {
	var gotTitle string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTitle = r.URL.Query().Get("section_title")
		json.NewEncoder(w).Encode(map[string]any{"chunks": []document.Chunk{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	if _, err := c.ChunksBySection(context.Background(), "doc1", "Terms & Conditions"); err != nil {
		t.Fatalf("ChunksBySection: %v", err)
	}
	if gotTitle != "Terms & Conditions" {
		t.Errorf("section_title = %q", gotTitle)
	}
}

func TestListDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "5" {
			t.Errorf("limit = %q", r.URL.Query().Get("limit"))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"documents": []DocumentInfo{{DocID: "doc1", ChunkCount: 3}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k")
	docs, err := c.ListDocuments(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 1 || docs[0].ChunkCount != 3 {
		t.Errorf("docs = %+v", docs)
	}
}
