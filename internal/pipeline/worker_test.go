package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/dgallion1/docchunk/internal/chunker"
	"github.com/dgallion1/docchunk/internal/document"
	"github.com/dgallion1/docchunk/internal/index"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestJob(filename string, data []byte) *Job {
	job := &Job{
		ID:        "job-1",
		DocID:     "doc-1",
		Status:    StatusQueued,
		Filename:  filename,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	job.SetFileData(data)
	job.SetChunkConfig(chunker.DefaultConfig())
	return job
}

func TestWorker_ProcessMarkdown(t *testing.T) {
	var mu sync.Mutex
	var received []document.Chunk
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Chunks []document.Chunk `json:"chunks"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		mu.Lock()
		received = append(received, body.Chunks...)
		mu.Unlock()
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	idx := index.NewClient(srv.URL, "k")
	stats := NewChunkStats(time.Hour)
	w := NewWorker(idx, discardLogger(), stats, 50, 2)

	md := "# Overview\n\nShort intro paragraph.\n\n# Details\n\nBody of the details section."
	job := newTestJob("doc.md", []byte(md))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (errors: %v)", snap.Status, snap.Progress.Errors)
	}
	if snap.Progress.TotalChunks == 0 {
		t.Fatal("expected chunks to be produced")
	}
	if snap.Progress.ChunksDelivered != snap.Progress.TotalChunks {
		t.Errorf("delivered %d of %d", snap.Progress.ChunksDelivered, snap.Progress.TotalChunks)
	}
	if len(received) != snap.Progress.TotalChunks {
		t.Errorf("index received %d chunks, want %d", len(received), snap.Progress.TotalChunks)
	}
	if job.ContentHash == "" {
		t.Error("expected content hash to be set")
	}

	st := stats.Snapshot()
	if st.Documents != 1 || st.Chunks != int64(snap.Progress.TotalChunks) {
		t.Errorf("stats = %+v", st)
	}
}

func TestWorker_ProcessUnsupportedFormat(t *testing.T) {
	idx := index.NewClient("http://127.0.0.1:0", "k")
	w := NewWorker(idx, discardLogger(), NewChunkStats(time.Hour), 50, 1)

	job := newTestJob("image.png", []byte{0x89})
	w.Process(context.Background(), job)

	if job.Snapshot().Status != StatusFailed {
		t.Errorf("expected failed, got %s", job.Snapshot().Status)
	}
}

func TestWorker_ProcessNoStructureNoFallback(t *testing.T) {
	idx := index.NewClient("http://127.0.0.1:0", "k")
	stats := NewChunkStats(time.Hour)
	w := NewWorker(idx, discardLogger(), stats, 50, 1)

	cfg := chunker.DefaultConfig()
	cfg.FallbackToFixedChunking = false
	job := newTestJob("plain.txt", []byte("just a paragraph without any headings"))
	job.SetChunkConfig(cfg)
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", snap.Status)
	}
	if stats.Snapshot().NoStructure != 1 {
		t.Errorf("expected no_structure count 1, got %d", stats.Snapshot().NoStructure)
	}
}

func TestWorker_ProcessFallbackFlag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	idx := index.NewClient(srv.URL, "k")
	w := NewWorker(idx, discardLogger(), NewChunkStats(time.Hour), 50, 1)

	job := newTestJob("plain.txt", []byte("just a paragraph without any headings"))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s (errors: %v)", snap.Status, snap.Progress.Errors)
	}
	if !snap.Progress.UsedFallback {
		t.Error("expected fallback flag")
	}
}

func TestWorker_ProcessDeliveryClientError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rejected", http.StatusBadRequest)
	}))
	defer srv.Close()

	idx := index.NewClient(srv.URL, "k")
	w := NewWorker(idx, discardLogger(), NewChunkStats(time.Hour), 50, 1)

	job := newTestJob("doc.md", []byte("# Title\n\nSome body text."))
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Fatalf("expected failed, got %s", snap.Status)
	}
	if len(snap.Progress.Errors) == 0 {
		t.Error("expected delivery error recorded")
	}
}

func TestBatchChunks(t *testing.T) {
	chunks := make([]document.Chunk, 7)
	for i := range chunks {
		chunks[i].Ordinal = i
	}

	batches := batchChunks(chunks, 3)
	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	if len(batches[0]) != 3 || len(batches[1]) != 3 || len(batches[2]) != 1 {
		t.Errorf("batch sizes = %d, %d, %d", len(batches[0]), len(batches[1]), len(batches[2]))
	}
	if batches[2][0].Ordinal != 6 {
		t.Errorf("last batch ordinal = %d", batches[2][0].Ordinal)
	}

	one := batchChunks(chunks[:2], 10)
	if len(one) != 1 || len(one[0]) != 2 {
		t.Errorf("small input should yield a single batch, got %d", len(one))
	}
}

func TestIsRetryable(t *testing.T) {
	if !IsRetryable(&index.RetryableError{Err: io.EOF}) {
		t.Error("RetryableError should be retryable")
	}
	if IsRetryable(io.EOF) {
		t.Error("plain error should not be retryable")
	}
}

func TestBackoffGrows(t *testing.T) {
	for attempt := 0; attempt < 3; attempt++ {
		d := Backoff(attempt)
		base := time.Duration(1<<uint(attempt)) * time.Second
		if d < base || d > base+base/2 {
			t.Errorf("attempt %d: backoff %v out of range [%v, %v]", attempt, d, base, base+base/2)
		}
	}
}
