package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgallion1/docchunk/internal/chunker"
	"github.com/dgallion1/docchunk/internal/document"
	"github.com/dgallion1/docchunk/internal/index"
	"github.com/dgallion1/docchunk/internal/parser"
)

// Worker processes a single document job: parse, chunk, deliver.
type Worker struct {
	index *index.Client
	log   *slog.Logger
	stats *ChunkStats

	batchSize            int
	maxConcurrentDeliver int
}

func NewWorker(idx *index.Client, log *slog.Logger, stats *ChunkStats, batchSize, maxDeliver int) *Worker {
	if batchSize <= 0 {
		batchSize = 50
	}
	if maxDeliver <= 0 {
		maxDeliver = 1
	}
	return &Worker{
		index:                idx,
		log:                  log,
		stats:                stats,
		batchSize:            batchSize,
		maxConcurrentDeliver: maxDeliver,
	}
}

// Process runs the full ingest pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	elements, err := p.Parse(bytes.NewReader(job.FileData()), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}

	doc := document.Document{
		ID:       job.DocID,
		Title:    job.Title,
		Source:   job.Filename,
		Elements: elements,
	}
	job.ContentHash = ContentHashHex([]byte(flattenElements(elements)))

	// Phase 2: Chunk
	job.SetStatus(StatusChunking, "chunking")
	start := time.Now()
	eng, err := chunker.New(job.ChunkConfig(), nil)
	if err != nil {
		log.Error("invalid chunk config", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "chunking")
		return
	}
	chunks, err := eng.Chunk(doc)
	if err != nil {
		log.Error("chunking failed", "error", err)
		w.stats.RecordNoStructure()
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "chunking")
		return
	}

	oversized := 0
	usedFallback := len(chunks) > 0 && chunks[0].SectionID == nil
	for _, c := range chunks {
		if c.Oversized {
			oversized++
			log.Warn("oversized chunk emitted unsplit",
				"chunk_id", c.ID, "tokens", c.Tokens, "section", c.SectionTitle)
		}
	}
	job.SetChunkCounts(len(chunks), oversized, usedFallback)
	w.stats.RecordDocument(time.Since(start).Milliseconds(), len(chunks), oversized, usedFallback)
	log.Info("chunked document", "chunks", len(chunks), "oversized", oversized, "fallback", usedFallback)

	if len(chunks) == 0 {
		job.SetStatus(StatusCompleted, "done")
		return
	}

	// Phase 3: Deliver chunk batches with bounded concurrency.
	job.SetStatus(StatusDelivering, "delivering")
	type batchResult struct {
		n   int
		err error
	}
	batches := batchChunks(chunks, w.batchSize)
	results := make(chan batchResult, len(batches))
	sem := make(chan struct{}, w.maxConcurrentDeliver)

	for _, batch := range batches {
		sem <- struct{}{}
		go func(batch []document.Chunk) {
			defer func() { <-sem }()
			var lastErr error
			for attempt := range MaxRetries {
				lastErr = w.index.PutChunks(ctx, job.DocID, batch)
				if lastErr == nil || !IsRetryable(lastErr) {
					break
				}
				log.Warn("retryable delivery error", "attempt", attempt, "error", lastErr)
				select {
				case <-time.After(Backoff(attempt)):
				case <-ctx.Done():
					results <- batchResult{err: ctx.Err()}
					return
				}
			}
			results <- batchResult{n: len(batch), err: lastErr}
		}(batch)
	}

	delivered := 0
	hadErrors := false
	for range batches {
		r := <-results
		if r.err != nil {
			log.Error("delivery failed", "error", r.err)
			job.AddError(fmt.Sprintf("deliver: %s", r.err))
			hadErrors = true
			continue
		}
		delivered += r.n
		job.AddDelivered(r.n)
	}
	log.Info("delivery complete", "delivered", delivered, "total", len(chunks))

	if hadErrors && delivered > 0 {
		job.SetStatus(StatusPartial, "done")
	} else if hadErrors {
		job.SetStatus(StatusFailed, "delivering")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}

// batchChunks splits chunks into ordinal-ordered batches of at most size.
func batchChunks(chunks []document.Chunk, size int) [][]document.Chunk {
	var batches [][]document.Chunk
	for len(chunks) > size {
		batches = append(batches, chunks[:size])
		chunks = chunks[size:]
	}
	return append(batches, chunks)
}

// flattenElements joins element text into a single string for hashing.
func flattenElements(elements []document.Element) string {
	var sb strings.Builder
	for _, el := range elements {
		text := el.Text
		if el.Type == document.ElementHeading {
			text = el.Title
		}
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(text)
	}
	return sb.String()
}
