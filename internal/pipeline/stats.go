package pipeline

import (
	"sort"
	"sync"
	"time"
)

type sample struct {
	timestamp  time.Time
	durationMs int64
}

// StatsSnapshot is a point-in-time aggregate of chunking activity.
type StatsSnapshot struct {
	Documents   int64 `json:"documents"`
	Chunks      int64 `json:"chunks"`
	Oversized   int64 `json:"oversized"`
	Fallbacks   int64 `json:"fallbacks"`
	NoStructure int64 `json:"no_structure"`

	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// ChunkStats tracks per-document chunking latencies within a rolling
// window, plus lifetime counters.
type ChunkStats struct {
	mu      sync.Mutex
	samples []sample
	maxAge  time.Duration

	documents   int64
	chunks      int64
	oversized   int64
	fallbacks   int64
	noStructure int64
}

func NewChunkStats(maxAge time.Duration) *ChunkStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &ChunkStats{
		samples: make([]sample, 0, 256),
		maxAge:  maxAge,
	}
}

// RecordDocument records one chunked document: its latency, chunk count,
// oversized count, and whether fixed-window fallback was used.
func (s *ChunkStats) RecordDocument(durationMs int64, chunks, oversized int, usedFallback bool) {
	if durationMs < 0 {
		durationMs = 0
	}
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	s.samples = append(s.samples, sample{
		timestamp:  now,
		durationMs: durationMs,
	})
	s.documents++
	s.chunks += int64(chunks)
	s.oversized += int64(oversized)
	if usedFallback {
		s.fallbacks++
	}
}

// RecordNoStructure counts a document rejected for having no headings.
func (s *ChunkStats) RecordNoStructure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.noStructure++
}

func (s *ChunkStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)
	snap := StatsSnapshot{
		Documents:   s.documents,
		Chunks:      s.chunks,
		Oversized:   s.oversized,
		Fallbacks:   s.fallbacks,
		NoStructure: s.noStructure,
	}
	if len(s.samples) == 0 {
		return snap
	}

	values := make([]int64, 0, len(s.samples))
	var sum int64
	for _, sm := range s.samples {
		values = append(values, sm.durationMs)
		sum += sm.durationMs
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	snap.Count = len(values)
	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = float64(sum) / float64(len(values))
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	snap.P99Ms = percentile(values, 99)
	return snap
}

func (s *ChunkStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	writeIdx := 0
	for _, sm := range s.samples {
		if !sm.timestamp.Before(cutoff) {
			s.samples[writeIdx] = sm
			writeIdx++
		}
	}
	s.samples = s.samples[:writeIdx]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
