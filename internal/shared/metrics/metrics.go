package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	uploadsTotal      atomic.Uint64
	parsesTotal       atomic.Uint64
	chatTurnsTotal    atomic.Uint64
	proposalsTotal    atomic.Uint64
	editsAppliedTotal atomic.Uint64
	exportsTotal      atomic.Uint64
	jobSearchesTotal  atomic.Uint64
	llmFailuresTotal  atomic.Uint64

	llmDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncUploads increments the resume upload counter.
func IncUploads() { uploadsTotal.Add(1) }

// IncParses increments the parse counter.
func IncParses() { parsesTotal.Add(1) }

// IncChatTurns increments the chat turn counter.
func IncChatTurns() { chatTurnsTotal.Add(1) }

// IncProposals increments the pending-edit-proposal counter.
func IncProposals() { proposalsTotal.Add(1) }

// IncEditsApplied increments the applied-edits counter.
func IncEditsApplied() { editsAppliedTotal.Add(1) }

// IncExports increments the export counter.
func IncExports() { exportsTotal.Add(1) }

// IncJobSearches increments the job-search counter.
func IncJobSearches() { jobSearchesTotal.Add(1) }

// IncLLMFailures increments the LLM failure counter.
func IncLLMFailures() { llmFailuresTotal.Add(1) }

// ObserveLLMDurationMs records an LLM round trip in milliseconds.
func ObserveLLMDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	llmDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "resume_uploads_total", "Total resumes uploaded", uploadsTotal.Load())
	writeCounter(&buf, "resume_parses_total", "Total resumes parsed", parsesTotal.Load())
	writeCounter(&buf, "chat_turns_total", "Total chat turns handled", chatTurnsTotal.Load())
	writeCounter(&buf, "edit_proposals_total", "Total edit proposals created", proposalsTotal.Load())
	writeCounter(&buf, "edits_applied_total", "Total edit proposals applied", editsAppliedTotal.Load())
	writeCounter(&buf, "resume_exports_total", "Total resume exports rendered", exportsTotal.Load())
	writeCounter(&buf, "job_searches_total", "Total job searches proxied", jobSearchesTotal.Load())
	writeCounter(&buf, "llm_failures_total", "Total LLM call failures", llmFailuresTotal.Load())
	writeHistogram(&buf, "llm_duration_ms", "LLM round trip duration in milliseconds", llmDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	// counts are per-bucket; rendering accumulates them into le buckets.
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// NowMillis returns current time in milliseconds, useful for callers without time utilities.
func NowMillis() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Millisecond)
}
