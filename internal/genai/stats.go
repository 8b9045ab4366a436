package genai

import (
	"slices"
	"sync"
	"time"
)

type observation struct {
	at time.Time
	ms int64
}

// StatsSnapshot is a point-in-time aggregate of LLM latency samples.
type StatsSnapshot struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
	P99Ms float64 `json:"p99_ms"`
}

// LLMStats tracks recent LLM call latencies within a rolling window.
type LLMStats struct {
	mu     sync.Mutex
	window []observation
	maxAge time.Duration
}

func NewLLMStats(maxAge time.Duration) *LLMStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &LLMStats{maxAge: maxAge}
}

func (s *LLMStats) Record(durationMs int64) {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dropExpired(now)
	s.window = append(s.window, observation{at: now, ms: max(durationMs, 0)})
}

func (s *LLMStats) Snapshot() StatsSnapshot {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	s.dropExpired(now)
	if len(s.window) == 0 {
		return StatsSnapshot{}
	}

	values := make([]int64, len(s.window))
	var sum int64
	for i, o := range s.window {
		values[i] = o.ms
		sum += o.ms
	}
	slices.Sort(values)

	return StatsSnapshot{
		Count: len(values),
		MinMs: values[0],
		MaxMs: values[len(values)-1],
		AvgMs: float64(sum) / float64(len(values)),
		P50Ms: percentile(values, 50),
		P95Ms: percentile(values, 95),
		P99Ms: percentile(values, 99),
	}
}

// dropExpired trims the front of the window. Observations are appended in
// time order, so everything after the first fresh one is fresh too.
func (s *LLMStats) dropExpired(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	i := 0
	for i < len(s.window) && s.window[i].at.Before(cutoff) {
		i++
	}
	if i > 0 {
		s.window = append(s.window[:0], s.window[i:]...)
	}
}

// percentile interpolates linearly between the two nearest ranks of a
// sorted slice.
func percentile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}
	rank := float64(len(sorted)-1) * pct / 100.0
	lo := int(rank)
	if lo+1 >= len(sorted) {
		return float64(sorted[lo])
	}
	frac := rank - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[lo+1]-sorted[lo])
}

// StatsRegistry keeps one rolling latency window per operation, so
// translation and summarization latencies can be reported separately.
type StatsRegistry struct {
	mu     sync.Mutex
	byOp   map[string]*LLMStats
	maxAge time.Duration
}

func NewStatsRegistry(maxAge time.Duration) *StatsRegistry {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &StatsRegistry{
		byOp:   make(map[string]*LLMStats),
		maxAge: maxAge,
	}
}

func (r *StatsRegistry) Record(op string, durationMs int64) {
	r.forOp(op).Record(durationMs)
}

func (r *StatsRegistry) forOp(op string) *LLMStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byOp[op]
	if !ok {
		s = NewLLMStats(r.maxAge)
		r.byOp[op] = s
	}
	return s
}

// Snapshot returns an aggregate per operation.
func (r *StatsRegistry) Snapshot() map[string]StatsSnapshot {
	r.mu.Lock()
	stats := make(map[string]*LLMStats, len(r.byOp))
	for op, s := range r.byOp {
		stats[op] = s
	}
	r.mu.Unlock()

	out := make(map[string]StatsSnapshot, len(stats))
	for op, s := range stats {
		out[op] = s.Snapshot()
	}
	return out
}
