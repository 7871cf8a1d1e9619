// Package perf measures layout passes and storage calls and reports them through slog.
package perf

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// FrameBudget is the time a layout pass may take before it drops a frame at 60Hz
const FrameBudget = 16 * time.Millisecond

// Timer logs the duration of one operation when stopped
type Timer struct {
	name     string
	logger   *slog.Logger
	start    time.Time
	threshMs int64
}

// Counter counts events such as bounds pushes
type Counter struct {
	name  string
	value int64
}

type Stats struct {
	Name          string
	Count         int64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	SlowOps       int64
}

// Recorder aggregates durations of a repeated operation. It is safe for
// concurrent use.
type Recorder struct {
	name      string
	logger    *slog.Logger
	count     int64
	totalDur  int64
	minDur    int64
	maxDur    int64
	slowOps   int64
	threshold time.Duration
}

func NewTimer(name string, logger *slog.Logger, threshMs int64) *Timer {
	return &Timer{
		name:     name,
		logger:   logger,
		start:    time.Now(),
		threshMs: threshMs,
	}
}

func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	if t.logger != nil {
		t.logger.Debug(t.name, "duration_ms", elapsed.Milliseconds())
		if elapsed.Milliseconds() > t.threshMs {
			t.logger.Warn(t.name+"_slow", "duration_ms", elapsed.Milliseconds(), "threshold_ms", t.threshMs)
		}
	}
	return elapsed
}

func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

func (c *Counter) Name() string {
	return c.name
}

func (c *Counter) Inc() {
	atomic.AddInt64(&c.value, 1)
}

func (c *Counter) Add(n int64) {
	atomic.AddInt64(&c.value, n)
}

func (c *Counter) Value() int64 {
	return atomic.LoadInt64(&c.value)
}

func (c *Counter) Reset() {
	atomic.StoreInt64(&c.value, 0)
}

// NewRecorder creates a recorder that counts operations at or above threshold as slow
func NewRecorder(name string, logger *slog.Logger, threshold time.Duration) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		name:      name,
		logger:    logger,
		threshold: threshold,
		minDur:    1<<63 - 1,
	}
}

func (r *Recorder) Record(elapsed time.Duration) {
	elapsedNs := elapsed.Nanoseconds()
	atomic.AddInt64(&r.count, 1)
	atomic.AddInt64(&r.totalDur, elapsedNs)

	for {
		minDur := atomic.LoadInt64(&r.minDur)
		if elapsedNs >= minDur {
			break
		}
		if atomic.CompareAndSwapInt64(&r.minDur, minDur, elapsedNs) {
			break
		}
	}

	for {
		maxDur := atomic.LoadInt64(&r.maxDur)
		if elapsedNs <= maxDur {
			break
		}
		if atomic.CompareAndSwapInt64(&r.maxDur, maxDur, elapsedNs) {
			break
		}
	}

	if elapsed >= r.threshold {
		atomic.AddInt64(&r.slowOps, 1)
		r.logger.Warn(r.name+"_slow", "duration_ms", elapsed.Milliseconds(), "threshold_ms", r.threshold.Milliseconds())
	}
}

// Time runs fn and records how long it took
func (r *Recorder) Time(fn func()) time.Duration {
	start := time.Now()
	fn()
	elapsed := time.Since(start)
	r.Record(elapsed)
	return elapsed
}

func (r *Recorder) Stats() Stats {
	totalDur := atomic.LoadInt64(&r.totalDur)
	minDur := atomic.LoadInt64(&r.minDur)
	maxDur := atomic.LoadInt64(&r.maxDur)

	if minDur == 1<<63-1 {
		minDur = 0
	}

	return Stats{
		Name:          r.name,
		Count:         atomic.LoadInt64(&r.count),
		TotalDuration: time.Duration(totalDur),
		MinDuration:   time.Duration(minDur),
		MaxDuration:   time.Duration(maxDur),
		SlowOps:       atomic.LoadInt64(&r.slowOps),
	}
}

func (s *Stats) AvgDuration() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Count)
}

func (r *Recorder) LogStats(level slog.Level) {
	stats := r.Stats()
	if stats.Count == 0 {
		return
	}
	r.logger.Log(context.Background(), level, r.name+"_stats",
		"count", stats.Count,
		"total_ms", stats.TotalDuration.Milliseconds(),
		"avg_us", stats.AvgDuration().Microseconds(),
		"min_us", stats.MinDuration.Microseconds(),
		"max_us", stats.MaxDuration.Microseconds(),
		"slow_ops", stats.SlowOps,
	)
}

// Measure starts timing now; call the returned func to log the duration
func Measure(name string, logger *slog.Logger, threshMs int64) func() {
	t := NewTimer(name, logger, threshMs)
	return func() {
		t.Stop()
	}
}
