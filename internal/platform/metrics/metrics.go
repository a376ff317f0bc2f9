package metrics

import (
	"sync/atomic"
	"time"
)

// Collector tracks request throughput plus the two signals specific to
// this service: policy denials and translation misses.
type Collector struct {
	totalRequests     uint64
	errorRequests     uint64
	rateLimited       uint64
	permissionDenied  uint64
	translationMisses uint64
	totalDurationMs   uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	if status == 403 {
		atomic.AddUint64(&c.permissionDenied, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordTranslationMiss counts a resolver fallback, the closest thing to
// an error this layer produces.
func (c *Collector) RecordTranslationMiss() {
	atomic.AddUint64(&c.translationMisses, 1)
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	denied := atomic.LoadUint64(&c.permissionDenied)
	misses := atomic.LoadUint64(&c.translationMisses)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":          total,
		"errorsTotal":            errs,
		"rateLimitedTotal":       limited,
		"permissionDeniedTotal":  denied,
		"translationMissesTotal": misses,
		"avgDurationMs":          avg,
		"totalDurationMs":        totalMs,
	}
}
