package profiler

import (
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/Carmen-Shannon/oxy-sandbox/engine/synchronizer"
)

// Report is one interval's worth of statistics.
type Report struct {
	FPS            float64
	HeapMB         float64
	AllocRateMB    float64
	GCCount        uint32
	LastPauseUs    uint64
	MaxPauseUs     uint64
	SysMB          float64
	BindingsPerSec float64
	Skipped        int
	LightToggles   int
}

// Profiler tracks frame rate, memory statistics and synchronization work.
// Outputs a Report to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	bindings     int
	skipped      int
	lightToggles int

	now    func() time.Time
	logger *zap.Logger
	last   Report
}

// ProfilerBuilderOption is a functional option for configuring a Profiler via NewProfiler.
type ProfilerBuilderOption func(*Profiler)

// WithInterval sets how often a report is logged.
//
// Parameters:
//   - d: the report interval
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the interval to a profiler
func WithInterval(d time.Duration) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.updateInterval = d
	}
}

// WithLogger sets the logger reports are written to.
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - ProfilerBuilderOption: a function that applies the logger to a profiler
func WithLogger(l *zap.Logger) ProfilerBuilderOption {
	return func(p *Profiler) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ProfilerBuilderOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: variadic list of ProfilerBuilderOption functions
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		logger:         zap.NewNop(),
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame with that frame's synchronization stats.
// Logs a report when the update interval has elapsed.
//
// Parameters:
//   - stats: the frame's synchronization stats
//
// Returns:
//   - bool: true if a report was logged this tick
func (p *Profiler) Tick(stats synchronizer.Stats) bool {
	p.frameCount++
	p.bindings += stats.Bindings
	p.skipped += stats.Skipped
	if stats.LightAdded || stats.LightRemoved {
		p.lightToggles++
	}

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	seconds := elapsed.Seconds()

	// Alloc is live heap, TotalAlloc only grows and tracks churn, Sys is the process footprint.
	r := Report{
		FPS:            float64(p.frameCount) / seconds,
		HeapMB:         float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:    float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds,
		GCCount:        p.memStats.NumGC,
		SysMB:          float64(p.memStats.Sys) / 1024 / 1024,
		BindingsPerSec: float64(p.bindings) / seconds,
		Skipped:        p.skipped,
		LightToggles:   p.lightToggles,
	}

	if gcCount := p.memStats.NumGC; gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		r.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			if pause := p.memStats.PauseNs[i%256] / 1000; pause > r.MaxPauseUs {
				r.MaxPauseUs = pause
			}
		}
	}

	p.logger.Info("profile",
		zap.Float64("fps", r.FPS),
		zap.Float64("heapMB", r.HeapMB),
		zap.Float64("allocRateMB", r.AllocRateMB),
		zap.Uint32("gc", r.GCCount),
		zap.Uint64("lastPauseUs", r.LastPauseUs),
		zap.Uint64("maxPauseUs", r.MaxPauseUs),
		zap.Float64("sysMB", r.SysMB),
		zap.Float64("bindingsPerSec", r.BindingsPerSec),
		zap.Int("skipped", r.Skipped),
		zap.Int("lightToggles", r.LightToggles),
	)

	p.last = r
	p.frameCount = 0
	p.bindings = 0
	p.skipped = 0
	p.lightToggles = 0
	p.lastTime = currentTime
	p.lastGCCount = r.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recent report.
func (p *Profiler) Last() Report {
	return p.last
}
