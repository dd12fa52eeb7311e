package nexus

import "sync"

// submissionScratch bundles the working-set buffers a single submission
// needs. Phase 1's pending-candidate map is the one structure every Submit
// call populates regardless of outcome, so it's the one pooled here; Phase
// 3/6's affected-nexus and owner-key maps are built fresh per call since
// their size depends on how many distinct nexuses/owners a submission
// actually touches, which a pooled buffer sized for the common case wouldn't
// save much on.
type submissionScratch struct {
	candidates map[*Hook]Value
}

func (s *submissionScratch) reset() {
	for k := range s.candidates {
		delete(s.candidates, k)
	}
}

// poolMetrics counts scratch reuse, mirroring the teacher's PoolManager
// hit/miss counters. misses counts buffers freshly allocated by New; gets
// counts every checkout, so hits is derived as gets-misses at Snapshot time.
type poolMetrics struct {
	gets   uint64
	misses uint64
	mu     sync.Mutex
}

func (m *poolMetrics) recordGet() {
	m.mu.Lock()
	m.gets++
	m.mu.Unlock()
}

func (m *poolMetrics) recordMiss() {
	m.mu.Lock()
	m.misses++
	m.mu.Unlock()
}

// Snapshot returns the current (hits, misses) counts.
func (m *poolMetrics) Snapshot() (hits, misses uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gets - m.misses, m.misses
}

// scratchPool hands out submissionScratch buffers, tracking reuse via
// poolMetrics the way the teacher's PoolManager tracks executor-context
// reuse.
type scratchPool struct {
	pool    sync.Pool
	metrics poolMetrics
}

func newScratchPool() *scratchPool {
	p := &scratchPool{}
	p.pool.New = func() any {
		p.metrics.recordMiss()
		return &submissionScratch{
			candidates: make(map[*Hook]Value, 4),
		}
	}
	return p
}

func (p *scratchPool) get() *submissionScratch {
	p.metrics.recordGet()
	return p.pool.Get().(*submissionScratch)
}

func (p *scratchPool) put(s *submissionScratch) {
	s.reset()
	p.pool.Put(s)
}

// Metrics exposes the pool's hit/miss counters for observability.
func (p *scratchPool) Metrics() (hits, misses uint64) {
	return p.metrics.Snapshot()
}
