// Package publish provides a reference nexus.Publisher: a bounded pool of
// worker goroutines draining a channel of nexus.PublicationEvent, so that
// Phase 6 of a submission can hand off delivery without blocking the
// manager's write lock on slow subscriber code. Grounded on the teacher's
// PoolManager (pool_manager.go), reworked from a reusable-object sync.Pool
// into a channel-fed worker pool since publication events are short-lived
// messages to dispatch, not scratch structs to recycle.
package publish

import (
	"sync"
	"sync/atomic"

	"github.com/nexusfabric/nexus"
)

// Handler processes one delivered event. It runs on a worker goroutine, not
// the caller's.
type Handler func(nexus.PublicationEvent)

// Metrics tracks dispatcher throughput, mirroring the teacher's PoolMetrics
// hit/miss style counters.
type Metrics struct {
	enqueued uint64
	dropped  uint64
	handled  uint64
}

// Enqueued returns how many events Enqueue accepted.
func (m *Metrics) Enqueued() uint64 { return atomic.LoadUint64(&m.enqueued) }

// Dropped returns how many events were discarded because the queue was
// full.
func (m *Metrics) Dropped() uint64 { return atomic.LoadUint64(&m.dropped) }

// Handled returns how many events a worker has finished processing.
func (m *Metrics) Handled() uint64 { return atomic.LoadUint64(&m.handled) }

// Dispatcher is a bounded worker-pool nexus.Publisher.
type Dispatcher struct {
	events  chan nexus.PublicationEvent
	handler Handler
	metrics Metrics
	wg      sync.WaitGroup
	closed  atomic.Bool
}

// NewDispatcher starts workers goroutines draining a queue of capacity
// queueSize, each invoking handler for every delivered event. A handler
// that panics takes down its worker's event, not the whole dispatcher: the
// panic is recovered and counted as handled.
func NewDispatcher(workers, queueSize int, handler Handler) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	d := &Dispatcher{
		events:  make(chan nexus.PublicationEvent, queueSize),
		handler: handler,
	}
	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.run()
	}
	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for ev := range d.events {
		d.deliver(ev)
	}
}

func (d *Dispatcher) deliver(ev nexus.PublicationEvent) {
	defer func() {
		recover()
		atomic.AddUint64(&d.metrics.handled, 1)
	}()
	d.handler(ev)
}

// Enqueue implements nexus.Publisher. Non-blocking: if every worker is busy
// and the queue is full, the event is dropped and counted rather than
// blocking the caller's manager lock.
func (d *Dispatcher) Enqueue(event nexus.PublicationEvent) {
	if d.closed.Load() {
		return
	}
	select {
	case d.events <- event:
		atomic.AddUint64(&d.metrics.enqueued, 1)
	default:
		atomic.AddUint64(&d.metrics.dropped, 1)
	}
}

// Metrics returns a snapshot of dispatcher throughput counters.
func (d *Dispatcher) Metrics() Metrics {
	return Metrics{
		enqueued: d.metrics.Enqueued(),
		dropped:  d.metrics.Dropped(),
		handled:  d.metrics.Handled(),
	}
}

// Close stops accepting new events and waits for queued ones to drain.
func (d *Dispatcher) Close() {
	if !d.closed.CompareAndSwap(false, true) {
		return
	}
	close(d.events)
	d.wg.Wait()
}
