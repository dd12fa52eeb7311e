package publish

import (
	"sync"
	"testing"
	"time"

	"github.com/nexusfabric/nexus"
)

func TestDispatcherDeliversEnqueuedEvents(t *testing.T) {
	var mu sync.Mutex
	var delivered []nexus.PublicationEvent

	d := NewDispatcher(2, 8, func(ev nexus.PublicationEvent) {
		mu.Lock()
		delivered = append(delivered, ev)
		mu.Unlock()
	})
	defer d.Close()

	mgr := nexus.NewManager(nexus.WithPublisher(d))
	h := nexus.NewHook(mgr, nexus.NewBoxed(1))
	if err := h.Submit(nexus.NewBoxed(2)); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(delivered)
		mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(delivered) != 1 {
		t.Fatalf("expected exactly one delivered event, got %d", len(delivered))
	}
	if delivered[0].Hook != h {
		t.Errorf("expected the delivered event to reference h")
	}
}

func TestDispatcherDropsWhenQueueFull(t *testing.T) {
	block := make(chan struct{})
	d := NewDispatcher(1, 1, func(ev nexus.PublicationEvent) {
		<-block
	})
	defer func() {
		close(block)
		d.Close()
	}()

	h := nexus.NewHook(nexus.NewManager(), nexus.NewBoxed(0))
	for i := 0; i < 10; i++ {
		d.Enqueue(nexus.PublicationEvent{Hook: h})
	}

	m := d.Metrics()
	if m.Dropped() == 0 {
		t.Errorf("expected at least one event to be dropped once the queue and worker are saturated")
	}
}

func TestDispatcherHandlerPanicIsRecovered(t *testing.T) {
	d := NewDispatcher(1, 4, func(ev nexus.PublicationEvent) {
		panic("boom")
	})
	defer d.Close()

	h := nexus.NewHook(nexus.NewManager(), nexus.NewBoxed(0))
	d.Enqueue(nexus.PublicationEvent{Hook: h})

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		m := d.Metrics()
		if m.Handled() > 0 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected the panicking handler call to still be counted as handled")
}

func TestDispatcherEnqueueAfterCloseIsNoOp(t *testing.T) {
	d := NewDispatcher(1, 1, func(nexus.PublicationEvent) {})
	d.Close()

	h := nexus.NewHook(nexus.NewManager(), nexus.NewBoxed(0))
	d.Enqueue(nexus.PublicationEvent{Hook: h})
	m := d.Metrics()
	if m.Enqueued() != 0 {
		t.Errorf("expected Enqueue after Close to be a no-op")
	}
}
