package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/lunchvote/voting-api/internal/core/ports"
	"github.com/lunchvote/voting-api/internal/pkg/metrics"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []ports.VoteEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e ports.VoteEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) snapshot() []ports.VoteEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.VoteEvent(nil), p.events...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestDispatcher_PreservesPerUserOrder(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pub := &recordingPublisher{}
	d := NewDispatcher(4, pub, zerolog.Nop())
	d.Start(ctx)

	for _, rid := range []string{"r1", "r2", "r3"} {
		d.Enqueue(ports.VoteEvent{Type: ports.VoteEventChanged, UserID: "u1", RestaurantID: rid})
	}
	d.Enqueue(ports.VoteEvent{Type: ports.VoteEventCast, UserID: "u2", RestaurantID: "r9"})

	waitFor(t, func() bool { return len(pub.snapshot()) == 4 })

	var order []string
	for _, e := range pub.snapshot() {
		if e.UserID == "u1" {
			order = append(order, e.RestaurantID)
		}
	}
	if len(order) != 3 || order[0] != "r1" || order[1] != "r2" || order[2] != "r3" {
		t.Fatalf("unexpected per-user order: %v", order)
	}
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, &recordingPublisher{}, zerolog.Nop())
	first := d.shardIndex("user-42")
	for i := 0; i < 10; i++ {
		if got := d.shardIndex("user-42"); got != first {
			t.Fatalf("shard index changed: %d != %d", got, first)
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingPublisher{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("workers = %d, want %d", len(d.workers), defaultWorkers)
	}
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	// Workers are not started, so the single buffer fills up.
	d := NewDispatcher(1, &recordingPublisher{}, zerolog.Nop())
	before := testutil.ToFloat64(metrics.VoteEventsDroppedTotal)

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+3; i++ {
			d.Enqueue(ports.VoteEvent{UserID: "u1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}

	if got := testutil.ToFloat64(metrics.VoteEventsDroppedTotal) - before; got != 3 {
		t.Fatalf("dropped = %v, want 3", got)
	}
}

func TestDispatcher_CountsPublishErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pub := &recordingPublisher{err: errors.New("broker down")}
	d := NewDispatcher(1, pub, zerolog.Nop())
	before := testutil.ToFloat64(metrics.VoteEventsPublishedTotal.WithLabelValues("error"))
	d.Start(ctx)

	d.Enqueue(ports.VoteEvent{UserID: "u1"})
	waitFor(t, func() bool {
		return testutil.ToFloat64(metrics.VoteEventsPublishedTotal.WithLabelValues("error"))-before == 1
	})
}
