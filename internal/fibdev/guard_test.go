package fibdev

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestGuardLifecycle(t *testing.T) {
	t.Parallel()

	var g Guard
	if g.Locked() {
		t.Fatal("zero Guard should be free")
	}
	if !g.TryAcquire() {
		t.Fatal("first TryAcquire should succeed")
	}
	if g.TryAcquire() {
		t.Fatal("second TryAcquire should fail while locked")
	}
	if !g.Release() {
		t.Error("Release of a locked guard should report wasHeld")
	}
	if g.Release() {
		t.Error("Release of a free guard should report !wasHeld")
	}
	if !g.TryAcquire() {
		t.Error("TryAcquire after release should succeed")
	}
}

func TestGuardConcurrentAcquire(t *testing.T) {
	t.Parallel()

	const workers = 64
	var (
		g       Guard
		wins    atomic.Int32
		wg      sync.WaitGroup
		barrier = make(chan struct{})
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-barrier
			if g.TryAcquire() {
				wins.Add(1)
			}
		}()
	}
	close(barrier)
	wg.Wait()

	if got := wins.Load(); got != 1 {
		t.Fatalf("%d goroutines acquired the guard, want exactly 1", got)
	}
}
