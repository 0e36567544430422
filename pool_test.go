package docforge

import (
	"runtime"
	"testing"
)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	// Explicit worker count wins.
	for _, workers := range []int{1, 3, MaxPoolSize} {
		if got := ResolvePoolSize(workers); got != workers {
			t.Errorf("ResolvePoolSize(%d) = %d, want %d", workers, got, workers)
		}
	}

	// Auto mode derives from GOMAXPROCS and stays within bounds.
	got := ResolvePoolSize(0)
	if got < MinPoolSize || got > MaxPoolSize {
		t.Errorf("ResolvePoolSize(0) = %d, want within [%d, %d]", got, MinPoolSize, MaxPoolSize)
	}
	if procs := runtime.GOMAXPROCS(0); procs >= 2 && got > procs {
		t.Errorf("ResolvePoolSize(0) = %d exceeds GOMAXPROCS %d", got, procs)
	}
}

func TestNewRendererPool_MinimumSize(t *testing.T) {
	t.Parallel()

	pool := NewRendererPool(0)
	defer pool.Close()

	if pool.Size() != 1 {
		t.Errorf("Size() = %d, want 1 for n=0", pool.Size())
	}
}

func TestRendererPool_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := NewRendererPool(2)
	defer pool.Close()

	// Renderers are created lazily; no browser is launched until a render.
	a := pool.Acquire()
	b := pool.Acquire()
	if a == nil || b == nil {
		t.Fatal("Acquire returned nil renderer")
	}
	if a == b {
		t.Error("Acquire returned the same renderer twice without release")
	}

	pool.Release(a)
	if c := pool.Acquire(); c != a {
		t.Error("Acquire after Release did not reuse the released renderer")
	}
}

func TestRendererPool_CloseIdempotent(t *testing.T) {
	t.Parallel()

	pool := NewRendererPool(1)
	r := pool.Acquire()
	pool.Release(r)

	if err := pool.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	// Release after close is a no-op, not a panic.
	pool.Release(r)
}

func TestRendererPool_ConcurrentReleaseAndClose(t *testing.T) {
	t.Parallel()

	// Release racing Close must either return the renderer or drop it, never
	// send on the freshly closed channel.
	for i := 0; i < 100; i++ {
		pool := NewRendererPool(1)
		r := pool.Acquire()

		done := make(chan struct{})
		go func() {
			defer close(done)
			pool.Release(r)
		}()
		if err := pool.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
		<-done
	}
}
