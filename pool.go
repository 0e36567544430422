package docforge

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one renderer is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// RendererPool manages a pool of Renderer instances for parallel certificate
// rendering. Each renderer owns its own browser process, enabling true
// parallelism. Renderers are created lazily on first acquire.
type RendererPool struct {
	size      int
	renderers []*Renderer
	sem       chan *Renderer
	opts      []RendererOption
	mu        sync.Mutex
	created   int
	closed    bool
}

// NewRendererPool creates a pool with capacity for n Renderer instances,
// each constructed with the given options. Renderers are created lazily when
// acquired, not at pool creation.
func NewRendererPool(n int, opts ...RendererOption) *RendererPool {
	if n < 1 {
		n = 1
	}
	return &RendererPool{
		size:      n,
		renderers: make([]*Renderer, 0, n),
		sem:       make(chan *Renderer, n),
		opts:      opts,
	}
}

// Acquire gets a renderer from the pool, creating one if needed.
// Blocks if all renderers are in use.
func (p *RendererPool) Acquire() *Renderer {
	// Try to get an existing renderer (non-blocking)
	select {
	case r := <-p.sem:
		return r
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		r := NewRenderer(p.opts...)

		p.mu.Lock()
		p.renderers = append(p.renderers, r)
		p.mu.Unlock()

		return r
	}
	p.mu.Unlock()

	// All renderers created, wait for one to be released
	return <-p.sem
}

// Release returns a renderer to the pool. Releasing into a closed pool is a
// no-op.
func (p *RendererPool) Release(r *Renderer) {
	// The send happens under the same lock Close holds while closing the
	// channel, so it can never hit a freshly closed channel. It cannot block:
	// channel capacity matches the number of renderers that can ever exist.
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.sem <- r
}

// Close releases all browser resources.
// Returns an aggregated error if multiple renderers fail to close.
func (p *RendererPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	renderers := p.renderers
	p.mu.Unlock()

	var errs []error
	for _, r := range renderers {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *RendererPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs in the CLI)
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
