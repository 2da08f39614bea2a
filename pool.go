package brochure

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// ConverterPool manages Converter instances for parallel exports.
// Each converter owns its browser, so exports in different converters never
// queue behind each other. Converters are created lazily on first acquire.
type ConverterPool struct {
	size       int
	opts       []Option
	converters []*Converter
	sem        chan *Converter
	mu         sync.Mutex
	created    int
	closed     bool
}

// NewConverterPool creates a pool with capacity for n converters built with opts.
// Converters are created when acquired, not at pool creation.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	if n < 1 {
		n = 1
	}

	return &ConverterPool{
		size:       n,
		opts:       opts,
		converters: make([]*Converter, 0, n),
		sem:        make(chan *Converter, n),
	}
}

// Acquire gets a converter from the pool, creating one if needed.
// Blocks if all converters are in use. A creation error frees the slot.
func (p *ConverterPool) Acquire() (*Converter, error) {
	select {
	case c := <-p.sem:
		return c, nil
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create outside the lock
		c, err := NewConverter(p.opts...)
		if err != nil {
			p.mu.Lock()
			p.created--
			p.mu.Unlock()
			return nil, err
		}

		p.mu.Lock()
		p.converters = append(p.converters, c)
		p.mu.Unlock()

		return c, nil
	}
	p.mu.Unlock()

	// All converters created, wait for one to be released
	c, ok := <-p.sem
	if !ok {
		return nil, ErrPoolClosed
	}
	return c, nil
}

// Release returns a converter to the pool.
// The lock is released before sending to avoid deadlock when channel is full.
func (p *ConverterPool) Release(c *Converter) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.sem <- c
}

// Close releases all browser resources.
// Returns an aggregated error if multiple converters fail to close.
func (p *ConverterPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	converters := p.converters
	p.mu.Unlock()

	var errs []error
	for _, c := range converters {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is container-aware when automaxprocs is loaded
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
