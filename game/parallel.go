package game

import (
	"runtime"
	"sync"
)

// Minimum item counts before work is split across the workers. A move
// scans the ant's whole distance cache; an evaporation check is a few
// instructions.
const (
	antParallelThreshold       = 2
	pheromoneParallelThreshold = 64
)

// workChunk represents a range of items for a worker to process.
type workChunk struct {
	start, end int
	fn         func(i int)
	done       *sync.WaitGroup
}

// workerPool runs per-ant and per-pheromone work for the move and evaporate
// activities. Both activities share the same workers.
type workerPool struct {
	numWorkers int

	mu       sync.Mutex
	workChan chan workChunk // sends work to workers
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
	stopped  bool           // true once stop was called
}

func newWorkerPool(numWorkers int) *workerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &workerPool{numWorkers: numWorkers}
}

// start launches persistent worker goroutines. It reports whether workers
// are available.
func (p *workerPool) start() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return false
	}
	if p.running {
		return true
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return true
}

// release signals all workers to exit and waits for them. The next
// forEach starts them again. Callers must not have forEach calls in flight.
func (p *workerPool) release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.halt()
}

// stop releases the workers for good; later forEach calls run inline.
func (p *workerPool) stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = true
	p.halt()
}

func (p *workerPool) halt() {
	if !p.running {
		return
	}
	close(p.stopChan)
	p.wg.Wait()
	p.running = false
}

// active reports whether worker goroutines are running.
func (p *workerPool) active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *workerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk := <-p.workChan:
			for i := chunk.start; i < chunk.end; i++ {
				chunk.fn(i)
			}
			chunk.done.Done()
		}
	}
}

// forEach calls fn for every index in [0, n) and returns when all calls are
// done. Inputs smaller than threshold run on the calling goroutine. fn must
// not call forEach.
func (p *workerPool) forEach(n, threshold int, fn func(i int)) {
	if n <= 0 {
		return
	}
	if n < threshold || p.numWorkers == 1 || !p.start() {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	var done sync.WaitGroup
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		done.Add(1)
		p.workChan <- workChunk{start: start, end: end, fn: fn, done: &done}
	}

	// Wait for all chunks to complete
	done.Wait()
}
