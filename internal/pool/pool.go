// Package pool runs chunk mesh extraction on a fixed set of worker
// goroutines. Each job owns its grid snapshot and each result owns its mesh,
// so no locking is needed around the mesher itself.
package pool

import (
	"sync"

	"github.com/lumina3d/voxelmesh/internal/mesher"
	"github.com/lumina3d/voxelmesh/internal/voxel"
)

// Job is one chunk to mesh. The grid must not be written to while the job is
// in flight; sharing it read-only is fine.
type Job struct {
	X, Z int
	Grid *voxel.Grid
}

// Result carries one finished chunk mesh back to the caller.
type Result struct {
	X, Z int
	Mesh *mesher.ChunkMesh
	Err  error
}

// WorkerPool fans chunk jobs out to worker goroutines.
type WorkerPool struct {
	cfg     mesher.Config
	jobs    chan Job
	results chan Result
	wg      sync.WaitGroup
}

// New starts a pool with the given worker count and job queue size.
func New(workers, queueSize int, cfg mesher.Config) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	p := &WorkerPool{
		cfg:     cfg,
		jobs:    make(chan Job, queueSize),
		results: make(chan Result, queueSize),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		mesh, err := mesher.Generate(job.Grid, p.cfg)
		p.results <- Result{X: job.X, Z: job.Z, Mesh: mesh, Err: err}
	}
}

// Submit enqueues a job, blocking when the queue is full.
func (p *WorkerPool) Submit(job Job) {
	p.jobs <- job
}

// Results returns the channel finished meshes arrive on. It is closed by
// Shutdown once all in-flight jobs have drained.
func (p *WorkerPool) Results() <-chan Result {
	return p.results
}

// Shutdown stops accepting jobs, waits for the workers to drain, and closes
// the results channel. Callers must not Submit after calling Shutdown.
func (p *WorkerPool) Shutdown() {
	close(p.jobs)
	p.wg.Wait()
	close(p.results)
}
