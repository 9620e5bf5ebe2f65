package worker // import "github.com/storyworld/storyworld/worker"

import (
	"sync"

	"github.com/storyworld/storyworld/model"
	"github.com/storyworld/storyworld/store"
)

// Pool funnels every snapshot write through its workers. With a single
// worker saves are serialized, so two racing mutations can no longer
// interleave their file writes.
type Pool struct {
	queue chan model.PersistJob
	wg    sync.WaitGroup
}

var _ store.Persister = (*Pool)(nil)

func (p *Pool) Push(job model.PersistJob) {
	p.queue <- job
}

// Close stops accepting jobs and waits for the queued ones to land.
func (p *Pool) Close() {
	close(p.queue)
	p.wg.Wait()
}

// NewPersistPool creates a pool of background persist workers. Size 1
// keeps a single writer per process.
func NewPersistPool(backend store.Backend, size int) *Pool {
	pool := &Pool{
		queue: make(chan model.PersistJob, 64),
	}

	for i := 0; i < size; i++ {
		worker := &PersistWorker{id: i, backend: backend}
		pool.wg.Add(1)
		go func() {
			defer pool.wg.Done()
			worker.Run(pool.queue)
		}()
	}
	return pool
}
