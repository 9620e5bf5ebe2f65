package worker

import (
	"github.com/storyworld/storyworld/log"
	"github.com/storyworld/storyworld/model"
	"github.com/storyworld/storyworld/store"
	"go.uber.org/zap"
)

type PersistWorker struct {
	id      int
	backend store.Backend
}

// Run writes collection snapshots until the queue closes. A failed
// save is logged and the job dropped, memory and disk stay diverged
// until the next successful write of that collection.
func (w *PersistWorker) Run(c <-chan model.PersistJob) {
	log.Debug("PersistWorker is running", zap.Int("worker_id", w.id))

	for job := range c {
		log.Debug("Job received by worker",
			zap.Int("worker_id", w.id),
			zap.String("collection", job.Name))

		if err := w.backend.Save(job.Name, job.Payload); err != nil {
			log.Error("Failed to persist collection",
				zap.Int("worker_id", w.id),
				zap.String("collection", job.Name),
				zap.Error(err))
		}
	}
}
