package jobs

import (
	"context"
	"log"
	"sync"
	"usatag/src/config"
	"usatag/src/lib"
	"usatag/src/types"

	"github.com/go-co-op/gocron/v2"
)

// LocalQueue runs each job on the in-process scheduler. Jobs enqueued while
// no listener is attached are logged and dropped.
type LocalQueue struct {
	name    string
	mu      sync.RWMutex
	handler types.Handler
}

func NewLocalQueue(name string) *LocalQueue {
	return &LocalQueue{name: name}
}

func (q *LocalQueue) Name() string {
	return config.QUEUE_LOCAL
}

func (q *LocalQueue) Enqueue(ctx context.Context, body string) error {
	_, err := lib.CreateOneTimeCronJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartImmediately()),
		gocron.NewTask(q.dispatch, body),
		gocron.WithName(q.name),
	)
	return err
}

func (q *LocalQueue) dispatch(body string) {
	q.mu.RLock()
	h := q.handler
	q.mu.RUnlock()
	if h == nil {
		log.Printf("[%s] No worker attached, dropping job\n", q.name)
		return
	}
	h(body)
}

func (q *LocalQueue) Listen(ctx context.Context, handler types.Handler) error {
	q.mu.Lock()
	q.handler = handler
	q.mu.Unlock()
	<-ctx.Done()
	q.mu.Lock()
	q.handler = nil
	q.mu.Unlock()
	return nil
}
