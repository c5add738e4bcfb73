package container

import "sync"

// serialQueue runs submitted jobs one at a time in submission order.
//
// A drain goroutine is started when the first job arrives and exits as soon
// as the queue is empty, so an idle queue holds no goroutine and nothing keeps
// its owner reachable.
type serialQueue struct {
	mu      sync.Mutex
	jobs    []func()
	running bool

	metrics *Metrics
}

func (q *serialQueue) submit(job func()) {
	q.mu.Lock()
	q.jobs = append(q.jobs, job)
	q.metrics.queued()

	if q.running {
		q.mu.Unlock()
		return
	}

	q.running = true
	q.mu.Unlock()

	go q.drain()
}

func (q *serialQueue) drain() {
	for {
		q.mu.Lock()
		if len(q.jobs) == 0 {
			q.running = false
			q.jobs = nil
			q.mu.Unlock()
			return
		}

		job := q.jobs[0]
		q.jobs[0] = nil
		q.jobs = q.jobs[1:]
		q.mu.Unlock()

		q.metrics.dequeued()
		job()
	}
}

// pending returns the number of jobs waiting to run.
func (q *serialQueue) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.jobs)
}
