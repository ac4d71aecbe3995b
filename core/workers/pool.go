// ABOUTME: Bounded worker pool dispatching one fetch-and-convert task per link
// ABOUTME: Collects a result per task so failures never cross goroutine boundaries

package workers

import (
	"context"
	"sync"

	"xlthumbs/core/domain"
)

// ThumbnailJob is one unit of work: fetch a link and embed its thumbnails
// starting at the reserved target column.
type ThumbnailJob struct {
	Link         domain.Link
	TargetColumn int
}

// Result reports the outcome of one job. Err carries recovered per-link
// failures; it never aborts the run.
type Result struct {
	Job    ThumbnailJob
	Images int
	Err    error
}

// Processor handles a single job, returning how many images it embedded.
type Processor interface {
	Process(ctx context.Context, job ThumbnailJob) (int, error)
}

// DefaultMaxWorkers bounds the pool when no size is configured.
const DefaultMaxWorkers = 4

// Pool runs thumbnail jobs across a bounded set of goroutines.
type Pool struct {
	processor  Processor
	maxWorkers int
}

// worker is one goroutine draining the shared job queue.
type worker struct {
	id        int
	processor Processor
	jobs      <-chan ThumbnailJob
	results   chan<- Result
	wg        *sync.WaitGroup
}

// NewPool creates a pool with the given concurrency bound.
func NewPool(processor Processor, maxWorkers int) *Pool {
	if maxWorkers <= 0 {
		maxWorkers = DefaultMaxWorkers
	}
	return &Pool{
		processor:  processor,
		maxWorkers: maxWorkers,
	}
}

// Run dispatches every job and blocks until all of them finish, success
// or failure. There is no cancellation and no join timeout: each result
// is collected exactly once, in completion order.
func (p *Pool) Run(ctx context.Context, jobs []ThumbnailJob) []Result {
	if len(jobs) == 0 {
		return nil
	}

	jobQueue := make(chan ThumbnailJob, len(jobs))
	results := make(chan Result, len(jobs))

	workerCount := p.maxWorkers
	if len(jobs) < workerCount {
		workerCount = len(jobs)
	}

	var wg sync.WaitGroup
	for i := 0; i < workerCount; i++ {
		w := &worker{
			id:        i,
			processor: p.processor,
			jobs:      jobQueue,
			results:   results,
			wg:        &wg,
		}
		wg.Add(1)
		go w.run(ctx)
	}

	for _, job := range jobs {
		jobQueue <- job
	}
	close(jobQueue)

	wg.Wait()
	close(results)

	collected := make([]Result, 0, len(jobs))
	for r := range results {
		collected = append(collected, r)
	}
	return collected
}

// run is the main loop for each worker.
func (w *worker) run(ctx context.Context) {
	defer w.wg.Done()

	for job := range w.jobs {
		images, err := w.processor.Process(ctx, job)
		w.results <- Result{Job: job, Images: images, Err: err}
	}
}
