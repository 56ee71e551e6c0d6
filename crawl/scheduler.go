package crawl

import (
	"context"
	"log/slog"
	"sync"

	"github.com/mzagorski/trawl"
	"golang.org/x/sync/errgroup"
)

// Scheduler drives a crawl run: it pops URLs from the frontier, hands
// them to a bounded pool of workers, and feeds discovered links back in.
// Run returns once every enqueued URL has been popped and processed.
type Scheduler struct {
	frontier trawl.Frontier
	handler  trawl.Handler
	logger   *slog.Logger

	mu       sync.Mutex
	cond     *sync.Cond
	inflight int
}

// SchedulerOption configures a Scheduler.
type SchedulerOption func(*Scheduler)

// WithLogger sets the logger used to report handler failures.
func WithLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// NewScheduler creates a Scheduler over the given frontier and per-URL
// handler. The scheduler knows nothing about the handler's internals; it
// only enqueues whatever links the handler returns.
func NewScheduler(frontier trawl.Frontier, handler trawl.Handler, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		frontier: frontier,
		handler:  handler,
		logger:   slog.Default(),
	}
	s.cond = sync.NewCond(&s.mu)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enqueue adds a URL to the frontier and wakes a waiting worker.
// Duplicate and out-of-scope URLs are dropped silently.
func (s *Scheduler) Enqueue(rawURL string) bool {
	if !s.frontier.Push(rawURL) {
		return false
	}
	// Signal under the scheduler lock so a worker between its empty-queue
	// check and cond.Wait cannot miss the wakeup.
	s.mu.Lock()
	s.cond.Signal()
	s.mu.Unlock()
	return true
}

// Run processes the frontier with exactly `concurrency` workers and
// returns once the queue is fully drained: every pushed URL popped and
// its handler call finished. Handler errors are logged, never fatal.
// Context cancellation stops the pool early and is the only other way
// out.
func (s *Scheduler) Run(ctx context.Context, concurrency int) error {
	if concurrency <= 0 {
		return trawl.Errorf(trawl.EINVALID, "concurrency must be positive, got %d", concurrency)
	}

	// Wake every waiting worker when the context is canceled so they can
	// observe ctx.Err() and exit.
	unwatch := context.AfterFunc(ctx, func() {
		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()
	})
	defer unwatch()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < concurrency; i++ {
		worker := i
		g.Go(func() error {
			return s.work(gctx, worker)
		})
	}
	return g.Wait()
}

// work is a single worker loop: pop, handle, enqueue discoveries, mark done.
func (s *Scheduler) work(ctx context.Context, worker int) error {
	for {
		url, ok := s.next(ctx)
		if !ok {
			return ctx.Err()
		}

		links, err := s.handler.Handle(ctx, url)
		if err != nil {
			// A single bad URL must not kill the pool.
			s.logger.Error("handler failed",
				"worker", worker,
				"url", url,
				"error", err,
			)
		}
		for _, link := range links {
			s.Enqueue(link)
		}

		s.done()
	}
}

// next blocks until a URL is available, the queue drains, or the context
// is canceled. It returns false in the latter two cases. The in-flight
// count is incremented under the same lock as the pop so drain detection
// never races a concurrent worker.
func (s *Scheduler) next(ctx context.Context) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		if ctx.Err() != nil {
			return "", false
		}
		if url, ok := s.frontier.Pop(); ok {
			s.inflight++
			return url, true
		}
		if s.inflight == 0 {
			// Queue empty and nothing in flight: the run is complete.
			s.cond.Broadcast()
			return "", false
		}
		s.cond.Wait()
	}
}

// done marks one in-flight URL as processed and wakes waiters, since a
// drain may now be observable.
func (s *Scheduler) done() {
	s.mu.Lock()
	s.inflight--
	s.cond.Broadcast()
	s.mu.Unlock()
}
