package planner

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// planFunc computes the plan for one article job against the shared
// read-only context.
type planFunc func(job articleJob, pctx *Context, now time.Time) articleResult

// executor runs the per-article planner over a batch of jobs. Both
// strategies must produce equivalent output for the same batch: workers
// never share mutable state, each job returns its own value, and the
// engine merges afterwards. Results come back in job order.
type executor interface {
	execute(jobs []articleJob, pctx *Context, now time.Time) ([]articleResult, error)
}

// sequentialExecutor plans the batch in-process, one article at a time.
type sequentialExecutor struct {
	plan planFunc
}

func (s sequentialExecutor) execute(jobs []articleJob, pctx *Context, now time.Time) ([]articleResult, error) {
	results := make([]articleResult, len(jobs))
	for i, job := range jobs {
		results[i] = runJob(s.plan, job, pctx, now)
	}
	return results, nil
}

// parallelExecutor fans the batch out over a bounded worker pool. An error
// return means the pool mechanism itself could not run; individual article
// failures never surface here, they become flagged orders via runJob.
type parallelExecutor struct {
	workers int
	plan    planFunc
}

func (p parallelExecutor) execute(jobs []articleJob, pctx *Context, now time.Time) ([]articleResult, error) {
	if p.workers < 1 {
		return nil, fmt.Errorf("invalid worker count %d", p.workers)
	}

	results := make([]articleResult, len(jobs))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				results[i] = runJob(p.plan, jobs[i], pctx, now)
			}
		}()
	}

	for i := range jobs {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return results, nil
}

// runJob executes the planner for one article, converting a panic into a
// flagged per-article failure order so one bad article never aborts or
// silently drops from the batch.
func runJob(plan planFunc, job articleJob, pctx *Context, now time.Time) (res articleResult) {
	defer func() {
		if r := recover(); r != nil {
			res = failedResult(job.article)
		}
	}()
	return plan(job, pctx, now)
}

// planArticleJob adapts planArticle to the executor's job signature.
func planArticleJob(job articleJob, pctx *Context, now time.Time) articleResult {
	return planArticle(job.article, job.demands, pctx, now)
}

// chooseExecutor selects the execution strategy up front: the pool is worth
// spinning up only when it can actually run more than one article at a time.
func chooseExecutor(workers, batch int) executor {
	if workers > 1 && batch > 1 {
		return parallelExecutor{workers: workers, plan: planArticleJob}
	}
	return sequentialExecutor{plan: planArticleJob}
}

// runBatch executes the batch with the chosen strategy and re-executes the
// whole batch sequentially when the pool mechanism itself fails. The
// fallback produces identical results by construction.
func runBatch(exec executor, jobs []articleJob, pctx *Context, now time.Time, logger *zap.Logger) []articleResult {
	results, err := exec.execute(jobs, pctx, now)
	if err == nil {
		return results
	}
	logger.Warn("parallel execution unavailable, falling back to sequential",
		zap.Error(err))
	results, _ = sequentialExecutor{plan: planArticleJob}.execute(jobs, pctx, now)
	return results
}
