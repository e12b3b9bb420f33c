package runtime

import (
	"context"
	"io/fs"
	goruntime "runtime"
	"slices"
	"sync"

	"github.com/risor-io/risor/object"

	"github.com/jward/roundpeg/internal/store"
)

// Job is one script for RunParallel. Script is resolved against FS when it
// is set, otherwise against ScriptsDir.
type Job struct {
	ScriptsDir string
	FS         fs.FS
	Script     string
	Source     string // fit-log source for the fits the script records
}

// JobResult is the outcome of one Job. Batch holds the fits the script
// recorded and is nil when Err is set.
type JobResult struct {
	Job   Job
	Value object.Object
	Batch *store.BatchedStore
	Err   error
}

// RunParallel runs jobs on a worker pool. Each job gets its own Runtime
// backed by its own BatchedStore, so scripts never share a recorder and the
// caller commits the batches serially afterwards. opts apply to every
// Runtime. Results are returned in job order.
func RunParallel(ctx context.Context, jobs []Job, opts ...RuntimeOption) []JobResult {
	results := make([]JobResult, len(jobs))
	if len(jobs) == 0 {
		return results
	}

	numWorkers := max(min(goruntime.NumCPU(), len(jobs)), 1)

	workCh := make(chan int, len(jobs))
	for i := range jobs {
		workCh <- i
	}
	close(workCh)

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workCh {
				results[i] = runJob(ctx, jobs[i], opts)
			}
		}()
	}
	wg.Wait()
	return results
}

func runJob(ctx context.Context, job Job, opts []RuntimeOption) JobResult {
	batch := store.NewBatchedStore()
	jobOpts := append(slices.Clone(opts), WithRecorder(batch, job.Source))
	if job.FS != nil {
		jobOpts = append(jobOpts, WithRuntimeFS(job.FS))
	}

	rt := NewRuntime(job.ScriptsDir, jobOpts...)
	value, err := rt.RunScript(ctx, job.Script, nil)
	if err != nil {
		return JobResult{Job: job, Err: err}
	}
	return JobResult{Job: job, Value: value, Batch: batch}
}
