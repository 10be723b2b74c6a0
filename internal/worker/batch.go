package worker

import "sort"

// maxBuffer caps the channel buffers of a batch pool.
const maxBuffer = 100

// RunOrdered replays jobs on a pool of workers and returns the results in
// input order. With stopOnError set, jobs not yet started when the first
// failure arrives are skipped, so fewer results than jobs may come back.
func RunOrdered(jobs []Job, fn ProcessFunc, workers int, stopOnError bool) []ProcessResult {
	bufferSize := len(jobs)
	if bufferSize > maxBuffer {
		bufferSize = maxBuffer
	}
	pool := NewPool(fn, WithWorkers(workers), WithBufferSize(bufferSize))
	pool.Start()

	go func() {
		for i, job := range jobs {
			if pool.IsStopped() {
				break
			}
			pool.Submit(WorkItem{Job: job, Index: i})
		}
		pool.Close()
	}()

	// results is only appended to from this single consumer goroutine.
	results := make([]ProcessResult, 0, len(jobs))
	for result := range pool.Results() {
		if result.Error != nil && stopOnError {
			pool.Stop()
		}
		results = append(results, result)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}
