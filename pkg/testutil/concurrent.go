package testutil

import (
	"errors"
	"sync"

	dErrors "coursecred/pkg/domain-errors"
	"coursecred/pkg/platform/sentinel"
)

// ConcurrentResult tracks outcomes of concurrent test operations.
type ConcurrentResult struct {
	Successes int
	Conflicts int
	NotFounds int
	Errors    []error
}

// Total returns the number of operations executed.
func (r *ConcurrentResult) Total() int {
	return r.Successes + r.Conflicts + r.NotFounds + len(r.Errors)
}

// RunConcurrent starts every fn call at once and sorts the outcomes. Both
// store sentinels and domain codes count as conflicts or not-founds.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		start  = make(chan struct{})
		result = &ConcurrentResult{}
	)
	for i := range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			err := fn(i)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				result.Successes++
			case errors.Is(err, sentinel.ErrConflict), dErrors.HasCode(err, dErrors.CodeConflict):
				result.Conflicts++
			case errors.Is(err, sentinel.ErrNotFound), dErrors.HasCode(err, dErrors.CodeNotFound):
				result.NotFounds++
			default:
				result.Errors = append(result.Errors, err)
			}
		}()
	}
	close(start)
	wg.Wait()
	return result
}
