package utils

import (
	"context"
	"sync"
)

// Task is one unit of work run by RunParallel.
type Task func(ctx context.Context) error

// RunParallel runs every task in its own goroutine and waits for all of them.
// errs[i] holds the result of tasks[i].
func RunParallel(ctx context.Context, tasks ...Task) []error {
	var wg sync.WaitGroup
	errs := make([]error, len(tasks))

	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(index int, t Task) {
			defer wg.Done()
			errs[index] = t(ctx)
		}(i, task)
	}

	wg.Wait()
	return errs
}
