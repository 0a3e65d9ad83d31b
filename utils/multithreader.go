package utils

import (
	"runtime"
	"sync"

	"go.uber.org/atomic"
)

// MultiThread runs f for every integer in [start, end) across a pool of goroutines, blocking
// until the whole range is done. It is meant for one-off fan-outs, such as evaluating a whole
// test set, where f(i) handles the i-th element and the order does not matter.
//
// Goroutines claim opsPerThread consecutive indices at a time; the pool holds threadsPerCPU
// goroutines per CPU.
func MultiThread(start, end int, f func(int), opsPerThread, threadsPerCPU int) {
	if end <= start {
		return
	}

	cursor := atomic.NewInt64(int64(start))
	threads := runtime.NumCPU() * threadsPerCPU

	var wg sync.WaitGroup
	wg.Add(threads)

	for t := 0; t < threads; t++ {
		go func() {
			defer wg.Done()

			for {
				i := int(cursor.Add(int64(opsPerThread))) - opsPerThread
				if i >= end {
					return
				}

				e := i + opsPerThread
				if e > end {
					e = end
				}

				for ; i < e; i++ {
					f(i)
				}
			}
		}()
	}

	wg.Wait()
}
