// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package forest

import (
	"runtime"
	"sync"

	"github.com/js-arias/gctree/llkernel"
	"github.com/js-arias/gctree/mle"
)

// LogLikeAll returns the summed log-likelihood of every tree in f at
// (p, q), evaluated concurrently across CPUs (spec §5): each worker
// owns its own llkernel.Cache, per the cache's own concurrency
// contract, rather than sharing one cache behind a lock.
func (f *Forest) LogLikeAll(p, q float64) (float64, error) {
	ll, _, err := f.logLikeGrad(p, q)
	return ll, err
}

// Fit runs the bounded MLE search (spec §4.3) over every tree in f
// jointly: the objective is the sum of per-tree log-likelihoods and
// gradients.
func (f *Forest) Fit() (mle.Result, []error, error) {
	return mle.Fit(forestObjective{f})
}

type forestObjective struct{ f *Forest }

func (o forestObjective) NegLogLike(p, q float64) (float64, [2]float64, error) {
	ll, grad, err := o.f.logLikeGrad(p, q)
	if err != nil {
		return 0, [2]float64{}, err
	}
	return -ll, [2]float64{-grad[0], -grad[1]}, nil
}

type llResult struct {
	ll   float64
	grad [2]float64
	err  error
}

// logLikeGrad sums the log-likelihood and gradient of every tree in f,
// fanning the per-tree evaluations out across a fixed worker pool — the
// same bounded channel/WaitGroup idiom dag.OptimalWeightAnnotate uses
// for its own level-concurrent DP.
func (f *Forest) logLikeGrad(p, q float64) (float64, [2]float64, error) {
	jobs := make(chan int, len(f.Trees))
	results := make(chan llResult, len(f.Trees))

	cpu := runtime.NumCPU()
	var wg sync.WaitGroup
	for w := 0; w < cpu; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ca := llkernel.NewCache()
			for idx := range jobs {
				ms := f.Trees[idx].CMSummary()
				ll, grad, err := ca.Tree(ms, p, q)
				results <- llResult{ll: ll, grad: [2]float64{grad[0], grad[1]}, err: err}
			}
		}()
	}
	for i := range f.Trees {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	close(results)

	var total float64
	var grad [2]float64
	for r := range results {
		if r.err != nil {
			return 0, [2]float64{}, r.err
		}
		total += r.ll
		grad[0] += r.grad[0]
		grad[1] += r.grad[1]
	}
	return total, grad, nil
}
