package pb

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/crillab/gophersat/solver"
)

type gophersatSolver struct {
	workers int
}

// NewGophersatSolver returns a Solver backed by the gophersat CDCL engine.
// With more than one worker it runs a portfolio: every worker searches an
// independently parsed copy of the instance whose constraint order is shuffled
// by its seed, and improving models are harvested as they are found.
func NewGophersatSolver(workers int) Solver {
	if workers < 1 {
		workers = 1
	}
	return &gophersatSolver{workers: workers}
}

func (gs *gophersatSolver) Optimize(ctx context.Context, instance PB) (Solution, error) {
	var mu sync.Mutex
	best := Solution{Status: Unknown}

	publish := func(model []bool, cost int) {
		mu.Lock()
		if best.Status == Unknown || cost < best.Cost {
			best = Solution{Status: Feasible, Model: model, Cost: cost}
		}
		mu.Unlock()
	}
	snapshot := func() Solution {
		mu.Lock()
		defer mu.Unlock()
		return best
	}

	done := make(chan solver.Result, gs.workers)
	stop := make(chan struct{})
	defer close(stop)

	for worker := range gs.workers {
		variant := instance
		if worker > 0 {
			variant = instance.Shuffled(uint64(worker))
		}
		problem, err := solver.ParseOPB(strings.NewReader(variant.ToOPB()))
		if err != nil {
			return Solution{}, fmt.Errorf("cannot build gophersat problem: %v", err)
		}
		if problem.Status == solver.Unsat { // Refuted by unit propagation alone
			return Solution{Status: Infeasible}, nil
		}

		improvements := make(chan solver.Result, 1)
		go func() {
			for result := range improvements {
				if result.Status == solver.Sat {
					publish(result.Model, result.Weight)
				}
			}
		}()
		go func(problem *solver.Problem) {
			done <- solver.New(problem).Optimal(improvements, stop)
		}(problem)
	}

	finished := 0
	for {
		select {
		case result := <-done:
			switch result.Status {
			case solver.Unsat:
				// Workers share the same constraints, so one refutation settles it.
				return Solution{Status: Infeasible}, nil
			case solver.Sat:
				return Solution{Status: Optimal, Model: result.Model, Cost: result.Weight}, nil
			}
			finished++
			if finished == gs.workers {
				return snapshot(), nil
			}
		case <-ctx.Done():
			// Workers that ignore the stop signal keep searching in the
			// background; they only touch their own clause database and the
			// publish mutex, and their late results are discarded.
			return snapshot(), nil
		}
	}
}
