package pb

import "context"

// Status reports how an optimization run ended.
type Status uint8

const (
	// Unknown means no model was found before the run was cut short; the
	// instance may still be satisfiable.
	Unknown Status = iota
	// Feasible means a model was found but optimality was not proved.
	Feasible
	// Optimal means the best model found was proved optimal.
	Optimal
	// Infeasible means the hard constraints were proved unsatisfiable.
	Infeasible
)

func (status Status) String() string {
	switch status {
	case Unknown:
		return "UNKNOWN"
	case Feasible:
		return "FEASIBLE"
	case Optimal:
		return "OPTIMAL"
	case Infeasible:
		return "INFEASIBLE"
	default:
		panic("invalid status")
	}
}

// A Solution is the outcome of an optimization run. Model holds the binding of
// variable i at index i-1 and is only meaningful for Feasible and Optimal
// results. Cost is the achieved value of the minimization objective.
type Solution struct {
	Status Status
	Model  []bool
	Cost   int
}

// Solver optimizes PB instances. Optimize blocks until optimality is proved,
// the hard constraints are refuted, or ctx is cancelled, and always returns
// the best solution it has seen. Implementations must guarantee that any
// returned model satisfies every hard constraint of the instance.
type Solver interface {
	Optimize(ctx context.Context, instance PB) (Solution, error)
}
