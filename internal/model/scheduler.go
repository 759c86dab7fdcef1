package model

import (
	"context"

	"github.com/guwidoe/PeopleDistributor/internal/pb"
)

// Status of a finished solve.
type Status uint8

const (
	// StatusOptimal means the returned schedule was proved best possible.
	StatusOptimal Status = iota
	// StatusFeasible means a valid schedule was found but the time budget ran
	// out before optimality could be proved. This is an expected outcome.
	StatusFeasible
	// StatusInfeasible means the hard constraints admit no schedule at all.
	StatusInfeasible
	// StatusNoSolution means the time budget ran out before any schedule was
	// found; the problem may or may not be feasible.
	StatusNoSolution
)

func (status Status) String() string {
	switch status {
	case StatusOptimal:
		return "OPTIMAL"
	case StatusFeasible:
		return "FEASIBLE"
	case StatusInfeasible:
		return "INFEASIBLE"
	case StatusNoSolution:
		return "NO_SOLUTION_FOUND"
	default:
		panic("invalid status")
	}
}

// A Result is the outcome of a solve. Schedule maps session then group to the
// sorted ids of the group's members; it is nil unless Status is StatusOptimal
// or StatusFeasible. ObjectiveValue equals
// UniqueContacts - PenaltyWeight*TotalPenalty.
type Result struct {
	Status         Status
	ObjectiveValue int
	UniqueContacts int
	TotalPenalty   int
	Schedule       [][][]string
}

// Scheduler distributes people into fixed-size groups across sessions,
// maximizing unique pairwise contacts minus the weighted demographic
// imbalance penalty.
type Scheduler interface {
	// Build validates the input, encodes it and searches for the best schedule
	// within ctx and the input's time budget. Structural configuration defects
	// yield a ConfigError; infeasibility and exhausted budgets are reported
	// through Result.Status, never as errors.
	Build(ctx context.Context, input ProblemInput) (Result, error)

	// Verify re-checks a result against every hard constraint of the input and
	// recomputes its contact and penalty totals from the schedule alone.
	Verify(result Result, input ProblemInput) bool
}

func NewScheduler(solver pb.Solver) Scheduler {
	return &pbScheduler{solver: solver}
}
