package model

import (
	"slices"

	"github.com/samber/lo"

	"github.com/guwidoe/PeopleDistributor/internal/pb"
)

// addContactObjective ties a slot-meet indicator to each (pair, session,
// group) and a met indicator to each pair, then rewards met pairs in the
// objective. Every indicator is an equivalence, not a one-way implication:
// a relaxed direction would let the solver claim contacts that never happen
// on the grid, or hide real ones to dodge nothing.
func (scheduler *pbScheduler) addContactObjective(instance *pb.PB) {
	for pair, people := range scheduler.pairs {
		met := scheduler.metVariable(pair)
		disjunction := make([]int, 0, scheduler.sessions*scheduler.groups+1)
		disjunction = append(disjunction, -met)

		for session := range scheduler.sessions {
			for group := range scheduler.groups {
				x1 := scheduler.indexer.Index(people[0], session, group)
				x2 := scheduler.indexer.Index(people[1], session, group)
				slot := scheduler.slotMeetVariable(pair, session, group)
				instance.Constraints = append(instance.Constraints,
					pb.Clause(-slot, x1),
					pb.Clause(-slot, x2),
					pb.Clause(slot, -x1, -x2),
					pb.Clause(-slot, met),
				)
				disjunction = append(disjunction, slot)
			}
		}
		instance.Constraints = append(instance.Constraints, pb.Clause(disjunction...))
		instance.Min = append(instance.Min, pb.Term{Weight: 1, Literal: -met})
	}
}

// addBalanceObjective penalizes, for every group slot and every targeted
// category, each unit the member count lands away from the target. Categories
// are visited in sorted order so two builds of the same input allocate the
// same variables and emit the same instance.
func (scheduler *pbScheduler) addBalanceObjective(instance *pb.PB, input ProblemInput) {
	categories := lo.Keys(input.Targets)
	slices.Sort(categories)

	members := make(map[string][]int)
	for i, person := range input.People {
		members[person.Category] = append(members[person.Category], i)
	}

	for _, category := range categories {
		target := input.Targets[category]
		population := members[category]
		for session := range scheduler.sessions {
			for group := range scheduler.groups {
				literals := make([]int, len(population))
				for i, person := range population {
					literals[i] = scheduler.indexer.Index(person, session, group)
				}
				scheduler.addDeviationLadder(instance, literals, target, input.PenaltyWeight)
			}
		}
	}
}

// addDeviationLadder introduces one indicator per unit of possible deviation
// from target among literals. Each rung is an equivalence with the count
// threshold it stands for, so the true rungs sum to exactly |count - target|.
func (scheduler *pbScheduler) addDeviationLadder(instance *pb.PB, literals []int, target, weight int) {
	total := len(literals)
	ceiling := min(total, scheduler.groupSize)

	// over rung k holds exactly when count >= target+k
	for threshold := target + 1; threshold <= ceiling; threshold++ {
		over := scheduler.allocate()

		lits := append(slices.Clone(literals), -over)
		weights := unitWeights(total + 1)
		weights[total] = threshold
		instance.Constraints = append(instance.Constraints, pb.GtEq(lits, weights, threshold))

		weights = unitWeights(total + 1)
		weights[total] = total - threshold + 1
		instance.Constraints = append(instance.Constraints, pb.LtEq(lits, weights, total))

		scheduler.penalties = append(scheduler.penalties, over)
		instance.Min = append(instance.Min, pb.Term{Weight: weight, Literal: over})
	}

	// under rung k holds exactly when count <= target-k
	for threshold := target - 1; threshold >= 0; threshold-- {
		under := scheduler.allocate()

		lits := append(slices.Clone(literals), under)
		if threshold < total { // vacuous once the population fits under it
			weights := unitWeights(total + 1)
			weights[total] = total - threshold
			instance.Constraints = append(instance.Constraints, pb.LtEq(lits, weights, total))
		}

		weights := unitWeights(total + 1)
		weights[total] = threshold + 1
		instance.Constraints = append(instance.Constraints, pb.GtEq(lits, weights, threshold+1))

		scheduler.penalties = append(scheduler.penalties, under)
		instance.Min = append(instance.Min, pb.Term{Weight: weight, Literal: under})
	}
}

func unitWeights(length int) []int {
	weights := make([]int, length)
	for i := range weights {
		weights[i] = 1
	}
	return weights
}
