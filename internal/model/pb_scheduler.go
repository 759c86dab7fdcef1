package model

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/guwidoe/PeopleDistributor/internal/pb"
)

type pbScheduler struct {
	//** Dependencies
	solver pb.Solver

	//** Per-build state
	people    int
	sessions  int
	groups    int
	groupSize int

	indexer Indexer
	pairs   [][2]int // unordered person pairs, p1 < p2

	slotBase  int // variables before the slot-meet block
	metBase   int // variables before the met block
	next      int // next free auxiliary variable
	penalties []int
}

func (scheduler *pbScheduler) Build(ctx context.Context, input ProblemInput) (Result, error) {
	if err := input.Validate(); err != nil {
		return Result{}, err
	}
	scheduler.initialize(input)

	if !scheduler.preflight(input) {
		return Result{Status: StatusInfeasible}, nil
	}

	instance := scheduler.encode(input)

	if input.TimeLimitSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(input.TimeLimitSeconds*float64(time.Second)))
		defer cancel()
	}
	solution, err := scheduler.solver.Optimize(ctx, instance)
	if err != nil {
		return Result{}, fmt.Errorf("optimization failed: %v", err)
	}

	switch solution.Status {
	case pb.Infeasible:
		return Result{Status: StatusInfeasible}, nil
	case pb.Unknown:
		return Result{Status: StatusNoSolution}, nil
	}
	return scheduler.extract(solution, input), nil
}

func (scheduler *pbScheduler) initialize(input ProblemInput) {
	scheduler.people = len(input.People)
	scheduler.sessions = input.NumSessions
	scheduler.groups = input.NumGroups
	scheduler.groupSize = input.GroupSize
	scheduler.indexer = NewIndexer(scheduler.people, scheduler.sessions, scheduler.groups)

	scheduler.pairs = make([][2]int, 0, scheduler.people*(scheduler.people-1)/2)
	for p1 := range scheduler.people {
		for p2 := p1 + 1; p2 < scheduler.people; p2++ {
			scheduler.pairs = append(scheduler.pairs, [2]int{p1, p2})
		}
	}

	slots := scheduler.sessions * scheduler.groups
	scheduler.slotBase = scheduler.indexer.Variables()
	scheduler.metBase = scheduler.slotBase + len(scheduler.pairs)*slots
	scheduler.next = scheduler.metBase + len(scheduler.pairs) + 1
	scheduler.penalties = nil
}

func (scheduler *pbScheduler) encode(input ProblemInput) pb.PB {
	var instance pb.PB
	scheduler.addMembershipConstraints(&instance)
	scheduler.addOccupancyConstraints(&instance)
	scheduler.addPinnedConstraints(&instance, input)
	scheduler.addConflictConstraints(&instance, input)
	scheduler.addTogetherConstraints(&instance, input)
	scheduler.addContactObjective(&instance)
	scheduler.addBalanceObjective(&instance, input)
	instance.Variables = scheduler.next - 1
	return instance
}

// Every person sits in exactly one group per session.
func (scheduler *pbScheduler) addMembershipConstraints(instance *pb.PB) {
	for person := range scheduler.people {
		for session := range scheduler.sessions {
			literals := make([]int, scheduler.groups)
			for group := range scheduler.groups {
				literals[group] = scheduler.indexer.Index(person, session, group)
			}
			instance.Constraints = append(instance.Constraints, pb.Exactly(literals, 1))
		}
	}
}

// Every group is fully staffed in every session.
func (scheduler *pbScheduler) addOccupancyConstraints(instance *pb.PB) {
	for session := range scheduler.sessions {
		for group := range scheduler.groups {
			literals := make([]int, scheduler.people)
			for person := range scheduler.people {
				literals[person] = scheduler.indexer.Index(person, session, group)
			}
			instance.Constraints = append(instance.Constraints, pb.Exactly(literals, scheduler.groupSize))
		}
	}
}

func (scheduler *pbScheduler) addPinnedConstraints(instance *pb.PB, input ProblemInput) {
	indices := input.personIndices()
	for _, pin := range input.Pinned {
		variable := scheduler.indexer.Index(indices[pin.Person], pin.Session, pin.Group)
		instance.Constraints = append(instance.Constraints, pb.Clause(variable))
	}
}

func (scheduler *pbScheduler) addConflictConstraints(instance *pb.PB, input ProblemInput) {
	indices := input.personIndices()
	for _, pair := range input.Conflicts {
		p1, p2 := indices[pair[0]], indices[pair[1]]
		for session := range scheduler.sessions {
			for group := range scheduler.groups {
				instance.Constraints = append(instance.Constraints, pb.Clause(
					-scheduler.indexer.Index(p1, session, group),
					-scheduler.indexer.Index(p2, session, group),
				))
			}
		}
	}
}

func (scheduler *pbScheduler) addTogetherConstraints(instance *pb.PB, input ProblemInput) {
	indices := input.personIndices()
	for _, pair := range input.Together {
		p1, p2 := indices[pair[0]], indices[pair[1]]
		for session := range scheduler.sessions {
			for group := range scheduler.groups {
				x1 := scheduler.indexer.Index(p1, session, group)
				x2 := scheduler.indexer.Index(p2, session, group)
				instance.Constraints = append(instance.Constraints,
					pb.Clause(-x1, x2),
					pb.Clause(x1, -x2),
				)
			}
		}
	}
}

func (scheduler *pbScheduler) extract(solution pb.Solution, input ProblemInput) Result {
	result := Result{Status: StatusFeasible}
	if solution.Status == pb.Optimal {
		result.Status = StatusOptimal
	}

	schedule := make([][][]string, scheduler.sessions)
	for session := range schedule {
		schedule[session] = make([][]string, scheduler.groups)
		for group := range schedule[session] {
			schedule[session][group] = make([]string, 0, scheduler.groupSize)
		}
	}
	for person, entry := range input.People {
		for session := range scheduler.sessions {
			for group := range scheduler.groups {
				if value(solution.Model, scheduler.indexer.Index(person, session, group)) {
					schedule[session][group] = append(schedule[session][group], entry.ID)
				}
			}
		}
	}
	for _, session := range schedule {
		for _, members := range session {
			slices.Sort(members)
		}
	}
	result.Schedule = schedule

	for pair := range scheduler.pairs {
		if value(solution.Model, scheduler.metVariable(pair)) {
			result.UniqueContacts++
		}
	}
	for _, variable := range scheduler.penalties {
		if value(solution.Model, variable) {
			result.TotalPenalty++
		}
	}
	result.ObjectiveValue = result.UniqueContacts - input.PenaltyWeight*result.TotalPenalty
	return result
}

func (scheduler *pbScheduler) slotMeetVariable(pair, session, group int) int {
	return scheduler.slotBase + 1 + pair*scheduler.sessions*scheduler.groups + session*scheduler.groups + group
}

func (scheduler *pbScheduler) metVariable(pair int) int {
	return scheduler.metBase + 1 + pair
}

func (scheduler *pbScheduler) allocate() int {
	variable := scheduler.next
	scheduler.next++
	return variable
}

func value(model []bool, variable int) bool {
	return variable <= len(model) && model[variable-1]
}
