package model

import "github.com/samber/lo"

// Verify re-derives every hard constraint and both objective totals from the
// schedule alone, trusting nothing the solver reported.
func (scheduler *pbScheduler) Verify(result Result, input ProblemInput) bool {
	if result.Status != StatusOptimal && result.Status != StatusFeasible {
		return false
	}
	if input.Validate() != nil {
		return false
	}
	if len(result.Schedule) != input.NumSessions {
		return false
	}

	indices := input.personIndices()
	assignment := make([][]int, input.NumSessions) // session -> person -> group
	for session, groups := range result.Schedule {
		if len(groups) != input.NumGroups {
			return false
		}
		assignment[session] = make([]int, len(input.People))
		for person := range assignment[session] {
			assignment[session][person] = -1
		}
		for group, members := range groups {
			if len(members) != input.GroupSize {
				return false
			}
			for _, id := range members {
				person, known := indices[id]
				if !known || assignment[session][person] != -1 {
					return false
				}
				assignment[session][person] = group
			}
		}
		if lo.SomeBy(assignment[session], func(group int) bool { return group == -1 }) {
			return false
		}
	}

	for _, pair := range input.Conflicts {
		p1, p2 := indices[pair[0]], indices[pair[1]]
		for session := range input.NumSessions {
			if assignment[session][p1] == assignment[session][p2] {
				return false
			}
		}
	}
	for _, pair := range input.Together {
		p1, p2 := indices[pair[0]], indices[pair[1]]
		for session := range input.NumSessions {
			if assignment[session][p1] != assignment[session][p2] {
				return false
			}
		}
	}
	for _, pin := range input.Pinned {
		if assignment[pin.Session][indices[pin.Person]] != pin.Group {
			return false
		}
	}

	contacts := 0
	for p1 := range input.People {
		for p2 := p1 + 1; p2 < len(input.People); p2++ {
			for session := range input.NumSessions {
				if assignment[session][p1] == assignment[session][p2] {
					contacts++
					break
				}
			}
		}
	}

	penalty := 0
	for _, groups := range result.Schedule {
		for _, members := range groups {
			for category, target := range input.Targets {
				count := lo.CountBy(members, func(id string) bool {
					return input.People[indices[id]].Category == category
				})
				if count > target {
					penalty += count - target
				} else {
					penalty += target - count
				}
			}
		}
	}

	return contacts == result.UniqueContacts &&
		penalty == result.TotalPenalty &&
		result.ObjectiveValue == contacts-input.PenaltyWeight*penalty
}
