package model

import (
	"log"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

// preflight runs a per-session matching between people and group seats before
// any encoding happens. A person may not take a seat in a group other than
// their own pin, nor in a group a conflicting person is pinned to; if under
// those rules some session cannot seat everyone, no schedule exists and the
// search can be skipped entirely.
func (scheduler *pbScheduler) preflight(input ProblemInput) bool {
	indices := input.personIndices()
	pinned := input.pinnedGroups()

	conflictsWith := make(map[int][]int)
	for _, pair := range input.Conflicts {
		p1, p2 := indices[pair[0]], indices[pair[1]]
		conflictsWith[p1] = append(conflictsWith[p1], p2)
		conflictsWith[p2] = append(conflictsWith[p2], p1)
	}

	people := lo.Map(input.People, func(_ Person, i int) any { return i })
	seats := lo.Map(people, func(_ any, i int) any { return i })

	for session := range scheduler.sessions {
		admissible := func(personEntry, seatEntry any) (bool, error) {
			person := personEntry.(int)
			group := seatEntry.(int) / scheduler.groupSize
			if pin, ok := pinned[[2]int{person, session}]; ok && pin != group {
				return false, nil
			}
			for _, other := range conflictsWith[person] {
				if pin, ok := pinned[[2]int{other, session}]; ok && pin == group {
					return false, nil
				}
			}
			return true, nil
		}

		graph, err := bipartitegraph.NewBipartiteGraph(people, seats, admissible)
		if err != nil {
			return true // Proves nothing, leave the verdict to the search
		}
		if len(graph.LargestMatching()) < scheduler.people {
			log.Printf("session %d cannot seat everyone under the pinned and conflict constraints", session)
			return false
		}
	}
	return true
}
